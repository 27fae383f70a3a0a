package auth

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"fooddash/internal/logger"
	"fooddash/internal/models"
	"fooddash/internal/web"
)

// Handler handles HTTP requests for authentication
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new auth handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Signup handles POST /auth/signup requests
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := logger.GenerateRequestID()

	var req models.SignupRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.RespondError(w, http.StatusBadRequest, "Invalid JSON payload", requestID)
		return
	}

	if err := req.Validate(); err != nil {
		web.RespondError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	resp, err := h.service.Signup(r.Context(), &req, requestID)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			web.RespondError(w, http.StatusConflict, err.Error(), requestID)
			return
		}
		h.logger.Error("signup_failed", "Failed to create account", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.RespondJSON(w, http.StatusCreated, resp)
}

// Login handles POST /auth/login requests
func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := logger.GenerateRequestID()

	var req models.LoginRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.RespondError(w, http.StatusBadRequest, "Invalid JSON payload", requestID)
		return
	}

	if err := req.Validate(); err != nil {
		web.RespondError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	resp, err := h.service.Login(r.Context(), &req, requestID)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			web.RespondError(w, http.StatusUnauthorized, err.Error(), requestID)
			return
		}
		h.logger.Error("login_failed", "Failed to log in", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, resp)
}

// Me handles GET /auth/me requests
func (h *Handler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := logger.GenerateRequestID()

	userID := UserIDFromContext(r.Context())
	if userID == 0 {
		web.RespondError(w, http.StatusUnauthorized, "Authentication required", requestID)
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("get_user_failed", "Failed to load account", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, user)
}
