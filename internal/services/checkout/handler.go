package checkout

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"fooddash/internal/auth"
	"fooddash/internal/logger"
	"fooddash/internal/services/cart"
	"fooddash/internal/services/customer"
	"fooddash/internal/web"
)

// Handler handles HTTP requests for checkout
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new checkout handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// GetSummary handles GET /checkout/summary requests
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := logger.GenerateRequestID()

	sessionID := cart.SessionID(r)
	if sessionID == "" {
		web.RespondError(w, http.StatusBadRequest, "X-Session-ID header or authentication required", requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, h.service.Summary(r.Context(), sessionID))
}

// PlaceOrder handles POST /checkout/orders requests.
// Requires an authenticated customer; anonymous sessions get a 401 prompting
// sign-in.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := logger.GenerateRequestID()

	userID := auth.UserIDFromContext(r.Context())
	if userID == 0 {
		web.RespondError(w, http.StatusUnauthorized, "Sign in to place an order", requestID)
		return
	}

	var req PlaceOrderRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.RespondError(w, http.StatusBadRequest, "Invalid JSON payload", requestID)
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), userID, cart.SessionID(r), &req, requestID)
	if err != nil {
		var validationErr *ValidationError
		switch {
		case errors.As(err, &validationErr):
			web.RespondError(w, http.StatusBadRequest, validationErr.Message, requestID)
		case errors.Is(err, ErrEmptyCart):
			web.RespondError(w, http.StatusBadRequest, "Cart is empty", requestID)
		case errors.Is(err, customer.ErrNotFound):
			web.RespondError(w, http.StatusNotFound, "Customer profile not found", requestID)
		default:
			h.logger.Error("order_placement_failed", "Failed to place order", requestID, err, nil)
			web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		}
		return
	}

	web.RespondJSON(w, http.StatusCreated, order)
}
