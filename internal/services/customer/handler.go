package customer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"fooddash/internal/logger"
	"fooddash/internal/web"
)

// Handler handles admin HTTP requests for customers
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new customer handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// List handles GET /admin/customers requests.
// An optional ?q= switches to search by name, email, or phone.
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := logger.GenerateRequestID()

	query := r.URL.Query().Get("q")

	var err error
	var customers interface{}
	if query != "" {
		customers, err = h.service.Search(r.Context(), query)
	} else {
		customers, err = h.service.List(r.Context())
	}
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to list customers", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, customers)
}

// Get handles GET /admin/customers/:id requests
func (h *Handler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := logger.GenerateRequestID()

	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil || id < 1 {
		web.RespondError(w, http.StatusBadRequest, "Invalid customer id", requestID)
		return
	}

	cust, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondError(w, http.StatusNotFound, "Customer not found", requestID)
			return
		}
		h.logger.Error("db_query_failed", "Failed to get customer", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, cust)
}

// Stats handles GET /admin/customers/stats requests
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := logger.GenerateRequestID()

	stats, err := h.service.AggregateStats(r.Context())
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to compute customer stats", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, stats)
}
