package dashboard

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"fooddash/internal/logger"
	"fooddash/internal/web"
)

// Handler handles admin dashboard HTTP requests
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new dashboard handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// GetOverview handles GET /admin/dashboard requests
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := logger.GenerateRequestID()

	overview, err := h.service.GetOverview(r.Context())
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to build dashboard", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, overview)
}

// GetRevenueReport handles GET /admin/reports/revenue requests.
// Accepts ?from=YYYY-MM-DD&to=YYYY-MM-DD; defaults to the last 7 days.
func (h *Handler) GetRevenueReport(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := logger.GenerateRequestID()

	to := time.Now().Truncate(24 * time.Hour).Add(24 * time.Hour)
	from := to.AddDate(0, 0, -7)

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			web.RespondError(w, http.StatusBadRequest, "from must be YYYY-MM-DD", requestID)
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			web.RespondError(w, http.StatusBadRequest, "to must be YYYY-MM-DD", requestID)
			return
		}
		to = parsed.AddDate(0, 0, 1)
	}
	if !from.Before(to) {
		web.RespondError(w, http.StatusBadRequest, "from must be before to", requestID)
		return
	}

	report, err := h.service.RevenueReport(r.Context(), from, to)
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to run revenue report", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, report)
}
