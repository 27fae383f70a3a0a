package order

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	qrcode "github.com/skip2/go-qrcode"

	"fooddash/internal/auth"
	"fooddash/internal/logger"
	"fooddash/internal/models"
	"fooddash/internal/services/customer"
	"fooddash/internal/web"
)

// Handler handles HTTP requests for orders
type Handler struct {
	service   *Service
	customers *customer.Service
	baseURL   string
	logger    *logger.Logger
}

// NewHandler creates a new order handler. baseURL is the public storefront
// address embedded in tracking QR codes.
func NewHandler(service *Service, customers *customer.Service, baseURL string, log *logger.Logger) *Handler {
	return &Handler{
		service:   service,
		customers: customers,
		baseURL:   baseURL,
		logger:    log,
	}
}

// List handles GET /admin/orders requests.
// Supports ?status= and ?today=true filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := logger.GenerateRequestID()

	filter := ListFilter{
		Status: r.URL.Query().Get("status"),
		Today:  r.URL.Query().Get("today") == "true",
	}
	if filter.Status != "" {
		if _, err := models.ValidateOrderStatus(filter.Status); err != nil {
			web.RespondError(w, http.StatusBadRequest, err.Error(), requestID)
			return
		}
	}

	orders, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to list orders", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, orders)
}

// Get handles GET /admin/orders/:number requests
func (h *Handler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := logger.GenerateRequestID()

	order, err := h.service.Get(r.Context(), ps.ByName("number"))
	if err != nil {
		h.respondOrderError(w, err, requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, order)
}

// UpdateStatus handles PATCH /admin/orders/:number/status requests
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := logger.GenerateRequestID()

	var req struct {
		Status string `json:"status"`
		Notes  string `json:"notes,omitempty"`
	}
	if err := web.DecodeJSON(r, &req); err != nil {
		web.RespondError(w, http.StatusBadRequest, "Invalid JSON payload", requestID)
		return
	}

	status, err := models.ValidateOrderStatus(req.Status)
	if err != nil {
		web.RespondError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	changedBy := fmt.Sprintf("admin:%d", auth.UserIDFromContext(r.Context()))
	order, err := h.service.UpdateStatus(r.Context(), ps.ByName("number"), status, changedBy, req.Notes, requestID)
	if err != nil {
		var transitionErr *InvalidTransitionError
		if errors.As(err, &transitionErr) {
			web.RespondError(w, http.StatusUnprocessableEntity, transitionErr.Error(), requestID)
			return
		}
		h.respondOrderError(w, err, requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, order)
}

// UpdatePaymentStatus handles PATCH /admin/orders/:number/payment requests
func (h *Handler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := logger.GenerateRequestID()

	var req struct {
		PaymentStatus string `json:"payment_status"`
	}
	if err := web.DecodeJSON(r, &req); err != nil {
		web.RespondError(w, http.StatusBadRequest, "Invalid JSON payload", requestID)
		return
	}

	status, err := models.ValidatePaymentStatus(req.PaymentStatus)
	if err != nil {
		web.RespondError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	order, err := h.service.UpdatePaymentStatus(r.Context(), ps.ByName("number"), status, requestID)
	if err != nil {
		h.respondOrderError(w, err, requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, order)
}

// Cancel handles POST /admin/orders/:number/cancel requests
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := logger.GenerateRequestID()

	var req struct {
		Reason string `json:"reason,omitempty"`
	}
	// An empty body is fine for cancellation
	_ = web.DecodeJSON(r, &req)

	changedBy := fmt.Sprintf("admin:%d", auth.UserIDFromContext(r.Context()))
	order, err := h.service.Cancel(r.Context(), ps.ByName("number"), changedBy, req.Reason, requestID)
	if err != nil {
		var transitionErr *InvalidTransitionError
		if errors.As(err, &transitionErr) {
			web.RespondError(w, http.StatusUnprocessableEntity, transitionErr.Error(), requestID)
			return
		}
		h.respondOrderError(w, err, requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, order)
}

// Track handles GET /orders/:number/track requests
func (h *Handler) Track(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := logger.GenerateRequestID()

	tracking, err := h.service.Track(r.Context(), ps.ByName("number"))
	if err != nil {
		h.respondOrderError(w, err, requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, tracking)
}

// History handles GET /orders/:number/history requests
func (h *Handler) History(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := logger.GenerateRequestID()

	history, err := h.service.History(r.Context(), ps.ByName("number"))
	if err != nil {
		h.respondOrderError(w, err, requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, history)
}

// TrackingQR handles GET /orders/:number/qr requests, returning a PNG QR
// code of the public tracking URL
func (h *Handler) TrackingQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := logger.GenerateRequestID()

	orderNumber := ps.ByName("number")
	if _, err := h.service.Track(r.Context(), orderNumber); err != nil {
		h.respondOrderError(w, err, requestID)
		return
	}

	trackingURL := fmt.Sprintf("%s/orders/%s/track", h.baseURL, orderNumber)
	png, err := qrcode.Encode(trackingURL, qrcode.Medium, 256)
	if err != nil {
		h.logger.Error("qr_generation_failed", "Failed to generate tracking QR code", requestID, err,
			map[string]interface{}{"order_number": orderNumber})
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// MyOrders handles GET /profile/orders requests for the signed-in customer
func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := logger.GenerateRequestID()

	userID := auth.UserIDFromContext(r.Context())
	if userID == 0 {
		web.RespondError(w, http.StatusUnauthorized, "Authentication required", requestID)
		return
	}

	cust, err := h.customers.GetByUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			web.RespondError(w, http.StatusNotFound, "Customer profile not found", requestID)
			return
		}
		h.logger.Error("db_query_failed", "Failed to load customer profile", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	orders, err := h.service.ListByCustomer(r.Context(), cust.ID)
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to list customer orders", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, orders)
}

func (h *Handler) respondOrderError(w http.ResponseWriter, err error, requestID string) {
	if errors.Is(err, ErrNotFound) {
		web.RespondError(w, http.StatusNotFound, "Order not found", requestID)
		return
	}
	h.logger.Error("db_query_failed", "Order operation failed", requestID, err, nil)
	web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
}
