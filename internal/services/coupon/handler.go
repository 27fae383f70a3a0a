package coupon

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"fooddash/internal/logger"
	"fooddash/internal/services/cart"
	"fooddash/internal/web"
)

// Handler handles HTTP requests for coupons
type Handler struct {
	store  *Store
	logger *logger.Logger
}

// NewHandler creates a new coupon handler
func NewHandler(store *Store, log *logger.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: log,
	}
}

// ListPromotions handles GET /promotions requests
func (h *Handler) ListPromotions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	web.RespondJSON(w, http.StatusOK, Catalog())
}

// GetApplied handles GET /cart/coupon requests
func (h *Handler) GetApplied(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := logger.GenerateRequestID()

	sessionID := cart.SessionID(r)
	if sessionID == "" {
		web.RespondError(w, http.StatusBadRequest, "X-Session-ID header or authentication required", requestID)
		return
	}

	applied := h.store.Applied(r.Context(), sessionID)
	web.RespondJSON(w, http.StatusOK, map[string]interface{}{"coupon": applied})
}

// Apply handles POST /cart/coupon requests
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := logger.GenerateRequestID()

	sessionID := cart.SessionID(r)
	if sessionID == "" {
		web.RespondError(w, http.StatusBadRequest, "X-Session-ID header or authentication required", requestID)
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := web.DecodeJSON(r, &req); err != nil {
		web.RespondError(w, http.StatusBadRequest, "Invalid JSON payload", requestID)
		return
	}
	if req.Code == "" {
		web.RespondError(w, http.StatusBadRequest, "code is required", requestID)
		return
	}

	coupon, err := h.store.Apply(r.Context(), sessionID, req.Code)
	if err != nil {
		if errors.Is(err, ErrUnknownCode) {
			web.RespondError(w, http.StatusUnprocessableEntity, err.Error(), requestID)
			return
		}
		h.logger.Error("coupon_apply_failed", "Failed to apply coupon", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.logger.Info("coupon_applied", "Applied coupon "+coupon.Code, requestID,
		map[string]interface{}{"code": coupon.Code})

	web.RespondJSON(w, http.StatusOK, map[string]interface{}{"coupon": coupon})
}

// Remove handles DELETE /cart/coupon requests
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := logger.GenerateRequestID()

	sessionID := cart.SessionID(r)
	if sessionID == "" {
		web.RespondError(w, http.StatusBadRequest, "X-Session-ID header or authentication required", requestID)
		return
	}

	if err := h.store.Remove(r.Context(), sessionID); err != nil {
		h.logger.Error("coupon_remove_failed", "Failed to remove coupon", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, map[string]interface{}{"coupon": nil})
}
