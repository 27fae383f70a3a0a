package cart

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"fooddash/internal/auth"
	"fooddash/internal/logger"
	"fooddash/internal/services/catalog"
	"fooddash/internal/web"
)

// Handler handles HTTP requests for the shopping cart
type Handler struct {
	store   *Store
	catalog *catalog.Service
	logger  *logger.Logger
}

// NewHandler creates a new cart handler
func NewHandler(store *Store, catalogService *catalog.Service, log *logger.Logger) *Handler {
	return &Handler{
		store:   store,
		catalog: catalogService,
		logger:  log,
	}
}

// SessionID resolves the cart owner: the authenticated user when present,
// otherwise the anonymous session header.
func SessionID(r *http.Request) string {
	if userID := auth.UserIDFromContext(r.Context()); userID != 0 {
		return fmt.Sprintf("user:%d", userID)
	}
	return r.Header.Get("X-Session-ID")
}

// Get handles GET /cart requests
func (h *Handler) Get(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := logger.GenerateRequestID()

	sessionID := SessionID(r)
	if sessionID == "" {
		web.RespondError(w, http.StatusBadRequest, "X-Session-ID header or authentication required", requestID)
		return
	}

	state := h.store.Load(r.Context(), sessionID)
	web.RespondJSON(w, http.StatusOK, state)
}

// AddItem handles POST /cart/items requests
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := logger.GenerateRequestID()

	sessionID := SessionID(r)
	if sessionID == "" {
		web.RespondError(w, http.StatusBadRequest, "X-Session-ID header or authentication required", requestID)
		return
	}

	var req struct {
		MenuItemID          int    `json:"menu_item_id"`
		Quantity            int    `json:"quantity"`
		SpecialInstructions string `json:"special_instructions"`
	}
	if err := web.DecodeJSON(r, &req); err != nil {
		web.RespondError(w, http.StatusBadRequest, "Invalid JSON payload", requestID)
		return
	}
	if req.MenuItemID < 1 {
		web.RespondError(w, http.StatusBadRequest, "menu_item_id is required", requestID)
		return
	}

	item, err := h.catalog.Get(r.Context(), req.MenuItemID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			web.RespondError(w, http.StatusNotFound, "Menu item not found", requestID)
			return
		}
		h.logger.Error("db_query_failed", "Failed to look up menu item", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}
	if !item.Available {
		web.RespondError(w, http.StatusConflict, "Menu item is currently unavailable", requestID)
		return
	}

	h.mutate(w, r.Context(), sessionID, requestID, AddItem{
		Item:                *item,
		Quantity:            req.Quantity,
		SpecialInstructions: req.SpecialInstructions,
	})
}

// UpdateItem handles PATCH /cart/items/:lineID requests.
// The payload may carry a new quantity, new special instructions, or both.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := logger.GenerateRequestID()

	sessionID := SessionID(r)
	if sessionID == "" {
		web.RespondError(w, http.StatusBadRequest, "X-Session-ID header or authentication required", requestID)
		return
	}

	lineID := ps.ByName("lineID")

	var req struct {
		Quantity            *int    `json:"quantity"`
		SpecialInstructions *string `json:"special_instructions"`
	}
	if err := web.DecodeJSON(r, &req); err != nil {
		web.RespondError(w, http.StatusBadRequest, "Invalid JSON payload", requestID)
		return
	}
	if req.Quantity == nil && req.SpecialInstructions == nil {
		web.RespondError(w, http.StatusBadRequest, "quantity or special_instructions is required", requestID)
		return
	}

	actions := []Action{}
	if req.SpecialInstructions != nil {
		actions = append(actions, SetInstructions{LineID: lineID, SpecialInstructions: *req.SpecialInstructions})
	}
	if req.Quantity != nil {
		actions = append(actions, SetQuantity{LineID: lineID, Quantity: *req.Quantity})
	}

	h.mutate(w, r.Context(), sessionID, requestID, actions...)
}

// RemoveItem handles DELETE /cart/items/:lineID requests
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := logger.GenerateRequestID()

	sessionID := SessionID(r)
	if sessionID == "" {
		web.RespondError(w, http.StatusBadRequest, "X-Session-ID header or authentication required", requestID)
		return
	}

	h.mutate(w, r.Context(), sessionID, requestID, RemoveItem{LineID: ps.ByName("lineID")})
}

// Clear handles DELETE /cart requests
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := logger.GenerateRequestID()

	sessionID := SessionID(r)
	if sessionID == "" {
		web.RespondError(w, http.StatusBadRequest, "X-Session-ID header or authentication required", requestID)
		return
	}

	if err := h.store.Clear(r.Context(), sessionID); err != nil {
		h.logger.Error("cart_clear_failed", "Failed to clear cart", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, Empty())
}

func (h *Handler) mutate(w http.ResponseWriter, ctx context.Context, sessionID, requestID string, actions ...Action) {
	state := h.store.Load(ctx, sessionID)

	var err error
	for _, action := range actions {
		state, err = Apply(state, action)
		if err != nil {
			if errors.Is(err, ErrLineNotFound) {
				web.RespondError(w, http.StatusNotFound, "Cart line not found", requestID)
				return
			}
			web.RespondError(w, http.StatusBadRequest, err.Error(), requestID)
			return
		}
	}

	if err := h.store.Save(ctx, sessionID, state); err != nil {
		h.logger.Error("cart_save_failed", "Failed to persist cart", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, state)
}
