package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"fooddash/internal/logger"
	"fooddash/internal/models"
	"fooddash/internal/web"
)

// Handler handles HTTP requests for the menu catalog
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new catalog handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// ListMenu handles GET /menu requests for the storefront.
// Accepts an optional ?category= filter.
func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := logger.GenerateRequestID()

	category := r.URL.Query().Get("category")
	items, err := h.service.ListAvailable(r.Context(), category)
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to list menu", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, items)
}

// ListCategories handles GET /menu/categories requests
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := logger.GenerateRequestID()

	categories, err := h.service.Categories(r.Context())
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to list categories", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, categories)
}

// GetMenuItem handles GET /menu/:id requests
func (h *Handler) GetMenuItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := logger.GenerateRequestID()

	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil || id < 1 {
		web.RespondError(w, http.StatusBadRequest, "Invalid menu item id", requestID)
		return
	}

	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondError(w, http.StatusNotFound, "Menu item not found", requestID)
			return
		}
		h.logger.Error("db_query_failed", "Failed to get menu item", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, item)
}

// ListAll handles GET /admin/menu requests, including unavailable dishes
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := logger.GenerateRequestID()

	items, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to list menu items", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, items)
}

// Create handles POST /admin/menu requests
func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := logger.GenerateRequestID()

	var req models.MenuItemRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.RespondError(w, http.StatusBadRequest, "Invalid JSON payload", requestID)
		return
	}
	if err := req.Validate(); err != nil {
		web.RespondError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	item, err := h.service.Create(r.Context(), &req, requestID)
	if err != nil {
		h.logger.Error("menu_item_create_failed", "Failed to create menu item", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.RespondJSON(w, http.StatusCreated, item)
}

// Update handles PUT /admin/menu/:id requests
func (h *Handler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := logger.GenerateRequestID()

	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil || id < 1 {
		web.RespondError(w, http.StatusBadRequest, "Invalid menu item id", requestID)
		return
	}

	var req models.MenuItemRequest
	if err := web.DecodeJSON(r, &req); err != nil {
		web.RespondError(w, http.StatusBadRequest, "Invalid JSON payload", requestID)
		return
	}
	if err := req.Validate(); err != nil {
		web.RespondError(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	item, err := h.service.Update(r.Context(), id, &req, requestID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondError(w, http.StatusNotFound, "Menu item not found", requestID)
			return
		}
		h.logger.Error("menu_item_update_failed", "Failed to update menu item", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, item)
}

// ToggleAvailability handles PATCH /admin/menu/:id/availability requests
func (h *Handler) ToggleAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := logger.GenerateRequestID()

	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil || id < 1 {
		web.RespondError(w, http.StatusBadRequest, "Invalid menu item id", requestID)
		return
	}

	var req struct {
		Available bool `json:"available"`
	}
	if err := web.DecodeJSON(r, &req); err != nil {
		web.RespondError(w, http.StatusBadRequest, "Invalid JSON payload", requestID)
		return
	}

	if err := h.service.ToggleAvailability(r.Context(), id, req.Available, requestID); err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondError(w, http.StatusNotFound, "Menu item not found", requestID)
			return
		}
		h.logger.Error("menu_item_toggle_failed", "Failed to toggle availability", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	web.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"menu_item_id": id,
		"available":    req.Available,
	})
}

// Delete handles DELETE /admin/menu/:id requests
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := logger.GenerateRequestID()

	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil || id < 1 {
		web.RespondError(w, http.StatusBadRequest, "Invalid menu item id", requestID)
		return
	}

	if err := h.service.Delete(r.Context(), id, requestID); err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondError(w, http.StatusNotFound, "Menu item not found", requestID)
			return
		}
		h.logger.Error("menu_item_delete_failed", "Failed to delete menu item", requestID, err, nil)
		web.RespondError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
