package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"chickkart-system/internal/common/httpx"
	"chickkart-system/internal/domain"
	"chickkart-system/internal/microservices/menu/service"
)

type MenuHandler struct {
	service service.MenuServiceInterface
}

func NewMenuHandler(s service.MenuServiceInterface) *MenuHandler {
	return &MenuHandler{service: s}
}

// Catalog failures surface as a retryable error state; no partial menu is
// ever returned.
func (h *MenuHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.service.Categories(r.Context())
	if err != nil {
		httpx.WriteProblem(w, http.StatusBadGateway, "catalog_unavailable", "menu catalog is unavailable, please retry")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"categories": cats})
}

func (h *MenuHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Items(r.Context(), r.URL.Query().Get("category"), r.URL.Query().Get("search"))
	if err != nil {
		httpx.WriteProblem(w, http.StatusBadGateway, "catalog_unavailable", "menu catalog is unavailable, please retry")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *MenuHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Item(r.Context(), chi.URLParam(r, "item_id"))
	if errors.Is(err, domain.ErrNotFound) {
		httpx.WriteProblem(w, http.StatusNotFound, "not_found", "menu item not found")
		return
	}
	if err != nil {
		httpx.WriteProblem(w, http.StatusBadGateway, "catalog_unavailable", "menu catalog is unavailable, please retry")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, item)
}
