package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"chickkart-system/internal/common/httpx"
	"chickkart-system/internal/domain"
	"chickkart-system/internal/microservices/cart/service"
)

type CartHandler struct {
	service service.CartServiceInterface
}

func NewCartHandler(s service.CartServiceInterface) *CartHandler {
	return &CartHandler{service: s}
}

// Session extracts the session id every cart route requires.
func Session(r *http.Request) string { return r.Header.Get("X-Session-ID") }

func (h *CartHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	session := Session(r)
	if session == "" {
		httpx.WriteProblem(w, http.StatusBadRequest, "missing_session", "X-Session-ID header is required")
		return
	}
	summary, err := h.service.Summary(r.Context(), session)
	if err != nil {
		httpx.WriteProblem(w, http.StatusInternalServerError, "cart_error", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, summary)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	session := Session(r)
	if session == "" {
		httpx.WriteProblem(w, http.StatusBadRequest, "missing_session", "X-Session-ID header is required")
		return
	}
	var req domain.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	if req.ID == "" || req.Name == "" || req.Price < 0 {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_item", "item id, name and a non-negative price are required")
		return
	}
	state, err := h.service.AddItem(r.Context(), session, domain.LineItem{
		ID:             req.ID,
		Name:           req.Name,
		Price:          req.Price,
		Quantity:       req.Quantity,
		Customizations: req.Customizations,
		Image:          req.Image,
	})
	if err != nil {
		httpx.WriteProblem(w, http.StatusInternalServerError, "cart_error", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, state)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	session := Session(r)
	if session == "" {
		httpx.WriteProblem(w, http.StatusBadRequest, "missing_session", "X-Session-ID header is required")
		return
	}
	var req domain.UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	state, err := h.service.UpdateQuantity(r.Context(), session, chi.URLParam(r, "item_id"), req.Quantity)
	if err != nil {
		httpx.WriteProblem(w, http.StatusInternalServerError, "cart_error", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, state)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	session := Session(r)
	if session == "" {
		httpx.WriteProblem(w, http.StatusBadRequest, "missing_session", "X-Session-ID header is required")
		return
	}
	state, err := h.service.RemoveItem(r.Context(), session, chi.URLParam(r, "item_id"))
	if err != nil {
		httpx.WriteProblem(w, http.StatusInternalServerError, "cart_error", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, state)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	session := Session(r)
	if session == "" {
		httpx.WriteProblem(w, http.StatusBadRequest, "missing_session", "X-Session-ID header is required")
		return
	}
	state, err := h.service.Clear(r.Context(), session)
	if err != nil {
		httpx.WriteProblem(w, http.StatusInternalServerError, "cart_error", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, state)
}

func (h *CartHandler) SetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	session := Session(r)
	if session == "" {
		httpx.WriteProblem(w, http.StatusBadRequest, "missing_session", "X-Session-ID header is required")
		return
	}
	var req domain.SetPaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	state, err := h.service.SetPaymentStatus(r.Context(), session, req.Status, req.OrderID, req.Method)
	if err != nil {
		httpx.WriteProblem(w, http.StatusInternalServerError, "cart_error", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, state)
}
