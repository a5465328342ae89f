package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"chickkart-system/internal/common/httpx"
	"chickkart-system/internal/domain"
	"chickkart-system/internal/microservices/admin/service"
)

type AdminHandler struct {
	orders *service.OrderService
	feed   *service.Feed
	auth   *service.AuthService
}

func NewAdminHandler(orders *service.OrderService, feed *service.Feed, auth *service.AuthService) *AdminHandler {
	return &AdminHandler{orders: orders, feed: feed, auth: auth}
}

type tokenValidator interface {
	Validate(ctx context.Context, token string) bool
}

// RequireAuth rejects requests without a live bearer token.
func RequireAuth(auth tokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token == "" || !auth.Validate(r.Context(), token) {
				httpx.WriteProblem(w, http.StatusUnauthorized, "unauthorized", "missing or expired token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	token, expiry, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrBadCredentials) {
		httpx.WriteProblem(w, http.StatusUnauthorized, "bad_credentials", "invalid username or password")
		return
	}
	if err != nil {
		httpx.WriteProblem(w, http.StatusInternalServerError, "auth_error", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, domain.LoginResponse{Token: token, ExpiresAt: expiry.UnixMilli()})
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	h.auth.Logout(r.Context(), token)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	orders := h.orders.Filter(service.FilterQuery{
		Search: q.Get("search"),
		Status: q.Get("status"),
		Period: q.Get("period"),
	})
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"orders": orders, "count": len(orders)})
}

func (h *AdminHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.orders.Metrics())
}

func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	status := domain.OrderStatus(req.Status)
	if !domain.ValidStatus(status) {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_status", "unknown order status")
		return
	}
	orderID := chi.URLParam(r, "order_id")
	if err := h.orders.UpdateStatus(r.Context(), orderID, status, "admin"); err != nil {
		httpx.WriteProblem(w, http.StatusInternalServerError, "update_error", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"order_id": orderID, "status": req.Status})
}

func (h *AdminHandler) BulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.BulkStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	status := domain.OrderStatus(req.Status)
	if !domain.ValidStatus(status) {
		httpx.WriteProblem(w, http.StatusBadRequest, "bad_status", "unknown order status")
		return
	}
	updated, err := h.orders.BulkUpdateStatus(r.Context(), req.OrderIDs, status, "admin")
	if err != nil {
		httpx.WriteProblem(w, http.StatusInternalServerError, "update_error", err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"updated": updated, "status": req.Status})
}

func (h *AdminHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"notifications": h.feed.List()})
}

func (h *AdminHandler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	h.feed.Dismiss(chi.URLParam(r, "notification_id"))
	w.WriteHeader(http.StatusNoContent)
}

// ViewNotification dismisses the alert and hands back the order it pointed
// at, so the dashboard can jump to it.
func (h *AdminHandler) ViewNotification(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.feed.View(chi.URLParam(r, "notification_id"))
	if !ok {
		httpx.WriteProblem(w, http.StatusNotFound, "not_found", "notification not found")
		return
	}
	order, ok := h.orders.Get(orderID)
	if !ok {
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"order_id": orderID})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, order)
}
