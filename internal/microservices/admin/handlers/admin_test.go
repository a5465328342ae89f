package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chickkart-system/internal/common/logger"
	"chickkart-system/internal/domain"
	"chickkart-system/internal/microservices/admin/service"
)

type memTokenStore struct {
	data map[string]string
}

func (m *memTokenStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memTokenStore) Get(_ context.Context, key string) (string, error) {
	return m.data[key], nil
}

func (m *memTokenStore) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func newTestAdmin(t *testing.T) (*chi.Mux, *service.OrderService, *service.Feed, *service.AuthService) {
	t.Helper()
	lg := logger.New("test")
	feed := service.NewFeed(service.DefaultNotificationTTL)
	orders := service.NewOrderService(nil, feed, nil, lg)
	auth := service.NewAuthService(&memTokenStore{data: make(map[string]string)}, "admin", "secret", time.Hour, lg)
	h := NewAdminHandler(orders, feed, auth)

	r := chi.NewRouter()
	r.Post("/api/v1/admin/login", h.Login)
	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(auth))
		r.Post("/api/v1/admin/logout", h.Logout)
		r.Get("/api/v1/admin/orders", h.ListOrders)
		r.Get("/api/v1/admin/metrics", h.GetMetrics)
		r.Patch("/api/v1/admin/orders/{order_id}/status", h.UpdateStatus)
		r.Post("/api/v1/admin/orders/bulk-status", h.BulkUpdateStatus)
		r.Get("/api/v1/admin/notifications", h.ListNotifications)
		r.Delete("/api/v1/admin/notifications/{notification_id}", h.DismissNotification)
		r.Post("/api/v1/admin/notifications/{notification_id}/view", h.ViewNotification)
	})
	return r, orders, feed, auth
}

func login(t *testing.T, r http.Handler) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login",
		strings.NewReader(`{"username":"admin","password":"secret"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func authed(method, path, token, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestAdminLoginRejected(t *testing.T) {
	r, _, _, _ := newTestAdmin(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login",
		strings.NewReader(`{"username":"admin","password":"wrong"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminLogoutInvalidatesToken(t *testing.T) {
	r, _, _, _ := newTestAdmin(t)
	token := login(t, r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authed(http.MethodPost, "/api/v1/admin/logout", token, ""))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, authed(http.MethodGet, "/api/v1/admin/orders", token, ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r, _, _, _ := newTestAdmin(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, authed(http.MethodGet, "/api/v1/admin/orders", "bogus-token", ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminListOrders(t *testing.T) {
	r, orders, _, _ := newTestAdmin(t)
	token := login(t, r)
	require.NoError(t, orders.Ingest(context.Background(), domain.Order{
		ID:        "CK-1",
		Customer:  domain.CustomerInfo{Name: "Asha", Phone: "9876543210"},
		Status:    domain.StatusNew,
		Total:     480,
		Timestamp: time.Now(),
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authed(http.MethodGet, "/api/v1/admin/orders?status=new", token, ""))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Orders []domain.Order `json:"orders"`
		Count  int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, "CK-1", resp.Orders[0].ID)
}

func TestAdminUpdateStatus(t *testing.T) {
	r, orders, _, _ := newTestAdmin(t)
	token := login(t, r)
	require.NoError(t, orders.Ingest(context.Background(), domain.Order{
		ID: "CK-1", Status: domain.StatusNew, Timestamp: time.Now(),
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authed(http.MethodPatch, "/api/v1/admin/orders/CK-1/status", token, `{"status":"preparing"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	o, ok := orders.Get("CK-1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusPreparing, o.Status)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, authed(http.MethodPatch, "/api/v1/admin/orders/CK-1/status", token, `{"status":"shipped"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminBulkUpdateStatus(t *testing.T) {
	r, orders, _, _ := newTestAdmin(t)
	token := login(t, r)
	for _, id := range []string{"CK-1", "CK-2"} {
		require.NoError(t, orders.Ingest(context.Background(), domain.Order{
			ID: id, Status: domain.StatusNew, Timestamp: time.Now(),
		}))
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authed(http.MethodPost, "/api/v1/admin/orders/bulk-status", token,
		`{"order_ids":["CK-1","CK-2","missing"],"status":"out-for-delivery"}`))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Updated int `json:"updated"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Updated)
}

func TestAdminNotificationView(t *testing.T) {
	r, orders, feed, _ := newTestAdmin(t)
	token := login(t, r)
	require.NoError(t, orders.Ingest(context.Background(), domain.Order{
		ID:        "CK-1",
		Customer:  domain.CustomerInfo{Name: "Asha"},
		Status:    domain.StatusNew,
		Total:     480,
		Timestamp: time.Now(),
	}))
	notifications := feed.List()
	require.Len(t, notifications, 1)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authed(http.MethodPost, "/api/v1/admin/notifications/"+notifications[0].ID+"/view", token, ""))
	require.Equal(t, http.StatusOK, rec.Code)

	var order domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, "CK-1", order.ID)
	assert.Empty(t, feed.List())

	// Viewing again is a miss; the alert is gone.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, authed(http.MethodPost, "/api/v1/admin/notifications/"+notifications[0].ID+"/view", token, ""))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
