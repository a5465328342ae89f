package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chickkart-system/internal/common/logger"
	"chickkart-system/internal/domain"
	"chickkart-system/internal/microservices/cart/repository"
	"chickkart-system/internal/microservices/cart/service"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	svc := service.NewCartService(repository.NewSessionRepository(repository.NewMemoryKV()), logger.New("test"))
	h := NewCartHandler(svc)

	r := chi.NewRouter()
	r.Get("/api/v1/cart", h.GetSummary)
	r.Post("/api/v1/cart/items", h.AddItem)
	r.Patch("/api/v1/cart/items/{item_id}", h.UpdateQuantity)
	r.Delete("/api/v1/cart/items/{item_id}", h.RemoveItem)
	r.Delete("/api/v1/cart", h.Clear)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, session, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if session != "" {
		req.Header.Set("X-Session-ID", session)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCartRequiresSessionHeader(t *testing.T) {
	r := newTestRouter(t)
	rec := doJSON(t, r, http.MethodGet, "/api/v1/cart", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var problem map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "missing_session", problem["type"])
}

func TestCartAddAndSummary(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/cart/items", "sess-1",
		`{"id":"wings-6","name":"6pc Wings","price":150,"quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var state domain.CartState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, 300.0, state.Total)
	assert.Equal(t, 2, state.ItemCount)

	rec = doJSON(t, r, http.MethodGet, "/api/v1/cart", "sess-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var sum domain.CartSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.False(t, sum.IsEmpty)
	assert.Equal(t, 2, sum.ItemCount)
}

func TestCartAddRejectsBadItem(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/cart/items", "sess-1", `{"name":"no id"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/v1/cart/items", "sess-1", `{broken`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartUpdateAndRemove(t *testing.T) {
	r := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/v1/cart/items", "sess-1",
		`{"id":"wings-6","name":"6pc Wings","price":150,"quantity":1}`)

	rec := doJSON(t, r, http.MethodPatch, "/api/v1/cart/items/wings-6", "sess-1", `{"quantity":4}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var state domain.CartState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, 600.0, state.Total)

	rec = doJSON(t, r, http.MethodDelete, "/api/v1/cart/items/wings-6", "sess-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.True(t, state.IsEmpty())
}

func TestCartClear(t *testing.T) {
	r := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/v1/cart/items", "sess-1",
		`{"id":"wings-6","name":"6pc Wings","price":150,"quantity":3}`)

	rec := doJSON(t, r, http.MethodDelete, "/api/v1/cart", "sess-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var state domain.CartState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.True(t, state.IsEmpty())
	assert.Equal(t, 0, state.ItemCount)
}
