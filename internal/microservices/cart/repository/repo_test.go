package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chickkart-system/internal/domain"
)

func TestSessionRepositoryCartRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(NewMemoryKV())

	state := domain.CartState{
		Items: []domain.LineItem{
			{ID: "wings-6", Name: "6pc Wings", Price: 150, Quantity: 2, Customizations: []string{"extra spicy"}},
		},
		Total:       300,
		ItemCount:   2,
		LastUpdated: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.SaveCart(ctx, "sess-1", state))

	got, found, err := repo.LoadCart(ctx, "sess-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, state, got)
}

func TestSessionRepositoryMissingCart(t *testing.T) {
	repo := NewSessionRepository(NewMemoryKV())
	_, found, err := repo.LoadCart(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSessionRepositoryCorruptCart(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, "cart:sess-1", `{"items": [`))

	_, _, err := NewSessionRepository(kv).LoadCart(ctx, "sess-1")
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestSessionRepositoryCustomerInfoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(NewMemoryKV())

	info := domain.CustomerInfo{Name: "Asha", Phone: "9876543210", SpiceLevel: "medium"}
	require.NoError(t, repo.SaveCustomerInfo(ctx, "sess-1", info))

	got, found, err := repo.LoadCustomerInfo(ctx, "sess-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, info, got)

	_, found, err = repo.LoadCustomerInfo(ctx, "sess-2")
	require.NoError(t, err)
	assert.False(t, found)
}
