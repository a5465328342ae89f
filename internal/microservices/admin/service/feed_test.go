package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chickkart-system/internal/domain"
)

// newTestFeed returns a feed whose expiry timers are collected instead of
// scheduled, so tests fire them deterministically.
func newTestFeed() (*Feed, *[]func()) {
	f := NewFeed(DefaultNotificationTTL)
	timers := &[]func(){}
	f.after = func(_ time.Duration, fn func()) {
		*timers = append(*timers, fn)
	}
	return f, timers
}

func feedOrder(i int) domain.Order {
	return domain.Order{
		ID:       fmt.Sprintf("CK-%d", i),
		Customer: domain.CustomerInfo{Name: fmt.Sprintf("Customer %d", i)},
		Total:    float64(100 * i),
	}
}

func TestFeedNewestFirst(t *testing.T) {
	f, _ := newTestFeed()
	f.Push(feedOrder(1))
	f.Push(feedOrder(2))

	got := f.List()
	require.Len(t, got, 2)
	assert.Equal(t, "CK-2", got[0].OrderID)
	assert.Equal(t, "CK-1", got[1].OrderID)
}

func TestFeedCapsVisibleEvictingOldest(t *testing.T) {
	f, _ := newTestFeed()
	for i := 1; i <= 6; i++ {
		f.Push(feedOrder(i))
	}

	got := f.List()
	require.Len(t, got, MaxVisible)
	assert.Equal(t, "CK-6", got[0].OrderID)
	assert.Equal(t, "CK-2", got[len(got)-1].OrderID)
}

func TestFeedDismissIsIdempotent(t *testing.T) {
	f, _ := newTestFeed()
	n := f.Push(feedOrder(1))
	f.Push(feedOrder(2))

	f.Dismiss(n.ID)
	assert.Len(t, f.List(), 1)
	f.Dismiss(n.ID)
	assert.Len(t, f.List(), 1)
	f.Dismiss("notification-unknown")
	assert.Len(t, f.List(), 1)
}

func TestFeedExpiryRemoves(t *testing.T) {
	f, timers := newTestFeed()
	f.Push(feedOrder(1))
	require.Len(t, *timers, 1)

	(*timers)[0]()
	assert.Empty(t, f.List())

	// A timer firing after manual dismissal is a no-op.
	(*timers)[0]()
	assert.Empty(t, f.List())
}

func TestFeedExpiryAfterDismissIsNoop(t *testing.T) {
	f, timers := newTestFeed()
	n := f.Push(feedOrder(1))
	f.Dismiss(n.ID)
	keep := f.Push(feedOrder(2))

	// The first notification's timer fires; the survivor stays.
	(*timers)[0]()
	got := f.List()
	require.Len(t, got, 1)
	assert.Equal(t, keep.ID, got[0].ID)
}

func TestFeedViewDismisses(t *testing.T) {
	f, _ := newTestFeed()
	n := f.Push(feedOrder(7))

	orderID, found := f.View(n.ID)
	require.True(t, found)
	assert.Equal(t, "CK-7", orderID)
	assert.Empty(t, f.List())

	_, found = f.View(n.ID)
	assert.False(t, found)
}

func TestFeedListReturnsCopy(t *testing.T) {
	f, _ := newTestFeed()
	f.Push(feedOrder(1))

	got := f.List()
	got[0].OrderID = "mutated"

	again := f.List()
	assert.Equal(t, "CK-1", again[0].OrderID)
}
