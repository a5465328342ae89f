package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"chickkart-system/internal/domain"
)

// DefaultNotificationTTL is how long an alert stays up before removing
// itself; MaxVisible caps the feed, oldest evicted first.
const (
	DefaultNotificationTTL = 10 * time.Second
	MaxVisible             = 5
)

type Notification struct {
	ID           string    `json:"id"`
	OrderID      string    `json:"order_id"`
	CustomerName string    `json:"customer_name"`
	Total        float64   `json:"total"`
	CreatedAt    time.Time `json:"created_at"`
}

// Feed is the transient "new order arrived" alert queue. Expiry timers are
// never cancelled on dismissal: dismissing is idempotent, so a timer firing
// for an already-dismissed notification is a no-op.
type Feed struct {
	mu    sync.Mutex
	items []Notification

	ttl   time.Duration
	now   func() time.Time
	after func(d time.Duration, f func())
}

func NewFeed(ttl time.Duration) *Feed {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &Feed{
		ttl: ttl,
		now: time.Now,
		after: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// Push surfaces a new order at the head of the feed and schedules its
// auto-removal.
func (f *Feed) Push(order domain.Order) Notification {
	n := Notification{
		ID:           "notification-" + uuid.NewString(),
		OrderID:      order.ID,
		CustomerName: order.Customer.Name,
		Total:        order.Total,
		CreatedAt:    f.now(),
	}

	f.mu.Lock()
	f.items = append([]Notification{n}, f.items...)
	if len(f.items) > MaxVisible {
		f.items = f.items[:MaxVisible]
	}
	f.mu.Unlock()

	f.after(f.ttl, func() { f.Dismiss(n.ID) })
	return n
}

// List returns the visible notifications, newest first.
func (f *Feed) List() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Notification, len(f.items))
	copy(out, f.items)
	return out
}

// Dismiss removes the notification immediately. Unknown ids are a no-op.
func (f *Feed) Dismiss(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, n := range f.items {
		if n.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return
		}
	}
}

// View resolves the notification's order and dismisses it; viewing an alert
// implies it has been handled.
func (f *Feed) View(id string) (string, bool) {
	f.mu.Lock()
	var orderID string
	found := false
	for i, n := range f.items {
		if n.ID == id {
			orderID = n.OrderID
			found = true
			f.items = append(f.items[:i], f.items[i+1:]...)
			break
		}
	}
	f.mu.Unlock()
	return orderID, found
}
