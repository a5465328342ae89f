package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"chickkart-system/internal/common/logger"
	"chickkart-system/internal/connections/rabbitmq"
	"chickkart-system/internal/domain"
	"chickkart-system/internal/microservices/admin/repository"
)

// Date-period filter vocabulary. "all" disables the predicate, as does an
// empty value.
const (
	PeriodAll       = "all"
	PeriodToday     = "today"
	PeriodYesterday = "yesterday"
	PeriodThisWeek  = "this-week"
	PeriodThisMonth = "this-month"
)

type FilterQuery struct {
	Search string
	Status string
	Period string
}

// StatusPublisher is the slice of the AMQP client status fanout needs.
type StatusPublisher interface {
	Publish(ctx context.Context, exchange, key string, body []byte, headers amqp.Table, contentType string, persistent bool) error
}

type OrderServiceInterface interface {
	Ingest(ctx context.Context, order domain.Order) error
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, changedBy string) error
	BulkUpdateStatus(ctx context.Context, orderIDs []string, status domain.OrderStatus, changedBy string) (int, error)
	Filter(q FilterQuery) []domain.Order
	Metrics() domain.Metrics
}

// OrderService is the staff-facing order collection, newest first. All
// operations serialize under one lock; queries are total functions and the
// only "failure" on a mutation is an unknown id, which is a silent skip.
//
// Status transitions are deliberately unenforced: staff may move an order
// from any status to any other (bulk updates act on possibly-stale views and
// mis-clicks need reverting). Wrap UpdateStatus with a transition validator
// if stricter workflow guarantees are ever wanted.
type OrderService struct {
	mu     sync.Mutex
	orders []*domain.Order
	index  map[string]*domain.Order

	repo repository.OrderRepositoryInterface // nil disables write-through
	feed *Feed
	pub  StatusPublisher // nil disables status fanout
	lg   *logger.Logger
	now  func() time.Time
}

func NewOrderService(repo repository.OrderRepositoryInterface, feed *Feed, pub StatusPublisher, lg *logger.Logger) *OrderService {
	return &OrderService{
		index: make(map[string]*domain.Order),
		repo:  repo,
		feed:  feed,
		pub:   pub,
		lg:    lg,
		now:   time.Now,
	}
}

// Ingest adds a freshly-checked-out order and surfaces it on the feed.
// Redelivered duplicates (same id) are ignored.
func (s *OrderService) Ingest(ctx context.Context, order domain.Order) error {
	s.mu.Lock()
	if _, exists := s.index[order.ID]; exists {
		s.mu.Unlock()
		s.lg.Debug("order_ingest_duplicate", map[string]any{"order_id": order.ID})
		return nil
	}
	s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.InsertOrder(ctx, order); err != nil {
			return fmt.Errorf("persist order %s: %w", order.ID, err)
		}
	}

	s.mu.Lock()
	o := order
	s.orders = append([]*domain.Order{&o}, s.orders...)
	s.index[o.ID] = &o
	s.mu.Unlock()

	if s.feed != nil {
		s.feed.Push(order)
	}
	s.lg.Info("order_ingested", map[string]any{"order_id": order.ID, "total": order.Total})
	return nil
}

// UpdateStatus sets any vocabulary status on the order. A missing id is a
// no-op, not an error.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, changedBy string) error {
	if !domain.ValidStatus(status) {
		return fmt.Errorf("unknown order status %q", status)
	}

	s.mu.Lock()
	o, ok := s.index[orderID]
	if !ok {
		s.mu.Unlock()
		s.lg.Debug("status_update_skipped", map[string]any{"order_id": orderID})
		return nil
	}
	old := o.Status
	o.Status = status
	s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.UpdateStatus(ctx, orderID, status, changedBy); err != nil {
			s.lg.Error("status_persist_failed", err, map[string]any{"order_id": orderID})
		}
	}
	s.publishStatusChange(ctx, orderID, old, status, changedBy)
	return nil
}

// BulkUpdateStatus applies the status to every named order under a single
// lock acquisition; unknown ids are skipped. Returns how many were updated.
func (s *OrderService) BulkUpdateStatus(ctx context.Context, orderIDs []string, status domain.OrderStatus, changedBy string) (int, error) {
	if !domain.ValidStatus(status) {
		return 0, fmt.Errorf("unknown order status %q", status)
	}

	type change struct {
		id  string
		old domain.OrderStatus
	}
	s.mu.Lock()
	var changes []change
	for _, id := range orderIDs {
		o, ok := s.index[id]
		if !ok {
			continue
		}
		changes = append(changes, change{id: id, old: o.Status})
		o.Status = status
	}
	s.mu.Unlock()

	for _, c := range changes {
		if s.repo != nil {
			if err := s.repo.UpdateStatus(ctx, c.id, status, changedBy); err != nil {
				s.lg.Error("status_persist_failed", err, map[string]any{"order_id": c.id})
			}
		}
		s.publishStatusChange(ctx, c.id, c.old, status, changedBy)
	}
	return len(changes), nil
}

// Filter applies search, status and date-period predicates conjunctively.
func (s *OrderService) Filter(q FilterQuery) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	term := strings.ToLower(strings.TrimSpace(q.Search))
	var from, to time.Time
	if q.Period != "" && q.Period != PeriodAll {
		from, to = s.periodBounds(q.Period)
	}

	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if term != "" &&
			!strings.Contains(strings.ToLower(o.ID), term) &&
			!strings.Contains(strings.ToLower(o.Customer.Name), term) &&
			!strings.Contains(o.Customer.Phone, term) {
			continue
		}
		if q.Status != "" && q.Status != "all" && string(o.Status) != q.Status {
			continue
		}
		if !from.IsZero() && o.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && !o.Timestamp.Before(to) {
			continue
		}
		out = append(out, *o)
	}
	return out
}

// periodBounds returns [from, to) for the named bucket; a zero bound means
// unbounded on that side. Weeks start on the most recent Sunday.
func (s *OrderService) periodBounds(period string) (time.Time, time.Time) {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case PeriodToday:
		return midnight, time.Time{}
	case PeriodYesterday:
		return midnight.AddDate(0, 0, -1), midnight
	case PeriodThisWeek:
		return midnight.AddDate(0, 0, -int(now.Weekday())), time.Time{}
	case PeriodThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), time.Time{}
	}
	return time.Time{}, time.Time{}
}

// Metrics derives the dashboard headline numbers: today's order count,
// pending count across all orders, today's paid revenue and the rounded
// average paid order value (0 when nothing is paid yet).
func (s *OrderService) Metrics() domain.Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var m domain.Metrics
	var paidCount int
	for _, o := range s.orders {
		switch o.Status {
		case domain.StatusNew, domain.StatusPreparing, domain.StatusOutForDelivery:
			m.PendingOrders++
		}
		if o.Timestamp.Before(midnight) {
			continue
		}
		m.TotalOrders++
		if o.PaymentStatus == domain.PaymentPaid {
			m.Revenue += o.Total
			paidCount++
		}
	}
	if paidCount > 0 {
		m.AvgOrderValue = math.Round(m.Revenue / float64(paidCount))
	}
	return m
}

// Get returns a copy of one order.
func (s *OrderService) Get(orderID string) (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.index[orderID]
	if !ok {
		return domain.Order{}, false
	}
	return *o, true
}

func (s *OrderService) publishStatusChange(ctx context.Context, orderID string, old, next domain.OrderStatus, changedBy string) {
	if s.pub == nil {
		return
	}
	body, err := json.Marshal(domain.StatusChangeMessage{
		OrderID:   orderID,
		OldStatus: string(old),
		NewStatus: string(next),
		ChangedBy: changedBy,
		Timestamp: s.now().UTC(),
	})
	if err != nil {
		return
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.pub.Publish(pctx, rabbitmq.NotificationsExchange, "", body,
		amqp.Table{"x-source": "admin-service"}, "application/json", true); err != nil {
		s.lg.Error("status_fanout_failed", err, map[string]any{"order_id": orderID})
	}
}
