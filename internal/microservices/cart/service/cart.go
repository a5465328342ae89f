package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"chickkart-system/internal/common/logger"
	"chickkart-system/internal/domain"
	"chickkart-system/internal/microservices/cart/repository"
)

type CartServiceInterface interface {
	AddItem(ctx context.Context, session string, item domain.LineItem) (domain.CartState, error)
	RemoveItem(ctx context.Context, session, itemID string) (domain.CartState, error)
	UpdateQuantity(ctx context.Context, session, itemID string, quantity int) (domain.CartState, error)
	Clear(ctx context.Context, session string) (domain.CartState, error)
	SetPaymentStatus(ctx context.Context, session, status, orderID, method string) (domain.CartState, error)
	Summary(ctx context.Context, session string) (domain.CartSummary, error)
}

// CartService holds one cart per session. Operations are serialized under a
// single lock so each transition fully applies (including its persistence
// write) before the next is accepted.
type CartService struct {
	mu    sync.Mutex
	carts map[string]domain.CartState
	repo  repository.SessionRepositoryInterface
	lg    *logger.Logger
	now   func() time.Time
}

func NewCartService(repo repository.SessionRepositoryInterface, lg *logger.Logger) *CartService {
	return &CartService{
		carts: make(map[string]domain.CartState),
		repo:  repo,
		lg:    lg,
		now:   time.Now,
	}
}

func (s *CartService) AddItem(ctx context.Context, session string, item domain.LineItem) (domain.CartState, error) {
	return s.dispatch(ctx, session, AddItem{Item: item})
}

func (s *CartService) RemoveItem(ctx context.Context, session, itemID string) (domain.CartState, error) {
	return s.dispatch(ctx, session, RemoveItem{ItemID: itemID})
}

func (s *CartService) UpdateQuantity(ctx context.Context, session, itemID string, quantity int) (domain.CartState, error) {
	return s.dispatch(ctx, session, UpdateQuantity{ItemID: itemID, Quantity: quantity})
}

func (s *CartService) Clear(ctx context.Context, session string) (domain.CartState, error) {
	return s.dispatch(ctx, session, Clear{})
}

func (s *CartService) SetPaymentStatus(ctx context.Context, session, status, orderID, method string) (domain.CartState, error) {
	return s.dispatch(ctx, session, SetPaymentStatus{Status: status, OrderID: orderID, Method: method})
}

func (s *CartService) Summary(ctx context.Context, session string) (domain.CartSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.loadLocked(ctx, session)
	return domain.CartSummary{
		ItemCount: state.ItemCount,
		Total:     state.Total,
		IsEmpty:   state.IsEmpty(),
		Items:     domain.CloneItems(state.Items),
	}, nil
}

func (s *CartService) dispatch(ctx context.Context, session string, a Action) (domain.CartState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.loadLocked(ctx, session)
	next := Reduce(state, a, s.now())
	s.carts[session] = next

	// Persistence is best-effort: the in-memory cart stays authoritative for
	// the session even if the snapshot write fails.
	if err := s.repo.SaveCart(ctx, session, next); err != nil {
		s.lg.Error("cart_persist_failed", err, map[string]any{"session": session})
	}
	return next, nil
}

// loadLocked returns the cached state for the session, restoring it from the
// repository on first touch. A corrupt snapshot is logged and discarded in
// favour of the canonical empty cart; restore is never fatal.
func (s *CartService) loadLocked(ctx context.Context, session string) domain.CartState {
	if state, ok := s.carts[session]; ok {
		return state
	}
	state, found, err := s.repo.LoadCart(ctx, session)
	switch {
	case err != nil && errors.Is(err, repository.ErrCorrupt):
		s.lg.Warn("cart_restore_discarded", map[string]any{"session": session, "reason": err.Error()})
		state = domain.EmptyCart(s.now())
	case err != nil:
		s.lg.Error("cart_restore_failed", err, map[string]any{"session": session})
		state = domain.EmptyCart(s.now())
	case !found:
		state = domain.EmptyCart(s.now())
	}
	s.carts[session] = state
	return state
}
