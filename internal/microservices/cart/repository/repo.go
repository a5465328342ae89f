package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"chickkart-system/internal/domain"
)

// ErrCorrupt marks a stored snapshot that no longer parses. Callers discard
// it and fall back to defaults; it is never surfaced to the end user.
var ErrCorrupt = errors.New("corrupt snapshot")

const (
	cartKeyPrefix     = "cart:"
	customerKeyPrefix = "customer_info:"
	lastOrderPrefix   = "last_order:"
)

// KV is the minimal key-value surface session state needs. A missing key
// reads back as the empty string.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type SessionRepositoryInterface interface {
	LoadCart(ctx context.Context, session string) (domain.CartState, bool, error)
	SaveCart(ctx context.Context, session string, state domain.CartState) error
	LoadCustomerInfo(ctx context.Context, session string) (domain.CustomerInfo, bool, error)
	SaveCustomerInfo(ctx context.Context, session string, info domain.CustomerInfo) error
	SaveLastOrder(ctx context.Context, session string, order domain.Order) error
}

type SessionRepository struct {
	kv KV
}

func NewSessionRepository(kv KV) *SessionRepository { return &SessionRepository{kv: kv} }

func (r *SessionRepository) LoadCart(ctx context.Context, session string) (domain.CartState, bool, error) {
	raw, err := r.kv.Get(ctx, cartKeyPrefix+session)
	if err != nil {
		return domain.CartState{}, false, fmt.Errorf("load cart: %w", err)
	}
	if raw == "" {
		return domain.CartState{}, false, nil
	}
	var state domain.CartState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return domain.CartState{}, false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if state.Items == nil {
		state.Items = []domain.LineItem{}
	}
	return state, true, nil
}

func (r *SessionRepository) SaveCart(ctx context.Context, session string, state domain.CartState) error {
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	return r.kv.Set(ctx, cartKeyPrefix+session, string(b))
}

func (r *SessionRepository) LoadCustomerInfo(ctx context.Context, session string) (domain.CustomerInfo, bool, error) {
	raw, err := r.kv.Get(ctx, customerKeyPrefix+session)
	if err != nil {
		return domain.CustomerInfo{}, false, fmt.Errorf("load customer info: %w", err)
	}
	if raw == "" {
		return domain.CustomerInfo{}, false, nil
	}
	var info domain.CustomerInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return domain.CustomerInfo{}, false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return info, true, nil
}

func (r *SessionRepository) SaveCustomerInfo(ctx context.Context, session string, info domain.CustomerInfo) error {
	b, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal customer info: %w", err)
	}
	return r.kv.Set(ctx, customerKeyPrefix+session, string(b))
}

func (r *SessionRepository) SaveLastOrder(ctx context.Context, session string, order domain.Order) error {
	b, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}
	return r.kv.Set(ctx, lastOrderPrefix+session, string(b))
}
