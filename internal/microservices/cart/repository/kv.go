package repository

import (
	"context"
	"sync"

	"chickkart-system/internal/connections/redisdb"
)

// RedisKV stores session state in redis without expiry; carts survive
// service restarts the way localStorage survives page reloads.
type RedisKV struct {
	C *redisdb.Client
}

func (r RedisKV) Get(ctx context.Context, key string) (string, error) {
	return r.C.Get(ctx, key)
}

func (r RedisKV) Set(ctx context.Context, key, value string) error {
	return r.C.Set(ctx, key, value, 0)
}

func (r RedisKV) Delete(ctx context.Context, key string) error {
	return r.C.Delete(ctx, key)
}

// MemoryKV is an in-process KV for tests and single-node development.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV { return &MemoryKV{data: make(map[string]string)} }

func (m *MemoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
