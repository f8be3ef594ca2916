package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// backend is the raw key-value store behind a Client.
type backend interface {
	get(ctx context.Context, key string) ([]byte, error)
	set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	del(ctx context.Context, key string) error
}

// errMiss reports a missing or expired key.
var errMiss = errors.New("cache miss")

// Client is a TTL cache that fails safe: connectivity errors behave like misses.
type Client struct {
	backend backend
}

// New creates a Redis backed client.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{backend: redisBackend{client: redis.NewClient(opts)}}
}

// NewMemory creates a process-local client. Used when Redis is not configured and in tests.
func NewMemory() *Client {
	return &Client{backend: &memoryBackend{entries: make(map[string]memoryEntry), now: time.Now}}
}

// Get returns value or nil if missing or the backend is unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.backend == nil {
		return nil, nil
	}
	res, err := c.backend.get(ctx, key)
	if err != nil {
		// fail safe: behave like cache miss
		return nil, nil
	}
	return res, nil
}

// Set stores value with TTL, ignoring backend errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.backend == nil {
		return nil
	}
	// fail safe: ignore backend errors
	_ = c.backend.set(ctx, key, value, ttl)
	return nil
}

// Delete removes a key, ignoring backend errors.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.backend == nil {
		return nil
	}
	_ = c.backend.del(ctx, key)
	return nil
}

type redisBackend struct {
	client *redis.Client
}

func (r redisBackend) get(ctx context.Context, key string) ([]byte, error) {
	res, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, errMiss
	}
	return res, err
}

func (r redisBackend) set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r redisBackend) del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

type memoryBackend struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func (m *memoryBackend) get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, errMiss
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		return nil, errMiss
	}
	return append([]byte(nil), e.value...), nil
}

func (m *memoryBackend) set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.entries[key] = e
	return nil
}

func (m *memoryBackend) del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
