package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"storefront/internal/substrate"
)

const (
	// DefaultCacheSize bounds how many sessions stay in memory.
	DefaultCacheSize = 10000
	// DefaultCacheTTL is how long a session stays cached after it was loaded.
	DefaultCacheTTL = 30 * time.Minute
)

// Option configures a Manager.
type Option func(*Manager)

// WithCache sets the size and lifetime of the in-memory session cache.
func WithCache(size int, ttl time.Duration) Option {
	return func(m *Manager) {
		m.cacheSize = size
		m.cacheTTL = ttl
	}
}

// Manager hands out sessions by id. Loaded sessions are cached so concurrent
// requests share one instance; evicted sessions are restored from the
// substrate on their next use.
type Manager struct {
	mu         sync.Mutex
	sub        substrate.Substrate
	users      Users
	userPrefix string
	cartPrefix string
	cacheSize  int
	cacheTTL   time.Duration
	sessions   *expirable.LRU[string, *Session]
}

// NewManager returns a manager storing session entries under
// "<userPrefix>:<id>" and "<cartPrefix>:<id>".
func NewManager(sub substrate.Substrate, users Users, userPrefix, cartPrefix string, opts ...Option) *Manager {
	m := &Manager{
		sub:        sub,
		users:      users,
		userPrefix: userPrefix,
		cartPrefix: cartPrefix,
		cacheSize:  DefaultCacheSize,
		cacheTTL:   DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.sessions = expirable.NewLRU[string, *Session](m.cacheSize, nil, m.cacheTTL)
	return m
}

// New starts an anonymous session with a fresh id.
func (m *Manager) New(ctx context.Context) (*Session, error) {
	return m.Open(ctx, uuid.NewString())
}

// Open returns the session with the given id, restoring it from the
// substrate when it is not cached.
func (m *Manager) Open(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions.Get(id); ok {
		return s, nil
	}
	s := &Session{
		id:      id,
		sub:     m.sub,
		users:   m.users,
		userKey: m.userPrefix + ":" + id,
		cartKey: m.cartPrefix + ":" + id,
	}
	if err := s.restore(ctx); err != nil {
		return nil, err
	}
	m.sessions.Add(id, s)
	return s, nil
}

// Forget drops a session from the cache. Its persisted entries are kept.
func (m *Manager) Forget(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions.Remove(id)
}

// Cached reports how many sessions are held in memory.
func (m *Manager) Cached() int {
	return m.sessions.Len()
}
