package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/session"
	"storefront/internal/store"
	"storefront/internal/substrate"
)

// fixture wires services over a freshly seeded in-memory store.
type fixture struct {
	store    *store.Store
	sessions *session.Manager
	jwt      *auth.JWTService
	tokens   *auth.TokenStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := substrate.NewMemory()
	st, err := store.Open(context.Background(), mem, store.DefaultKey)
	require.NoError(t, err)
	return &fixture{
		store:    st,
		sessions: session.NewManager(mem, st, "lumina_current_user", "lumina_cart"),
		jwt:      auth.NewJWTService("test-secret"),
		tokens:   auth.NewTokenStore(cache.NewMemory()),
	}
}
