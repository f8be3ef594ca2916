package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/cache"
	"storefront/internal/model"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret")

	id, token, err := svc.GenerateAccessToken("sess-1", "2", model.RoleUser)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.ID)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "2", claims.UserID)
	assert.Equal(t, model.RoleUser, claims.Role)
	assert.Equal(t, KindAccess, claims.Kind)
	assert.True(t, claims.Authenticated())
	assert.InDelta(t, AccessTokenExpiry.Seconds(), svc.Remaining(claims).Seconds(), 5)
}

func TestJWTService_RefreshTokenKind(t *testing.T) {
	svc := NewJWTService("secret")
	id, token, err := svc.GenerateRefreshToken("sess-1", "2", model.RoleUser)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.ID)
	assert.Equal(t, KindRefresh, claims.Kind)
}

func TestJWTService_AnonymousToken(t *testing.T) {
	svc := NewJWTService("secret")
	_, token, err := svc.GenerateAccessToken("sess-1", "", "")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.False(t, claims.Authenticated())
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("secret")
	_, token, err := svc.GenerateAccessToken("sess-1", "2", model.RoleUser)
	require.NoError(t, err)

	_, err = NewJWTService("other").ValidateToken(token)
	assert.Error(t, err)

	expired := NewJWTService("secret")
	expired.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	_, old, err := expired.GenerateAccessToken("sess-1", "2", model.RoleUser)
	require.NoError(t, err)
	_, err = svc.ValidateToken(old)
	assert.Error(t, err)

	_, noSession, err := svc.GenerateAccessToken("", "2", model.RoleUser)
	require.NoError(t, err)
	_, err = svc.ValidateToken(noSession)
	assert.Error(t, err)
}

func TestTokenStore_RefreshTokens(t *testing.T) {
	ctx := context.Background()
	store := NewTokenStore(cache.NewMemory())
	grant := RefreshGrant{SessionID: "sess-1", UserID: "2"}

	require.NoError(t, store.StoreRefreshToken(ctx, "rt-1", grant, time.Hour))
	got, err := store.GetRefreshToken(ctx, "rt-1")
	require.NoError(t, err)
	assert.Equal(t, grant, got)

	require.NoError(t, store.DeleteRefreshToken(ctx, "rt-1"))
	_, err = store.GetRefreshToken(ctx, "rt-1")
	assert.Error(t, err)
}

func TestTokenStore_Blacklist(t *testing.T) {
	ctx := context.Background()
	store := NewTokenStore(cache.NewMemory())

	listed, err := store.IsAccessTokenBlacklisted(ctx, "at-1")
	require.NoError(t, err)
	assert.False(t, listed)

	require.NoError(t, store.BlacklistAccessToken(ctx, "at-1", time.Hour))
	listed, err = store.IsAccessTokenBlacklisted(ctx, "at-1")
	require.NoError(t, err)
	assert.True(t, listed)
}
