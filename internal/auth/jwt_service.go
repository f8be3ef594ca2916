package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"storefront/internal/model"
)

const (
	// AccessTokenExpiry is the duration for which access tokens are valid.
	AccessTokenExpiry = 24 * time.Hour
	// RefreshTokenExpiry is the duration for which refresh tokens are valid.
	RefreshTokenExpiry = 7 * 24 * time.Hour
)

// Token kinds carried in Claims.Kind.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// Claims represents JWT claims. Every token names a session; UserID is empty
// for anonymous sessions.
type Claims struct {
	SessionID string     `json:"sid"`
	UserID    string     `json:"user_id,omitempty"`
	Role      model.Role `json:"role,omitempty"`
	Kind      string     `json:"kind"`
	jwt.RegisteredClaims
}

// Authenticated reports whether the token belongs to a signed-in user.
func (c *Claims) Authenticated() bool {
	return c.UserID != ""
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	now    func() time.Time
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// GenerateAccessToken generates an access token for a session. The token ID
// is returned so the token can be revoked.
func (s *JWTService) GenerateAccessToken(sessionID, userID string, role model.Role) (tokenID string, token string, err error) {
	return s.sign(KindAccess, sessionID, userID, role, AccessTokenExpiry)
}

// GenerateRefreshToken generates a new refresh token for a signed-in session.
// The refresh token ID is returned separately for storage in the token store.
func (s *JWTService) GenerateRefreshToken(sessionID, userID string, role model.Role) (tokenID string, token string, err error) {
	return s.sign(KindRefresh, sessionID, userID, role, RefreshTokenExpiry)
}

func (s *JWTService) sign(kind, sessionID, userID string, role model.Role, ttl time.Duration) (string, string, error) {
	now := s.now()
	tokenID := generateTokenID()
	claims := &Claims{
		SessionID: sessionID,
		UserID:    userID,
		Role:      role,
		Kind:      kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	return tokenID, token, err
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.SessionID == "" || claims.ID == "" {
		return nil, errors.New("token has no session")
	}

	return claims, nil
}

// Remaining returns how long the token behind claims stays valid.
func (s *JWTService) Remaining(claims *Claims) time.Duration {
	if claims.ExpiresAt == nil {
		return 0
	}
	if d := claims.ExpiresAt.Time.Sub(s.now()); d > 0 {
		return d
	}
	return 0
}

// generateTokenID generates a unique token ID.
func generateTokenID() string {
	return uuid.New().String()
}
