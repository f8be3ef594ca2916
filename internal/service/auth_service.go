package service

import (
	"context"
	"fmt"

	"storefront/internal/auth"
	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/session"
)

// Tokens is what the API hands a client for a session.
type Tokens struct {
	SessionID    string `json:"sessionId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// AuthService handles sessions and authentication.
type AuthService interface {
	StartSession(ctx context.Context) (*Tokens, error)
	// Register and Login attach a user to sessionID, or to a new session when it is empty.
	Register(ctx context.Context, sessionID, name, email, password string) (*Tokens, *model.User, error)
	Login(ctx context.Context, sessionID, email, password string) (*Tokens, *model.User, error)
	Refresh(ctx context.Context, refreshToken string) (*Tokens, error)
	// Logout signs the user out, revokes the presented tokens and returns an
	// anonymous token for the same session so the cart survives.
	Logout(ctx context.Context, claims *auth.Claims, refreshToken string) (*Tokens, error)
	// Authorize validates an access token for a request.
	Authorize(ctx context.Context, token string) (*auth.Claims, error)
}

type authService struct {
	sessions   *session.Manager
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(sessions *session.Manager, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		sessions:   sessions,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

func (s *authService) StartSession(ctx context.Context) (*Tokens, error) {
	sess, err := s.sessions.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	return s.anonymousTokens(sess.ID())
}

func (s *authService) openSession(ctx context.Context, sessionID string) (*session.Session, error) {
	if sessionID == "" {
		return s.sessions.New(ctx)
	}
	return s.sessions.Open(ctx, sessionID)
}

// Register creates a user and signs it in. Duplicate emails are accepted.
func (s *authService) Register(ctx context.Context, sessionID, name, email, password string) (*Tokens, *model.User, error) {
	sess, err := s.openSession(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("open session: %w", err)
	}
	user, err := sess.Register(ctx, name, email, password)
	if err != nil {
		return nil, nil, err
	}
	tokens, err := s.userTokens(ctx, sess.ID(), user)
	if err != nil {
		return nil, nil, err
	}
	return tokens, &user, nil
}

// Login signs in the first user matching email and password exactly.
func (s *authService) Login(ctx context.Context, sessionID, email, password string) (*Tokens, *model.User, error) {
	sess, err := s.openSession(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("open session: %w", err)
	}
	ok, err := sess.Login(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, errors.ErrInvalidCredentials
	}
	user, _ := sess.CurrentUser()
	tokens, err := s.userTokens(ctx, sess.ID(), user)
	if err != nil {
		return nil, nil, err
	}
	return tokens, &user, nil
}

// Refresh validates a refresh token and returns a new access token. The
// session must still be signed in as the same user.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*Tokens, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.Kind != auth.KindRefresh {
		return nil, errors.ErrInvalidToken
	}

	grant, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		return nil, errors.ErrInvalidToken
	}
	if grant.SessionID != claims.SessionID || grant.UserID != claims.UserID {
		return nil, errors.ErrInvalidToken
	}

	sess, err := s.sessions.Open(ctx, grant.SessionID)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	if err := sess.RefreshUser(ctx); err != nil {
		return nil, err
	}
	user, ok := sess.CurrentUser()
	if !ok || user.ID != grant.UserID {
		_ = s.tokenStore.DeleteRefreshToken(ctx, claims.ID)
		return nil, errors.ErrInvalidToken
	}

	_, access, err := s.jwtService.GenerateAccessToken(sess.ID(), user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	return &Tokens{
		SessionID:    sess.ID(),
		AccessToken:  access,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(auth.AccessTokenExpiry.Seconds()),
	}, nil
}

func (s *authService) Logout(ctx context.Context, claims *auth.Claims, refreshToken string) (*Tokens, error) {
	sess, err := s.sessions.Open(ctx, claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	if err := sess.Logout(ctx); err != nil {
		return nil, err
	}
	s.sessions.Forget(sess.ID())

	if err := s.tokenStore.BlacklistAccessToken(ctx, claims.ID, s.jwtService.Remaining(claims)); err != nil {
		return nil, fmt.Errorf("revoke access token: %w", err)
	}
	if refreshToken != "" {
		if rc, err := s.jwtService.ValidateToken(refreshToken); err == nil && rc.Kind == auth.KindRefresh && rc.SessionID == claims.SessionID {
			if err := s.tokenStore.DeleteRefreshToken(ctx, rc.ID); err != nil {
				return nil, fmt.Errorf("revoke refresh token: %w", err)
			}
		}
	}

	return s.anonymousTokens(sess.ID())
}

// Authorize accepts a token that is valid, not revoked, and whose user still
// exists and is the one signed in to its session.
func (s *authService) Authorize(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil || claims.Kind != auth.KindAccess {
		return nil, errors.ErrInvalidToken
	}
	revoked, err := s.tokenStore.IsAccessTokenBlacklisted(ctx, claims.ID)
	if err != nil || revoked {
		return nil, errors.ErrInvalidToken
	}
	if !claims.Authenticated() {
		return claims, nil
	}

	sess, err := s.sessions.Open(ctx, claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	// Users removed from the store, by a reset for instance, lose their sessions.
	if err := sess.RefreshUser(ctx); err != nil {
		return nil, err
	}
	user, ok := sess.CurrentUser()
	if !ok || user.ID != claims.UserID {
		return nil, errors.ErrInvalidToken
	}
	// Role changes take effect without a new token.
	claims.Role = user.Role
	return claims, nil
}

func (s *authService) anonymousTokens(sessionID string) (*Tokens, error) {
	_, access, err := s.jwtService.GenerateAccessToken(sessionID, "", "")
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	return &Tokens{
		SessionID:   sessionID,
		AccessToken: access,
		ExpiresIn:   int64(auth.AccessTokenExpiry.Seconds()),
	}, nil
}

func (s *authService) userTokens(ctx context.Context, sessionID string, user model.User) (*Tokens, error) {
	_, access, err := s.jwtService.GenerateAccessToken(sessionID, user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refresh, err := s.jwtService.GenerateRefreshToken(sessionID, user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	grant := auth.RefreshGrant{SessionID: sessionID, UserID: user.ID}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, grant, auth.RefreshTokenExpiry); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &Tokens{
		SessionID:    sessionID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(auth.AccessTokenExpiry.Seconds()),
	}, nil
}
