package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"storefront/internal/service"
)

// AuthHandler handles session and authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// LogoutRequest represents a logout request. The refresh token is optional.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	service.Tokens
	User *UserResponse `json:"user,omitempty"`
}

// StartSession godoc
// @Summary Start an anonymous session
// @Tags auth
// @Produce json
// @Success 201 {object} AuthResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /session [post]
func (h *AuthHandler) StartSession(c echo.Context) error {
	tokens, err := h.authService.StartSession(c.Request().Context())
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusCreated, AuthResponse{Tokens: *tokens})
}

// Register godoc
// @Summary Register a new user
// @Description Signs the new user in to the caller's session, or to a new one when no token is sent.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	sessionID, err := h.callerSession(c)
	if err != nil {
		return Fail(err)
	}

	tokens, user, err := h.authService.Register(c.Request().Context(), sessionID, req.Name, req.Email, req.Password)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusCreated, AuthResponse{Tokens: *tokens, User: newUserResponse(user)})
}

// Login godoc
// @Summary Login user
// @Description Email and password must match exactly. The caller's cart is kept.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	sessionID, err := h.callerSession(c)
	if err != nil {
		return Fail(err)
	}

	tokens, user, err := h.authService.Login(c.Request().Context(), sessionID, req.Email, req.Password)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, AuthResponse{Tokens: *tokens, User: newUserResponse(user)})
}

// Refresh godoc
// @Summary Refresh access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	tokens, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, AuthResponse{Tokens: *tokens})
}

// Logout godoc
// @Summary Logout user
// @Description Revokes the presented tokens and returns an anonymous token for the same session.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LogoutRequest false "Refresh token"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}

	tokens, err := h.authService.Logout(c.Request().Context(), claims, req.RefreshToken)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, AuthResponse{Tokens: *tokens})
}

// callerSession returns the session of the bearer token on a public route.
// No token means a new session will be started.
func (h *AuthHandler) callerSession(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", nil
	}
	claims, err := h.authService.Authorize(c.Request().Context(), token)
	if err != nil {
		return "", err
	}
	return claims.SessionID, nil
}
