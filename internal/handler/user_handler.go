package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/auth"
	"storefront/internal/model"
	"storefront/internal/service"
	"storefront/internal/session"
)

// UserHandler serves the signed-in user's profile and the admin user list.
type UserHandler struct {
	svc      service.UserService
	sessions *session.Manager
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, sessions *session.Manager) *UserHandler {
	return &UserHandler{svc: svc, sessions: sessions}
}

// UpdateProfileRequest renames the user.
type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required"`
}

// ChangePasswordRequest replaces the password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// AddressRequest adds a shipping address. Label defaults to Home.
type AddressRequest struct {
	Label     string `json:"label"`
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	IsDefault bool   `json:"isDefault"`
}

// PaymentMethodRequest adds a card. A full cardNumber is reduced to its last
// four digits; otherwise last4 is stored as given.
type PaymentMethodRequest struct {
	Brand      string `json:"brand"`
	Last4      string `json:"last4" validate:"omitempty,len=4,numeric"`
	CardNumber string `json:"cardNumber" validate:"omitempty,min=13"`
	Expiry     string `json:"expiry"`
	IsDefault  bool   `json:"isDefault"`
}

// Me godoc
// @Summary Current user profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}
	user, err := h.svc.GetUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateProfile godoc
// @Summary Rename the current user
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return h.apply(c, http.StatusOK, func(claims *auth.Claims) (*model.User, error) {
		return h.svc.UpdateProfile(c.Request().Context(), claims.UserID, req.Name)
	})
}

// ChangePassword godoc
// @Summary Change the current user's password
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Passwords"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me/password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	var req ChangePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := h.svc.ChangePassword(ctx, claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return Fail(err)
	}
	if err := h.refreshSession(c, claims); err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "password updated"})
}

// AddAddress godoc
// @Summary Add a shipping address
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddressRequest true "Address"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me/addresses [post]
func (h *UserHandler) AddAddress(c echo.Context) error {
	var req AddressRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return h.apply(c, http.StatusCreated, func(claims *auth.Claims) (*model.User, error) {
		return h.svc.AddAddress(c.Request().Context(), claims.UserID, service.AddressInput{
			Label:     req.Label,
			Street:    req.Street,
			City:      req.City,
			State:     req.State,
			Zip:       req.Zip,
			IsDefault: req.IsDefault,
		})
	})
}

// RemoveAddress godoc
// @Summary Remove a shipping address
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param id path string true "Address ID"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me/addresses/{id} [delete]
func (h *UserHandler) RemoveAddress(c echo.Context) error {
	return h.apply(c, http.StatusOK, func(claims *auth.Claims) (*model.User, error) {
		return h.svc.RemoveAddress(c.Request().Context(), claims.UserID, c.Param("id"))
	})
}

// AddPaymentMethod godoc
// @Summary Add a payment card
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PaymentMethodRequest true "Card"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me/payment-methods [post]
func (h *UserHandler) AddPaymentMethod(c echo.Context) error {
	var req PaymentMethodRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return h.apply(c, http.StatusCreated, func(claims *auth.Claims) (*model.User, error) {
		return h.svc.AddPaymentMethod(c.Request().Context(), claims.UserID, service.PaymentMethodInput{
			Brand:      req.Brand,
			Last4:      req.Last4,
			CardNumber: req.CardNumber,
			Expiry:     req.Expiry,
			IsDefault:  req.IsDefault,
		})
	})
}

// RemovePaymentMethod godoc
// @Summary Remove a payment card
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment method ID"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me/payment-methods/{id} [delete]
func (h *UserHandler) RemovePaymentMethod(c echo.Context) error {
	return h.apply(c, http.StatusOK, func(claims *auth.Claims) (*model.User, error) {
		return h.svc.RemovePaymentMethod(c.Request().Context(), claims.UserID, c.Param("id"))
	})
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return Fail(err)
	}
	out := make([]*UserResponse, 0, len(users))
	for i := range users {
		out = append(out, newUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// apply runs a profile change and syncs the session copy of the user.
func (h *UserHandler) apply(c echo.Context, status int, change func(*auth.Claims) (*model.User, error)) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}
	user, err := change(claims)
	if err != nil {
		return Fail(err)
	}
	if err := h.refreshSession(c, claims); err != nil {
		return Fail(err)
	}
	return c.JSON(status, newUserResponse(user))
}

func (h *UserHandler) refreshSession(c echo.Context, claims *auth.Claims) error {
	ctx := c.Request().Context()
	sess, err := h.sessions.Open(ctx, claims.SessionID)
	if err != nil {
		return err
	}
	return sess.RefreshUser(ctx)
}
