package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/auth"
	"storefront/internal/errors"
	"storefront/internal/model"
)

// ClaimsKey is the context key the JWT middleware stores verified claims under.
const ClaimsKey = "user"

// Fail converts a service error into an Echo error carrying an ErrorResponse.
func Fail(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}
	return nil
}

func claimsFrom(c echo.Context) (*auth.Claims, error) {
	claims, ok := c.Get(ClaimsKey).(*auth.Claims)
	if !ok || claims == nil {
		return nil, Fail(errors.ErrInvalidToken)
	}
	return claims, nil
}

// RequireUser rejects requests whose session has no signed-in user.
func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := claimsFrom(c)
		if err != nil {
			return err
		}
		if !claims.Authenticated() {
			return Fail(errors.ErrUnauthenticated)
		}
		return next(c)
	}
}

// RequireAdmin rejects requests from anyone but a signed-in admin.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return RequireUser(func(c echo.Context) error {
		claims, _ := claimsFrom(c)
		if claims.Role != model.RoleAdmin {
			return Fail(errors.ErrForbidden)
		}
		return next(c)
	})
}

// UserResponse is a user as returned by the API. The password never leaves the server.
type UserResponse struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Email          string                `json:"email"`
	Role           model.Role            `json:"role"`
	Addresses      []model.Address       `json:"addresses"`
	PaymentMethods []model.PaymentMethod `json:"paymentMethods"`
}

func newUserResponse(u *model.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		Addresses:      u.Addresses,
		PaymentMethods: u.PaymentMethods,
	}
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}
