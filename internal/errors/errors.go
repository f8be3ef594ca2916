package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user id does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrProductNotFound is returned when a product is missing or hidden from the storefront.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound is returned when an order id does not resolve.
	ErrOrderNotFound = errors.New("order not found")
	// ErrCategoryNotFound is returned when a category name is not in the category list.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryExists is returned when renaming onto a name already in the category list.
	ErrCategoryExists = errors.New("category already exists")
	// ErrInvalidCategory is returned for blank category names.
	ErrInvalidCategory = errors.New("invalid category name")
	// ErrInvalidCredentials is returned when no user matches an email and password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidPassword is returned when the current password does not match.
	ErrInvalidPassword = errors.New("current password is incorrect")
	// ErrUnauthenticated is returned when an operation needs a signed-in user.
	ErrUnauthenticated = errors.New("sign in required")
	// ErrForbidden is returned when a signed-in user lacks the admin role.
	ErrForbidden = errors.New("admin access required")
	// ErrInvalidToken is returned for unknown, expired or revoked tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrEmptyCart is returned when checking out an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrAddressNotFound is returned when an address does not belong to the user.
	ErrAddressNotFound = errors.New("address not found")
	// ErrPaymentMethodNotFound is returned when a payment method does not belong to the user.
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	// ErrInvalidCard is returned when card validation fails.
	ErrInvalidCard = errors.New("invalid card")
	// ErrInvalidStatus is returned for order statuses outside the known set.
	ErrInvalidStatus = errors.New("invalid order status")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

var codes = []struct {
	err    error
	status int
	code   string
}{
	{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{ErrProductNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
	{ErrOrderNotFound, http.StatusNotFound, "ORDER_NOT_FOUND"},
	{ErrCategoryNotFound, http.StatusNotFound, "CATEGORY_NOT_FOUND"},
	{ErrCategoryExists, http.StatusConflict, "CATEGORY_EXISTS"},
	{ErrInvalidCategory, http.StatusBadRequest, "INVALID_CATEGORY"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{ErrInvalidPassword, http.StatusBadRequest, "INVALID_PASSWORD"},
	{ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
	{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN"},
	{ErrEmptyCart, http.StatusBadRequest, "EMPTY_CART"},
	{ErrAddressNotFound, http.StatusBadRequest, "ADDRESS_NOT_FOUND"},
	{ErrPaymentMethodNotFound, http.StatusBadRequest, "PAYMENT_METHOD_NOT_FOUND"},
	{ErrInvalidCard, http.StatusBadRequest, "INVALID_CARD"},
	{ErrInvalidStatus, http.StatusBadRequest, "INVALID_STATUS"},
}

// MapErrorToHTTP maps domain errors, wrapped or not, to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return NewHTTPError(c.status, c.err.Error(), c.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
