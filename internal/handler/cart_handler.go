package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/service"
)

// CartHandler handles the cart of the caller's session.
type CartHandler struct {
	cart service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cart service.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

// AddItemRequest adds one unit of a product.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// UpdateQuantityRequest sets a line quantity. Values below one become one.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart godoc
// @Summary Current cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.CartView
// @Failure 401 {object} errors.ErrorResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(c echo.Context) error {
	return h.respond(c, func(sessionID string) (*service.CartView, error) {
		return h.cart.Get(c.Request().Context(), sessionID)
	})
}

// AddItem godoc
// @Summary Add a product to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddItemRequest true "Product"
// @Success 200 {object} service.CartView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	var req AddItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return h.respond(c, func(sessionID string) (*service.CartView, error) {
		return h.cart.AddItem(c.Request().Context(), sessionID, req.ProductID)
	})
}

// UpdateQuantity godoc
// @Summary Set the quantity of a cart line
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body UpdateQuantityRequest true "Quantity"
// @Success 200 {object} service.CartView
// @Failure 400 {object} errors.ErrorResponse
// @Router /cart/items/{id} [patch]
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	var req UpdateQuantityRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return h.respond(c, func(sessionID string) (*service.CartView, error) {
		return h.cart.UpdateQuantity(c.Request().Context(), sessionID, c.Param("id"), req.Quantity)
	})
}

// RemoveItem godoc
// @Summary Remove a cart line
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} service.CartView
// @Router /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	return h.respond(c, func(sessionID string) (*service.CartView, error) {
		return h.cart.RemoveItem(c.Request().Context(), sessionID, c.Param("id"))
	})
}

// ClearCart godoc
// @Summary Empty the cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.CartView
// @Router /cart [delete]
func (h *CartHandler) ClearCart(c echo.Context) error {
	return h.respond(c, func(sessionID string) (*service.CartView, error) {
		return h.cart.Clear(c.Request().Context(), sessionID)
	})
}

func (h *CartHandler) respond(c echo.Context, op func(sessionID string) (*service.CartView, error)) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}
	view, err := op(claims.SessionID)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, view)
}
