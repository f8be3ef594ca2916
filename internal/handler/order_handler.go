package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/model"
	"storefront/internal/service"
)

// OrderHandler handles checkout and order history.
type OrderHandler struct {
	checkout service.CheckoutService
	orders   service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(checkout service.CheckoutService, orders service.OrderService) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders}
}

// CheckoutRequest picks the address and card. Empty ids use the defaults.
type CheckoutRequest struct {
	AddressID       string `json:"addressId"`
	PaymentMethodID string `json:"paymentMethodId"`
}

// StatusRequest moves an order to a new status.
type StatusRequest struct {
	Status model.OrderStatus `json:"status" validate:"required"`
}

// Checkout godoc
// @Summary Place an order from the cart
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CheckoutRequest false "Address and payment method"
// @Success 201 {object} model.Order
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /checkout [post]
func (h *OrderHandler) Checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}

	order, err := h.checkout.Checkout(c.Request().Context(), claims.SessionID, service.CheckoutRequest{
		AddressID:       req.AddressID,
		PaymentMethodID: req.PaymentMethodID,
	})
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusCreated, order)
}

// ListMine godoc
// @Summary Order history of the current user
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Order
// @Router /orders [get]
func (h *OrderHandler) ListMine(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}
	orders, err := h.orders.ListForUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, orders)
}

// ListAll godoc
// @Summary List every order, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Order
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/orders [get]
func (h *OrderHandler) ListAll(c echo.Context) error {
	orders, err := h.orders.ListAll(c.Request().Context())
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateStatus godoc
// @Summary Change an order's status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body StatusRequest true "Status"
// @Success 200 {object} model.Order
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req StatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	order, err := h.orders.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, order)
}
