package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/service"
)

// DashboardHandler serves the admin overview.
type DashboardHandler struct {
	dashboard service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(dashboard service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary godoc
// @Summary Admin dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Dashboard
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/dashboard [get]
func (h *DashboardHandler) Summary(c echo.Context) error {
	d, err := h.dashboard.Summary(c.Request().Context())
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, d)
}
