package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/model"
)

// Seeder restores and reports the dataset.
type Seeder interface {
	Reset(ctx context.Context) error
	Export() model.State
}

// SeedHandler handles seed data endpoints.
type SeedHandler struct {
	seeder Seeder
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(seeder Seeder) *SeedHandler {
	return &SeedHandler{seeder: seeder}
}

// SeedResponse represents the seed response.
type SeedResponse struct {
	Message    string `json:"message"`
	Users      int    `json:"users"`
	Products   int    `json:"products"`
	Categories int    `json:"categories"`
	Orders     int    `json:"orders"`
}

// Reset godoc
// @Summary Restore the seed dataset
// @Description Replaces users, products, categories and orders with the initial data.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SeedResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/seed [post]
func (h *SeedHandler) Reset(c echo.Context) error {
	if err := h.seeder.Reset(c.Request().Context()); err != nil {
		return Fail(err)
	}
	st := h.seeder.Export()
	return c.JSON(http.StatusOK, SeedResponse{
		Message:    "store reset to seed data",
		Users:      len(st.Users),
		Products:   len(st.Products),
		Categories: len(st.Categories),
		Orders:     len(st.Orders),
	})
}
