package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/insight"
	"storefront/internal/model"
	"storefront/internal/service"
)

// CatalogHandler serves the storefront catalog and its admin maintenance.
type CatalogHandler struct {
	catalog service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ProductRequest is the admin product form. The gallery always mirrors image.
// An omitted isActive means the product is listed.
type ProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
	Category    string  `json:"category" validate:"required"`
	Stock       int     `json:"stock" validate:"gte=0"`
	IsActive    *bool   `json:"isActive"`
	Image       string  `json:"image"`
	Material    string  `json:"material"`
	Color       string  `json:"color"`
	Finish      string  `json:"finish"`
}

func (r ProductRequest) toModel() model.Product {
	active := r.IsActive == nil || *r.IsActive
	return model.Product{
		Name:        r.Name,
		Price:       r.Price,
		Description: r.Description,
		Category:    r.Category,
		Stock:       r.Stock,
		IsActive:    active,
		Image:       r.Image,
		Material:    r.Material,
		Color:       r.Color,
		Finish:      r.Finish,
	}
}

// DescriptionRequest asks for a marketing blurb.
type DescriptionRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category"`
}

// DescriptionResponse carries the generated or fallback description.
type DescriptionResponse struct {
	Description string `json:"description"`
}

// ImageRequest asks for a studio product image.
type ImageRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category"`
	Material string `json:"material"`
	Color    string `json:"color"`
	Finish   string `json:"finish"`
}

// ImageResponse carries a data URL. Generated is false when no image could be produced.
type ImageResponse struct {
	Image     string `json:"image,omitempty"`
	Generated bool   `json:"generated"`
}

// CategoryRequest names a category.
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// ListProducts godoc
// @Summary List storefront products
// @Description Active products only. category=All or empty returns every category.
// @Tags catalog
// @Produce json
// @Param category query string false "Category filter"
// @Success 200 {array} model.Product
// @Router /products [get]
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	products, err := h.catalog.ListStorefront(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, products)
}

// GetProduct godoc
// @Summary Get a storefront product
// @Tags catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} model.Product
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [get]
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, err := h.catalog.GetStorefrontProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, product)
}

// ListCategories godoc
// @Summary List categories
// @Tags catalog
// @Produce json
// @Success 200 {array} string
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalog.ListCategories(c.Request().Context())
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, categories)
}

// AdminListProducts godoc
// @Summary List every product, hidden ones included
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Product
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/products [get]
func (h *CatalogHandler) AdminListProducts(c echo.Context) error {
	products, err := h.catalog.ListProducts(c.Request().Context())
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, products)
}

// CreateProduct godoc
// @Summary Create a product
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProductRequest true "Product"
// @Success 201 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/products [post]
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var req ProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	product, err := h.catalog.CreateProduct(c.Request().Context(), req.toModel())
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct godoc
// @Summary Replace a product
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body ProductRequest true "Product"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	var req ProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	product, err := h.catalog.UpdateProduct(c.Request().Context(), c.Param("id"), req.toModel())
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	if err := h.catalog.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return Fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GenerateDescription godoc
// @Summary Generate a product description
// @Description Falls back to a fixed sentence when generation is unavailable.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DescriptionRequest true "Product name and category"
// @Success 200 {object} DescriptionResponse
// @Router /admin/products/description [post]
func (h *CatalogHandler) GenerateDescription(c echo.Context) error {
	var req DescriptionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	description := h.catalog.GenerateDescription(c.Request().Context(), req.Name, req.Category)
	return c.JSON(http.StatusOK, DescriptionResponse{Description: description})
}

// GenerateImage godoc
// @Summary Generate a product image
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ImageRequest true "Product attributes"
// @Success 200 {object} ImageResponse
// @Router /admin/products/image [post]
func (h *CatalogHandler) GenerateImage(c echo.Context) error {
	var req ImageRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	image, ok := h.catalog.GenerateImage(c.Request().Context(), insight.ProductAttributes{
		Name:     req.Name,
		Category: req.Category,
		Material: req.Material,
		Color:    req.Color,
		Finish:   req.Finish,
	})
	return c.JSON(http.StatusOK, ImageResponse{Image: image, Generated: ok})
}

// AddCategory godoc
// @Summary Add a category
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryRequest true "Category"
// @Success 201 {array} string
// @Failure 400 {object} errors.ErrorResponse
// @Router /admin/categories [post]
func (h *CatalogHandler) AddCategory(c echo.Context) error {
	var req CategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	categories, err := h.catalog.AddCategory(c.Request().Context(), req.Name)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusCreated, categories)
}

// RenameCategory godoc
// @Summary Rename a category and move its products
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name path string true "Current name"
// @Param request body CategoryRequest true "New name"
// @Success 200 {array} string
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/categories/{name} [put]
func (h *CatalogHandler) RenameCategory(c echo.Context) error {
	var req CategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	categories, err := h.catalog.RenameCategory(c.Request().Context(), categoryParam(c), req.Name)
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, categories)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Its products move to Uncategorized.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param name path string true "Category"
// @Success 200 {array} string
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/categories/{name} [delete]
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	categories, err := h.catalog.DeleteCategory(c.Request().Context(), categoryParam(c))
	if err != nil {
		return Fail(err)
	}
	return c.JSON(http.StatusOK, categories)
}

// categoryParam returns the name path parameter. The router has already
// decoded it, so names containing '%' arrive intact.
func categoryParam(c echo.Context) string {
	return c.Param("name")
}
