package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"storefront/internal/errors"
	"storefront/internal/handler"
	"storefront/internal/metrics"
	"storefront/internal/service"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Auth      *handler.AuthHandler
	Catalog   *handler.CatalogHandler
	Cart      *handler.CartHandler
	User      *handler.UserHandler
	Order     *handler.OrderHandler
	Dashboard *handler.DashboardHandler
	Seed      *handler.SeedHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, authService service.AuthService, m *metrics.Metrics, h Handlers) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/session", h.Auth.StartSession)
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.GET("/products", h.Catalog.ListProducts)
	api.GET("/products/:id", h.Catalog.GetProduct)
	api.GET("/categories", h.Catalog.ListCategories)

	// Session routes (any valid access token, signed in or not)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:  handler.ClaimsKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return authService.Authorize(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return handler.Fail(errors.ErrInvalidToken)
		},
	}))

	secured.POST("/auth/logout", h.Auth.Logout)
	secured.GET("/cart", h.Cart.GetCart)
	secured.DELETE("/cart", h.Cart.ClearCart)
	secured.POST("/cart/items", h.Cart.AddItem)
	secured.PATCH("/cart/items/:id", h.Cart.UpdateQuantity)
	secured.DELETE("/cart/items/:id", h.Cart.RemoveItem)

	// Signed-in user routes
	me := secured.Group("", handler.RequireUser)
	me.GET("/me", h.User.Me)
	me.PATCH("/me", h.User.UpdateProfile)
	me.PUT("/me/password", h.User.ChangePassword)
	me.POST("/me/addresses", h.User.AddAddress)
	me.DELETE("/me/addresses/:id", h.User.RemoveAddress)
	me.POST("/me/payment-methods", h.User.AddPaymentMethod)
	me.DELETE("/me/payment-methods/:id", h.User.RemovePaymentMethod)
	me.POST("/checkout", h.Order.Checkout)
	me.GET("/orders", h.Order.ListMine)

	// Admin routes
	admin := secured.Group("/admin", handler.RequireAdmin)
	admin.GET("/dashboard", h.Dashboard.Summary)
	admin.GET("/users", h.User.ListUsers)
	admin.GET("/products", h.Catalog.AdminListProducts)
	admin.POST("/products", h.Catalog.CreateProduct)
	admin.PUT("/products/:id", h.Catalog.UpdateProduct)
	admin.DELETE("/products/:id", h.Catalog.DeleteProduct)
	admin.POST("/products/description", h.Catalog.GenerateDescription)
	admin.POST("/products/image", h.Catalog.GenerateImage)
	admin.POST("/categories", h.Catalog.AddCategory)
	admin.PUT("/categories/:name", h.Catalog.RenameCategory)
	admin.DELETE("/categories/:name", h.Catalog.DeleteCategory)
	admin.GET("/orders", h.Order.ListAll)
	admin.PATCH("/orders/:id/status", h.Order.UpdateStatus)
	admin.POST("/seed", h.Seed.Reset)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
