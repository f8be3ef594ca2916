package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "storefront/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/insight"
	"storefront/internal/messaging"
	"storefront/internal/messaging/kafka"
	"storefront/internal/metrics"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
	"storefront/internal/session"
	"storefront/internal/store"
	"storefront/internal/substrate"
)

// @title Lumina Storefront API
// @version 1.0
// @description Storefront API with catalog, session carts, checkout and an admin back office.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session access token.
func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sub, err := substrate.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("substrate init: %v", err)
	}
	defer sub.Close()
	log.Printf("Using %s substrate", sub.Driver())

	st, err := store.Open(ctx, sub, cfg.StoreKey)
	if err != nil {
		log.Fatalf("store init: %v", err)
	}

	var cacheClient *cache.Client
	if cfg.CacheDriver == "redis" {
		cacheClient = cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	} else {
		cacheClient = cache.NewMemory()
	}

	m := metrics.New()

	var backend insight.Backend = insight.Disabled{}
	if cfg.GeminiAPIKey != "" {
		gemini, err := insight.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiTextModel, cfg.GeminiImageModel)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		backend = gemini
	} else {
		log.Println("GEMINI_API_KEY not set, insight features use fallbacks")
	}
	insightService := insight.NewService(backend, m)

	publisher := messaging.NewNoopPublisher()
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Printf("Publishing order events to %s", strings.Join(cfg.KafkaBrokers, ","))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(st)
	productRepo := repository.NewProductRepository(st)
	categoryRepo := repository.NewCategoryRepository(st)
	orderRepo := repository.NewOrderRepository(st)

	// Initialize auth components
	sessions := session.NewManager(sub, st, cfg.SessionKeyPrefix, cfg.CartKeyPrefix)
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(sessions, jwtService, tokenStore)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, insightService)
	cartService := service.NewCartService(sessions, productRepo, m)
	userService := service.NewUserService(userRepo, service.NewCardValidator())
	checkoutService := service.NewCheckoutService(sessions, userRepo, orderRepo, publisher, m)
	orderService := service.NewOrderService(orderRepo)
	dashboardService := service.NewDashboardService(productRepo, orderRepo, insightService)

	e := echo.New()
	router.Register(e, authService, m, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Cart:      handler.NewCartHandler(cartService),
		User:      handler.NewUserHandler(userService, sessions),
		Order:     handler.NewOrderHandler(checkoutService, orderService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Seed:      handler.NewSeedHandler(st),
	})

	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	log.Printf("Swagger documentation available at: %s/swagger/index.html", host)

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
