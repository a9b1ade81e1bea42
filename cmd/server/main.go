package main

import (
	"log"
	"net/http"

	_ "github.com/artifaks/herbal-wisdom/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/artifaks/herbal-wisdom/internal/auth"
	"github.com/artifaks/herbal-wisdom/internal/cache"
	"github.com/artifaks/herbal-wisdom/internal/config"
	"github.com/artifaks/herbal-wisdom/internal/db"
	"github.com/artifaks/herbal-wisdom/internal/handler"
	"github.com/artifaks/herbal-wisdom/internal/payment"
	"github.com/artifaks/herbal-wisdom/internal/repository"
	"github.com/artifaks/herbal-wisdom/internal/router"
	"github.com/artifaks/herbal-wisdom/internal/service"
	"github.com/artifaks/herbal-wisdom/internal/storage"
)

// @title Herbal Wisdom API
// @version 1.0
// @description Herb directory API with store locator, premium subscription gate and admin content management.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// External collaborators, constructed once and passed down: no hidden
	// module-level singletons.
	paymentClient := payment.NewClient(cfg.PaymentAPIBase, cfg.PaymentSecretKey)
	storageClient := storage.NewClient(cfg.StorageAPIBase, cfg.StorageServiceKey)

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(gormDB)
	herbRepo := repository.NewHerbRepository(gormDB)
	storeRepo := repository.NewStoreRepository(gormDB)
	subscriptionRepo := repository.NewSubscriptionRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(profileRepo, jwtService, tokenStore)
	herbService := service.NewHerbService(herbRepo, cacheClient)
	storeService := service.NewStoreService(storeRepo, cacheClient)
	subscriptionService := service.NewSubscriptionService(
		profileRepo,
		subscriptionRepo,
		paymentClient,
		cfg.PaymentWebhookSecret,
		cfg.SubscriptionPriceID,
		cfg.AppBaseURL,
	)
	storageService := service.NewStorageService(storageClient, cfg.StorageBucket)
	resolver := service.NewEntitlementResolver(profileRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, subscriptionService)
	herbHandler := handler.NewHerbHandler(herbService, resolver)
	storeHandler := handler.NewStoreHandler(storeService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	adminHandler := handler.NewAdminHandler(herbService, storageService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		tokenStore,
		resolver,
		authHandler,
		herbHandler,
		storeHandler,
		subscriptionHandler,
		adminHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
