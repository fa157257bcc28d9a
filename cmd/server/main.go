package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kishorkishor/storefront-backend/config"
	"github.com/kishorkishor/storefront-backend/internal/app/controller"
	"github.com/kishorkishor/storefront-backend/internal/app/repository"
	"github.com/kishorkishor/storefront-backend/internal/app/service"
	"github.com/kishorkishor/storefront-backend/internal/db"
	"github.com/kishorkishor/storefront-backend/internal/middleware"
	"github.com/kishorkishor/storefront-backend/internal/persist"
	"github.com/kishorkishor/storefront-backend/internal/router"
	"github.com/kishorkishor/storefront-backend/internal/scheduler"
	"github.com/kishorkishor/storefront-backend/internal/session"
	"github.com/kishorkishor/storefront-backend/internal/websocket"
	"github.com/kishorkishor/storefront-backend/pkg/apiclient"
	"github.com/kishorkishor/storefront-backend/pkg/logger"
	"github.com/kishorkishor/storefront-backend/pkg/redis"
)

// sessionSweepInterval is how often the session cache is checked for pairs
// idle past the session TTL.
const sessionSweepInterval = 10 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := cfg.Log.Level
	if cfg.Server.Environment == "development" && logLevel == "info" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      cfg.Log.Format,
		EnableColor: cfg.Server.Environment == "development",
	})

	logger.Info("Starting Storefront Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Pick the snapshot backend for cart and wishlist state
	factory, err := buildPersistFactory(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize snapshot storage", err)
	}
	defer redis.Close()

	// Upstream catalog client
	client := apiclient.New(
		cfg.Upstream.BaseURL,
		apiclient.WithTimeout(cfg.Upstream.Timeout),
		apiclient.WithMaxRetries(cfg.Upstream.MaxRetries),
	)

	// Repositories
	productRepo := repository.NewProductRepository(db.GetDB())
	catalogSource := repository.NewUpstreamCatalog(client, cfg.Catalog.PageSize)

	// Badge hub
	hub := websocket.NewHub()
	go hub.Run()

	// Sessions and services. The manager subscribes the hub to every store
	// pair it builds, so badge counts push after each committed mutation.
	sessions := session.NewManager(factory, hub)
	catalogService := service.NewCatalogService(catalogSource, productRepo)
	cartService := service.NewCartService(catalogService, sessions)
	wishlistService := service.NewWishlistService(catalogService, sessions)

	// Drop cached store pairs for sessions that went quiet
	go func() {
		ticker := time.NewTicker(sessionSweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			if evicted := sessions.SweepIdle(cfg.Session.TTL); evicted > 0 {
				logger.Info("Evicted idle sessions", map[string]interface{}{
					"count": evicted,
				})
			}
		}
	}()

	// Warm the catalog snapshot before accepting traffic
	warmCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := catalogService.Refresh(warmCtx); err != nil {
		logger.Warn("Initial catalog refresh failed, serving empty catalog until next refresh", map[string]interface{}{
			"error": err.Error(),
		})
	}
	cancel()

	// Periodic catalog refresh
	catalogScheduler := scheduler.NewCatalogScheduler(catalogService, cfg.Catalog.RefreshSpec)
	if err := catalogScheduler.Start(); err != nil {
		logger.Fatal("Failed to start catalog scheduler", err)
	}
	defer catalogScheduler.Stop()

	// Controllers
	productController := controller.NewProductController(catalogService)
	cartController := controller.NewCartController(cartService)
	wishlistController := controller.NewWishlistController(wishlistService)
	badgeController := controller.NewBadgeController(hub, cfg.CORS.AllowedOrigins)

	// Middleware
	sessionMiddleware := middleware.NewSessionMiddleware(
		sessions,
		cfg.Session.Secret,
		cfg.Session.CookieName,
		cfg.Session.TTL,
	)

	// Setup router
	r := router.NewRouter(
		productController,
		cartController,
		wishlistController,
		badgeController,
		sessionMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}

func buildPersistFactory(cfg *config.Config) (persist.Factory, error) {
	switch cfg.Storage.Backend {
	case "redis":
		if err := redis.Init(&cfg.Redis); err != nil {
			return nil, err
		}
		return persist.RedisFactory(redis.GetClient()), nil
	case "file":
		return persist.FileFactory(cfg.Storage.Dir), nil
	case "memory":
		return persist.MemoryFactory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
