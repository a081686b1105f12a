package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/trendyhq/storefront/internal/config"
	httpDelivery "github.com/trendyhq/storefront/internal/delivery/http"
	"github.com/trendyhq/storefront/internal/delivery/http/handler"
	"github.com/trendyhq/storefront/internal/delivery/events"
	"github.com/trendyhq/storefront/internal/pkg/cache"
	"github.com/trendyhq/storefront/internal/pkg/logger"
	"github.com/trendyhq/storefront/internal/repository/catalogfile"
	"github.com/trendyhq/storefront/internal/repository/orderstore"
	"github.com/trendyhq/storefront/internal/usecase/cart"
	"github.com/trendyhq/storefront/internal/usecase/catalog"
	"github.com/trendyhq/storefront/internal/usecase/checkout"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env)
	appLogger.Info("Starting Storefront API...")

	appLogger.Infof("Loading catalog from %s...", cfg.Store.CatalogPath)
	products, err := catalogfile.Load(cfg.Store.CatalogPath)
	if err != nil {
		appLogger.Fatal("Failed to load catalog", err)
	}
	appLogger.Infof("Loaded %d products", len(products))

	appLogger.Info("Connecting to Redis...")
	redisClient, err := cache.WaitForRedis(cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis successfully")

	appLogger.Info("Connecting to NATS...")
	publisher, err := events.NewPublisher(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create NATS publisher", err)
	}
	defer publisher.Close()

	orderRepo := orderstore.NewRedisStore(redisClient)

	catalogService := catalog.NewService(products, cfg.Store.ItemsPerPage, appLogger)
	cartService := cart.NewService(cfg.Store.DeliveryFee, appLogger)
	checkoutService := checkout.NewService(cartService, orderRepo, publisher, appLogger)

	catalogHandler := handler.NewCatalogHandler(catalogService, cfg.Store.Currency, appLogger)
	cartHandler := handler.NewCartHandler(cartService, catalogService, cfg.Store.Currency, appLogger)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, cfg.Store.Currency, appLogger)

	router := httpDelivery.NewRouter(catalogHandler, cartHandler, checkoutHandler, cfg, appLogger)
	httpHandler := router.Setup()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Infof("HTTP server listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", err)
	}

	appLogger.Info("Server stopped gracefully")
}
