package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/zetroo/catalog-service/internal/api/http"
	"github.com/zetroo/catalog-service/internal/api/http/handlers"
	"github.com/zetroo/catalog-service/internal/auth"
	"github.com/zetroo/catalog-service/internal/config"
	"github.com/zetroo/catalog-service/internal/events"
	"github.com/zetroo/catalog-service/internal/observability"
	"github.com/zetroo/catalog-service/internal/persistence"
	"github.com/zetroo/catalog-service/internal/repository"
	"github.com/zetroo/catalog-service/internal/service"
	"github.com/zetroo/catalog-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mongo, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("failed to connect mongodb", zap.Error(err))
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	userRepo := repository.NewUserRepository(mongo.Collection(persistence.UsersCollection))
	productRepo := repository.NewProductRepository(mongo.Collection(persistence.ProductsCollection))
	dependencies := map[string]handlers.Pinger{"mongo": mongo}
	if redis != nil {
		cache := repository.NewRedisProductCache(redis.Client, cfg.Redis.ProductCacheTTL)
		productRepo = repository.NewCachedProductRepository(productRepo, cache, logger)
		dependencies["redis"] = redis
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartActivityWorker(service.NewActivityService(dispatcher, logger))

	authService := service.NewAuthService(*cfg)
	userService := service.NewUserService(userRepo, dispatcher, logger)
	productService := service.NewProductService(productRepo, dispatcher, logger)

	metrics := observability.NewMetrics("zetroo")

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:         logger,
		Metrics:        metrics,
		RequestTimeout: cfg.App.RequestTimeout(),
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies),
		Auth:          handlers.NewAuthHandler(authService),
		Users:         handlers.NewUsersHandler(userService),
		Products:      handlers.NewProductsHandler(productService, logger),
		Authenticator: auth.NewAuthenticator(authService.TokenManager()),
		AdminGuard:    auth.NewAdminGuard(userRepo),
		Metrics:       metrics,
	})

	go func() {
		logger.Info("zetroo server listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := mongo.Close(shutdownCtx); err != nil {
		logger.Warn("mongodb disconnect", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
