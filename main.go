package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"harvestlog/config"
	"harvestlog/db"
	"harvestlog/logger"
	"harvestlog/middleware"
	"harvestlog/plants"
	"harvestlog/ratelim"
	"harvestlog/routes"

	"go.uber.org/zap"
)

// Set up all routes and middleware layers
func setupRouter(cfg *config.Config, store *db.Store) http.Handler {
	rateLimiter := ratelim.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
	router := routes.NewRouter(plants.NewHandler(store, cfg.RequestTimeout), store, rateLimiter)

	return middleware.Chain(router,
		middleware.RecoverMiddleware,
		middleware.RequestID,
		middleware.Logging,
		middleware.SecurityHeaders,
		middleware.CORS(cfg.CORSOrigins),
	)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("Invalid LOG_LEVEL %q: %v", cfg.LogLevel, err)
	}
	defer logger.Sync()

	if !cfg.EnvFileLoaded {
		logger.Sugar.Info("No .env file found, using environment variables from OS")
	}

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 30*time.Second)
	client, err := db.Connect(connectCtx, cfg.MongoURI)
	cancelConnect()
	if err != nil {
		logger.Sugar.Fatalf("Could not connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Log.Error("MongoDB disconnect failed", zap.Error(err))
		}
	}()

	store := db.NewStore(client.Database(cfg.Database))

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 10*time.Second)
	if err := store.EnsureIndexes(indexCtx); err != nil {
		logger.Log.Warn("Could not create harvest indexes", zap.Error(err))
	}
	cancelIndex()

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           setupRouter(cfg, store),
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		logger.Log.Info("Server started", zap.String("addr", cfg.Addr), zap.String("database", cfg.Database))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar.Fatalf("Could not listen on %s: %v", cfg.Addr, err)
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)
	<-shutdownChan

	logger.Log.Info("Shutdown signal received, shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Log.Error("Server shutdown failed", zap.Error(err))
		return
	}

	logger.Log.Info("Server stopped cleanly")
}
