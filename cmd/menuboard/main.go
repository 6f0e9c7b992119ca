package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/menuboard/internal/auth"
	"github.com/kailas-cloud/menuboard/internal/config"
	dbRedis "github.com/kailas-cloud/menuboard/internal/db/redis"
	"github.com/kailas-cloud/menuboard/internal/domain"
	logpkg "github.com/kailas-cloud/menuboard/internal/logger"
	"github.com/kailas-cloud/menuboard/internal/metrics"
	menuitemrepo "github.com/kailas-cloud/menuboard/internal/repository/menuitem"
	restaurantrepo "github.com/kailas-cloud/menuboard/internal/repository/restaurant"
	userrepo "github.com/kailas-cloud/menuboard/internal/repository/user"
	chiTransport "github.com/kailas-cloud/menuboard/internal/transport/chi"
	authuc "github.com/kailas-cloud/menuboard/internal/usecase/auth"
	healthuc "github.com/kailas-cloud/menuboard/internal/usecase/health"
	menuitemuc "github.com/kailas-cloud/menuboard/internal/usecase/menuitem"
	restaurantuc "github.com/kailas-cloud/menuboard/internal/usecase/restaurant"
	"github.com/kailas-cloud/menuboard/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting menuboard API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("ownership", cfg.Authorization.Ownership),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	restRepo := restaurantrepo.New(store, cfg.Storage.KeyPrefix)
	menuRepo := menuitemrepo.New(store, cfg.Storage.KeyPrefix)
	userRepo := userrepo.New(store, cfg.Storage.KeyPrefix)

	if err := restRepo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to create restaurant index", zap.Error(err))
	}
	if err := menuRepo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to create menu item index", zap.Error(err))
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL())
	if err != nil {
		logger.Fatal("Invalid token settings", zap.Error(err))
	}
	hasher, err := auth.NewHasher(cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("Invalid password hashing settings", zap.Error(err))
	}
	policy, err := domain.ParseOwnershipPolicy(cfg.Authorization.Ownership)
	if err != nil {
		logger.Fatal("Invalid ownership policy", zap.Error(err))
	}

	authSvc := authuc.New(userRepo, tokens, hasher).WithRecorder(metrics.AuthRecorder{})
	restSvc := restaurantuc.New(restRepo, menuRepo).
		WithPolicy(policy).
		WithPagination(cfg.Pagination.DefaultPageSize, cfg.Pagination.MaxPageSize).
		WithGeo(cfg.Geo.DefaultRadiusM, cfg.Geo.MaxRadiusM, cfg.Geo.DuplicateRadiusM, cfg.Geo.MaxResults)
	menuSvc := menuitemuc.New(menuRepo, restRepo).WithPolicy(policy)
	healthSvc := healthuc.New(store, store, restRepo.IndexName(), menuRepo.IndexName())

	server := chiTransport.NewServer(authSvc, restSvc, menuSvc, healthSvc, logger, chiTransport.Options{
		CORSOrigins:          cfg.CORS.AllowedOrigins,
		CORSAllowCredentials: cfg.CORS.AllowCredentials,
		AuthRatePerMinute:    cfg.RateLimit.AuthPerMinute,
		MaxBodyBytes:         int64(cfg.HTTP.MaxBodyBytes),
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.Handler(),
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
