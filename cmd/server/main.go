package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	handler "github.com/aquaguard/api/internal/adapters/handler/http"
	repo "github.com/aquaguard/api/internal/adapters/repository/postgres"
	"github.com/aquaguard/api/internal/core/domain"
	"github.com/aquaguard/api/internal/core/services"
	"github.com/aquaguard/api/pkg/config"
)

func main() {
	setupLogger()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := openDB(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := repo.NewUserRepository(db)
	authRepo := repo.NewAuthRepository(db)
	waterSourceRepo := repo.NewWaterSourceRepository(db)
	alertRepo := repo.NewAlertRepository(db)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelSeed()
	if err := userRepo.EnsureRoles(seedCtx, []string{domain.RoleAdmin, domain.RoleUser}); err != nil {
		slog.Error("failed to seed roles", "error", err)
		os.Exit(1)
	}

	hasher := services.NewBcryptHasher(cfg.BcryptCost)
	issuer := services.NewJWTIssuer([]byte(cfg.JWTSecret), cfg.AccessTokenTTL)
	refreshManager := services.NewRefreshTokenManager(authRepo, cfg.RefreshTokenTTL)
	authSvc := services.NewAuthService(userRepo, hasher, issuer, refreshManager)
	waterSourceSvc := services.NewWaterSourceService(waterSourceRepo)
	alertSvc := services.NewAlertService(alertRepo)

	authHandler := handler.NewAuthHandler(authSvc)
	waterSourceHandler := handler.NewWaterSourceHandler(waterSourceSvc)
	alertHandler := handler.NewAlertHandler(alertSvc)
	router := handler.NewHandler(authHandler, waterSourceHandler, alertHandler, issuer, cfg.AllowedOrigins)

	server := &stdhttp.Server{Addr: cfg.ListenAddr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server listening", "addr", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger() {
	var logger *slog.Logger
	if os.Getenv("ENV") == "PRODUCTION" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	slog.SetDefault(logger)
}

func openDB(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}
