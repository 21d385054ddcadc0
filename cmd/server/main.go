package main

import (
	"context"
	"ctchen222/Recipe-Box/internal/api/controller"
	"ctchen222/Recipe-Box/internal/api/middleware"
	"ctchen222/Recipe-Box/internal/api/repository"
	"ctchen222/Recipe-Box/internal/api/service"
	"ctchen222/Recipe-Box/internal/config"
	"ctchen222/Recipe-Box/internal/db"
	"ctchen222/Recipe-Box/internal/logger"
	"ctchen222/Recipe-Box/internal/server"
	"ctchen222/Recipe-Box/internal/session"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize telemetry
	shutdown, err := initTelemetry(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	appLogger := logger.Init(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	// Initialize the relational store
	pool, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer pool.Close()

	// Initialize the session store
	sessionStore, closeStore, err := newSessionStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize session store: %v", err)
	}
	defer closeStore()

	store := repository.NewStore(pool)
	sessions := session.NewManager(sessionStore, cfg.Session.TTL)

	// Create services
	authService := service.NewAuthService(store, sessions)
	recipeService := service.NewRecipeService(store, sessions)

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := server.NewServer(server.Options{
		Logger:   appLogger,
		Sessions: sessions,
		Cookie: middleware.CookieOptions{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
			TTL:    cfg.Session.TTL,
		},
		UserController:   controller.NewUserController(authService),
		RecipeController: controller.NewRecipeController(recipeService),
	})

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("http server started", "addr", cfg.ServerAddr, "db_driver", cfg.DBDriver, "session_backend", cfg.Session.Backend)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server exiting")
}
