package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/01moynul/shopcart-admin/internal/config"
	"github.com/01moynul/shopcart-admin/internal/database"
	"github.com/01moynul/shopcart-admin/internal/mockapi"
	"github.com/gin-gonic/gin"
)

func main() {
	seedPath := flag.String("seed", "", "JSON seed file with users and products")
	flag.Parse()

	// 0. --- Load Environment Variables (.env) ---
	config.LoadEnvFile()
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	if cfg.LogLevel > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. --- Database Connection ---
	db, err := database.Open(cfg.MockAPIDriver, cfg.MockAPIDSN)
	if err != nil {
		slog.Error("Failed to connect to database", "driver", cfg.MockAPIDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// 2. --- Handlers & Seed ---
	ctx := context.Background()
	app, err := mockapi.NewHandlers(ctx, db, cfg.MockAPIDriver, cfg.JWTSecret)
	if err != nil {
		slog.Error("Failed to prepare handlers", "error", err)
		os.Exit(1)
	}
	app.Logger = logger
	if *seedPath != "" {
		data, err := mockapi.LoadSeedFile(*seedPath)
		if err != nil {
			slog.Error("Failed to read seed file", "path", *seedPath, "error", err)
			os.Exit(1)
		}
		if err := app.Seed(ctx, data); err != nil {
			slog.Error("Failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// 3. --- Router Setup ---
	routerCfg := mockapi.DefaultRouterConfig
	routerCfg.AllowedOrigin = cfg.CORSOrigin
	server := &http.Server{
		Addr:              ":" + cfg.MockAPIPort,
		Handler:           mockapi.SetupRouter(app, routerCfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 4. --- Start Server with Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Mock API starting", "port", cfg.MockAPIPort, "driver", cfg.MockAPIDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server exited gracefully.")
}
