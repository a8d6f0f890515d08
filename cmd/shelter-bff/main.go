package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/shelter-fetch/internal/adapters/observability"
	"github.com/DanielPopoola/shelter-fetch/internal/config"
	"github.com/DanielPopoola/shelter-fetch/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/shelter-fetch/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/shelter-fetch/internal/render"
)

const serviceName = "shelter-bff"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()

	ctx := context.Background()
	inst, shutdownTelemetry, err := observability.Init(ctx, serviceName, cfg.Primary.Env, logger)
	if err != nil {
		logger.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}

	logger.Info("starting render service",
		"port", cfg.Server.Port,
		"api", cfg.API.BaseURL,
		"log_level", cfg.Logger.Level,
	)

	renderer := render.NewRenderer(cfg.API,
		render.WithLogger(logger),
		render.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		render.WithRetry(cfg.Retry),
		render.WithTracer(inst.Tracer(serviceName)),
		render.WithMeter(inst.Meter(serviceName)),
	)

	mux := http.NewServeMux()
	handlers.NewHandlers(renderer, logger).RegisterRoutes(mux)

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Error("telemetry shutdown failed", "error", err)
	}

	logger.Info("server exited")
}
