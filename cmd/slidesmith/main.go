// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the Slidesmith API server.
// It loads configuration, wires the AI providers, renderer, export
// pipeline and session manager, and serves HTTP with graceful shutdown.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slidesmith/internal/ai"
	"slidesmith/internal/cache"
	"slidesmith/internal/config"
	"slidesmith/internal/content"
	"slidesmith/internal/editor"
	"slidesmith/internal/export"
	"slidesmith/internal/handlers"
	"slidesmith/internal/middleware"
	"slidesmith/internal/render"
	"slidesmith/internal/router"
	"slidesmith/internal/storage"
)

// sweepInterval is how often idle sessions are reclaimed.
const sweepInterval = time.Minute

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to read .env", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if !cfg.IsDev() {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai":  {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL},
		"gemini":  {APIKey: cfg.GeminiKey, Model: cfg.GeminiModel, BaseURL: cfg.GeminiBaseURL, ModelImage: cfg.GeminiModelImage},
		"claude":  {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
		"mistral": {APIKey: cfg.MistralKey, Model: cfg.MistralModel, BaseURL: cfg.MistralBaseURL},
	})
	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
		"image_generation", aiRegistry.SupportsImageGeneration(),
	)

	// Generation results are cached in Valkey when a host is configured;
	// the app runs without it.
	var contentOpts []content.Option
	if cfg.CacheEnabled() {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		contentOpts = append(contentOpts, content.WithCache(cache.NewResultCache(valkeyClient, cfg.CacheTTL)))
	} else {
		slog.Warn("valkey not configured, generation results are not cached")
	}
	contentClient := content.NewClient(aiRegistry, contentOpts...)

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize slide renderer", "error", err)
		os.Exit(1)
	}
	pipeline := export.New(renderer,
		export.WithSettleDelay(cfg.ExportSettleDelay),
		export.WithWorkers(cfg.ExportWorkers),
	)

	deps := handlers.Deps{
		AI:       aiRegistry,
		Content:  contentClient,
		Renderer: renderer,
		Exports:  pipeline,
	}

	storageClient, err := storage.New(storage.Options{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		PublicURL: cfg.S3PublicURL,
		LinkTTL:   cfg.S3LinkTTL,
	})
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		deps.Publisher = storageClient
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", storageClient.Bucket())
	} else {
		slog.Warn("s3 storage not configured, export publishing disabled")
	}

	sessions := editor.NewManager(cfg.AutosaveDelay)
	defer sessions.Close()
	deps.Sessions = sessions

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go sessions.Run(ctx, sweepInterval, cfg.SessionIdleTTL)

	aiLimit := middleware.NewRateLimiter(cfg.AIRateLimit, time.Minute)
	defer aiLimit.Stop()

	r := router.New(handlers.NewAPI(deps), aiLimit)

	// WriteTimeout covers AI generation and full-resolution exports.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
