package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"codelab-backend/internal/config"
	"codelab-backend/internal/handlers"
	"codelab-backend/internal/metrics"
	"codelab-backend/internal/router"
	"codelab-backend/internal/services"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	// ──── Step 1: Load Configuration (fail fast on misconfiguration) ────
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("log_level", cfg.LogLevel).Msg("invalid log level")
	}
	log.Logger = log.Level(level)
	log.Info().Str("env", cfg.Env).Msg("configuration loaded")

	// ──── Step 2: Initialize Upstream Clients ────
	geminiService, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiTextModel, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Gemini client initialization failed")
	}
	defer geminiService.Close()

	pistonClient := services.NewPistonClient(cfg.PistonURL)
	imageGenClient := services.NewImageGenClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiImageModel)
	ollamaClient := services.NewOllamaClient(cfg.OllamaURL)

	// ──── Step 3: Initialize Handlers ────
	m := metrics.New()
	runCodeHandler := handlers.NewRunCodeHandler(pistonClient, m, log.Logger)
	askHandler := handlers.NewAskHandler(geminiService, m, log.Logger)
	generateHandler := handlers.NewGenerateHandler(imageGenClient, m, log.Logger)
	localModelHandler := handlers.NewLocalModelHandler(ollamaClient, cfg.OllamaModel, m, log.Logger)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(
		runCodeHandler,
		askHandler,
		generateHandler,
		localModelHandler,
		m,
		cfg.StaticDir,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Info().Str("addr", server.Addr).Msg("codelab backend ready")

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server error")
	}
}
