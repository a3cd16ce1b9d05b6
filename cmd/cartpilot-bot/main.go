package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cartpilot/internal/api"
	"cartpilot/internal/bot"
	"cartpilot/internal/config"

	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.TelegramBotToken == "" || cfg.TelegramWebhookURL == "" {
		log.Fatalf("TELEGRAM_BOT_TOKEN and TELEGRAM_WEBHOOK_URL must be set for the bot")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 2. Initialize the backend client
	client := api.NewClient(cfg.ServerURL, cfg.SessionToken, logger)

	// 3. Initialize the Telegram bot
	b, err := bot.NewBot(cfg, client, logger)
	if err != nil {
		logger.Fatal("failed to initialize telegram bot", zap.Error(err))
	}

	// 4. Start server with graceful shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	b.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		logger.Info("bot listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("forced shutdown", zap.Error(err))
	}
}
