package config

import (
	"fmt"
	"os"

	"cartpilot/internal/auth"
)

// Config holds the configuration for the application.
type Config struct {
	ServerURL     string
	SessionToken  string
	UserID        string
	DefaultOrigin string
	LogFile       string

	// Telegram Config (required for the bot binary only)
	TelegramBotToken    string
	TelegramWebhookURL  string
	TelegramAllowUserID int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	serverURL := os.Getenv("CARTPILOT_SERVER_URL")
	if serverURL == "" {
		return nil, fmt.Errorf("CARTPILOT_SERVER_URL environment variable not set")
	}

	sessionToken := os.Getenv("CARTPILOT_SESSION_TOKEN")
	userID := os.Getenv("CARTPILOT_USER_ID")
	if userID == "" && sessionToken != "" {
		sub, err := auth.UserIDFromToken(sessionToken)
		if err != nil {
			return nil, fmt.Errorf("could not derive user id from session token: %w", err)
		}
		userID = sub
	}
	if userID == "" {
		return nil, fmt.Errorf("CARTPILOT_USER_ID environment variable not set and no session token to derive it from")
	}

	logFile := os.Getenv("CARTPILOT_LOG_FILE")
	if logFile == "" {
		logFile = "cartpilot.log"
	}

	// Telegram Config (optional for the TUI, required for the bot)
	telegramBotToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	telegramWebhookURL := os.Getenv("TELEGRAM_WEBHOOK_URL")
	telegramAllowUserIDStr := os.Getenv("TELEGRAM_ALLOW_USER_ID")
	var telegramAllowUserID int64
	if telegramAllowUserIDStr != "" {
		fmt.Sscanf(telegramAllowUserIDStr, "%d", &telegramAllowUserID)
	}

	return &Config{
		ServerURL:           serverURL,
		SessionToken:        sessionToken,
		UserID:              userID,
		DefaultOrigin:       os.Getenv("CARTPILOT_DEFAULT_ORIGIN"),
		LogFile:             logFile,
		TelegramBotToken:    telegramBotToken,
		TelegramWebhookURL:  telegramWebhookURL,
		TelegramAllowUserID: telegramAllowUserID,
	}, nil
}
