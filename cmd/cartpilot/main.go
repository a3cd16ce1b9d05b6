package main

import (
	"fmt"
	"os"

	"cartpilot/internal/api"
	"cartpilot/internal/config"
	"cartpilot/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	serverURL    string
	sessionToken string
	userID       string
	origin       string
	verbose      bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cartpilot",
	Short: "cartpilot - conversational shopping assistant client",
	Long: `cartpilot is a terminal client for the shopping assistant backend.

Chat with the assistant to build a shopping list, watch items for price
drops, and compare multi-store shopping plans.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// The terminal belongs to Bubble Tea; logs go to a file.
		zapCfg := zap.NewProductionConfig()
		zapCfg.OutputPaths = []string{cfg.LogFile}
		zapCfg.ErrorOutputPaths = []string{cfg.LogFile}
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logger.Sync()

		client := api.NewClient(cfg.ServerURL, cfg.SessionToken, logger)
		model := tui.New(client, cfg.UserID, cfg.DefaultOrigin, logger)

		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to run UI: %w", err)
		}
		return nil
	},
}

// loadConfig reads the environment and lets flags override it.
func loadConfig() (*config.Config, error) {
	if serverURL != "" {
		os.Setenv("CARTPILOT_SERVER_URL", serverURL)
	}
	if sessionToken != "" {
		os.Setenv("CARTPILOT_SESSION_TOKEN", sessionToken)
	}
	if userID != "" {
		os.Setenv("CARTPILOT_USER_ID", userID)
	}
	if origin != "" {
		os.Setenv("CARTPILOT_DEFAULT_ORIGIN", origin)
	}
	return config.NewFromEnv()
}

func init() {
	rootCmd.Flags().StringVar(&serverURL, "server", "", "assistant backend base URL (or CARTPILOT_SERVER_URL)")
	rootCmd.Flags().StringVar(&sessionToken, "token", "", "session token (or CARTPILOT_SESSION_TOKEN)")
	rootCmd.Flags().StringVar(&userID, "user", "", "user id override (or CARTPILOT_USER_ID)")
	rootCmd.Flags().StringVar(&origin, "origin", "", "route origin, e.g. home address (or CARTPILOT_DEFAULT_ORIGIN)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
