package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/StatsBot/internal/config"
	"github.com/JonMunkholm/StatsBot/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "statsbot",
	Short: "Compute all-time driver statistics of a racing league",
	Long: `statsbot folds every season of a league into one all-time statistics
row per driver and writes the result as a delimited table.

Configuration is read from the environment (and a .env file in the working
directory); command line flags override it.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

var (
	cfg *config.Config

	logLevel  string
	logFormat string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json (overrides LOG_FORMAT)")
}

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("statsbot failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig reads the environment, applies the flags of cmd and validates
// the result.
func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.FromEnv()
	if err != nil {
		return err
	}

	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if err := applyRunFlags(cmd, args, c); err != nil {
		return err
	}

	if requiresLeague(cmd) {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	logging.Setup(c.Logging.Level, c.Logging.Format)
	slog.Debug("configuration loaded", "config", c.String())

	cfg = c
	return nil
}

func requiresLeague(cmd *cobra.Command) bool {
	return cmd == runCmd
}
