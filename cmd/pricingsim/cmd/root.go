package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/pricingsim/internal/config"
	"github.com/rustyeddy/pricingsim/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pricingsim",
	Short: "An insurance pricing simulator",
	Long: `Pricingsim is a period-by-period insurance pricing game.

Each period you choose a premium relative to the gross premium for a risk
scenario. Demand responds to the price, claims are drawn at random, and the
underwriting result moves your capital.

It provides tools for:
  - Quoting technical, gross and chosen premiums
  - Running batch simulations from a config file
  - Playing interactively one period at a time
  - Journaling settled periods to CSV or SQLite`,
	SilenceUsage: true,
}

var (
	logLevel  string
	logFormat string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides config")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console or json); overrides config")
}

// loadConfig reads path (defaults when empty) with environment overrides.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (zerolog.Logger, error) {
	return logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
}
