// Package main provides the resume_layout CLI for fitting résumés onto a single A4 page.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-layout/internal/config"
	"github.com/jonathan/resume-layout/internal/observability"
)

var rootCmd = &cobra.Command{
	Use:           "resume_layout",
	Short:         "Single-page résumé layout engine",
	Long:          "resume_layout estimates how tall each résumé section will render, plans the spacing between sections so the content fills one A4 page, and renders the result as HTML, LaTeX or PDF.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath string
	verbose    bool
	logLevel   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or TOML config file (flags override its values)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves configuration in order: config file, command flags (applied by
// override), environment, then defaults. The result is validated.
func loadConfig(cmd *cobra.Command, override func(cfg *config.Config)) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logger.Level = logLevel
	}
	if override != nil {
		override(&cfg)
	}

	cfg.FromEnv()
	if cfg.Verbose && cfg.Logger.Level == "" {
		cfg.Logger.Level = "debug"
	}
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger builds the command logger; console output goes to stderr so stdout stays parseable.
func newLogger(cfg config.Config) *zap.Logger {
	return observability.NewStderrLogger(cfg.Logger)
}
