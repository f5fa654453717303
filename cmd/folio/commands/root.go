// Package commands defines the folio CLI.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mquinn/folio/backend/internal/config"
	"github.com/mquinn/folio/backend/internal/kv"
	"github.com/mquinn/folio/backend/internal/logging"
)

var (
	// Global flags
	useMemory bool
	logLevel  string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "folio - portfolio site backend",
	Long: `folio is the backend for a personal portfolio site with an admin
dashboard: blog posts, a reading list, admin-managed content sections,
and the owner profile, stored in a flat Redis namespace.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&useMemory, "memory", false, "Use the in-memory backend instead of Redis (data is lost on exit)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: DEBUG, INFO, WARN, ERROR (overrides LOG_LEVEL)")
}

// setup initialises logging and connects the configured backend.
func setup(ctx context.Context) (config.Config, kv.Store, error) {
	cfg := config.FromEnv()
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logging.Init(cfg.LogLevel)

	if useMemory {
		return cfg, kv.NewMemory(), nil
	}
	backend, err := kv.NewRedis(ctx, kv.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return cfg, nil, err
	}
	return cfg, backend, nil
}
