package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/georgemunganga/shopstock-backend/internal/config"
	"github.com/georgemunganga/shopstock-backend/internal/database"
	"github.com/georgemunganga/shopstock-backend/internal/logger"
)

const serviceName = "shopstock-api"

var (
	// Global flags
	dbURL    string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "shopstock",
	Short: "Shopstock - multi-shop retail and inventory backend",
	Long: `Shopstock serves the retail API: shops, products, warehouses,
customers, vendors, transactions and bills.

Configuration is read from the environment (and a .env file when present).
Flags override the matching variables.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (overrides DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
}

// setup loads configuration, initialises the logger and opens the database.
func setup(ctx context.Context) (*config.Config, *sql.DB, error) {
	cfg := config.Load(serviceName)
	if dbURL != "" {
		cfg.DB.URL = dbURL
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	l, err := logger.Init(cfg.LogLevel, cfg.Server.Env, cfg.ServiceName)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	l.Info("configuration loaded", cfg.Fields()...)

	db, err := database.Open(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	l.Info("connected to database", zap.Int("max_open_conns", cfg.DB.MaxOpenConns))
	return cfg, db, nil
}
