package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hrms/internal/app/server"
	"hrms/internal/platform/config"
	"hrms/internal/platform/db"
	"hrms/internal/platform/logger"
)

var (
	configDir       string
	migrateRollback bool
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "hrms",
		Short: "Human resource management server",
		RunE:  runServe,
	}
	root.PersistentFlags().StringVar(&configDir, "config", ".", "directory holding an optional config.yml")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE:  runServe,
	}
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE:  runMigrate,
	}
	migrateCmd.Flags().BoolVar(&migrateRollback, "down", false, "roll back the latest migration")
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the bootstrap HR Manager account",
		RunE:  runSeed,
	}
	root.AddCommand(serveCmd, migrateCmd, seedCmd)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}
	log, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, cfg.DatabaseURL, "up"); err != nil {
			return err
		}
	}
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer pool.Close()

	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	app, err := server.New(cfg, pool, log)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	direction := "up"
	if migrateRollback {
		direction = "down"
	}
	return db.Migrate(cmd.Context(), cfg.DatabaseURL, direction)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer pool.Close()
	return db.Seed(ctx, pool, cfg)
}
