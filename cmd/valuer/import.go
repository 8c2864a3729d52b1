package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"liquidationScope/internal/config"
	"liquidationScope/internal/ingest"
	"liquidationScope/internal/storage"
	"liquidationScope/internal/storage/postgres"
)

func runImport(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadImport(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()

	inputFile, err := os.Open(cfg.In)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer inputFile.Close()

	errWriter, err := storage.NewJSONLWriter(cfg.Errors, false)
	if err != nil {
		return err
	}
	defer errWriter.Close()

	logger.Info("import start",
		zap.String("in", cfg.In),
		zap.String("errors", cfg.Errors),
		zap.Int("batch_size", cfg.BatchSize),
	)

	importer := ingest.NewImporter(store, errWriter, cfg.BatchSize, logger)
	if _, err := importer.Import(ctx, inputFile); err != nil {
		return err
	}
	return nil
}
