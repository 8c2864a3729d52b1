package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"liquidationScope/internal/config"
	"liquidationScope/internal/metrics"
	"liquidationScope/internal/pipeline"
	"liquidationScope/internal/storage"
	"liquidationScope/internal/storage/postgres"
	"liquidationScope/internal/storage/s3"
)

func runValuation(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadRun(cfgFile, cmd.Flags())
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

	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer store.Close()

	sink, err := storage.NewCSVSink(cfg.Out)
	if err != nil {
		return err
	}

	m := metrics.New()
	m.Serve(ctx, cfg.MetricsAddr, logger)

	logger.Info("valuation start",
		zap.String("out", cfg.Out),
		zap.Int("page_size", cfg.PageSize),
		zap.String("metrics_addr", cfg.MetricsAddr),
		zap.Bool("s3_upload", cfg.S3.Enabled()),
	)

	driver := pipeline.NewDriver(pipeline.Config{PageSize: cfg.PageSize}, store, sink, m, logger)
	stats, runErr := driver.Run(ctx)
	closeErr := sink.Close()
	if runErr != nil {
		return runErr
	}
	if closeErr != nil {
		return fmt.Errorf("close output: %w", closeErr)
	}

	if !cfg.S3.Enabled() {
		return nil
	}

	uploader, err := s3.NewUploader(ctx, cfg.S3, logger)
	if err != nil {
		return err
	}
	return uploader.UploadFile(ctx, cfg.Out, s3.ObjectKey(cfg.S3.Key, cfg.Out), map[string]string{
		"run-id": runID,
		"rows":   strconv.Itoa(stats.Valued),
	})
}
