package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/sanspareilsmyn/insightlens/internal/analyzer"
	"github.com/sanspareilsmyn/insightlens/internal/api"
	"github.com/sanspareilsmyn/insightlens/internal/config"
	"github.com/sanspareilsmyn/insightlens/internal/logging"
	"github.com/sanspareilsmyn/insightlens/internal/pipeline"
)

var (
	configFile = flag.String("config", "configs/config.dev.yaml", "Path to the configuration file")
	logger     *zap.Logger
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration from %s: %v\n", *configFile, err)
		os.Exit(1)
	}

	var logErr error
	logger, logErr = logging.NewLogger(cfg.Log)
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", logErr)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync() // Flush buffered logs on exit
	}()

	sugar := logger.Sugar()
	sugar.Infow("Logger initialized",
		"level", cfg.Log.Level,
		"format", cfg.Log.Format,
	)
	sugar.Infow("Configuration loaded successfully", "path", *configFile)

	suite := analyzer.NewSuite(logger.Named("analyzer"))

	pipe, err := pipeline.New(cfg, suite, logger)
	if err != nil {
		sugar.Fatalw("Failed to initialize pipeline", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return pipe.Run(gctx)
	})
	if cfg.HTTP.Enabled {
		handler := api.NewHandler(suite, cfg.Analyzers, logger.Named("api"))
		server := api.NewServer(cfg.HTTP, handler, logger.Named("http"))
		g.Go(func() error {
			return server.Run(gctx)
		})
	}

	sugar.Info("InsightLens started")
	runErr := g.Wait()

	finalLogLevel := zapcore.InfoLevel
	shutdownReason := "gracefully"
	var finalErrorField = zap.Skip()

	switch {
	case runErr == nil:
		sugar.Info("All components completed without error.")
	case errors.Is(runErr, context.Canceled):
		sugar.Info("Execution cancelled (expected on shutdown).")
	default:
		shutdownReason = "due to error"
		finalLogLevel = zapcore.ErrorLevel
		finalErrorField = zap.Error(runErr)
	}

	logger.Log(finalLogLevel, fmt.Sprintf("InsightLens shutdown %s.", shutdownReason),
		zap.String("reason", shutdownReason),
		finalErrorField,
	)
}
