package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/sanspareilsmyn/insightlens/internal/analyzer"
	"github.com/sanspareilsmyn/insightlens/internal/config"
	"github.com/sanspareilsmyn/insightlens/internal/table"
)

// Pipeline orchestrates the stages: consumer, parser, updater, scheduler, reporter.
// The first three only run when the Kafka feed is enabled.
type Pipeline struct {
	suite     *analyzer.Suite
	consumer  *Consumer
	scheduler *Scheduler
	reporter  *Reporter
	logger    *zap.Logger

	rawMessages chan []byte
	snapshots   chan table.Snapshot
	reports     chan Report
}

// New creates and wires up a new analysis pipeline around suite.
func New(cfg *config.Config, suite *analyzer.Suite, logger *zap.Logger) (*Pipeline, error) {
	initLogger := logger.Named("pipeline.init")

	var consumerInstance *Consumer
	rawMessages := make(chan []byte, cfg.Pipeline.BufferSize)
	if cfg.Kafka.Enabled {
		var err error
		consumerInstance, err = NewConsumer(cfg.Kafka, rawMessages, logger.Named("consumer"))
		if err != nil {
			initLogger.Error("Failed to create consumer", zap.Error(err))
			return nil, fmt.Errorf("%w: %w", ErrConsumerCreationFailed, err)
		}
		initLogger.Debug("Consumer created")
	} else {
		initLogger.Info("Kafka feed disabled, datasets are only updated in-process")
	}

	return newPipeline(cfg, suite, consumerInstance, rawMessages, logger), nil
}

func newPipeline(cfg *config.Config, suite *analyzer.Suite, consumer *Consumer, rawMessages chan []byte, logger *zap.Logger) *Pipeline {
	reports := make(chan Report, cfg.Pipeline.BufferSize)

	p := &Pipeline{
		suite:       suite,
		consumer:    consumer,
		scheduler:   NewScheduler(cfg.Pipeline, cfg.Analyzers, suite, reports, logger.Named("scheduler")),
		reporter:    NewReporter(cfg.Thresholds, reports, logger.Named("reporter")),
		logger:      logger.Named("pipeline"),
		rawMessages: rawMessages,
		snapshots:   make(chan table.Snapshot, cfg.Pipeline.BufferSize),
		reports:     reports,
	}

	p.logger.Info("Pipeline instance created successfully",
		zap.Bool("feed_enabled", consumer != nil),
		zap.Int("buffer_size", cfg.Pipeline.BufferSize),
	)
	return p
}

// Run starts all pipeline components and waits for them to complete or context cancellation.
func (p *Pipeline) Run(ctx context.Context) error {
	sugar := p.logger.Sugar()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	pipelineErr := make(chan error, 5) // consumer, parser, updater, scheduler, reporter

	sugar.Info("Pipeline Run: Starting components...")

	if p.consumer != nil {
		wg.Add(3)
		go p.runConsumer(ctx, &wg, pipelineErr)
		go p.runParser(ctx, &wg)
		go p.runUpdater(ctx, &wg)
	}
	wg.Add(2)
	go p.runScheduler(ctx, &wg, pipelineErr)
	go p.runReporter(ctx, &wg, pipelineErr)

	var firstErr error
	select {
	case <-ctx.Done():
		sugar.Info("Pipeline Run: Context cancelled. Waiting for components to finish...")
		firstErr = ctx.Err()
	case err := <-pipelineErr:
		sugar.Errorw("Pipeline Run: Received error from a component, initiating shutdown...", zap.Error(err))
		firstErr = err
	}

	cancel()
	wg.Wait()
	sugar.Info("Pipeline Run: All components finished.")

	if firstErr != nil && !errors.Is(firstErr, context.Canceled) {
		return firstErr
	}
	return nil
}

// runConsumer executes the consumer component logic in a goroutine.
func (p *Pipeline) runConsumer(ctx context.Context, wg *sync.WaitGroup, errCh chan<- error) {
	defer wg.Done()
	defer close(p.rawMessages)

	if err := p.consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		p.logger.Error("Consumer component exited with error", zap.Error(err))
		errCh <- fmt.Errorf("%w: %w", ErrConsumerRunFailed, err)
	}
}

// runParser decodes raw feed messages into dataset snapshots.
func (p *Pipeline) runParser(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	defer close(p.snapshots)

	parserLogger := p.logger.Named("parser").Sugar()

	for {
		select {
		case rawMsg, ok := <-p.rawMessages:
			if !ok {
				parserLogger.Debug("Parser finished (raw message channel closed).")
				return
			}

			snap, err := table.ParseSnapshot(rawMsg)
			if err != nil {
				parserLogger.Warnw("Failed to parse snapshot, skipping", zap.Error(err))
				continue
			}

			select {
			case p.snapshots <- snap:
			case <-ctx.Done():
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// runUpdater replaces the named dataset with every parsed snapshot.
func (p *Pipeline) runUpdater(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	updaterLogger := p.logger.Named("updater")

	for {
		select {
		case snap, ok := <-p.snapshots:
			if !ok {
				updaterLogger.Debug("Updater finished (snapshot channel closed).")
				return
			}
			if err := p.suite.Update(snap.Dataset, snap.Rows); err != nil {
				updaterLogger.Warn("Dropping snapshot", zap.String("dataset", snap.Dataset), zap.Error(err))
				continue
			}
			updaterLogger.Debug("Dataset replaced from feed",
				zap.String("dataset", snap.Dataset),
				zap.Int("rows", len(snap.Rows)),
			)

		case <-ctx.Done():
			return
		}
	}
}

// runScheduler executes the scheduler component logic in a goroutine.
func (p *Pipeline) runScheduler(ctx context.Context, wg *sync.WaitGroup, errCh chan<- error) {
	defer wg.Done()
	defer close(p.reports)

	if err := p.scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		p.logger.Error("Scheduler component exited with error", zap.Error(err))
		errCh <- fmt.Errorf("%w: %w", ErrSchedulerRunFailed, err)
	}
}

// runReporter executes the reporter component logic in a goroutine.
func (p *Pipeline) runReporter(ctx context.Context, wg *sync.WaitGroup, errCh chan<- error) {
	defer wg.Done()

	if err := p.reporter.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		p.logger.Error("Reporter component exited with error", zap.Error(err))
		errCh <- fmt.Errorf("%w: %w", ErrReporterRunFailed, err)
	}
}
