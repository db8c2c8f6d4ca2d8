package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sanspareilsmyn/insightlens/internal/analyzer"
	"github.com/sanspareilsmyn/insightlens/internal/config"
)

// analysisJob is one analyzer call with its configured parameters bound.
type analysisJob struct {
	analyzer string
	fields   []zap.Field
	run      func() (analyzer.Metrics, error)
}

// Scheduler runs every configured analysis on a fixed interval and sends
// the resulting reports downstream.
type Scheduler struct {
	interval time.Duration
	jobs     []analysisJob
	output   chan<- Report
	logger   *zap.Logger
}

// NewScheduler creates a Scheduler for the analyzers in suite.
func NewScheduler(cfg config.PipelineConfig, analyzers config.AnalyzersConfig, suite *analyzer.Suite, output chan<- Report, logger *zap.Logger) *Scheduler {
	s := &Scheduler{
		interval: cfg.Interval,
		jobs:     buildJobs(analyzers, suite),
		output:   output,
		logger:   logger,
	}
	logger.Info("Scheduler initialized",
		zap.Duration("interval", cfg.Interval),
		zap.Int("configured_analyses", len(s.jobs)),
	)
	return s
}

func buildJobs(cfg config.AnalyzersConfig, suite *analyzer.Suite) []analysisJob {
	customer, market, operational := cfg.Customer, cfg.Market, cfg.Operational
	return []analysisJob{
		{
			analyzer: analyzer.DatasetCustomer,
			fields:   []zap.Field{zap.String("segment", customer.Segment), zap.Int("window_days", customer.WindowDays)},
			run: func() (analyzer.Metrics, error) {
				return suite.Customer.AnalyzeBehavior(customer.Segment, customer.WindowDays)
			},
		},
		{
			analyzer: analyzer.DatasetMarket,
			fields:   []zap.Field{zap.String("period", market.Period), zap.Int("window_size", market.WindowSize)},
			run: func() (analyzer.Metrics, error) {
				return suite.Market.AnalyzeTrends(market.Period, market.WindowSize)
			},
		},
		{
			analyzer: analyzer.DatasetOperational,
			fields:   []zap.Field{zap.String("key_metric", operational.KeyMetric), zap.Int("window_size", operational.WindowSize)},
			run: func() (analyzer.Metrics, error) {
				return suite.Operational.AnalyzeOperationalMetrics(operational.KeyMetric, operational.WindowSize)
			},
		},
	}
}

// Run starts the scheduler loop. It returns ctx.Err() once the context is done.
func (s *Scheduler) Run(ctx context.Context) error {
	sugar := s.logger.Sugar()
	sugar.Info("Starting scheduler loop...")
	defer sugar.Info("Scheduler loop stopped.")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case tickTime := <-ticker.C:
			sugar.Debugw("Ticker fired, running analyses", zap.Time("tick_time", tickTime))
			s.runOnce(tickTime)

		case <-ctx.Done():
			sugar.Info("Context cancelled, stopping scheduler.")
			return ctx.Err()
		}
	}
}

// runOnce executes every job under a single run ID and returns how many reports were delivered.
func (s *Scheduler) runOnce(now time.Time) int {
	runID := uuid.New()
	delivered := 0

	for _, job := range s.jobs {
		metrics, err := job.run()
		report := Report{
			RunID:       runID,
			Analyzer:    job.analyzer,
			GeneratedAt: now,
			Metrics:     metrics,
			Err:         err,
		}

		select {
		case s.output <- report:
			delivered++
		default:
			s.logger.Warn("Scheduler output channel full, dropping report",
				append([]zap.Field{
					zap.String("analyzer", job.analyzer),
					zap.Stringer("run_id", runID),
				}, job.fields...)...,
			)
		}
	}

	s.logger.Debug("Analysis run finished",
		zap.Stringer("run_id", runID),
		zap.Int("delivered", delivered),
		zap.Int("jobs", len(s.jobs)),
	)
	return delivered
}
