package pipeline

import (
	"context"
	"errors"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/sanspareilsmyn/insightlens/internal/analyzer"
	"github.com/sanspareilsmyn/insightlens/internal/config"
)

const (
	outcomeSuccess       = "success"
	outcomeNoData        = "no_data"
	outcomeUninitialized = "uninitialized"
	outcomeInvalid       = "invalid"
	outcomeError         = "error"
)

var (
	analysisMetricValue = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "insightlens_analysis_metric_value",
			Help: "Latest value of a metric computed by a scheduled analysis.",
		},
		[]string{"analyzer", "metric"},
	)
	analysisRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insightlens_analysis_runs_total",
			Help: "Total number of scheduled analyses by outcome.",
		},
		[]string{"analyzer", "outcome"},
	)
	thresholdViolations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insightlens_threshold_violations_total",
			Help: "Total number of threshold violations detected for an analyzer metric.",
		},
		[]string{"analyzer", "metric", "comparison"},
	)
)

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, analyzer.ErrDataNotInitialized):
		return outcomeUninitialized
	case errors.Is(err, analyzer.ErrNoDataInRange):
		return outcomeNoData
	case errors.Is(err, analyzer.ErrInvalidValue):
		return outcomeInvalid
	default:
		return outcomeError
	}
}

// Reporter receives analysis reports, exports them as Prometheus metrics and
// checks them against configured thresholds.
type Reporter struct {
	thresholds map[string][]config.ThresholdConfig // keyed by analyzer
	input      <-chan Report
	logger     *zap.Logger
}

// NewReporter creates a new Reporter instance.
func NewReporter(thresholds []config.ThresholdConfig, input <-chan Report, logger *zap.Logger) *Reporter {
	byAnalyzer := make(map[string][]config.ThresholdConfig)
	for _, th := range thresholds {
		byAnalyzer[th.Analyzer] = append(byAnalyzer[th.Analyzer], th)
	}

	logger.Debug("Reporter initialized", zap.Int("threshold_count", len(thresholds)))

	return &Reporter{
		thresholds: byAnalyzer,
		input:      input,
		logger:     logger,
	}
}

// Run starts the reporter loop.
func (r *Reporter) Run(ctx context.Context) error {
	sugar := r.logger.Sugar()
	sugar.Info("Starting reporter loop...")
	defer sugar.Info("Reporter loop stopped.")

	for {
		select {
		case report, ok := <-r.input:
			if !ok {
				sugar.Info("Reporter input channel closed.")
				return nil
			}
			r.processReport(report)

		case <-ctx.Done():
			sugar.Info("Context cancelled, stopping reporter.")
			return ctx.Err()
		}
	}
}

// processReport updates Prometheus metrics, checks thresholds and logs the report.
func (r *Reporter) processReport(report Report) {
	outcome := report.Outcome()
	analysisRuns.WithLabelValues(report.Analyzer, outcome).Inc()

	if report.Err != nil {
		r.logger.Warn("Scheduled analysis produced no metrics",
			zap.String("analyzer", report.Analyzer),
			zap.Stringer("run_id", report.RunID),
			zap.String("outcome", outcome),
			zap.Error(report.Err),
		)
		return
	}

	fields := []zap.Field{
		zap.String("analyzer", report.Analyzer),
		zap.Stringer("run_id", report.RunID),
		zap.Time("generated_at", report.GeneratedAt),
	}
	for name, value := range report.Metrics {
		analysisMetricValue.WithLabelValues(report.Analyzer, name).Set(value)
		fields = append(fields, zap.Float64(name, value))
	}

	for _, th := range r.thresholds[report.Analyzer] {
		value, ok := report.Metrics[th.Metric]
		if !ok {
			r.logger.Debug("Threshold metric not produced by analyzer",
				zap.String("analyzer", report.Analyzer),
				zap.String("metric", th.Metric),
			)
			continue
		}
		r.checkThreshold(report, th, value)
	}

	r.logger.Info("Analysis report processed", fields...)
}

// checkThreshold logs and counts a violation of either bound. NaN never violates.
func (r *Reporter) checkThreshold(report Report, th config.ThresholdConfig, actual float64) {
	if math.IsNaN(actual) {
		return
	}
	if th.Min != nil && actual < *th.Min {
		r.violation(report, th.Metric, actual, *th.Min, "<")
	}
	if th.Max != nil && actual > *th.Max {
		r.violation(report, th.Metric, actual, *th.Max, ">")
	}
}

func (r *Reporter) violation(report Report, metric string, actual, threshold float64, comparison string) {
	r.logger.Warn("Threshold violation",
		zap.String("analyzer", report.Analyzer),
		zap.String("metric", metric),
		zap.Stringer("run_id", report.RunID),
		zap.Float64("actual", actual),
		zap.Float64("threshold", threshold),
		zap.String("comparison", comparison),
	)
	thresholdViolations.WithLabelValues(report.Analyzer, metric, comparison).Inc()
}
