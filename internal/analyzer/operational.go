package analyzer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sanspareilsmyn/insightlens/internal/table"
)

const (
	DefaultKeyMetric             = "revenue"
	DefaultOperationalWindowSize = 30

	MetricAverageChange = "average_change"
	MetricMaxValue      = "max_value"
	MetricMinValue      = "min_value"
)

// OperationalInsights summarizes a caller-selected metric column over the most recent rows.
type OperationalInsights struct {
	data   *Dataset
	logger *zap.Logger
}

// NewOperationalInsights creates an analyzer with no data held.
// Row windows are positional, so it takes no clock.
func NewOperationalInsights(logger *zap.Logger) *OperationalInsights {
	return &OperationalInsights{
		data:   newDataset(DatasetOperational),
		logger: logger,
	}
}

// UpdateData replaces the held operational data.
func (a *OperationalInsights) UpdateData(rows table.Table) {
	a.data.replace(rows)
	a.logger.Info("Operational data updated successfully",
		zap.String("dataset", a.data.Name()),
		zap.Int("rows", len(rows)),
	)
}

// Dataset exposes the underlying holder.
func (a *OperationalInsights) Dataset() *Dataset {
	return a.data
}

// AnalyzeOperationalMetrics computes mean, max and min of keyMetric over the
// last windowSize rows.
func (a *OperationalInsights) AnalyzeOperationalMetrics(keyMetric string, windowSize int) (Metrics, error) {
	metrics, err := a.computeOperationalMetrics(keyMetric, windowSize)
	if err != nil {
		a.logger.Error("Error in operational metrics analysis",
			zap.String("key_metric", keyMetric),
			zap.Int("window_size", windowSize),
			zap.Error(err),
		)
		return nil, err
	}

	a.logger.Info("Operational metrics analysis completed successfully",
		zap.String("key_metric", keyMetric),
		zap.Int("window_size", windowSize),
	)
	return metrics, nil
}

func (a *OperationalInsights) computeOperationalMetrics(keyMetric string, windowSize int) (Metrics, error) {
	rows, ok := a.data.snapshot()
	if !ok {
		return nil, fmt.Errorf("%w: operational data", ErrDataNotInitialized)
	}
	if err := validateWindow(windowSize); err != nil {
		return nil, err
	}

	recent := rows.Tail(windowSize)
	if len(recent) == 0 {
		return nil, fmt.Errorf("%w: last %d rows", ErrNoDataInRange, windowSize)
	}

	s, err := Summarize(recent, keyMetric)
	if err != nil {
		return nil, err
	}

	return Metrics{
		MetricAverageChange: s.Mean,
		MetricMaxValue:      s.Max,
		MetricMinValue:      s.Min,
	}, nil
}
