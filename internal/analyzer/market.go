package analyzer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sanspareilsmyn/insightlens/internal/table"
)

const (
	DefaultTrendPeriod     = "7D"
	DefaultTrendWindowSize = 30

	ColumnDate    = "date"
	ColumnRevenue = "revenue"

	MetricAverageGrowth = "average_growth"
	MetricMaxRevenue    = "max_revenue"
	MetricMinRevenue    = "min_revenue"
)

// MarketTrendAnalyzer computes revenue statistics over a recent period of a market data feed.
type MarketTrendAnalyzer struct {
	data   *Dataset
	now    func() time.Time
	logger *zap.Logger
}

// NewMarketTrendAnalyzer creates an analyzer with no data held.
func NewMarketTrendAnalyzer(logger *zap.Logger, opts ...Option) *MarketTrendAnalyzer {
	o := buildOptions(opts)
	return &MarketTrendAnalyzer{
		data:   newDataset(DatasetMarket),
		now:    o.now,
		logger: logger,
	}
}

// UpdateData replaces the held market data feed.
func (a *MarketTrendAnalyzer) UpdateData(rows table.Table) {
	a.data.replace(rows)
	a.logger.Info("Market data updated successfully",
		zap.String("dataset", a.data.Name()),
		zap.Int("rows", len(rows)),
	)
}

// Dataset exposes the underlying holder.
func (a *MarketTrendAnalyzer) Dataset() *Dataset {
	return a.data
}

// AnalyzeTrends computes revenue mean, max and min over rows dated within the
// last period. The feed must hold at least windowSize rows.
func (a *MarketTrendAnalyzer) AnalyzeTrends(period string, windowSize int) (Metrics, error) {
	metrics, err := a.trendData(period, windowSize)
	if err != nil {
		a.logger.Error("Error in trend analysis",
			zap.String("period", period),
			zap.Int("window_size", windowSize),
			zap.Error(err),
		)
		return nil, err
	}

	a.logger.Info("Trend analysis completed successfully",
		zap.String("period", period),
		zap.Int("window_size", windowSize),
	)
	return metrics, nil
}

func (a *MarketTrendAnalyzer) trendData(period string, windowSize int) (Metrics, error) {
	rows, ok := a.data.snapshot()
	if !ok {
		return nil, fmt.Errorf("%w: market data not initialized", ErrInsufficientData)
	}
	if err := validateWindow(windowSize); err != nil {
		return nil, err
	}
	if len(rows) < windowSize {
		return nil, fmt.Errorf("%w: have %d rows, need %d", ErrInsufficientData, len(rows), windowSize)
	}

	span, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	end := a.now()
	start := end.Add(-span)
	selected := rows.Filter(func(row table.Row) bool {
		return within(row, ColumnDate, start, end)
	})
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: period %s", ErrNoDataInRange, period)
	}

	revenue, err := Summarize(selected, ColumnRevenue)
	if err != nil {
		return nil, err
	}

	return Metrics{
		MetricAverageGrowth: revenue.Mean,
		MetricMaxRevenue:    revenue.Max,
		MetricMinRevenue:    revenue.Min,
	}, nil
}
