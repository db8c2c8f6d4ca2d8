package analyzer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sanspareilsmyn/insightlens/internal/table"
)

const (
	DefaultSegment            = "loyal"
	DefaultBehaviorWindowDays = 30

	ColumnSegment            = "segment"
	ColumnTimestamp          = "timestamp"
	ColumnPurchaseCount      = "purchase_count"
	ColumnRevenuePerPurchase = "revenue_per_purchase"

	MetricPurchaseFrequency = "purchase_frequency"
	MetricAverageSpending   = "average_spending"
)

// CustomerBehaviorAnalyzer computes purchase metrics for one customer segment
// over the most recent days of behavior data.
type CustomerBehaviorAnalyzer struct {
	data   *Dataset
	now    func() time.Time
	logger *zap.Logger
}

// NewCustomerBehaviorAnalyzer creates an analyzer with no data held.
func NewCustomerBehaviorAnalyzer(logger *zap.Logger, opts ...Option) *CustomerBehaviorAnalyzer {
	o := buildOptions(opts)
	return &CustomerBehaviorAnalyzer{
		data:   newDataset(DatasetCustomer),
		now:    o.now,
		logger: logger,
	}
}

// UpdateData replaces the held behavior data.
func (a *CustomerBehaviorAnalyzer) UpdateData(rows table.Table) {
	a.data.replace(rows)
	a.logger.Info("Customer behavior data updated successfully",
		zap.String("dataset", a.data.Name()),
		zap.Int("rows", len(rows)),
	)
}

// Dataset exposes the underlying holder.
func (a *CustomerBehaviorAnalyzer) Dataset() *Dataset {
	return a.data
}

// AnalyzeBehavior computes purchase_frequency and average_spending for rows of
// segment whose timestamp falls within the last windowDays days.
func (a *CustomerBehaviorAnalyzer) AnalyzeBehavior(segment string, windowDays int) (Metrics, error) {
	metrics, err := a.computeBehaviorMetrics(segment, windowDays)
	if err != nil {
		a.logger.Error("Error in customer behavior analysis",
			zap.String("segment", segment),
			zap.Int("window_days", windowDays),
			zap.Error(err),
		)
		return nil, err
	}

	a.logger.Info("Customer behavior analysis completed successfully",
		zap.String("segment", segment),
		zap.Int("window_days", windowDays),
	)
	return metrics, nil
}

func (a *CustomerBehaviorAnalyzer) computeBehaviorMetrics(segment string, windowDays int) (Metrics, error) {
	rows, ok := a.data.snapshot()
	if !ok {
		return nil, fmt.Errorf("%w: behavior data", ErrDataNotInitialized)
	}
	if err := validateWindow(windowDays); err != nil {
		return nil, err
	}

	start := dayWindowStart(a.now(), windowDays)
	selected := rows.Filter(func(row table.Row) bool {
		s, ok := row.GetString(ColumnSegment)
		return ok && s == segment && within(row, ColumnTimestamp, start, time.Time{})
	})
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: segment %q, last %d days", ErrNoDataInRange, segment, windowDays)
	}

	purchases, err := Summarize(selected, ColumnPurchaseCount)
	if err != nil {
		return nil, err
	}
	spending, err := Summarize(selected, ColumnRevenuePerPurchase)
	if err != nil {
		return nil, err
	}

	return Metrics{
		MetricPurchaseFrequency: purchases.Mean,
		MetricAverageSpending:   spending.Mean,
	}, nil
}
