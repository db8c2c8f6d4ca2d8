package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sanspareilsmyn/insightlens/internal/table"
)

func marketRows(revenues map[int]interface{}) table.Table {
	rows := table.Table{}
	for ago, revenue := range revenues {
		rows = append(rows, table.Row{ColumnDate: daysAgo(ago), ColumnRevenue: revenue})
	}
	return rows
}

func TestMarketTrend_Uninitialized(t *testing.T) {
	a := NewMarketTrendAnalyzer(zap.NewNop(), WithClock(fixedClock))

	_, err := a.AnalyzeTrends(DefaultTrendPeriod, DefaultTrendWindowSize)
	require.ErrorIs(t, err, ErrInsufficientData)
	require.ErrorIs(t, err, ErrDataNotInitialized)
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestMarketTrend_ComputesStatistics(t *testing.T) {
	a := NewMarketTrendAnalyzer(zap.NewNop(), WithClock(fixedClock))
	a.UpdateData(marketRows(map[int]interface{}{1: 10, 3: 20, 6: 30, 20: 1000}))

	metrics, err := a.AnalyzeTrends("7D", 4)
	require.NoError(t, err)
	assert.Equal(t, Metrics{
		MetricAverageGrowth: 20,
		MetricMaxRevenue:    30,
		MetricMinRevenue:    10,
	}, metrics)
}

func TestMarketTrend_FewerRowsThanWindow(t *testing.T) {
	a := NewMarketTrendAnalyzer(zap.NewNop(), WithClock(fixedClock))
	a.UpdateData(marketRows(map[int]interface{}{1: 10, 2: 20}))

	_, err := a.AnalyzeTrends("7D", 3)
	require.ErrorIs(t, err, ErrInsufficientData)

	_, err = a.AnalyzeTrends("7D", 2)
	require.NoError(t, err)
}

func TestMarketTrend_AllOutsidePeriod(t *testing.T) {
	a := NewMarketTrendAnalyzer(zap.NewNop(), WithClock(fixedClock))
	a.UpdateData(marketRows(map[int]interface{}{10: 10, 12: 20}))

	_, err := a.AnalyzeTrends("7D", 0)
	require.ErrorIs(t, err, ErrNoDataInRange)
}

func TestMarketTrend_FutureRowsExcluded(t *testing.T) {
	a := NewMarketTrendAnalyzer(zap.NewNop(), WithClock(fixedClock))
	a.UpdateData(table.Table{
		{ColumnDate: fixedNow.Add(24 * time.Hour), ColumnRevenue: 500},
		{ColumnDate: daysAgo(1), ColumnRevenue: 50},
	})

	metrics, err := a.AnalyzeTrends("7D", 0)
	require.NoError(t, err)
	assert.Equal(t, 50.0, metrics[MetricMaxRevenue])
}

func TestMarketTrend_PeriodChangesSelection(t *testing.T) {
	a := NewMarketTrendAnalyzer(zap.NewNop(), WithClock(fixedClock))
	a.UpdateData(marketRows(map[int]interface{}{1: 10, 20: 40}))

	week, err := a.AnalyzeTrends("7D", 0)
	require.NoError(t, err)
	month, err := a.AnalyzeTrends("30D", 0)
	require.NoError(t, err)

	assert.Equal(t, 10.0, week[MetricMaxRevenue])
	assert.Equal(t, 40.0, month[MetricMaxRevenue])
	assert.Equal(t, 25.0, month[MetricAverageGrowth])
}

func TestMarketTrend_DateStrings(t *testing.T) {
	a := NewMarketTrendAnalyzer(zap.NewNop(), WithClock(fixedClock))
	a.UpdateData(table.Table{
		{ColumnDate: "2026-10-13", ColumnRevenue: 12.5},
		{ColumnDate: "2026-09-01", ColumnRevenue: 99.0},
	})

	metrics, err := a.AnalyzeTrends("1W", 2)
	require.NoError(t, err)
	assert.Equal(t, 12.5, metrics[MetricAverageGrowth])
}

func TestMarketTrend_InvalidArguments(t *testing.T) {
	a := NewMarketTrendAnalyzer(zap.NewNop(), WithClock(fixedClock))
	a.UpdateData(marketRows(map[int]interface{}{1: 10}))

	_, err := a.AnalyzeTrends("seven days", 1)
	require.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = a.AnalyzeTrends("7D", -1)
	require.ErrorIs(t, err, ErrInvalidWindow)

	_, err = a.AnalyzeTrends("213504D", 0)
	require.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestMarketTrend_DuplicateDates(t *testing.T) {
	a := NewMarketTrendAnalyzer(zap.NewNop(), WithClock(fixedClock))
	sameDay := daysAgo(2)
	a.UpdateData(table.Table{
		{ColumnDate: sameDay, ColumnRevenue: 10.0},
		{ColumnDate: sameDay, ColumnRevenue: 50.0},
		{ColumnDate: daysAgo(4), ColumnRevenue: 30.0},
	})

	metrics, err := a.AnalyzeTrends("7D", 3)
	require.NoError(t, err)
	assert.Equal(t, Metrics{
		MetricAverageGrowth: 30,
		MetricMaxRevenue:    50,
		MetricMinRevenue:    10,
	}, metrics)
}

func TestMarketTrend_MissingRevenueColumn(t *testing.T) {
	a := NewMarketTrendAnalyzer(zap.NewNop(), WithClock(fixedClock))
	a.UpdateData(table.Table{{ColumnDate: daysAgo(1), "sales": 10.0}})

	_, err := a.AnalyzeTrends("7D", 1)
	require.ErrorIs(t, err, ErrColumnNotFound)
}
