package analyzer

import (
	"fmt"
	"math"

	"github.com/sanspareilsmyn/insightlens/internal/table"
)

// Metrics maps metric names to their computed values for one analysis call.
type Metrics map[string]float64

// Summary is the reduction of one numeric column over a selection of rows.
type Summary struct {
	Count     int
	NullCount int
	Mean      float64
	Max       float64
	Min       float64
}

// Summarize reduces column over rows.
// Null, missing and NaN values are skipped; when no value remains Mean, Max and Min are NaN.
// A non-null value that is not a number fails the whole reduction.
func Summarize(rows table.Table, column string) (Summary, error) {
	s := Summary{
		Mean: math.NaN(),
		Max:  math.NaN(),
		Min:  math.NaN(),
	}

	present := false
	sum := 0.0
	for i, row := range rows {
		if _, exists := row[column]; exists {
			present = true
		}
		if row.IsNull(column) {
			s.NullCount++
			continue
		}

		v, ok := row.GetFloat64(column)
		if !ok {
			return Summary{}, fmt.Errorf("%w: column %q row %d: %s",
				ErrNonNumericValue, column, i, row.GetFieldSnippet(column, 50))
		}

		if s.Count == 0 || *v > s.Max {
			s.Max = *v
		}
		if s.Count == 0 || *v < s.Min {
			s.Min = *v
		}
		sum += *v
		s.Count++
	}

	if len(rows) > 0 && !present {
		return Summary{}, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}

	if s.Count > 0 {
		s.Mean = sum / float64(s.Count)
	}
	return s, nil
}
