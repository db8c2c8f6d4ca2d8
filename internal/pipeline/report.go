package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/sanspareilsmyn/insightlens/internal/analyzer"
)

// Report is the outcome of one scheduled analysis.
// Err is set when the analysis failed and Metrics is nil.
type Report struct {
	RunID       uuid.UUID
	Analyzer    string
	GeneratedAt time.Time
	Metrics     analyzer.Metrics
	Err         error
}

// Outcome classifies the report for metric labels.
func (r Report) Outcome() string {
	return outcomeOf(r.Err)
}
