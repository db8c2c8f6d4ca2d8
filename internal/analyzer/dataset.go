package analyzer

import (
	"sync"

	"github.com/sanspareilsmyn/insightlens/internal/table"
)

// Dataset holds one in-memory table that is replaced wholesale on update.
type Dataset struct {
	name string

	mu   sync.RWMutex
	rows table.Table
}

func newDataset(name string) *Dataset {
	return &Dataset{name: name}
}

// Name returns the dataset name used for routing and metric labels.
func (d *Dataset) Name() string {
	return d.name
}

// replace swaps in the new table without merging or validating it.
func (d *Dataset) replace(rows table.Table) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rows = rows
	datasetRows.WithLabelValues(d.name).Set(float64(len(rows)))
}

// snapshot returns the currently held table and whether one is held.
func (d *Dataset) snapshot() (table.Table, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.rows, d.rows != nil
}

// Len returns the number of rows currently held.
func (d *Dataset) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.rows)
}
