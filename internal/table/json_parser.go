package table

import (
	"encoding/json"
	"fmt"
)

// ParseRows parses a JSON array of objects into a Table.
// A JSON null yields a nil Table.
func ParseRows(data []byte) (Table, error) {
	var rows Table

	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrJSONUnmarshalFailed, err)
	}
	return rows, nil
}

// ParseSnapshot parses a dataset snapshot message of the form
// {"dataset": "...", "rows": [...]}.
func ParseSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot

	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrJSONUnmarshalFailed, err)
	}
	if snap.Dataset == "" {
		return Snapshot{}, ErrMissingDataset
	}
	return snap, nil
}
