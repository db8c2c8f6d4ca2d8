package table

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Row is a single record of a dataset, mapping column names to values
// as produced by JSON decoding.
type Row map[string]interface{}

// GetFloat64 retrieves a numeric value for a given column.
// Returns (nil, false) for missing keys, nulls and values that are not numbers.
// NaN is reported as absent so it is treated like a null by callers.
func (r Row) GetFloat64(key string) (*float64, bool) {
	val, exists := r[key]
	if !exists || val == nil {
		return nil, false
	}

	var fVal float64
	switch v := val.(type) {
	case float64:
		fVal = v
	case float32:
		fVal = float64(v)
	case int:
		fVal = float64(v)
	case int8:
		fVal = float64(v)
	case int16:
		fVal = float64(v)
	case int32:
		fVal = float64(v)
	case int64:
		fVal = float64(v)
	case uint:
		fVal = float64(v)
	case uint8:
		fVal = float64(v)
	case uint16:
		fVal = float64(v)
	case uint32:
		fVal = float64(v)
	case uint64:
		fVal = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil, false
		}
		fVal = parsed
	default:
		return nil, false
	}

	if math.IsNaN(fVal) {
		return nil, false
	}
	return &fVal, true
}

// IsNull reports whether the column is missing, explicitly null, or a NaN number.
func (r Row) IsNull(key string) bool {
	if !r.HasNonNull(key) {
		return true
	}
	switch v := r[key].(type) {
	case float64:
		return math.IsNaN(v)
	case float32:
		return math.IsNaN(float64(v))
	}
	return false
}

// HasNonNull checks if a key exists and its value is not explicitly null.
func (r Row) HasNonNull(key string) bool {
	val, exists := r[key]
	return exists && val != nil
}

// GetString retrieves a string value for a given column.
func (r Row) GetString(key string) (string, bool) {
	val, exists := r[key]
	if !exists || val == nil {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

// timeFormats lists the layouts accepted for string timestamps, most specific first.
var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// GetTime attempts to retrieve a time.Time value for a given column.
// Accepts time.Time values directly and strings in one of timeFormats.
// Layouts without a zone are interpreted as UTC.
func (r Row) GetTime(key string) (*time.Time, bool) {
	val, exists := r[key]
	if !exists || val == nil {
		return nil, false
	}

	switch v := val.(type) {
	case time.Time:
		return &v, true
	case *time.Time:
		if v == nil {
			return nil, false
		}
		t := *v
		return &t, true
	case string:
		for _, format := range timeFormats {
			if t, err := time.Parse(format, v); err == nil {
				return &t, true
			}
		}
	}

	return nil, false
}

// GetFieldSnippet returns a string snippet of a field's value, useful for logging.
// It handles missing keys and truncates long values to maxLength runes.
func (r Row) GetFieldSnippet(fieldName string, maxLength int) string {
	value, exists := r[fieldName]
	if !exists {
		return "<missing>"
	}

	if maxLength <= 0 {
		return "..."
	}

	runes := []rune(fmt.Sprintf("%v", value))
	if len(runes) > maxLength {
		return string(runes[:maxLength]) + "..."
	}

	return string(runes)
}
