package analyzer

import (
	"errors"
	"fmt"
)

// ErrInvalidValue is the kind shared by every analysis failure.
var ErrInvalidValue = errors.New("invalid value")

var (
	ErrDataNotInitialized = fmt.Errorf("%w: data not initialized", ErrInvalidValue)
	ErrInsufficientData   = fmt.Errorf("%w: insufficient data available", ErrDataNotInitialized)
	ErrNoDataInRange      = fmt.Errorf("%w: no data available for the specified window", ErrInvalidValue)
	ErrInvalidWindow      = fmt.Errorf("%w: window size cannot be negative", ErrInvalidValue)
	ErrInvalidPeriod      = fmt.Errorf("%w: invalid time period", ErrInvalidValue)
	ErrNonNumericValue    = fmt.Errorf("%w: non-numeric value", ErrInvalidValue)
	ErrColumnNotFound     = fmt.Errorf("%w: column not found", ErrInvalidValue)
	ErrUnknownDataset     = errors.New("unknown dataset")
)
