package table

import "errors"

var (
	ErrJSONUnmarshalFailed = errors.New("failed to unmarshal JSON")
	ErrMissingDataset      = errors.New("snapshot dataset name cannot be empty")
)
