package excel

import (
	"edakit/adapters/datareadiness/coercer"
)

// ReaderConfig holds configuration for file data sources
type ReaderConfig struct {
	SheetName      string                 `json:"sheet_name"` // empty means the first sheet
	CoercionConfig coercer.CoercionConfig `json:"coercion_config"`
}

// DefaultReaderConfig returns sensible defaults for CSV and XLSX processing
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		CoercionConfig: coercer.DefaultCoercionConfig(),
	}
}
