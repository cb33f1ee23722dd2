package excel

import (
	"meangate/adapters/datareadiness/coercer"
)

// ExcelConfig holds configuration for spreadsheet sample extraction
type ExcelConfig struct {
	CoercionConfig coercer.CoercionConfig `json:"coercion_config"`
	SampleColumn   int                    `json:"sample_column"` // Zero-based
	HasHeader      bool                   `json:"has_header"`
}

// DefaultExcelConfig reads the first column and treats the first row as its header
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		CoercionConfig: coercer.DefaultCoercionConfig(),
		SampleColumn:   0,
		HasHeader:      true,
	}
}
