package coercer

import (
	"math"
	"strconv"
	"strings"
)

// CellKind classifies a raw cell
type CellKind int

const (
	CellMissing CellKind = iota
	CellNumeric
	CellInvalid
)

// Cell is the deterministic coercion of one raw cell
type Cell struct {
	Kind  CellKind
	Value float64
	Raw   string
}

// TypeCoercer handles deterministic numeric coercion of spreadsheet cells
type TypeCoercer struct {
	config  CoercionConfig
	missing map[string]struct{}
}

// CoercionConfig defines which raw strings count as missing values
type CoercionConfig struct {
	MissingTokens []string `json:"missing_tokens"` // Compared after trimming whitespace
}

// DefaultCoercionConfig returns the missing-value markers spreadsheet exports commonly use
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		MissingTokens: []string{
			"", "NA", "N/A", "n/a", "NaN", "nan", "-NaN", "-nan",
			"null", "NULL", "None", "#N/A", "#NA", "<NA>", "-",
		},
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	missing := make(map[string]struct{}, len(config.MissingTokens))
	for _, tok := range config.MissingTokens {
		missing[strings.TrimSpace(tok)] = struct{}{}
	}
	return &TypeCoercer{config: config, missing: missing}
}

// CoerceCell deterministically classifies a raw cell as missing, numeric or invalid
func (c *TypeCoercer) CoerceCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)

	if _, ok := c.missing[trimmed]; ok {
		return Cell{Kind: CellMissing, Raw: raw}
	}

	if val, ok := c.tryParseNumeric(trimmed); ok {
		return Cell{Kind: CellNumeric, Value: val, Raw: raw}
	}

	return Cell{Kind: CellInvalid, Raw: raw}
}

// tryParseNumeric accepts plain decimal and scientific notation only.
// Thousands separators, currency symbols and infinities are rejected.
func (c *TypeCoercer) tryParseNumeric(strVal string) (float64, bool) {
	if strVal == "" {
		return 0, false
	}

	lower := strings.ToLower(strVal)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") || strings.HasPrefix(lower, "0x") {
		return 0, false
	}
	if strings.ContainsRune(strVal, '_') {
		return 0, false
	}

	val, err := strconv.ParseFloat(strVal, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// AnalyzeColumn counts how a column's cells coerce
func (c *TypeCoercer) AnalyzeColumn(values []string) ColumnAnalysis {
	analysis := ColumnAnalysis{TotalCount: len(values)}
	for _, v := range values {
		switch c.CoerceCell(v).Kind {
		case CellMissing:
			analysis.MissingCount++
		case CellNumeric:
			analysis.NumericCount++
		default:
			analysis.InvalidCount++
		}
	}
	if present := analysis.TotalCount - analysis.MissingCount; present > 0 {
		analysis.NumericRatio = float64(analysis.NumericCount) / float64(present)
	}
	return analysis
}

// ColumnAnalysis contains the results of coercing a whole column
type ColumnAnalysis struct {
	TotalCount   int     `json:"total_count"`
	MissingCount int     `json:"missing_count"`
	NumericCount int     `json:"numeric_count"`
	InvalidCount int     `json:"invalid_count"`
	NumericRatio float64 `json:"numeric_ratio"` // Of non-missing cells
}
