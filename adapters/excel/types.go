package excel

// ExcelData represents a worksheet as read from an upload, before coercion
type ExcelData struct {
	Sheet   string     // Worksheet name, empty for CSV
	Headers []string   // Column headers
	Rows    [][]string // Data rows, ragged as stored
}

// Column returns the raw cells of column idx, padding short rows with ""
func (d *ExcelData) Column(idx int) []string {
	cells := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		if idx < len(row) {
			cells[i] = row[idx]
		}
	}
	return cells
}
