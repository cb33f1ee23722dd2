package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"meangate/adapters/datareadiness/coercer"
	"meangate/domain/core"
	"meangate/domain/stats"
	"meangate/internal"

	"github.com/xuri/excelize/v2"
)

const (
	fileTypeCSV  = "csv"
	fileTypeXLSX = "xlsx"
)

// DataReader handles reading Excel and CSV uploads into a sample
type DataReader struct {
	config  ExcelConfig
	coercer *coercer.TypeCoercer
	logger  *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(config ExcelConfig, logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{
		config:  config,
		coercer: coercer.NewTypeCoercer(config.CoercionConfig),
		logger:  logger,
	}
}

// fileTypeOf picks the parser from the filename; anything not .csv is treated as a workbook
func fileTypeOf(filename string) string {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return fileTypeCSV
	}
	return fileTypeXLSX
}

// ReadSample extracts the configured column of the upload as a sample.
// Missing cells are dropped; any other non-numeric cell fails the whole extraction.
func (r *DataReader) ReadSample(filename string, src io.Reader) (stats.Sample, error) {
	data, err := r.ReadData(filename, src)
	if err != nil {
		return nil, err
	}
	if len(data.Rows) == 0 {
		return nil, core.NewExtractionError("file has no data rows")
	}

	firstDataRow := 1
	if r.config.HasHeader {
		firstDataRow = 2
	}

	cells := data.Column(r.config.SampleColumn)
	analysis := r.coercer.AnalyzeColumn(cells)
	r.logger.Debug("[DataReader] %s: %d cells, %d numeric, %d missing, %d invalid",
		filename, analysis.TotalCount, analysis.NumericCount, analysis.MissingCount, analysis.InvalidCount)

	if analysis.NumericCount == 0 && analysis.InvalidCount == 0 {
		return nil, core.NewExtractionError(fmt.Sprintf("column %d has no numeric values", r.config.SampleColumn+1))
	}

	sample := make(stats.Sample, 0, analysis.NumericCount)
	for i, raw := range cells {
		cell := r.coercer.CoerceCell(raw)
		switch cell.Kind {
		case coercer.CellMissing:
		case coercer.CellNumeric:
			sample = append(sample, cell.Value)
		default:
			return nil, core.NewCellError(firstDataRow+i, strings.TrimSpace(raw))
		}
	}

	return sample, nil
}

// ReadData reads an upload into headers and raw rows
func (r *DataReader) ReadData(filename string, src io.Reader) (*ExcelData, error) {
	if src == nil {
		return nil, core.ErrInputAbsent
	}

	fileType := fileTypeOf(filename)
	r.logger.Debug("[DataReader] Starting to read %s file: %s", fileType, filename)

	var (
		sheet string
		rows  [][]string
		err   error
	)
	switch fileType {
	case fileTypeCSV:
		rows, err = r.readCSVRows(src)
	default:
		sheet, rows, err = r.readExcelRows(src)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, core.NewExtractionError(fmt.Sprintf("%s file is empty", strings.ToUpper(fileType)))
	}

	return r.processRows(sheet, rows), nil
}

// readExcelRows reads the first worksheet, in workbook order, as raw cell values
func (r *DataReader) readExcelRows(src io.Reader) (string, [][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		return "", nil, core.NewExtractionError(fmt.Sprintf("failed to open Excel file: %v", err))
	}
	defer f.Close()
	r.logger.Trace("[DataReader] Excel file opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, core.NewExtractionError("workbook has no sheets")
	}
	sheet := sheets[0]

	readStart := time.Now()
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return "", nil, core.NewExtractionError(fmt.Sprintf("failed to read sheet %q: %v", sheet, err))
	}
	r.logger.Trace("[DataReader] %s read in %.2fms (%d rows)", sheet, float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return sheet, rows, nil
}

// readCSVRows reads CSV rows, allowing ragged records
func (r *DataReader) readCSVRows(src io.Reader) ([][]string, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, core.NewExtractionError(fmt.Sprintf("failed to read CSV file: %v", err))
	}
	r.logger.Trace("[DataReader] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// processRows splits off the header row when configured
func (r *DataReader) processRows(sheet string, rows [][]string) *ExcelData {
	data := &ExcelData{Sheet: sheet}

	body := rows
	if r.config.HasHeader {
		headerRow := rows[0]
		data.Headers = make([]string, len(headerRow))
		for i, header := range headerRow {
			data.Headers[i] = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
		}
		body = rows[1:]
	}
	data.Rows = body

	return data
}
