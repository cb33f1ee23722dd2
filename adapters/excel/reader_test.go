package excel

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"meangate/domain/core"
	"meangate/domain/stats"
	"meangate/internal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestReader() *DataReader {
	return NewDataReader(DefaultExcelConfig(), internal.NewLoggerWithOutput(internal.LogLevelError, io.Discard, false))
}

// buildWorkbook writes column A of the named sheet, header first
func buildWorkbook(t *testing.T, sheet string, cells ...interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for i, v := range cells {
		if v == nil {
			continue
		}
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, axis, v))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadSample_CSV(t *testing.T) {
	r := newTestReader()

	sample, err := r.ReadSample("datos.csv", strings.NewReader("valor,otro\n14.6,a\n14.65,b\n14.7,c\n"))

	require.NoError(t, err)
	assert.Equal(t, stats.Sample{14.6, 14.65, 14.7}, sample)
}

func TestReadSample_CSVDropsMissing(t *testing.T) {
	r := newTestReader()
	input := "valor\n14.6\n\nNA\n14.7\nNaN\n#N/A\n14.8\n"

	sample, err := r.ReadSample("DATOS.CSV", strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, stats.Sample{14.6, 14.7, 14.8}, sample)
}

func TestReadSample_CSVRaggedRows(t *testing.T) {
	r := newTestReader()

	sample, err := r.ReadSample("datos.csv", strings.NewReader("valor,nota\n1\n2,x\n,y\n3\n"))

	require.NoError(t, err)
	assert.Equal(t, stats.Sample{1, 2, 3}, sample)
}

func TestReadSample_CSVHeaderWithBOM(t *testing.T) {
	r := newTestReader()

	data, err := r.ReadData("datos.csv", strings.NewReader("\ufeffvalor\n1\n"))

	require.NoError(t, err)
	assert.Equal(t, []string{"valor"}, data.Headers)
}

func TestReadSample_NonNumericCell(t *testing.T) {
	r := newTestReader()

	_, err := r.ReadSample("datos.csv", strings.NewReader("valor\n14.6\nabc\n14.7\n"))

	require.Error(t, err)
	assert.True(t, core.IsExtractionError(err))
	assert.Contains(t, err.Error(), "row 3")
	assert.Contains(t, err.Error(), `"abc"`)
}

func TestReadSample_EmptyColumn(t *testing.T) {
	r := newTestReader()

	tests := []struct {
		name  string
		input string
	}{
		{"no rows", ""},
		{"header only", "valor\n"},
		{"only missing", "valor\nNA\n\n-\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.ReadSample("datos.csv", strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, core.IsExtractionError(err))
		})
	}
}

func TestReadSample_MalformedCSV(t *testing.T) {
	r := newTestReader()

	_, err := r.ReadSample("datos.csv", strings.NewReader("valor\n\"14.6\n"))

	require.Error(t, err)
	assert.True(t, core.IsExtractionError(err))
}

func TestReadSample_Workbook(t *testing.T) {
	r := newTestReader()
	buf := buildWorkbook(t, "Sheet1", "valor", 14.6, 14.65, nil, 14.7, "NA", 14.75, 14.8)

	sample, err := r.ReadSample("datos.xlsx", buf)

	require.NoError(t, err)
	assert.Equal(t, stats.Sample{14.6, 14.65, 14.7, 14.75, 14.8}, sample)
}

func TestReadSample_WorkbookUsesFirstSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "Datos"))
	_, err := f.NewSheet("Otra")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Datos", "A1", "valor"))
	require.NoError(t, f.SetCellValue("Datos", "A2", 1.5))
	require.NoError(t, f.SetCellValue("Datos", "A3", 2.5))
	require.NoError(t, f.SetCellValue("Otra", "A1", "valor"))
	require.NoError(t, f.SetCellValue("Otra", "A2", 99.0))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	r := newTestReader()
	data, err := r.ReadData("datos.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "Datos", data.Sheet)

	sample, err := r.ReadSample("datos.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, stats.Sample{1.5, 2.5}, sample)
}

func TestReadSample_WorkbookNonNumeric(t *testing.T) {
	r := newTestReader()
	buf := buildWorkbook(t, "Hoja1", "valor", 1.0, "uno", 2.0)

	_, err := r.ReadSample("datos.xlsx", buf)

	require.Error(t, err)
	assert.True(t, core.IsExtractionError(err))
	assert.Contains(t, err.Error(), "row 3")
}

func TestReadSample_NotAWorkbook(t *testing.T) {
	r := newTestReader()

	_, err := r.ReadSample("datos.xlsx", strings.NewReader("definitely not a zip"))

	require.Error(t, err)
	assert.True(t, core.IsExtractionError(err))
}

func TestReadSample_UnknownExtensionIsWorkbook(t *testing.T) {
	r := newTestReader()
	buf := buildWorkbook(t, "Sheet1", "valor", 3.0, 4.0)

	sample, err := r.ReadSample("muestra", buf)

	require.NoError(t, err)
	assert.Equal(t, stats.Sample{3, 4}, sample)
}

func TestReadData_NilSource(t *testing.T) {
	r := newTestReader()

	_, err := r.ReadData("datos.csv", nil)

	assert.True(t, core.IsInputAbsent(err))
}

func TestReadSample_SecondColumnWithoutHeader(t *testing.T) {
	config := DefaultExcelConfig()
	config.SampleColumn = 1
	config.HasHeader = false
	r := NewDataReader(config, internal.NewLoggerWithOutput(internal.LogLevelError, io.Discard, false))

	sample, err := r.ReadSample("datos.csv", strings.NewReader("a,1\nb,x\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Nil(t, sample)

	sample, err = r.ReadSample("datos.csv", strings.NewReader("a,1\nb,2\n"))
	require.NoError(t, err)
	assert.Equal(t, stats.Sample{1, 2}, sample)
}

func TestReadSample_LogsColumnAnalysis(t *testing.T) {
	var logs bytes.Buffer
	r := NewDataReader(DefaultExcelConfig(), internal.NewLoggerWithOutput(internal.LogLevelDebug, &logs, false))

	sample, err := r.ReadSample("datos.csv", strings.NewReader("valor\n14.6\nNA\n-\n14.7\n"))

	require.NoError(t, err)
	assert.Equal(t, stats.Sample{14.6, 14.7}, sample)
	assert.Contains(t, logs.String(), "datos.csv: 4 cells, 2 numeric, 2 missing, 0 invalid")
}
