package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"edakit/adapters/datareadiness/coercer"
	"edakit/domain/dataset"
	"edakit/internal"
	"edakit/internal/errors"
	"edakit/ports"

	"github.com/xuri/excelize/v2"
)

var _ ports.TableReaderPort = (*DataReader)(nil)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	config   ReaderConfig
	coercer  *coercer.TypeCoercer
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	return NewDataReaderWithConfig(filePath, DefaultReaderConfig())
}

// NewDataReaderWithConfig creates a reader with explicit sheet and coercion settings
func NewDataReaderWithConfig(filePath string, config ReaderConfig) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{
		filePath: filePath,
		fileType: fileType,
		config:   config,
		coercer:  coercer.NewTypeCoercer(config.CoercionConfig),
		logger:   internal.DefaultLogger.With("DataReader"),
	}
}

// ReadTable reads the file into a table. The first row is the header; every
// column's element type is inferred from its cells and empty cells are null.
func (r *DataReader) ReadTable() (*dataset.Table, error) {
	r.logger.Debug("Starting to read %s file: %s", r.fileType, r.filePath)

	// Check if file exists
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.NotFound(fmt.Sprintf("%s file %s", strings.ToUpper(r.fileType), r.filePath))
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("%s has no header row", r.filePath))
	}

	return r.processRows(rows)
}

// readExcelRows reads the configured sheet, or the first one
func (r *DataReader) readExcelRows() ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("failed to open Excel file: %w", err))
	}
	defer f.Close()

	sheet := r.config.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("failed to read sheet %s: %w", sheet, err))
	}
	r.logger.Debug("Sheet %s read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// readCSVRows reads CSV data; short records are allowed and padded later
func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("failed to open CSV file: %w", err))
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("failed to read CSV file: %w", err))
	}
	r.logger.Debug("CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// processRows turns raw string rows into typed columns
func (r *DataReader) processRows(rows [][]string) (*dataset.Table, error) {
	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	cells := make([][]string, len(headers))
	for j := range cells {
		cells[j] = make([]string, len(rows)-1)
	}
	for i, row := range rows[1:] {
		if len(row) > len(headers) {
			r.logger.Warn("row %d has %d cells, ignoring cells past column %d", i+2, len(row), len(headers))
		}
		for j := range headers {
			if j < len(row) {
				cells[j][i] = row[j]
			}
		}
	}

	columns := make([]dataset.Column, len(headers))
	for j, name := range headers {
		columns[j] = r.coercer.CoerceColumn(name, cells[j])
		r.logger.Trace("column %s inferred as %s", name, columns[j].Type)
	}

	name := strings.TrimSuffix(filepath.Base(r.filePath), filepath.Ext(r.filePath))
	t, err := dataset.NewTable(name, columns...)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}
	r.logger.Info("%s file processed (%d columns, %d rows)", strings.ToUpper(r.fileType), t.NumColumns(), t.NumRows())
	return t, nil
}
