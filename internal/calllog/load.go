// Package calllog loads call attempt records from tabular sources.
package calllog

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/ivrstats/internal/model"
	"github.com/verte-zerg/ivrstats/internal/store"
)

// Loader reads call attempts from CSV, XLSX or SQLite files.
type Loader struct {
	// Sheet selects the XLSX worksheet; the first sheet is used when empty.
	Sheet  string
	logger zerolog.Logger
}

// NewLoader creates a loader that reports soft parse failures to logger.
func NewLoader(sheet string, logger zerolog.Logger) *Loader {
	return &Loader{
		Sheet:  sheet,
		logger: logger.With().Str("component", "calllog").Logger(),
	}
}

// Load reads every record from path, choosing the reader by file extension.
func (l *Loader) Load(ctx context.Context, path string) ([]model.Record, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat input: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err := readCSV(path)
		if err != nil {
			return nil, err
		}
		return l.parse(path, rows)
	case ".xlsx", ".xlsm":
		rows, err := readXLSX(path, l.Sheet)
		if err != nil {
			return nil, err
		}
		return l.parse(path, rows)
	case ".db", ".sqlite", ".sqlite3":
		return readSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func (l *Loader) parse(path string, rows [][]string) ([]model.Record, error) {
	records, stats, err := ParseTable(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	l.logger.Debug().
		Str("path", path).
		Int("rows", stats.Rows).
		Int("blank_rows", stats.BlankRows).
		Msg("parsed call log")
	if stats.UndatedRows > 0 {
		l.logger.Warn().
			Int("rows", stats.UndatedRows).
			Msg("unparseable dates excluded from day-of-week rates")
	}
	return records, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()
	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return rows, nil
}

func readXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	// Raw values keep native date and time cells as serial numbers instead of
	// whatever display format the cell carries.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	convertSerials(rows)
	return rows, nil
}

// convertSerials rewrites numeric date and time cells in place as
// "2006-01-02" and "15:04:05" strings. Text cells are left alone.
func convertSerials(rows [][]string) {
	if len(rows) == 0 {
		return
	}
	idx, err := headerIndex(rows[0])
	if err != nil {
		return
	}
	dateCol, timeCol := idx[ColumnDate], idx[ColumnTime]
	for _, row := range rows[1:] {
		if v, ok := serial(cell(row, dateCol)); ok {
			if t, err := excelize.ExcelDateToTime(v, false); err == nil {
				row[dateCol] = t.Format(dateLayouts[0])
			}
		}
		if v, ok := serial(cell(row, timeCol)); ok {
			row[timeCol] = clockFromSerial(v)
		}
	}
}

func serial(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// clockFromSerial formats the fractional day of an Excel serial as HH:MM:SS.
func clockFromSerial(v float64) string {
	secs := int(math.Round((v - math.Floor(v)) * 86400))
	if secs >= 86400 {
		secs = 86399
	}
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}

func readSQLite(ctx context.Context, path string) ([]model.Record, error) {
	st, err := store.OpenReadOnly(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()
	cols, err := st.Columns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect db: %w", err)
	}
	present := make(map[string]bool, len(cols))
	for _, col := range cols {
		present[col] = true
	}
	for _, col := range store.RequiredColumns {
		if !present[col] {
			return nil, &MissingColumnError{Column: col}
		}
	}
	records, err := st.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}
