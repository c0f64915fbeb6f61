package calllog

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/ivrstats/internal/model"
)

// Source column names.
const (
	ColumnConsent  = "Consent Result"
	ColumnTime     = "IVR Time Attempted"
	ColumnDate     = "IVR Date Attempted"
	ColumnDuration = "Call Duration [s]"
)

// RequiredColumns lists the header names every tabular source must carry.
var RequiredColumns = []string{ColumnConsent, ColumnTime, ColumnDate, ColumnDuration}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
	"1/2/06",
	"01-02-06",
	"1/2/2006 15:04",
	"1/2/06 15:04",
	"02-Jan-06",
	"2-Jan-2006",
}

var (
	errNotNumber = errors.New("not a number")
	errNegative  = errors.New("must not be negative")
	errNotFinite = errors.New("must be finite")
	utf8BOM      = "\ufeff"
)

// ParseStats counts soft failures seen while parsing.
type ParseStats struct {
	Rows        int
	BlankRows   int
	UndatedRows int
}

// ParseDate parses a calendar date using the accepted layouts.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// ParseDuration parses a call duration in seconds. Blank values count as zero.
func ParseDuration(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errNotNumber
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	if v < 0 {
		return 0, errNegative
	}
	return v, nil
}

// ParseTable converts a header row plus data rows into records.
func ParseTable(rows [][]string) ([]model.Record, ParseStats, error) {
	var stats ParseStats
	if len(rows) == 0 {
		return nil, stats, &MissingColumnError{Column: RequiredColumns[0]}
	}
	idx, err := headerIndex(rows[0])
	if err != nil {
		return nil, stats, err
	}

	records := make([]model.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlank(row) {
			stats.BlankRows++
			continue
		}
		stats.Rows++
		duration, err := ParseDuration(cell(row, idx[ColumnDuration]))
		if err != nil {
			return nil, stats, &RowError{Row: rowNum, Column: ColumnDuration, Err: err}
		}
		date, ok := ParseDate(cell(row, idx[ColumnDate]))
		if !ok {
			stats.UndatedRows++
		}
		records = append(records, model.Record{
			ConsentResult:   strings.TrimSpace(cell(row, idx[ColumnConsent])),
			TimeAttempted:   strings.TrimSpace(cell(row, idx[ColumnTime])),
			DateAttempted:   date,
			DurationSeconds: duration,
		})
	}
	return records, stats, nil
}

func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, utf8BOM))
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, &MissingColumnError{Column: col}
		}
	}
	return idx, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
