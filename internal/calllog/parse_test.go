package calllog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var header = []string{ColumnConsent, ColumnTime, ColumnDate, ColumnDuration}

func TestParseTable(t *testing.T) {
	rows := [][]string{
		{"\ufeff" + ColumnConsent, " " + ColumnTime, ColumnDate, ColumnDuration, "Extra"},
		{"yes_consent", "09:15:00+02:00", "2024-01-01", "600", "x"},
		{"", "", "", ""},
		{"no_consent", "18:00:00", "not a date", ""},
		{"yes_consent", "12:00:00"},
	}
	records, stats, err := ParseTable(rows)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 3, stats.Rows)
	assert.Equal(t, 1, stats.BlankRows)
	assert.Equal(t, 2, stats.UndatedRows)

	assert.Equal(t, "yes_consent", records[0].ConsentResult)
	assert.Equal(t, "09:15:00+02:00", records[0].TimeAttempted)
	assert.Equal(t, time.Monday, records[0].DateAttempted.Weekday())
	assert.Equal(t, 600.0, records[0].DurationSeconds)
	assert.True(t, records[1].DateAttempted.IsZero())
	assert.Zero(t, records[1].DurationSeconds)
	assert.Zero(t, records[2].DurationSeconds)
}

func TestParseTableMissingColumn(t *testing.T) {
	rows := [][]string{
		{ColumnConsent, ColumnTime, ColumnDuration},
		{"yes_consent", "09:00:00", "1"},
	}
	_, _, err := ParseTable(rows)
	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, ColumnDate, missing.Column)

	_, _, err = ParseTable(nil)
	require.ErrorAs(t, err, &missing)
}

func TestParseTableRejectsBadDuration(t *testing.T) {
	for _, raw := range []string{"abc", "-5", "NaN", "Inf"} {
		rows := [][]string{header, {"yes_consent", "09:00:00", "2024-01-01", "1"}, {"no", "10:00:00", "2024-01-02", raw}}
		_, _, err := ParseTable(rows)
		var rowErr *RowError
		require.ErrorAs(t, err, &rowErr, "duration %q", raw)
		assert.Equal(t, 3, rowErr.Row)
		assert.Equal(t, ColumnDuration, rowErr.Column)
	}
}

func TestParseDate(t *testing.T) {
	cases := map[string]time.Weekday{
		"2024-01-03":          time.Wednesday,
		"2024-01-03 08:00:00": time.Wednesday,
		"01/06/2024":          time.Saturday,
		"1/7/24":              time.Sunday,
		"01-05-24":            time.Friday,
		"1/15/24 00:00":       time.Monday,
		"15-Jan-24":           time.Monday,
	}
	for raw, want := range cases {
		d, ok := ParseDate(raw)
		require.True(t, ok, "input %q", raw)
		assert.Equal(t, want, d.Weekday(), "input %q", raw)
	}
	_, ok := ParseDate("yesterday")
	assert.False(t, ok)
}
