package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarChart(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	err := BarChart(&buf, "Rates", []Bar{
		{Label: "A", Value: 50},
		{Label: "B", Value: 100},
		{Label: "C", Missing: true},
	}, 40, Percent, true)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Rates", lines[0])
	barWidth := BarWidthFor(40, 1)
	assert.Equal(t, "A │ "+strings.Repeat(barFull, barWidth/2)+" 50.00%", lines[1])
	assert.Equal(t, "B │ "+strings.Repeat(barFull, barWidth)+" 100.00%", lines[2])
	assert.Equal(t, "C │ n/a", lines[3])
}

func TestBarChartForcedColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	var buf bytes.Buffer
	require.NoError(t, BarChart(&buf, "", []Bar{{Label: "x", Value: 1}}, 40, Money, true))
	assert.Contains(t, buf.String(), colorReset)
}

func TestBarChartNoColorForBuffer(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	var buf bytes.Buffer
	require.NoError(t, BarChart(&buf, "", []Bar{{Label: "x", Value: 1}}, 40, Money, false))
	assert.NotContains(t, buf.String(), colorReset)
}

func TestBarWidthFor(t *testing.T) {
	assert.Equal(t, minBarWidth, BarWidthFor(0, 5))
	assert.Equal(t, 80-9-3-valueColumnWidth, BarWidthFor(80, 9))
}
