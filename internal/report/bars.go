package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/ivrstats/internal/analysis"
)

// Bar is one labelled value in a horizontal bar chart.
type Bar struct {
	Label string
	Value float64
	// Missing bars are drawn as NoData instead of a zero-length bar.
	Missing bool
}

const (
	barFull             = "█"
	minBarWidth         = 10
	valueColumnWidth    = 12
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

// cyan, magenta, yellow, green, blue
var colorPalette = []string{"\x1b[36m", "\x1b[35m", "\x1b[33m", "\x1b[32m", "\x1b[34m"}

// BarChart renders a horizontal bar chart sized to width. Zero width means the
// terminal width. Values are formatted with format.
func BarChart(w io.Writer, title string, bars []Bar, width int, format func(float64) string, forceColor bool) error {
	if len(bars) == 0 {
		return nil
	}
	if width <= 0 {
		width = terminalWidth()
	}
	labelWidth := 0
	maxVal := 0.0
	for _, b := range bars {
		if lw := runewidth.StringWidth(b.Label); lw > labelWidth {
			labelWidth = lw
		}
		if !b.Missing && b.Value > maxVal {
			maxVal = b.Value
		}
	}
	barWidth := BarWidthFor(width, labelWidth)
	useColor := shouldUseColor(w, forceColor)

	p := &printer{w: w}
	if title != "" {
		p.printf("%s\n", title)
	}
	for i, b := range bars {
		label := padCell(b.Label, labelWidth, false)
		if b.Missing {
			p.printf("%s │ %s\n", label, NoData)
			continue
		}
		bar := strings.Repeat(barFull, barLength(b.Value, maxVal, barWidth))
		if useColor && bar != "" {
			bar = colorPalette[i%len(colorPalette)] + bar + colorReset
		}
		p.printf("%s │ %s %s\n", label, bar, format(b.Value))
	}
	p.printf("\n")
	return p.err
}

// BarWidthFor computes the bar area that fits next to labels within totalWidth.
func BarWidthFor(totalWidth, labelWidth int) int {
	if totalWidth <= 0 {
		return minBarWidth
	}
	barWidth := totalWidth - labelWidth - runewidth.StringWidth(" │ ") - valueColumnWidth
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	return barWidth
}

func barLength(v, maxVal float64, width int) int {
	if maxVal <= 0 || v <= 0 || width <= 0 {
		return 0
	}
	n := int(math.Round(v / maxVal * float64(width)))
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return n
}

// RenderCharts prints terminal bar charts for both consent breakdowns and the
// per-consent cost of each scenario.
func RenderCharts(w io.Writer, rep analysis.Report, width int, forceColor bool) error {
	slotBars := make([]Bar, 0, len(rep.BySlot))
	for _, s := range rep.BySlot {
		slotBars = append(slotBars, Bar{Label: s.Bucket.String(), Value: s.Rate.Percent()})
	}
	if err := BarChart(w, "Consent Rate by Time Slot", slotBars, width, Percent, forceColor); err != nil {
		return err
	}

	dayBars := make([]Bar, 0, len(rep.ByDay))
	for _, d := range rep.ByDay {
		dayBars = append(dayBars, Bar{Label: d.Day.String(), Value: d.Rate.Percent(), Missing: !d.Rate.Defined()})
	}
	if err := BarChart(w, "Consent Rate by Day of the Week", dayBars, width, Percent, forceColor); err != nil {
		return err
	}

	costBars := make([]Bar, 0, len(rep.Scenarios))
	for _, s := range rep.Scenarios {
		costBars = append(costBars, Bar{Label: fmt.Sprintf("%s Reduction", ReductionLabel(s.ReductionPercent)), Value: s.CostPerConsented})
	}
	return BarChart(w, "Cost per Consented by Call Duration Reduction", costBars, width, Money, forceColor)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
