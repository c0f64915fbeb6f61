// Package chart renders analysis results as PNG charts.
package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/verte-zerg/ivrstats/internal/analysis"
	"github.com/verte-zerg/ivrstats/internal/model"
)

// Output file names.
const (
	SlotFile = "consent_rate_by_time_slot.png"
	DayFile  = "consent_rate_by_day.png"
	CostFile = "cost_comparison.png"
)

const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 6 * vg.Inch
)

var barWidth = vg.Points(40)

var (
	slotColor     = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xcc}
	dayColor      = color.RGBA{R: 0x17, G: 0xbe, B: 0xcf, A: 0xcc}
	currentColor  = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	proposedColor = color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}
)

// SlotChart draws consent rate per time slot as bars. It returns nil when no
// slot has data.
func SlotChart(slots []model.SlotRate) (*plot.Plot, error) {
	if len(slots) == 0 {
		return nil, nil
	}
	values := make(plotter.Values, len(slots))
	names := make([]string, len(slots))
	for i, s := range slots {
		values[i] = s.Rate.Percent()
		names[i] = s.Bucket.String()
	}
	return barPlot("Consent Rate by Time Slot", "Time Slot", values, names, slotColor)
}

// DayChart draws consent rate per weekday, Monday first. Days without data
// are drawn as empty bars labelled n/a.
func DayChart(days []model.DayRate) (*plot.Plot, error) {
	values := make(plotter.Values, len(days))
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.Day.String()
		if !d.Rate.Defined() {
			names[i] += " (n/a)"
			continue
		}
		values[i] = d.Rate.Percent()
	}
	return barPlot("Consent Rate by Day of the Week", "Day of the Week", values, names, dayColor)
}

func barPlot(title, xLabel string, values plotter.Values, names []string, fill color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Consent Rate (%)"
	p.Y.Min = 0
	p.Y.Max = 100

	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return nil, fmt.Errorf("failed to build bars: %w", err)
	}
	bars.Color = fill
	bars.LineStyle.Width = 0

	grid := plotter.NewGrid()
	grid.Vertical.Width = 0
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(grid, bars)
	p.NominalX(names...)
	return p, nil
}

// CostChart draws current and proposed cost per consented against reduction.
func CostChart(scenarios []model.Scenario) (*plot.Plot, error) {
	if len(scenarios) == 0 {
		return nil, nil
	}
	current := make(plotter.XYs, len(scenarios))
	proposed := make(plotter.XYs, len(scenarios))
	ticks := make([]plot.Tick, len(scenarios))
	for i, s := range scenarios {
		current[i] = plotter.XY{X: s.ReductionPercent, Y: s.BaselineCostPerConsented}
		proposed[i] = plotter.XY{X: s.ReductionPercent, Y: s.CostPerConsented}
		ticks[i] = plot.Tick{Value: s.ReductionPercent, Label: fmt.Sprintf("%g", s.ReductionPercent)}
	}

	p := plot.New()
	p.Title.Text = "Cost per Consented with Call Duration Reductions"
	p.X.Label.Text = "Call Duration Reduction (%)"
	p.Y.Label.Text = "Cost ($)"
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Vertical.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(grid)

	for _, series := range []struct {
		name string
		xys  plotter.XYs
		col  color.Color
	}{
		{name: "Current Cost per Consented", xys: current, col: currentColor},
		{name: "Proposed Cost per Consented (Reduced Duration)", xys: proposed, col: proposedColor},
	} {
		line, points, err := plotter.NewLinePoints(series.xys)
		if err != nil {
			return nil, fmt.Errorf("failed to build line: %w", err)
		}
		line.Color = series.col
		points.Color = series.col
		points.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		p.Legend.Add(series.name, line, points)
	}
	return p, nil
}

// WriteAll saves every chart that has data into dir and returns the written paths.
func WriteAll(dir string, rep analysis.Report) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}
	slotPlot, err := SlotChart(rep.BySlot)
	if err != nil {
		return nil, err
	}
	dayPlot, err := DayChart(rep.ByDay)
	if err != nil {
		return nil, err
	}
	costPlot, err := CostChart(rep.Scenarios)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, item := range []struct {
		p    *plot.Plot
		name string
	}{
		{slotPlot, SlotFile},
		{dayPlot, DayFile},
		{costPlot, CostFile},
	} {
		if item.p == nil {
			continue
		}
		path := filepath.Join(dir, item.name)
		if err := item.p.Save(chartWidth, chartHeight, path); err != nil {
			return written, fmt.Errorf("failed to save %s: %w", item.name, err)
		}
		written = append(written, path)
	}
	return written, nil
}
