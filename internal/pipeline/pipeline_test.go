package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/ivrstats/internal/analysis"
	"github.com/verte-zerg/ivrstats/internal/calllog"
	"github.com/verte-zerg/ivrstats/internal/chart"
	"github.com/verte-zerg/ivrstats/internal/export"
	"github.com/verte-zerg/ivrstats/internal/model"
)

const sampleCSV = "Consent Result,IVR Time Attempted,IVR Date Attempted,Call Duration [s]\n" +
	"yes_consent,09:00:00+02:00,2024-01-01,600\n" +
	"no_consent,12:00:00,2024-01-02,0\n" +
	"yes_consent,17:00:00-01:00,2024-01-07,1200\n"

func writeSample(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ivr.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func runConfig(input, outDir string) model.RunConfig {
	return model.RunConfig{
		InputPath:  input,
		OutputDir:  outDir,
		Cost:       analysis.DefaultCostParams(),
		Reductions: analysis.DefaultReductions,
		Focus:      analysis.DefaultFocusReduction,
		Charts:     true,
		Workbook:   true,
	}
}

func TestRun(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "output")
	var buf bytes.Buffer
	res, err := Run(context.Background(), runConfig(writeSample(t, sampleCSV), outDir), &buf, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, model.Rate{Total: 3, Matched: 2}, res.Report.Overall)
	assert.InDelta(t, 11201.344, res.Report.Scenarios[0].TotalCost, 1e-6)
	assert.Contains(t, buf.String(), "Total Calls: 3")

	assert.ElementsMatch(t, []string{
		filepath.Join(outDir, chart.SlotFile),
		filepath.Join(outDir, chart.DayFile),
		filepath.Join(outDir, chart.CostFile),
		filepath.Join(outDir, export.WorkbookFile),
	}, res.Artifacts)
	for _, p := range res.Artifacts {
		assert.FileExists(t, p)
	}
}

func TestRunWithoutArtifacts(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "output")
	cfg := runConfig(writeSample(t, sampleCSV), outDir)
	cfg.Charts = false
	cfg.Workbook = false
	var buf bytes.Buffer
	res, err := Run(context.Background(), cfg, &buf, zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, res.Artifacts)
	assert.NoDirExists(t, outDir)
}

func TestRunMissingColumnIsFatal(t *testing.T) {
	path := writeSample(t, "Consent Result,IVR Date Attempted,Call Duration [s]\nyes_consent,2024-01-01,1\n")
	_, err := Run(context.Background(), runConfig(path, t.TempDir()), &bytes.Buffer{}, zerolog.Nop())
	var missing *calllog.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, calllog.ColumnTime, missing.Column)
}

func TestAnalyzeRejectsBadReduction(t *testing.T) {
	cfg := runConfig(writeSample(t, sampleCSV), t.TempDir())
	cfg.Reductions = []float64{0, 150}
	_, err := Analyze(context.Background(), cfg, zerolog.Nop())
	assert.ErrorIs(t, err, analysis.ErrReductionOutOfRange)
}

func TestRunPrintsTerminalCharts(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	cfg := runConfig(writeSample(t, sampleCSV), t.TempDir())
	cfg.Charts = false
	cfg.Workbook = false
	var buf bytes.Buffer
	_, err := Run(context.Background(), cfg, &buf, zerolog.Nop())
	require.NoError(t, err)

	out := buf.String()
	summaryAt := strings.Index(out, "Recommendations:")
	require.GreaterOrEqual(t, summaryAt, 0)
	for _, title := range []string{
		"Consent Rate by Time Slot",
		"Consent Rate by Day of the Week",
		"Cost per Consented by Call Duration Reduction",
	} {
		at := strings.Index(out, title)
		require.GreaterOrEqual(t, at, 0, "missing chart %q", title)
		assert.Greater(t, at, summaryAt, "chart %q should follow the summary", title)
	}
	assert.NotContains(t, out, "\x1b[")
}
