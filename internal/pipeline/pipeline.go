// Package pipeline runs the full load, analyze and report sequence.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/ivrstats/internal/analysis"
	"github.com/verte-zerg/ivrstats/internal/calllog"
	"github.com/verte-zerg/ivrstats/internal/chart"
	"github.com/verte-zerg/ivrstats/internal/export"
	"github.com/verte-zerg/ivrstats/internal/model"
	"github.com/verte-zerg/ivrstats/internal/report"
)

// Result holds the computed report and the artifact paths written.
type Result struct {
	Report    analysis.Report
	Artifacts []string
}

// Analyze loads the input and computes the report without writing artifacts.
func Analyze(ctx context.Context, cfg model.RunConfig, logger zerolog.Logger) (analysis.Report, error) {
	records, err := calllog.NewLoader(cfg.Sheet, logger).Load(ctx, cfg.InputPath)
	if err != nil {
		return analysis.Report{}, err
	}
	rep, err := analysis.BuildReport(records, cfg.Cost, cfg.Reductions, cfg.Focus)
	if err != nil {
		return analysis.Report{}, err
	}
	if rep.UnknownTimes > 0 {
		logger.Warn().Int("rows", rep.UnknownTimes).Msg("unparseable times excluded from time slot rates")
	}
	return rep, nil
}

// Run analyzes the input, prints the summary and terminal charts to out and
// writes PNG charts and the workbook into cfg.OutputDir as enabled.
func Run(ctx context.Context, cfg model.RunConfig, out io.Writer, logger zerolog.Logger) (Result, error) {
	logger.Info().Str("input", cfg.InputPath).Msg("running IVR data analysis")
	rep, err := Analyze(ctx, cfg, logger)
	if err != nil {
		return Result{}, err
	}
	res := Result{Report: rep}

	if err := report.RenderSummary(out, rep); err != nil {
		return res, fmt.Errorf("failed to write summary: %w", err)
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return res, fmt.Errorf("failed to write summary: %w", err)
	}
	if err := report.RenderCharts(out, rep, 0, false); err != nil {
		return res, fmt.Errorf("failed to write charts: %w", err)
	}

	if cfg.Charts {
		paths, err := chart.WriteAll(cfg.OutputDir, rep)
		res.Artifacts = append(res.Artifacts, paths...)
		if err != nil {
			return res, err
		}
		for _, p := range paths {
			logger.Info().Str("path", p).Msg("wrote chart")
		}
	}
	if cfg.Workbook {
		path := filepath.Join(cfg.OutputDir, export.WorkbookFile)
		if err := export.WriteWorkbook(path, rep); err != nil {
			return res, err
		}
		res.Artifacts = append(res.Artifacts, path)
		logger.Info().Str("path", path).Msg("results saved")
	}
	return res, nil
}
