// Package export writes analysis results to a spreadsheet workbook.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/ivrstats/internal/analysis"
)

// Sheet names in workbook order.
const (
	SheetTimeSlot = "Consent by Time Slot"
	SheetWeekday  = "Consent by Day of Week"
	SheetCost     = "Cost Analysis"
)

// WorkbookFile is the default workbook name inside the output directory.
const WorkbookFile = "ivr_analysis_results.xlsx"

const defaultSheet = "Sheet1"

var (
	slotHeader = []any{"Time Slot", "Consent Rate (%)", "Calls", "Consented"}
	dayHeader  = []any{"Day of Week", "Consent Rate (%)", "Calls", "Consented"}
	costHeader = []any{
		"Reduction %",
		"Effective Minutes",
		"Airtime Cost ($)",
		"Total Cost ($)",
		"Cost per Consented ($)",
		"Baseline Cost per Consented ($)",
		"Savings ($)",
	}
)

// WriteWorkbook writes the three result sheets to path, replacing any existing file.
// Days without records get an empty rate cell. Unknown time slots are not listed.
func WriteWorkbook(path string, rep analysis.Report) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create workbook directory: %w", err)
	}
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", cerr)
		}
	}()

	if err := f.SetSheetName(defaultSheet, SheetTimeSlot); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	for _, name := range []string{SheetWeekday, SheetCost} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", name, err)
		}
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	slotRows := make([][]any, 0, len(rep.BySlot))
	for _, s := range rep.BySlot {
		slotRows = append(slotRows, []any{s.Bucket.String(), s.Rate.Percent(), s.Rate.Total, s.Rate.Matched})
	}
	dayRows := make([][]any, 0, len(rep.ByDay))
	for _, d := range rep.ByDay {
		var pct any
		if d.Rate.Defined() {
			pct = d.Rate.Percent()
		}
		dayRows = append(dayRows, []any{d.Day.String(), pct, d.Rate.Total, d.Rate.Matched})
	}
	costRows := make([][]any, 0, len(rep.Scenarios))
	for _, s := range rep.Scenarios {
		costRows = append(costRows, []any{
			s.ReductionPercent,
			s.EffectiveMinutes,
			s.AirtimeCost,
			s.TotalCost,
			s.CostPerConsented,
			s.BaselineCostPerConsented,
			s.Savings(),
		})
	}

	for _, sheet := range []struct {
		name   string
		header []any
		rows   [][]any
	}{
		{SheetTimeSlot, slotHeader, slotRows},
		{SheetWeekday, dayHeader, dayRows},
		{SheetCost, costHeader, costRows},
	} {
		if err := writeSheet(f, sheet.name, sheet.header, sheet.rows, headerStyle); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []any, rows [][]any, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %q header: %w", sheet, err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style %q header: %w", sheet, err)
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 20); err != nil {
		return fmt.Errorf("failed to size %q columns: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %q row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}
