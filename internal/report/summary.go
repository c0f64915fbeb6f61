// Package report renders analysis results as text for the terminal.
package report

import (
	"fmt"
	"io"

	"github.com/verte-zerg/ivrstats/internal/analysis"
)

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) lines(lines []string) {
	for _, line := range lines {
		p.printf("%s\n", line)
	}
}

// RenderSummary prints overall figures, the three aggregate tables, the focus
// scenario and recommendations.
func RenderSummary(w io.Writer, rep analysis.Report) error {
	p := &printer{w: w}
	p.printf("Total Calls: %d\n", rep.Overall.Total)
	p.printf("Overall Consent Rate: %s\n", Percent(rep.Overall.Percent()))
	if rep.UnknownTimes > 0 {
		p.printf("Unparsed times: %d (excluded from time slot rates)\n", rep.UnknownTimes)
	}
	if rep.UndatedCalls > 0 {
		p.printf("Unparsed dates: %d (excluded from day of week rates)\n", rep.UndatedCalls)
	}
	p.printf("\n")

	p.printf("Consent Rates by Time Slot\n")
	p.lines(formatTable(SlotHeaders, SlotRows(rep.BySlot), map[int]bool{1: true, 2: true, 3: true}))
	p.printf("\n")

	p.printf("Consent Rates by Day of Week\n")
	p.lines(formatTable(DayHeaders, DayRows(rep.ByDay), map[int]bool{1: true, 2: true, 3: true}))
	p.printf("\n")

	p.printf("Cost Analysis\n")
	p.lines(formatTable(CostHeaders, CostRows(rep.Scenarios), map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true, 5: true}))
	p.printf("\n")

	focus := ReductionLabel(rep.Focus.ReductionPercent)
	p.printf("Current Cost per Consented: %s\n", Money(rep.Focus.BaselineCostPerConsented))
	p.printf("Proposed Cost (%s Call Duration Reduction) per Consented: %s\n", focus, Money(rep.Focus.CostPerConsented))
	p.printf("Total Cost (Current): %s\n", Money(rep.Focus.BaselineTotalCost))
	p.printf("Total Cost (%s Reduction): %s\n", focus, Money(rep.Focus.TotalCost))
	p.printf("\n")

	p.printf("Recommendations:\n")
	for i, rec := range Recommendations(rep) {
		p.printf("%d. %s\n", i+1, rec)
	}
	return p.err
}

// Recommendations derives the suggested actions from a report.
func Recommendations(rep analysis.Report) []string {
	var recs []string
	if len(rep.BySlot) > 0 {
		recs = append(recs, fmt.Sprintf("Focus on calling during the '%s' time slot for higher consent rates.", rep.BestSlot))
	}
	if rep.HasBestDay {
		recs = append(recs, fmt.Sprintf("Prioritize calling on '%s', which shows the highest consent rate.", rep.BestDay))
	}
	if rep.Focus.ReductionPercent > 0 {
		recs = append(recs, fmt.Sprintf("Consider reducing call durations by %s to lower costs while maintaining consent rates.",
			ReductionLabel(rep.Focus.ReductionPercent)))
	}
	return recs
}
