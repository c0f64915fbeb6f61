package report

import (
	"fmt"

	"github.com/verte-zerg/ivrstats/internal/model"
)

// Column headers shared by the text tables and the interactive viewer.
var (
	SlotHeaders = []string{"Time Slot", "Consent Rate", "Calls", "Consented"}
	DayHeaders  = []string{"Day of Week", "Consent Rate", "Calls", "Consented"}
	CostHeaders = []string{"Reduction", "Effective Minutes", "Airtime Cost", "Total Cost", "Cost per Consented", "Savings"}
)

// SlotRows formats time slot rates as table rows.
func SlotRows(slots []model.SlotRate) [][]string {
	rows := make([][]string, 0, len(slots))
	for _, s := range slots {
		rows = append(rows, []string{
			s.Bucket.String(),
			RatePercent(s.Rate),
			fmt.Sprintf("%d", s.Rate.Total),
			fmt.Sprintf("%d", s.Rate.Matched),
		})
	}
	return rows
}

// DayRows formats day of week rates as table rows.
func DayRows(days []model.DayRate) [][]string {
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		rows = append(rows, []string{
			d.Day.String(),
			RatePercent(d.Rate),
			fmt.Sprintf("%d", d.Rate.Total),
			fmt.Sprintf("%d", d.Rate.Matched),
		})
	}
	return rows
}

// CostRows formats sweep scenarios as table rows.
func CostRows(scenarios []model.Scenario) [][]string {
	rows := make([][]string, 0, len(scenarios))
	for _, s := range scenarios {
		rows = append(rows, []string{
			ReductionLabel(s.ReductionPercent),
			fmt.Sprintf("%.2f", s.EffectiveMinutes),
			Money(s.AirtimeCost),
			Money(s.TotalCost),
			Money(s.CostPerConsented),
			Money(s.Savings()),
		})
	}
	return rows
}
