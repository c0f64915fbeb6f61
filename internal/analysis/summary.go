package analysis

import (
	"time"

	"github.com/verte-zerg/ivrstats/internal/model"
)

// Report contains every aggregate derived from one record set.
type Report struct {
	Overall      model.Rate
	UnknownTimes int
	UndatedCalls int
	TotalSeconds float64
	BySlot       []model.SlotRate
	ByDay        []model.DayRate
	Scenarios    []model.Scenario
	Focus        model.Scenario
	BestSlot     model.TimeBucket
	BestDay      time.Weekday
	HasBestDay   bool
}

// BuildReport runs every aggregation over records. Records are not modified.
func BuildReport(records []model.Record, params model.CostParams, reductions []float64, focus float64) (Report, error) {
	scenarios, err := Sweep(params, records, reductions)
	if err != nil {
		return Report{}, err
	}
	overall := OverallConsent(records)
	totalSeconds := TotalDurationSeconds(records)
	focusScenario, err := Cost(params, totalSeconds, focus, overall.Matched)
	if err != nil {
		return Report{}, err
	}

	rep := Report{
		Overall:      overall,
		UnknownTimes: BucketCounts(records)[model.BucketUnknown],
		TotalSeconds: totalSeconds,
		BySlot:       ConsentByTimeSlot(records),
		ByDay:        ConsentByWeekday(records),
		Scenarios:    scenarios,
		Focus:        focusScenario,
	}
	for _, r := range records {
		if r.DateAttempted.IsZero() {
			rep.UndatedCalls++
		}
	}
	rep.BestSlot = BestSlot(rep.BySlot)
	rep.BestDay, rep.HasBestDay = BestDay(rep.ByDay)
	return rep, nil
}

// BestSlot returns the bucket with the highest consent rate.
// Ties go to the earlier bucket; an empty input yields BucketUnknown.
func BestSlot(slots []model.SlotRate) model.TimeBucket {
	best := model.BucketUnknown
	bestPct := -1.0
	for _, s := range slots {
		if !s.Rate.Defined() {
			continue
		}
		if pct := s.Rate.Percent(); pct > bestPct {
			best, bestPct = s.Bucket, pct
		}
	}
	return best
}

// BestDay returns the day with the highest defined consent rate.
// Ties go to the earlier day in the week.
func BestDay(days []model.DayRate) (time.Weekday, bool) {
	var best time.Weekday
	found := false
	bestPct := -1.0
	for _, d := range days {
		if !d.Rate.Defined() {
			continue
		}
		if pct := d.Rate.Percent(); pct > bestPct {
			best, bestPct, found = d.Day, pct, true
		}
	}
	return best, found
}
