// Package model defines shared data structures.
package model

import "time"

// ConsentYes is the consent result value counted as a successful outcome.
const ConsentYes = "yes_consent"

// Record is a single logged call attempt.
type Record struct {
	ConsentResult string
	// TimeAttempted is the raw time-of-day value, possibly with a +HH:MM or -HH:MM suffix.
	TimeAttempted string
	// DateAttempted is zero when the source date could not be parsed.
	DateAttempted   time.Time
	DurationSeconds float64
}

// Consented reports whether the record has an affirmative consent result.
func (r Record) Consented() bool {
	return r.ConsentResult == ConsentYes
}

// TimeBucket is a coarse partition of the day.
type TimeBucket int

// Time buckets in chronological order.
const (
	BucketUnknown TimeBucket = iota
	BucketMorning
	BucketAfternoon
	BucketEvening
)

// TimeBuckets lists the reportable buckets in chronological order.
var TimeBuckets = []TimeBucket{BucketMorning, BucketAfternoon, BucketEvening}

func (b TimeBucket) String() string {
	switch b {
	case BucketMorning:
		return "Morning"
	case BucketAfternoon:
		return "Afternoon"
	case BucketEvening:
		return "Evening"
	default:
		return "Unknown"
	}
}

// WeekDays lists the days in reporting order, Monday first.
var WeekDays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// Rate counts matching records within a group.
type Rate struct {
	Total   int
	Matched int
}

// Defined reports whether the group had any records.
func (r Rate) Defined() bool {
	return r.Total > 0
}

// Percent returns 100*Matched/Total, or 0 for an empty group.
func (r Rate) Percent() float64 {
	if r.Total <= 0 {
		return 0
	}
	return float64(r.Matched) / float64(r.Total) * 100
}

// SlotRate is the consent rate for one time bucket.
type SlotRate struct {
	Bucket TimeBucket
	Rate   Rate
}

// DayRate is the consent rate for one day of the week.
// Rate.Defined is false for days absent from the data.
type DayRate struct {
	Day  time.Weekday
	Rate Rate
}

// Scenario is the cost model evaluated at one reduction percentage.
type Scenario struct {
	ReductionPercent float64
	EffectiveMinutes float64
	AirtimeCost      float64
	TotalCost        float64
	// CostPerConsented is 0 when there are no consented records.
	CostPerConsented float64

	BaselineTotalCost        float64
	BaselineCostPerConsented float64
}

// Savings returns the total cost saved compared with the unreduced baseline.
func (s Scenario) Savings() float64 {
	return s.BaselineTotalCost - s.TotalCost
}

// SavingsPerConsented returns the per-consent saving compared with the baseline.
func (s Scenario) SavingsPerConsented() float64 {
	return s.BaselineCostPerConsented - s.CostPerConsented
}

// CostParams holds the constants of the cost model.
type CostParams struct {
	PlatformFee       float64
	AirtimePerMinute  float64
	AdminOverheadRate float64
}

// RunConfig defines options for a full pipeline run.
type RunConfig struct {
	InputPath  string
	Sheet      string
	OutputDir  string
	Cost       CostParams
	Reductions []float64
	Focus      float64
	Charts     bool
	Workbook   bool
}
