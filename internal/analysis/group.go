package analysis

import (
	"time"

	"github.com/verte-zerg/ivrstats/internal/model"
)

// KeyFunc derives a grouping key from a record. Returning false drops the record.
type KeyFunc[K comparable] func(model.Record) (K, bool)

// Predicate reports whether a record counts toward the matched share of its group.
type Predicate func(model.Record) bool

// GroupRate partitions records by key and counts how many in each group match pred.
// Only keys produced by at least one record appear in the result.
func GroupRate[K comparable](records []model.Record, key KeyFunc[K], pred Predicate) map[K]model.Rate {
	out := map[K]model.Rate{}
	for _, r := range records {
		k, ok := key(r)
		if !ok {
			continue
		}
		rate := out[k]
		rate.Total++
		if pred(r) {
			rate.Matched++
		}
		out[k] = rate
	}
	return out
}

// TimeBucketKey groups by time bucket, dropping records whose time is unparseable.
func TimeBucketKey(r model.Record) (model.TimeBucket, bool) {
	b := Bucket(r.TimeAttempted)
	return b, b != model.BucketUnknown
}

// WeekdayKey groups by the weekday of the attempt date, dropping undated records.
func WeekdayKey(r model.Record) (time.Weekday, bool) {
	if r.DateAttempted.IsZero() {
		return 0, false
	}
	return r.DateAttempted.Weekday(), true
}

// IsConsented matches records with an affirmative consent result.
func IsConsented(r model.Record) bool {
	return r.Consented()
}

// ConsentByTimeSlot returns consent rates for the buckets present in records,
// ordered Morning, Afternoon, Evening.
func ConsentByTimeSlot(records []model.Record) []model.SlotRate {
	groups := GroupRate(records, TimeBucketKey, IsConsented)
	out := make([]model.SlotRate, 0, len(groups))
	for _, b := range model.TimeBuckets {
		rate, ok := groups[b]
		if !ok {
			continue
		}
		out = append(out, model.SlotRate{Bucket: b, Rate: rate})
	}
	return out
}

// ConsentByWeekday returns exactly seven entries ordered Monday to Sunday.
// Days without records have an undefined rate.
func ConsentByWeekday(records []model.Record) []model.DayRate {
	groups := GroupRate(records, WeekdayKey, IsConsented)
	out := make([]model.DayRate, 0, len(model.WeekDays))
	for _, d := range model.WeekDays {
		out = append(out, model.DayRate{Day: d, Rate: groups[d]})
	}
	return out
}

// OverallConsent counts consented records across the whole set.
func OverallConsent(records []model.Record) model.Rate {
	rate := model.Rate{Total: len(records)}
	for _, r := range records {
		if r.Consented() {
			rate.Matched++
		}
	}
	return rate
}

// TotalDurationSeconds sums call durations.
func TotalDurationSeconds(records []model.Record) float64 {
	var sum float64
	for _, r := range records {
		sum += r.DurationSeconds
	}
	return sum
}
