// Package analysis computes consent rates and cost scenarios over call records.
package analysis

import (
	"strings"
	"time"

	"github.com/verte-zerg/ivrstats/internal/model"
)

const clockLayout = "15:04:05"

// StripTimezone removes a trailing +HH:MM or -HH:MM offset from a time-of-day value.
func StripTimezone(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.IndexAny(s, "+-"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}

// ParseClock parses a time-of-day value after stripping any timezone offset.
// The boolean result is false when the value is not HH:MM:SS.
func ParseClock(raw string) (time.Time, bool) {
	s := StripTimezone(raw)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// BucketForHour maps a 24-hour clock hour to a time bucket.
// Morning is [0,12), Afternoon [12,17), Evening [17,24).
func BucketForHour(hour int) model.TimeBucket {
	switch {
	case hour < 0 || hour > 23:
		return model.BucketUnknown
	case hour < 12:
		return model.BucketMorning
	case hour < 17:
		return model.BucketAfternoon
	default:
		return model.BucketEvening
	}
}

// Bucket classifies a raw time-of-day value. Unparseable input yields BucketUnknown.
func Bucket(raw string) model.TimeBucket {
	t, ok := ParseClock(raw)
	if !ok {
		return model.BucketUnknown
	}
	return BucketForHour(t.Hour())
}

// BucketCounts counts records per bucket, including BucketUnknown.
func BucketCounts(records []model.Record) map[model.TimeBucket]int {
	counts := make(map[model.TimeBucket]int, len(model.TimeBuckets)+1)
	for _, r := range records {
		counts[Bucket(r.TimeAttempted)]++
	}
	return counts
}
