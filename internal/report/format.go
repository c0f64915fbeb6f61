package report

import (
	"fmt"

	"github.com/verte-zerg/ivrstats/internal/model"
)

// NoData labels a rate with no records behind it.
const NoData = "n/a"

// Money formats a currency amount.
func Money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// Percent formats a percentage with two decimals.
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// RatePercent formats a rate, using NoData for empty groups.
func RatePercent(r model.Rate) string {
	if !r.Defined() {
		return NoData
	}
	return Percent(r.Percent())
}

// ReductionLabel formats a reduction percentage without trailing zeros.
func ReductionLabel(pct float64) string {
	return fmt.Sprintf("%g%%", pct)
}
