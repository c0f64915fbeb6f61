package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/verte-zerg/ivrstats/internal/model"
)

// ErrReductionOutOfRange is returned for reduction percentages outside [0, 100].
var ErrReductionOutOfRange = errors.New("reduction percent out of range")

// ReductionRangeError reports the offending reduction percentage.
type ReductionRangeError struct {
	Percent float64
}

func (e *ReductionRangeError) Error() string {
	return fmt.Sprintf("reduction percent %v must be between 0 and 100", e.Percent)
}

// Unwrap lets errors.Is match ErrReductionOutOfRange.
func (e *ReductionRangeError) Unwrap() error {
	return ErrReductionOutOfRange
}

// DefaultCostParams returns the platform pricing used for cost scenarios:
// a flat 10000 platform fee, 0.04 per airtime minute, and a 12% admin overhead.
func DefaultCostParams() model.CostParams {
	return model.CostParams{
		PlatformFee:       10000,
		AirtimePerMinute:  0.04,
		AdminOverheadRate: 0.12,
	}
}

// ValidateReduction rejects NaN and values outside [0, 100].
func ValidateReduction(percent float64) error {
	if math.IsNaN(percent) || percent < 0 || percent > 100 {
		return &ReductionRangeError{Percent: percent}
	}
	return nil
}

// Cost evaluates the cost model for a total call duration reduced by reductionPercent.
//
//	effective_minutes = seconds/60 * (1 - reduction/100)
//	total_cost        = (platform_fee + effective_minutes*airtime) * (1 + overhead)
//
// Cost per consented is 0 when consented is 0.
func Cost(params model.CostParams, totalSeconds, reductionPercent float64, consented int) (model.Scenario, error) {
	if err := ValidateReduction(reductionPercent); err != nil {
		return model.Scenario{}, err
	}
	s := evaluate(params, totalSeconds, reductionPercent, consented)
	base := evaluate(params, totalSeconds, 0, consented)
	s.BaselineTotalCost = base.TotalCost
	s.BaselineCostPerConsented = base.CostPerConsented
	return s, nil
}

func evaluate(params model.CostParams, totalSeconds, reductionPercent float64, consented int) model.Scenario {
	minutes := totalSeconds / 60 * (1 - reductionPercent/100)
	airtime := minutes * params.AirtimePerMinute
	total := (params.PlatformFee + airtime) * (1 + params.AdminOverheadRate)
	perConsented := 0.0
	if consented > 0 {
		perConsented = total / float64(consented)
	}
	return model.Scenario{
		ReductionPercent: reductionPercent,
		EffectiveMinutes: minutes,
		AirtimeCost:      airtime,
		TotalCost:        total,
		CostPerConsented: perConsented,
	}
}
