package analysis

import (
	"github.com/verte-zerg/ivrstats/internal/model"
)

// DefaultReductions are the reduction percentages compared by default.
var DefaultReductions = []float64{0, 10, 20, 30}

// DefaultFocusReduction is the reduction highlighted in the summary.
const DefaultFocusReduction = 20.0

// Sweep evaluates the cost model at each reduction, keeping the caller's order.
// Every percentage is validated before any scenario is computed.
func Sweep(params model.CostParams, records []model.Record, reductions []float64) ([]model.Scenario, error) {
	for _, r := range reductions {
		if err := ValidateReduction(r); err != nil {
			return nil, err
		}
	}
	totalSeconds := TotalDurationSeconds(records)
	consented := OverallConsent(records).Matched
	out := make([]model.Scenario, 0, len(reductions))
	for _, r := range reductions {
		s, err := Cost(params, totalSeconds, r, consented)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
