package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/ivrstats/internal/model"
)

func TestSweepPreservesOrder(t *testing.T) {
	scenarios, err := Sweep(DefaultCostParams(), exampleRecords(), []float64{30, 0, 20})
	require.NoError(t, err)
	require.Len(t, scenarios, 3)
	assert.Equal(t, 30.0, scenarios[0].ReductionPercent)
	assert.Equal(t, 0.0, scenarios[1].ReductionPercent)
	assert.Equal(t, 20.0, scenarios[2].ReductionPercent)
}

func TestSweepIsMonotonic(t *testing.T) {
	reductions := []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	scenarios, err := Sweep(DefaultCostParams(), exampleRecords(), reductions)
	require.NoError(t, err)
	for i := 1; i < len(scenarios); i++ {
		assert.GreaterOrEqual(t, scenarios[i-1].TotalCost, scenarios[i].TotalCost)
		assert.GreaterOrEqual(t, scenarios[i-1].CostPerConsented, scenarios[i].CostPerConsented)
	}
}

func TestSweepIsReproducible(t *testing.T) {
	first, err := Sweep(DefaultCostParams(), exampleRecords(), DefaultReductions)
	require.NoError(t, err)
	second, err := Sweep(DefaultCostParams(), exampleRecords(), DefaultReductions)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSweepValidatesBeforeComputing(t *testing.T) {
	scenarios, err := Sweep(DefaultCostParams(), exampleRecords(), []float64{0, 10, -5})
	require.ErrorIs(t, err, ErrReductionOutOfRange)
	assert.Nil(t, scenarios)
}

func TestBuildReport(t *testing.T) {
	records := []model.Record{
		{ConsentResult: model.ConsentYes, TimeAttempted: "09:00:00+02:00", DateAttempted: date(2024, time.January, 1), DurationSeconds: 600},
		{ConsentResult: "no_consent", TimeAttempted: "14:00:00", DateAttempted: date(2024, time.January, 2), DurationSeconds: 0},
		{ConsentResult: model.ConsentYes, TimeAttempted: "??", DurationSeconds: 1200},
	}
	snapshot := append([]model.Record(nil), records...)

	rep, err := BuildReport(records, DefaultCostParams(), DefaultReductions, DefaultFocusReduction)
	require.NoError(t, err)
	assert.Equal(t, snapshot, records)

	assert.Equal(t, model.Rate{Total: 3, Matched: 2}, rep.Overall)
	assert.Equal(t, 1, rep.UnknownTimes)
	assert.Equal(t, 1, rep.UndatedCalls)
	assert.Len(t, rep.BySlot, 2)
	assert.Len(t, rep.ByDay, 7)
	assert.Len(t, rep.Scenarios, len(DefaultReductions))
	assert.Equal(t, DefaultFocusReduction, rep.Focus.ReductionPercent)
	assert.Equal(t, model.BucketMorning, rep.BestSlot)
	require.True(t, rep.HasBestDay)
	assert.Equal(t, time.Monday, rep.BestDay)
}

func TestBuildReportRejectsBadFocus(t *testing.T) {
	_, err := BuildReport(exampleRecords(), DefaultCostParams(), DefaultReductions, 120)
	assert.ErrorIs(t, err, ErrReductionOutOfRange)
}

func TestBestPicksEarliestOnTie(t *testing.T) {
	slots := []model.SlotRate{
		{Bucket: model.BucketMorning, Rate: model.Rate{Total: 2, Matched: 1}},
		{Bucket: model.BucketAfternoon, Rate: model.Rate{Total: 4, Matched: 2}},
	}
	assert.Equal(t, model.BucketMorning, BestSlot(slots))
	assert.Equal(t, model.BucketUnknown, BestSlot(nil))

	_, ok := BestDay(ConsentByWeekday(nil))
	assert.False(t, ok)
}
