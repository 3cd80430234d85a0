package cost_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/perfview/perfview/pkg/profile/cost"
)

func TestCostsAccumulation(t *testing.T) {
	var c cost.Costs
	c.AddType(0, "cycles", cost.UnitTracepoint)
	c.AddType(1, "time", cost.UnitTime)
	require.Equal(t, 2, c.NumTypes())
	require.Equal(t, "cycles", c.TypeName(0))
	require.Equal(t, cost.UnitTime, c.Unit(1))

	c.AddValue(0, 3, 10)
	c.AddValue(0, 3, 5)
	c.AddValue(1, 1, 7)

	require.Equal(t, int64(15), c.Value(0, 3))
	require.Equal(t, int64(7), c.Value(1, 1))
	// ids never written read as zero, even past the column end
	require.Equal(t, int64(0), c.Value(0, 2))
	require.Equal(t, int64(0), c.Value(1, 1000))

	require.Equal(t, cost.Vector{15, 0}, c.ItemCost(3))
	require.Equal(t, cost.Vector{0, 7}, c.ItemCost(1))
}

func TestCostsTotals(t *testing.T) {
	var c cost.Costs
	c.AddType(0, "samples", cost.UnitUnknown)
	c.AddTotalCost(0, 10)
	c.AddTotalCost(0, 32)
	require.Equal(t, int64(42), c.TotalCost(0))
	require.Equal(t, cost.Vector{42}, c.TotalCosts())
}

func TestCostsInitializeFrom(t *testing.T) {
	var src cost.Costs
	src.AddType(0, "cycles", cost.UnitTracepoint)
	src.AddType(1, "time", cost.UnitTime)
	src.AddTotalCost(0, 100)
	src.AddValue(0, 1, 50)

	var derived cost.Costs
	derived.InitializeFrom(&src)

	// types and totals carry over, per-id columns start empty
	require.Equal(t, 2, derived.NumTypes())
	require.Equal(t, "cycles", derived.TypeName(0))
	require.Equal(t, cost.UnitTime, derived.Unit(1))
	require.Equal(t, int64(100), derived.TotalCost(0))
	require.Equal(t, int64(0), derived.Value(0, 1))

	derived.Add(1, cost.Vector{5, 6})
	require.Equal(t, cost.Vector{5, 6}, derived.ItemCost(1))
	require.Equal(t, int64(50), src.Value(0, 1))
}

func TestCostsAddWidthMismatch(t *testing.T) {
	var c cost.Costs
	c.AddType(0, "samples", cost.UnitUnknown)
	require.Panics(t, func() {
		c.Add(0, cost.Vector{1, 2})
	})
}

func TestFormatValue(t *testing.T) {
	require.Equal(t, "1234", cost.FormatValue(cost.UnitUnknown, 1234))
	require.Equal(t, "1234", cost.FormatValue(cost.UnitTracepoint, 1234))
	require.Equal(t, "1.5s", cost.FormatValue(cost.UnitTime, 1_500_000_000))
	require.Equal(t, "250ms", cost.FormatValue(cost.UnitTime, 250_000_000))
}
