package calltree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/perfview/perfview/pkg/profile/calltree"
	"github.com/perfview/perfview/pkg/profile/collapsed"
	"github.com/perfview/perfview/pkg/profile/cost"
	"github.com/perfview/perfview/pkg/profile/ingest"
)

// buildBottomUp aggregates collapsed-stacks text into a bottom-up tree,
// the input shared by all transform tests.
func buildBottomUp(t *testing.T, raw string) *calltree.BottomUpResults {
	t.Helper()
	profile, err := collapsed.Unmarshal([]byte(raw))
	require.NoError(t, err)
	bu, err := ingest.FromCollapsed(profile, ingest.Options{})
	require.NoError(t, err)
	return bu
}

func TestBottomUpAggregation(t *testing.T) {
	bu := buildBottomUp(t, `
main;a;b 2
main;a;c 3
main;a 1
`)

	require.Equal(t, int64(6), bu.Costs.TotalCost(0))
	require.Equal(t, "samples", bu.Costs.TypeName(0))

	// the first generation holds the sampled leaves
	b := bu.Root.FindEntry(sym("b"))
	c := bu.Root.FindEntry(sym("c"))
	a := bu.Root.FindEntry(sym("a"))
	require.NotNil(t, b)
	require.NotNil(t, c)
	require.NotNil(t, a)

	require.Equal(t, int64(2), bu.Costs.Value(0, b.ID))
	require.Equal(t, int64(3), bu.Costs.Value(0, c.ID))
	require.Equal(t, int64(1), bu.Costs.Value(0, a.ID))

	// every frame on the chain accumulates the sample cost
	aUnderB := b.FindEntry(sym("a"))
	require.NotNil(t, aUnderB)
	require.Equal(t, int64(2), bu.Costs.Value(0, aUnderB.ID))
	mainUnderB := aUnderB.FindEntry(sym("main"))
	require.NotNil(t, mainUnderB)
	require.Equal(t, int64(2), bu.Costs.Value(0, mainUnderB.ID))

	// parents are stamped, first generation stays parentless
	require.Nil(t, b.Parent)
	require.Same(t, b, aUnderB.Parent)
	require.Same(t, aUnderB, mainUnderB.Parent)
}

func TestBottomUpGroupedSample(t *testing.T) {
	bu := calltree.NewBottomUpResults()
	bu.Costs.AddType(0, "samples", cost.UnitUnknown)

	frames := []calltree.Frame{{Symbol: sym("work")}, {Symbol: sym("main")}}
	bu.AddGroupedSample(sym("T1"), 0, 5, frames)
	bu.Finalize()

	// the group frame accumulates cost like any other frame
	group := bu.Root.FindEntry(sym("T1"))
	require.NotNil(t, group)
	require.True(t, bu.Groups[group.ID])
	require.Equal(t, int64(5), bu.Costs.Value(0, group.ID))

	work := group.FindEntry(sym("work"))
	require.NotNil(t, work)
	require.Equal(t, int64(5), bu.Costs.Value(0, work.ID))
	require.Same(t, group, work.Parent)
	require.Nil(t, group.Parent)
}

func TestBottomUpSampleVector(t *testing.T) {
	bu := calltree.NewBottomUpResults()
	bu.Costs.AddType(0, "cycles", cost.UnitTracepoint)
	bu.Costs.AddType(1, "time", cost.UnitTime)

	frames := []calltree.Frame{{Symbol: sym("leaf")}, {Symbol: sym("main")}}
	bu.AddSampleVector(cost.Vector{3, 1000}, frames)
	bu.AddSampleVector(cost.Vector{1, 500}, frames)
	bu.Finalize()

	leaf := bu.Root.FindEntry(sym("leaf"))
	require.NotNil(t, leaf)
	require.Equal(t, cost.Vector{4, 1500}, bu.Costs.ItemCost(leaf.ID))
	require.Equal(t, cost.Vector{4, 1500}, bu.Costs.TotalCosts())
}

func TestSymbolIdentityIgnoresLocation(t *testing.T) {
	bu := calltree.NewBottomUpResults()
	bu.Costs.AddType(0, "samples", cost.UnitUnknown)

	// samples hitting the same function at different addresses, with
	// different resolved sizes, must aggregate into a single node
	fn := calltree.Symbol{Name: "f", Binary: "a.out"}
	bu.AddSample(0, 1, []calltree.Frame{{
		Symbol:   fn,
		Location: calltree.Location{Address: 0x10, Size: 16},
	}})
	bu.AddSample(0, 2, []calltree.Frame{{
		Symbol:   fn,
		Location: calltree.Location{Address: 0x20, Size: 32},
	}})
	bu.Finalize()

	require.Len(t, bu.Root.Children, 1)
	require.Equal(t, int64(3), bu.Costs.Value(0, bu.Root.Children[0].ID))

	cc := calltree.NewCallerCalleeResults(bu)
	require.Len(t, cc.Entries, 1)
	require.Equal(t, int64(3), cc.SelfCosts.Value(0, cc.Entries[fn].ID))
}

func TestBottomUpRecordsLocations(t *testing.T) {
	bu := calltree.NewBottomUpResults()
	bu.Costs.AddType(0, "samples", cost.UnitUnknown)

	loc := calltree.Location{
		Address:  0x1000,
		FileLine: calltree.FileLine{File: "leaf.c", Line: 12},
	}
	bu.AddSample(0, 1, []calltree.Frame{
		{Symbol: sym("leaf"), Location: loc},
		{Symbol: sym("main")},
	})
	bu.Finalize()

	leaf := bu.Root.FindEntry(sym("leaf"))
	require.NotNil(t, leaf)
	require.Equal(t, loc, bu.Locations[leaf.ID])

	// frames without source info leave no location behind
	main := leaf.FindEntry(sym("main"))
	require.NotNil(t, main)
	_, ok := bu.Locations[main.ID]
	require.False(t, ok)
}
