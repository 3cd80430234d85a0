package calltree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/perfview/perfview/pkg/profile/calltree"
)

func TestPerLibrary(t *testing.T) {
	bu := buildBottomUp(t, `
libfoo.so!a;libfoo.so!b;libbar.so!c 4
libfoo.so!a 1
main 7
`)
	td := calltree.NewTopDownResults(bu, false)
	pl := calltree.NewPerLibraryResults(td)

	require.Len(t, pl.Root.Children, 3)

	foo := pl.Root.FindEntry(calltree.Symbol{Binary: "libfoo.so"})
	require.NotNil(t, foo)
	require.Equal(t, int64(1), pl.Costs.Value(0, foo.ID))

	bar := pl.Root.FindEntry(calltree.Symbol{Binary: "libbar.so"})
	require.NotNil(t, bar)
	require.Equal(t, int64(4), pl.Costs.Value(0, bar.ID))

	// frames without a binary gather under the empty group
	unknown := pl.Root.FindEntry(calltree.Symbol{})
	require.NotNil(t, unknown)
	require.Equal(t, int64(7), pl.Costs.Value(0, unknown.ID))

	// the rollup conserves the profile total
	var total int64
	for _, group := range pl.Root.Children {
		total += pl.Costs.Value(0, group.ID)
	}
	require.Equal(t, bu.Costs.TotalCost(0), total)
}

func TestPerLibraryMergesAcrossSubtrees(t *testing.T) {
	// the same binary showing up in separate call chains folds into one
	// group
	bu := buildBottomUp(t, `
main;libfoo.so!f 2
other;libfoo.so!g 3
`)
	td := calltree.NewTopDownResults(bu, false)
	pl := calltree.NewPerLibraryResults(td)

	foo := pl.Root.FindEntry(calltree.Symbol{Binary: "libfoo.so"})
	require.NotNil(t, foo)
	require.Equal(t, int64(5), pl.Costs.Value(0, foo.ID))
}
