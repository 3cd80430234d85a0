package cli

import (
	"fmt"
	"io"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/perfview/perfview/pkg/profile/calltree"
	"github.com/perfview/perfview/pkg/profile/cost"
)

// All tables rank rows by the primary cost type; additional cost types
// are shown as extra value columns where it matters.

func percent(value, total int64) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(value) / float64(total)
}

func sortedByCost(nodes []*calltree.Node, costs *cost.Costs) []*calltree.Node {
	sorted := slices.Clone(nodes)
	slices.SortStableFunc(sorted, func(lhs, rhs *calltree.Node) int {
		lc, rc := costs.Value(0, lhs.ID), costs.Value(0, rhs.ID)
		if lc != rc {
			if lc > rc {
				return -1
			}
			return 1
		}
		return 0
	})
	return sorted
}

func printTopDown(w io.Writer, td *calltree.TopDownResults, settings Settings) {
	total := td.InclusiveCosts.TotalCost(0)
	fmt.Fprintf(w, "%9s %9s  %s\n", "incl", "self", "symbol")

	var walk func(node *calltree.Node, depth int)
	walk = func(node *calltree.Node, depth int) {
		incl := td.InclusiveCosts.Value(0, node.ID)
		pct := percent(incl, total)
		if pct < settings.MinPercent {
			return
		}
		selfPct := percent(td.SelfCosts.Value(0, node.ID), total)

		indent := ""
		for i := 0; i < depth; i++ {
			indent += "  "
		}
		fmt.Fprintf(w, "%8.2f%% %8.2f%%  %s%s\n", pct, selfPct, indent, displayName(node.Symbol))

		if settings.MaxDepth > 0 && depth+1 >= settings.MaxDepth {
			return
		}
		for _, child := range sortedByCost(node.Children, &td.InclusiveCosts) {
			walk(child, depth+1)
		}
	}

	for _, root := range sortedByCost(td.Root.Children, &td.InclusiveCosts) {
		walk(root, 0)
	}
}

func sortedEntrySymbols(cc *calltree.CallerCalleeResults) []calltree.Symbol {
	syms := maps.Keys(cc.Entries)
	slices.SortFunc(syms, func(lhs, rhs calltree.Symbol) int {
		le, re := cc.Entries[lhs], cc.Entries[rhs]
		lc, rc := cc.SelfCosts.Value(0, le.ID), cc.SelfCosts.Value(0, re.ID)
		if lc != rc {
			if lc > rc {
				return -1
			}
			return 1
		}
		if lhs.Name != rhs.Name {
			if lhs.Name < rhs.Name {
				return -1
			}
			return 1
		}
		return 0
	})
	return syms
}

func printFunctions(w io.Writer, cc *calltree.CallerCalleeResults, top int) {
	total := cc.InclusiveCosts.TotalCost(0)
	fmt.Fprintf(w, "%12s %7s %12s %7s  %s\n", "self", "self%", "incl", "incl%", "symbol")

	for i, sym := range sortedEntrySymbols(cc) {
		if top > 0 && i >= top {
			break
		}
		entry := cc.Entries[sym]
		self := cc.SelfCosts.Value(0, entry.ID)
		incl := cc.InclusiveCosts.Value(0, entry.ID)
		name := displayName(sym)
		if sym.Binary != "" {
			name += " (" + sym.Binary + ")"
		}
		fmt.Fprintf(w, "%12s %6.2f%% %12s %6.2f%%  %s\n",
			cc.SelfCosts.FormatValue(0, self), percent(self, total),
			cc.InclusiveCosts.FormatValue(0, incl), percent(incl, total),
			name)
	}
}

func printEdges(w io.Writer, label string, edges map[calltree.Symbol]cost.Vector, costs *cost.Costs, total int64) {
	if len(edges) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s:\n", label)

	syms := maps.Keys(edges)
	slices.SortFunc(syms, func(lhs, rhs calltree.Symbol) int {
		lc, rc := edges[lhs].Sum(), edges[rhs].Sum()
		if lc != rc {
			if lc > rc {
				return -1
			}
			return 1
		}
		if lhs.Name < rhs.Name {
			return -1
		}
		if lhs.Name > rhs.Name {
			return 1
		}
		return 0
	})
	for _, sym := range syms {
		v := edges[sym][0]
		fmt.Fprintf(w, "    %12s %6.2f%%  %s\n", costs.FormatValue(0, v), percent(v, total), displayName(sym))
	}
}

func printCallerCallee(w io.Writer, cc *calltree.CallerCalleeResults, sym calltree.Symbol) {
	entry := cc.Entries[sym]
	total := cc.InclusiveCosts.TotalCost(0)
	self := cc.SelfCosts.Value(0, entry.ID)
	incl := cc.InclusiveCosts.Value(0, entry.ID)

	fmt.Fprintf(w, "%s\n", displayName(sym))
	if sym.Binary != "" {
		fmt.Fprintf(w, "  binary: %s\n", sym.Binary)
	}
	fmt.Fprintf(w, "  self: %s (%.2f%%), inclusive: %s (%.2f%%)\n",
		cc.SelfCosts.FormatValue(0, self), percent(self, total),
		cc.InclusiveCosts.FormatValue(0, incl), percent(incl, total))

	printEdges(w, "callers", entry.Callers, &cc.InclusiveCosts, total)
	printEdges(w, "callees", entry.Callees, &cc.InclusiveCosts, total)
}

func printLibraries(w io.Writer, pl *calltree.PerLibraryResults) {
	total := pl.Costs.TotalCost(0)
	fmt.Fprintf(w, "%12s %7s  %s\n", "self", "self%", "binary")

	for _, lib := range sortedByCost(pl.Root.Children, &pl.Costs) {
		value := pl.Costs.Value(0, lib.ID)
		name := lib.Symbol.Binary
		if name == "" {
			name = "<unknown>"
		}
		fmt.Fprintf(w, "%12s %6.2f%%  %s\n",
			pl.Costs.FormatValue(0, value), percent(value, total), name)
	}
}
