package calltree

import "github.com/perfview/perfview/pkg/profile/cost"

// LocationCost carries self and inclusive cost attributed to one source
// location of a symbol.
type LocationCost struct {
	Self      cost.Vector
	Inclusive cost.Vector
}

// CallerCalleeEntry is the per-symbol aggregate: directed edge costs to
// every observed caller and callee, plus optional per-source-location
// costs when the input carried line information.
type CallerCalleeEntry struct {
	ID uint32

	// Callers holds other symbols that called this one.
	Callers map[Symbol]cost.Vector
	// Callees holds symbols called from this one.
	Callees map[Symbol]cost.Vector

	SourceCosts map[FileLine]*LocationCost
}

func (e *CallerCalleeEntry) addCaller(sym Symbol, diff cost.Vector) {
	v := e.Callers[sym]
	v.Add(diff)
	e.Callers[sym] = v
}

func (e *CallerCalleeEntry) addCallee(sym Symbol, diff cost.Vector) {
	v := e.Callees[sym]
	v.Add(diff)
	e.Callees[sym] = v
}

// Source finds or creates the cost slot of one source location.
func (e *CallerCalleeEntry) Source(fl FileLine) *LocationCost {
	lc, ok := e.SourceCosts[fl]
	if !ok {
		lc = &LocationCost{}
		e.SourceCosts[fl] = lc
	}
	return lc
}

type CallerCalleeResults struct {
	Entries        map[Symbol]*CallerCalleeEntry
	SelfCosts      cost.Costs
	InclusiveCosts cost.Costs
}

// Entry finds or creates the aggregate of one symbol, assigning entry
// ids sequentially in creation order.
func (r *CallerCalleeResults) Entry(sym Symbol) *CallerCalleeEntry {
	entry, ok := r.Entries[sym]
	if !ok {
		entry = &CallerCalleeEntry{
			ID:          uint32(len(r.Entries)),
			Callers:     make(map[Symbol]cost.Vector),
			Callees:     make(map[Symbol]cost.Vector),
			SourceCosts: make(map[FileLine]*LocationCost),
		}
		r.Entries[sym] = entry
	}
	return entry
}

// NewCallerCalleeResults derives the per-symbol aggregates and the
// directed caller→callee cost matrix from a bottom-up tree.
func NewCallerCalleeResults(bu *BottomUpResults) *CallerCalleeResults {
	res := &CallerCalleeResults{Entries: make(map[Symbol]*CallerCalleeEntry)}
	res.SelfCosts.InitializeFrom(&bu.Costs)
	res.InclusiveCosts.InitializeFrom(&bu.Costs)
	res.buildCallerCallee(bu.Root, bu)
	return res
}

func (res *CallerCalleeResults) buildCallerCallee(node *Node, bu *BottomUpResults) cost.Vector {
	buCosts := &bu.Costs
	total := make(cost.Vector, buCosts.NumTypes())
	for _, row := range node.Children {
		// recurse to find a leaf
		childCost := res.buildCallerCallee(row, bu)
		rowCost := buCosts.ItemCost(row.ID)
		diff := rowCost.Sub(childCost)
		if diff.Sum() != 0 {
			// this row is (partially) a leaf: walk the parent chain and
			// credit every frame on it. The guards are scoped to this
			// one walk so that a symbol recursing within its own stack
			// is not counted more than once per leaf event.
			recursionGuard := make(map[Symbol]struct{})
			edgeGuard := make(map[[2]Symbol]struct{})

			var lastSymbol Symbol
			var lastEntry *CallerCalleeEntry

			for cur := row; cur != nil; cur = cur.Parent {
				sym := cur.Symbol
				entry := res.Entry(sym)

				loc, hasLoc := bu.Locations[cur.ID]

				if _, seen := recursionGuard[sym]; !seen {
					// only increment inclusive cost once per stack
					res.InclusiveCosts.Add(entry.ID, diff)
					if hasLoc {
						entry.Source(loc.FileLine).Inclusive.Add(diff)
					}
					recursionGuard[sym] = struct{}{}
				}
				if cur.Parent == nil {
					// the innermost frame always takes the self cost
					res.SelfCosts.Add(entry.ID, diff)
					if hasLoc {
						entry.Source(loc.FileLine).Self.Add(diff)
					}
				}
				// record the edge between the previous frame and this
				// one, in both directions
				if lastEntry != nil {
					pair := [2]Symbol{sym, lastSymbol}
					if _, seen := edgeGuard[pair]; !seen {
						lastEntry.addCallee(sym, diff)
						entry.addCaller(lastSymbol, diff)
						edgeGuard[pair] = struct{}{}
					}
				}

				lastSymbol = sym
				lastEntry = entry
			}
		}
		total.Add(rowCost)
	}
	return total
}
