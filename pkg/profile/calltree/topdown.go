package calltree

import "github.com/perfview/perfview/pkg/profile/cost"

// TopDownResults is the inverted view of a bottom-up tree: rooted at
// outermost frames, branching toward callees, annotated with inclusive
// and self cost per node of the new tree.
type TopDownResults struct {
	Root           *Node
	SelfCosts      cost.Costs
	InclusiveCosts cost.Costs
}

// NewTopDownResults inverts a bottom-up tree. With skipFirstLevel the
// first bottom-up generation (per-thread or per-process groups) is
// copied verbatim as shallow roots and each subtree is transformed
// independently, so the group identity survives instead of collapsing
// into one global root; the groups' inclusive cost is then the sum of
// their direct children.
func NewTopDownResults(bu *BottomUpResults, skipFirstLevel bool) *TopDownResults {
	res := &TopDownResults{Root: &Node{}}
	res.SelfCosts.InitializeFrom(&bu.Costs)
	res.InclusiveCosts.InitializeFrom(&bu.Costs)

	var maxID uint32
	if skipFirstLevel {
		for _, group := range bu.Root.Children {
			topDownGroup := res.Root.EntryForSymbol(group.Symbol, &maxID)
			res.buildTopDown(group, &bu.Costs, topDownGroup, &maxID, true)
			for _, child := range topDownGroup.Children {
				res.InclusiveCosts.Add(topDownGroup.ID, res.InclusiveCosts.ItemCost(child.ID))
			}
		}
	} else {
		res.buildTopDown(bu.Root, &bu.Costs, res.Root, &maxID, false)
	}

	res.Root.InitializeParents()
	return res
}

// buildTopDown returns the total cost of bottomUp's children, which the
// caller above needs to compute its own leftover.
func (res *TopDownResults) buildTopDown(bottomUp *Node, buCosts *cost.Costs, topDown *Node, maxID *uint32, skipFirstLevel bool) cost.Vector {
	total := make(cost.Vector, buCosts.NumTypes())
	for _, row := range bottomUp.Children {
		// recurse and find the cost attributed to children
		childCost := res.buildTopDown(row, buCosts, topDown, maxID, skipFirstLevel)
		rowCost := buCosts.ItemCost(row.ID)
		diff := rowCost.Sub(childCost)
		if diff.Sum() != 0 {
			// this row is (partially) a leaf
			// bubble up the parent chain to build the top-down tree
			node := row
			stack := topDown
			for node != nil {
				frame := stack.EntryForSymbol(node.Symbol, maxID)

				isLastNode := node.Parent == nil || (skipFirstLevel && node.Parent.Parent == nil)

				// always use the leaf node's leftover cost, otherwise
				// the cost of inner nodes would be counted repeatedly
				res.InclusiveCosts.Add(frame.ID, diff)
				if isLastNode {
					res.SelfCosts.Add(frame.ID, diff)
					break
				}

				stack = frame
				node = node.Parent
			}
		}
		total.Add(rowCost)
	}
	return total
}
