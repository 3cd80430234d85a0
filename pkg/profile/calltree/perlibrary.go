package calltree

import "github.com/perfview/perfview/pkg/profile/cost"

// PerLibraryResults folds a top-down tree into one level of groups
// keyed by originating binary, each carrying the summed self cost of
// every frame belonging to that binary anywhere in the tree.
type PerLibraryResults struct {
	Root  *Node
	Costs cost.Costs
}

func NewPerLibraryResults(td *TopDownResults) *PerLibraryResults {
	res := &PerLibraryResults{Root: &Node{}}
	res.Costs.InitializeFrom(&td.SelfCosts)

	binaryToIndex := make(map[string]uint32)
	res.buildPerLibrary(td.Root, binaryToIndex, &td.SelfCosts)

	res.Root.InitializeParents()
	return res
}

func (res *PerLibraryResults) buildPerLibrary(node *Node, binaryToIndex map[string]uint32, selfCosts *cost.Costs) {
	for _, child := range node.Children {
		binary := child.Symbol.Binary

		idx, ok := binaryToIndex[binary]
		if !ok {
			idx = uint32(len(binaryToIndex))
			binaryToIndex[binary] = idx
			res.Root.Children = append(res.Root.Children, &Node{
				ID:     idx,
				Symbol: Symbol{Binary: binary},
			})
		}

		res.Costs.Add(idx, selfCosts.ItemCost(child.ID))

		res.buildPerLibrary(child, binaryToIndex, selfCosts)
	}
}
