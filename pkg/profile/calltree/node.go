package calltree

// Node is the tree-node shape shared by the bottom-up, top-down and
// per-library trees. Ids are assigned on first creation and increase
// monotonically across a whole tree; cost maps are keyed by them.
//
// Parent back-references are nil until InitializeParents runs over the
// finished tree. They are never set during growth.
type Node struct {
	ID       uint32
	Symbol   Symbol
	Children []*Node

	// Parent is a non-owning back-reference. Note that first-generation
	// nodes keep a nil Parent: the synthetic root above them is not part
	// of any call chain.
	Parent *Node
}

// EntryForSymbol finds the child carrying sym, creating it with a fresh
// id when no child matches. Children of distinct parents may well share
// a Symbol; the lookup is always scoped to one parent.
func (n *Node) EntryForSymbol(sym Symbol, nextID *uint32) *Node {
	for _, child := range n.Children {
		if child.Symbol == sym {
			return child
		}
	}
	child := &Node{ID: *nextID, Symbol: sym}
	*nextID++
	n.Children = append(n.Children, child)
	return child
}

// FindEntry is the lookup-only counterpart of EntryForSymbol.
func (n *Node) FindEntry(sym Symbol) *Node {
	for _, child := range n.Children {
		if child.Symbol == sym {
			return child
		}
	}
	return nil
}

// InitializeParents stamps parent back-references below n in one pass.
// n itself is treated as the root: its direct children get no parent.
func (n *Node) InitializeParents() {
	setParents(n.Children, nil)
}

func setParents(children []*Node, parent *Node) {
	for _, child := range children {
		child.Parent = parent
		setParents(child.Children, child)
	}
}

// Walk visits every node below n in depth-first order.
func (n *Node) Walk(fn func(*Node)) {
	for _, child := range n.Children {
		fn(child)
		child.Walk(fn)
	}
}
