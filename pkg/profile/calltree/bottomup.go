package calltree

import "github.com/perfview/perfview/pkg/profile/cost"

// Frame is one call-stack frame of an incoming sample: the symbol
// identity plus the precise location it was sampled at, when known.
type Frame struct {
	Symbol   Symbol
	Location Location
}

// BottomUpResults aggregates samples by identical call paths from the
// leaf (innermost frame) outward: the first tree generation holds leaf
// frames, children branch toward callers.
//
// It is built once per loaded profile and treated as read-only input by
// the derived transforms. Finalize must run before any transform: the
// transforms walk parent chains, they do not build them.
type BottomUpResults struct {
	Root  *Node
	Costs cost.Costs

	// Locations maps a node id to the first sampled location observed
	// for it, for source-level cost attribution. Nodes sampled without
	// location data are absent.
	Locations map[uint32]Location

	// Groups marks the first-generation node ids that were created as
	// thread/process group frames rather than sampled code.
	Groups map[uint32]bool

	maxID uint32
}

func NewBottomUpResults() *BottomUpResults {
	return &BottomUpResults{
		Root:      &Node{},
		Locations: make(map[uint32]Location),
		Groups:    make(map[uint32]bool),
	}
}

// AddSample records one sample of the given cost type. Frames are
// ordered leaf first, outermost caller last.
func (r *BottomUpResults) AddSample(typ int, value int64, frames []Frame) *Node {
	r.Costs.AddTotalCost(typ, value)
	parent := r.Root
	for _, frame := range frames {
		parent = r.entry(parent, frame)
		r.Costs.AddValue(typ, parent.ID, value)
	}
	return parent
}

// AddGroupedSample is AddSample with an extra first-generation group
// frame, typically a thread or process identity. The group accumulates
// the sample cost like any other frame.
func (r *BottomUpResults) AddGroupedSample(group Symbol, typ int, value int64, frames []Frame) *Node {
	r.Costs.AddTotalCost(typ, value)
	parent := r.Root.EntryForSymbol(group, &r.maxID)
	r.Groups[parent.ID] = true
	r.Costs.AddValue(typ, parent.ID, value)
	for _, frame := range frames {
		parent = r.entry(parent, frame)
		r.Costs.AddValue(typ, parent.ID, value)
	}
	return parent
}

// AddSampleVector records one sample carrying all cost types at once,
// e.g. a pprof sample with several value columns.
func (r *BottomUpResults) AddSampleVector(values cost.Vector, frames []Frame) *Node {
	for typ, value := range values {
		r.Costs.AddTotalCost(typ, value)
	}
	parent := r.Root
	for _, frame := range frames {
		parent = r.entry(parent, frame)
		r.Costs.Add(parent.ID, values)
	}
	return parent
}

func (r *BottomUpResults) entry(parent *Node, frame Frame) *Node {
	node := parent.EntryForSymbol(frame.Symbol, &r.maxID)
	if frame.Location.FileLine.IsValid() {
		if _, ok := r.Locations[node.ID]; !ok {
			r.Locations[node.ID] = frame.Location
		}
	}
	return node
}

// Finalize stamps parent back-references. No sample may be added
// afterwards.
func (r *BottomUpResults) Finalize() {
	r.Root.InitializeParents()
}
