package ingest

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/perfview/perfview/pkg/profile/calltree"
	"github.com/perfview/perfview/pkg/profile/collapsed"
	"github.com/perfview/perfview/pkg/profile/cost"
)

// threadFrameRe matches a "[thread name]" or "[thread name tid=123]"
// marker frame at the start of a collapsed stack.
var threadFrameRe = regexp.MustCompile(`^\[(.+?)(?:\s+tid=\d+)?\]$`)

// FromCollapsed aggregates a folded-stacks profile. Frames of the form
// "binary!symbol" carry the originating binary; a leading "[thread]"
// frame becomes a first-generation group so that grouped views stay
// split per thread.
func FromCollapsed(p *collapsed.Profile, opts Options) (*calltree.BottomUpResults, error) {
	bu := calltree.NewBottomUpResults()
	bu.Costs.AddType(0, "samples", cost.UnitUnknown)

	for _, sample := range p.Samples {
		stack := sample.Stack

		group := calltree.Symbol{}
		if len(stack) > 0 {
			if m := threadFrameRe.FindStringSubmatch(stack[0]); m != nil {
				group = calltree.Symbol{Name: m[1]}
				stack = stack[1:]
			}
		}
		if len(stack) == 0 {
			continue
		}

		// collapsed stacks are ordered root to leaf, the builder wants
		// the leaf first
		frames := make([]calltree.Frame, len(stack))
		for i, raw := range stack {
			frames[len(stack)-1-i] = calltree.Frame{Symbol: parseCollapsedFrame(raw)}
		}

		if group.IsValid() {
			bu.AddGroupedSample(group, 0, sample.Value, frames)
		} else {
			bu.AddSample(0, sample.Value, frames)
		}
	}

	bu.Finalize()
	opts.logger().Debug("aggregated collapsed profile",
		zap.Int("samples", len(p.Samples)),
		zap.Int64("total", bu.Costs.TotalCost(0)))
	return bu, nil
}

func parseCollapsedFrame(raw string) calltree.Symbol {
	if bang := strings.IndexByte(raw, '!'); bang > 0 {
		return calltree.Symbol{Name: raw[bang+1:], Binary: raw[:bang]}
	}
	return calltree.Symbol{Name: raw}
}
