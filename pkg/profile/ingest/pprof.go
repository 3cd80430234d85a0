package ingest

import (
	"fmt"
	"path/filepath"

	pprof "github.com/google/pprof/profile"
	"go.uber.org/zap"

	"github.com/perfview/perfview/pkg/profile/calltree"
	"github.com/perfview/perfview/pkg/profile/cost"
)

// FromPprof aggregates a pprof profile. Every sample-type column
// becomes one cost type; inline frames expand into separate tree
// levels.
func FromPprof(p *pprof.Profile, opts Options) (*calltree.BottomUpResults, error) {
	bu := calltree.NewBottomUpResults()
	for typ, st := range p.SampleType {
		bu.Costs.AddType(typ, st.Type, pprofUnit(st.Unit))
	}

	for _, sample := range p.Sample {
		// pprof locations are already ordered leaf first
		var frames []calltree.Frame
		for _, loc := range sample.Location {
			frames = append(frames, locationFrames(loc)...)
		}
		if len(frames) == 0 {
			continue
		}
		bu.AddSampleVector(cost.Vector(sample.Value).Clone(), frames)
	}

	bu.Finalize()
	opts.logger().Debug("aggregated pprof profile",
		zap.Int("samples", len(p.Sample)),
		zap.Int("costTypes", bu.Costs.NumTypes()))
	return bu, nil
}

func pprofUnit(unit string) cost.Unit {
	switch unit {
	case "nanoseconds", "ns":
		return cost.UnitTime
	default:
		return cost.UnitUnknown
	}
}

func locationFrames(loc *pprof.Location) []calltree.Frame {
	binary, path := "", ""
	var relAddr uint64
	if loc.Mapping != nil {
		path = loc.Mapping.File
		binary = filepath.Base(path)
		relAddr = loc.Address - loc.Mapping.Start
	}

	if len(loc.Line) == 0 {
		return []calltree.Frame{{
			Symbol: calltree.Symbol{
				Name:    fmt.Sprintf("0x%x", loc.Address),
				Binary:  binary,
				Path:    path,
				RelAddr: relAddr,
			},
			Location: calltree.Location{Address: loc.Address, RelAddr: relAddr},
		}}
	}

	// Line[0] is the innermost inline frame; later entries inlined it.
	frames := make([]calltree.Frame, 0, len(loc.Line))
	for _, line := range loc.Line {
		name := ""
		fileLine := calltree.FileLine{}
		if line.Function != nil {
			name = line.Function.Name
			if name == "" {
				name = line.Function.SystemName
			}
			fileLine = calltree.FileLine{File: line.Function.Filename, Line: int(line.Line)}
		}
		if name == "" {
			name = fmt.Sprintf("0x%x", loc.Address)
		}
		frames = append(frames, calltree.Frame{
			Symbol: calltree.Symbol{
				Name:    name,
				Binary:  binary,
				Path:    path,
				RelAddr: relAddr,
			},
			Location: calltree.Location{
				Address:  loc.Address,
				RelAddr:  relAddr,
				FileLine: fileLine,
			},
		})
	}
	return frames
}
