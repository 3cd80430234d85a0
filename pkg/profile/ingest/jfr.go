package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/grafana/jfr-parser/parser"
	"github.com/grafana/jfr-parser/parser/types"
	"go.uber.org/zap"

	"github.com/perfview/perfview/pkg/profile/calltree"
	"github.com/perfview/perfview/pkg/profile/cost"
)

// FromJFR aggregates a JFR recording, counting one sample per event of
// the selected type. Stacks are grouped per thread, so grouped views
// keep the per-thread split. The binary of a Java frame is the package
// of its declaring class.
func FromJFR(raw []byte, opts Options) (*calltree.BottomUpResults, error) {
	event := opts.Event
	if event == "" {
		event = "cpu"
	}
	switch event {
	case "cpu", "wall", "alloc", "lock":
	default:
		return nil, fmt.Errorf("ingest: unknown JFR event type %q (valid: cpu, wall, alloc, lock)", event)
	}

	p := parser.NewParser(raw, parser.Options{})

	bu := calltree.NewBottomUpResults()
	bu.Costs.AddType(0, event+" samples", cost.UnitUnknown)

	events := 0
	for {
		typ, err := p.ParseEvent()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: parse JFR event: %w", err)
		}

		var stRef types.StackTraceRef
		var thRef types.ThreadRef
		var match bool

		switch {
		case event == "cpu" && typ == p.TypeMap.T_EXECUTION_SAMPLE:
			stRef = p.ExecutionSample.StackTrace
			thRef = p.ExecutionSample.SampledThread
			match = true
		case event == "wall" && typ == p.TypeMap.T_WALL_CLOCK_SAMPLE:
			stRef = p.WallClockSample.StackTrace
			thRef = p.WallClockSample.SampledThread
			match = true
		case event == "alloc" && typ == p.TypeMap.T_ALLOC_IN_NEW_TLAB:
			stRef = p.ObjectAllocationInNewTLAB.StackTrace
			thRef = p.ObjectAllocationInNewTLAB.EventThread
			match = true
		case event == "alloc" && typ == p.TypeMap.T_ALLOC_OUTSIDE_TLAB:
			stRef = p.ObjectAllocationOutsideTLAB.StackTrace
			thRef = p.ObjectAllocationOutsideTLAB.EventThread
			match = true
		case event == "alloc" && typ == p.TypeMap.T_ALLOC_SAMPLE:
			stRef = p.ObjectAllocationSample.StackTrace
			thRef = p.ObjectAllocationSample.EventThread
			match = true
		case event == "lock" && typ == p.TypeMap.T_MONITOR_ENTER:
			stRef = p.JavaMonitorEnter.StackTrace
			thRef = p.JavaMonitorEnter.EventThread
			match = true
		}

		if !match {
			continue
		}

		st := p.GetStacktrace(stRef)
		if st == nil || len(st.Frames) == 0 {
			continue
		}

		// JFR frames are already ordered leaf first
		frames := make([]calltree.Frame, len(st.Frames))
		for i, f := range st.Frames {
			frames[i] = calltree.Frame{Symbol: jfrSymbol(p, f)}
		}

		events++
		if thread := jfrThread(p, thRef); thread != "" {
			bu.AddGroupedSample(calltree.Symbol{Name: thread}, 0, 1, frames)
		} else {
			bu.AddSample(0, 1, frames)
		}
	}

	bu.Finalize()
	opts.logger().Debug("aggregated JFR recording",
		zap.String("event", event), zap.Int("events", events))
	return bu, nil
}

func jfrSymbol(p *parser.Parser, f types.StackFrame) calltree.Symbol {
	method := p.GetMethod(f.Method)
	if method == nil {
		return calltree.Symbol{Name: "<unknown>"}
	}

	className := ""
	if class := p.GetClass(method.Type); class != nil {
		className = p.GetSymbolString(class.Name)
	}
	methodName := p.GetSymbolString(method.Name)

	if className == "" {
		return calltree.Symbol{Name: methodName}
	}

	pkg := ""
	if dot := strings.LastIndexByte(className, '.'); dot != -1 {
		pkg = className[:dot]
	}
	return calltree.Symbol{
		Name:   className + "." + methodName,
		Binary: pkg,
	}
}

func jfrThread(p *parser.Parser, ref types.ThreadRef) string {
	idx, ok := p.Threads.IDMap[ref]
	if !ok {
		return ""
	}
	t := &p.Threads.Thread[idx]
	if t.JavaName != "" {
		return t.JavaName
	}
	return t.OsName
}
