// Package ingest builds bottom-up cost trees from on-disk profiles. It
// understands collapsed-stacks text, pprof protobufs and JFR
// recordings.
package ingest

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	pprof "github.com/google/pprof/profile"
	"go.uber.org/zap"

	"github.com/perfview/perfview/pkg/profile/calltree"
	"github.com/perfview/perfview/pkg/profile/collapsed"
)

type Format string

const (
	FormatAuto      Format = "auto"
	FormatCollapsed Format = "collapsed"
	FormatPprof     Format = "pprof"
	FormatJFR       Format = "jfr"
)

type Options struct {
	Format Format
	// Event selects the JFR event type: cpu, wall, alloc or lock.
	Event  string
	Logger *zap.Logger
}

func (o *Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Load reads the profile at path ("-" means stdin, ".gz" is handled
// transparently) and aggregates it into a bottom-up tree with parents
// already stamped.
func Load(path string, opts Options) (*calltree.BottomUpResults, error) {
	raw, err := readFile(path)
	if err != nil {
		return nil, err
	}

	format := opts.Format
	if format == "" || format == FormatAuto {
		format = detectFormat(path, raw)
		opts.logger().Debug("detected profile format",
			zap.String("path", path), zap.String("format", string(format)))
	}

	switch format {
	case FormatCollapsed:
		p, err := collapsed.Unmarshal(raw)
		if err != nil {
			return nil, err
		}
		return FromCollapsed(p, opts)
	case FormatPprof:
		p, err := pprof.ParseData(raw)
		if err != nil {
			return nil, fmt.Errorf("ingest: parse pprof: %w", err)
		}
		return FromPprof(p, opts)
	case FormatJFR:
		return FromJFR(raw, opts)
	default:
		return nil, fmt.Errorf("ingest: unknown profile format %q", format)
	}
}

func readFile(path string) ([]byte, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("ingest: gzip: %w", err)
		}
		defer gr.Close()
		r = gr
	}

	return io.ReadAll(r)
}

func detectFormat(path string, raw []byte) Format {
	name := strings.ToLower(strings.TrimSuffix(path, ".gz"))
	switch {
	case strings.HasSuffix(name, ".jfr"):
		return FormatJFR
	case strings.HasSuffix(name, ".pprof"), strings.HasSuffix(name, ".pb"):
		return FormatPprof
	case strings.HasSuffix(name, ".txt"), strings.HasSuffix(name, ".collapsed"), strings.HasSuffix(name, ".folded"):
		return FormatCollapsed
	}

	// No telling extension: check the JFR magic, then fall back to
	// binary content means pprof, text means collapsed stacks.
	if bytes.HasPrefix(raw, []byte("FLR\x00")) {
		return FormatJFR
	}
	if bytes.IndexByte(raw[:min(len(raw), 1024)], 0) != -1 {
		return FormatPprof
	}
	return FormatCollapsed
}
