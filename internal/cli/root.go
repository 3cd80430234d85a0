package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/perfview/perfview/pkg/profile/calltree"
	"github.com/perfview/perfview/pkg/profile/ingest"
	"github.com/perfview/perfview/pkg/profile/prettify"
)

var (
	rootCmd = &cobra.Command{
		Use:           "perfview",
		Short:         "Aggregate sampling-profiler data into cost-attribution views",
		Long:          "perfview derives top-down call trees, per-function caller/callee tables and per-binary summaries from collapsed-stacks, pprof or JFR profiles.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	inputFormat string
	jfrEvent    string
	logLevel    string
	configPath  string
	noPrettify  bool
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&inputFormat, "format", "auto", "input profile format (auto, collapsed, pprof, jfr)")
	pf.StringVarP(&jfrEvent, "event", "e", "cpu", "JFR event type (cpu, wall, alloc, lock)")
	pf.StringVarP(&logLevel, "log-level", "l", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&configPath, "config", "c", "", "path to display settings file")
	pf.BoolVar(&noPrettify, "no-prettify", false, "do not shorten template-heavy symbol names")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func setupLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("can't parse log level: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

func loadProfile(path string) (*calltree.BottomUpResults, error) {
	logger, err := setupLogger()
	if err != nil {
		return nil, err
	}
	defer func() { _ = logger.Sync() }()

	return ingest.Load(path, ingest.Options{
		Format: ingest.Format(inputFormat),
		Event:  jfrEvent,
		Logger: logger,
	})
}

// displayName renders a symbol for output, shortening template-heavy
// names unless that was switched off.
func displayName(sym calltree.Symbol) string {
	name := sym.Name
	if name == "" {
		if sym.Binary != "" {
			return sym.Binary
		}
		return "??"
	}
	if noPrettify {
		return name
	}
	return prettify.Symbol(name)
}
