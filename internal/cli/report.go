package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/perfview/perfview/pkg/profile/calltree"
)

var (
	reportSkipFirstLevel bool

	reportCmd = &cobra.Command{
		Use:   "report <profile>",
		Short: "Print a combined report: totals, hottest functions, per-binary summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("skip-first-level") {
				settings.SkipFirstLevel = reportSkipFirstLevel
			}

			bu, err := loadProfile(args[0])
			if err != nil {
				return err
			}

			// The transforms are independent of each other and of the
			// interactive output; run them in parallel.
			var (
				td *calltree.TopDownResults
				cc *calltree.CallerCalleeResults
			)
			g, _ := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				td = calltree.NewTopDownResults(bu, settings.SkipFirstLevel)
				return nil
			})
			g.Go(func() error {
				cc = calltree.NewCallerCalleeResults(bu)
				return nil
			})
			if err := g.Wait(); err != nil {
				return err
			}
			pl := calltree.NewPerLibraryResults(td)

			w := os.Stdout
			fmt.Fprintln(w, "# Totals")
			for typ := 0; typ < bu.Costs.NumTypes(); typ++ {
				fmt.Fprintf(w, "  %s: %s\n",
					bu.Costs.TypeName(typ),
					bu.Costs.FormatValue(typ, bu.Costs.TotalCost(typ)))
			}

			fmt.Fprintln(w)
			fmt.Fprintln(w, "# Hottest functions")
			printFunctions(w, cc, settings.Top)

			fmt.Fprintln(w)
			fmt.Fprintln(w, "# Per-binary summary")
			printLibraries(w, pl)
			return nil
		},
	}
)

func init() {
	reportCmd.Flags().BoolVar(&reportSkipFirstLevel, "skip-first-level", false, "keep first-generation groups (threads/processes) as separate roots")

	rootCmd.AddCommand(reportCmd)
}
