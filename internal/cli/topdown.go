package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/perfview/perfview/pkg/profile/calltree"
)

var (
	skipFirstLevel bool
	maxDepth       int
	minPercent     float64

	topdownCmd = &cobra.Command{
		Use:   "topdown <profile>",
		Short: "Print the top-down call tree with self/inclusive costs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("max-depth") {
				settings.MaxDepth = maxDepth
			}
			if cmd.Flags().Changed("min-percent") {
				settings.MinPercent = minPercent
			}
			if cmd.Flags().Changed("skip-first-level") {
				settings.SkipFirstLevel = skipFirstLevel
			}

			bu, err := loadProfile(args[0])
			if err != nil {
				return err
			}

			td := calltree.NewTopDownResults(bu, settings.SkipFirstLevel)
			printTopDown(os.Stdout, td, settings)
			return nil
		},
	}
)

func init() {
	topdownCmd.Flags().BoolVar(&skipFirstLevel, "skip-first-level", false, "keep first-generation groups (threads/processes) as separate roots")
	topdownCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "limit printed tree depth, 0 means unlimited")
	topdownCmd.Flags().Float64Var(&minPercent, "min-percent", 0.5, "hide rows below this inclusive percentage")

	rootCmd.AddCommand(topdownCmd)
}
