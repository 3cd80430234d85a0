package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/perfview/perfview/pkg/profile/calltree"
)

var (
	topFunctions int

	functionsCmd = &cobra.Command{
		Use:   "functions <profile>",
		Short: "Print a flat per-function table ranked by self cost",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("top") {
				settings.Top = topFunctions
			}

			bu, err := loadProfile(args[0])
			if err != nil {
				return err
			}

			cc := calltree.NewCallerCalleeResults(bu)
			printFunctions(os.Stdout, cc, settings.Top)
			return nil
		},
	}
)

func init() {
	functionsCmd.Flags().IntVar(&topFunctions, "top", 10, "number of rows to print, 0 means all")

	rootCmd.AddCommand(functionsCmd)
}
