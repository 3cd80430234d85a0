package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/perfview/perfview/pkg/profile/calltree"
)

var librariesCmd = &cobra.Command{
	Use:   "libraries <profile>",
	Short: "Print the per-binary cost summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		bu, err := loadProfile(args[0])
		if err != nil {
			return err
		}

		td := calltree.NewTopDownResults(bu, false)
		pl := calltree.NewPerLibraryResults(td)
		printLibraries(os.Stdout, pl)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(librariesCmd)
}
