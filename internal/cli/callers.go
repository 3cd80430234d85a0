package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/perfview/perfview/pkg/profile/calltree"
)

var (
	callersSymbol string

	callersCmd = &cobra.Command{
		Use:   "callers <profile>",
		Short: "Print the caller/callee drill-down of matching symbols",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			bu, err := loadProfile(args[0])
			if err != nil {
				return err
			}

			cc := calltree.NewCallerCalleeResults(bu)

			matched := 0
			for _, sym := range sortedEntrySymbols(cc) {
				if !strings.Contains(sym.Name, callersSymbol) {
					continue
				}
				if matched > 0 {
					fmt.Println()
				}
				printCallerCallee(os.Stdout, cc, sym)
				matched++
			}
			if matched == 0 {
				return fmt.Errorf("no symbol matches %q", callersSymbol)
			}
			return nil
		},
	}
)

func init() {
	callersCmd.Flags().StringVarP(&callersSymbol, "symbol", "s", "", "substring match against symbol names")
	_ = callersCmd.MarkFlagRequired("symbol")

	rootCmd.AddCommand(callersCmd)
}
