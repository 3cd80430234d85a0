package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/perfview/perfview/pkg/profile/prettify"
)

var prettifyCmd = &cobra.Command{
	Use:   "prettify [symbol...]",
	Short: "Shorten C++ symbol names; reads stdin when no arguments are given",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			for _, arg := range args {
				fmt.Println(prettify.Symbol(arg))
			}
			return nil
		}

		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			fmt.Println(prettify.Symbol(scanner.Text()))
		}
		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(prettifyCmd)
}
