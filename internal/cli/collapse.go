package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/perfview/perfview/pkg/profile/calltree"
	"github.com/perfview/perfview/pkg/profile/collapsed"
)

var collapseCmd = &cobra.Command{
	Use:   "collapse <profile>",
	Short: "Re-emit a profile as collapsed stack text (first cost type only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bu, err := loadProfile(args[0])
		if err != nil {
			return err
		}
		return collapsed.Encode(collapseProfile(bu), os.Stdout)
	},
}

// collapseProfile folds a bottom-up tree back into collapsed samples,
// one per node carrying leftover self cost. Thread/process group
// frames come back out as a leading "[name]" marker so the emitted
// text reloads with the same grouping.
func collapseProfile(bu *calltree.BottomUpResults) *collapsed.Profile {
	var profile collapsed.Profile
	bu.Root.Walk(func(node *calltree.Node) {
		self := bu.Costs.Value(0, node.ID)
		for _, child := range node.Children {
			self -= bu.Costs.Value(0, child.ID)
		}
		if self <= 0 {
			return
		}
		// The parent chain runs from the outermost caller down to the
		// sampled leaf; a grouped chain terminates in its group frame.
		var chain []*calltree.Node
		for cur := node; cur != nil; cur = cur.Parent {
			chain = append(chain, cur)
		}

		var stack []string
		if last := chain[len(chain)-1]; bu.Groups[last.ID] {
			stack = append(stack, "["+last.Symbol.Name+"]")
			chain = chain[:len(chain)-1]
		}
		for _, cur := range chain {
			stack = append(stack, collapsedFrame(cur.Symbol))
		}
		if len(stack) == 0 {
			return
		}
		profile.Samples = append(profile.Samples, collapsed.Sample{
			Stack: stack,
			Value: self,
		})
	})
	return &profile
}

func collapsedFrame(sym calltree.Symbol) string {
	name := sym.Name
	if name == "" {
		name = sym.String()
	}
	if sym.Binary != "" {
		return sym.Binary + "!" + name
	}
	return name
}

func init() {
	rootCmd.AddCommand(collapseCmd)
}
