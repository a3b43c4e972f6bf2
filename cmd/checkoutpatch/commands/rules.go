package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ungngoctri2003/hoi-thao-FE/cmd/checkoutpatch/opts"
)

// NewRulesCmd creates a command listing the rule IDs usable in the skip list
func NewRulesCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the rules in the order they are applied",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, r := range opts.Rules {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %-24s %s\n", i+1, r.ID(), r.Label())
			}
			return nil
		},
	}
}
