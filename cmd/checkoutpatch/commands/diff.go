package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/ungngoctri2003/hoi-thao-FE/cmd/checkoutpatch/opts"
	"github.com/ungngoctri2003/hoi-thao-FE/pkg/checkout"
	"gitlab.com/tozd/go/errors"
)

// NewDiffCmd creates a new diff command
func NewDiffCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Print the changes as a unified diff without writing them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := opts.Operator()
			if err != nil {
				return err
			}

			var buf strings.Builder
			report, err := op.Diff(ctx, &buf)
			if err != nil {
				opts.UserLogger.LogFailure(err, checkout.ManualFallback)
				return errors.Errorf("computing diff: %w", err)
			}

			if buf.Len() == 0 {
				opts.UserLogger.LogStatus(report.Path, report.Result)
				return nil
			}

			opts.UserLogger.LogDiff(buf.String())
			return nil
		},
	}

	return cmd
}
