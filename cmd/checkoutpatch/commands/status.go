package commands

import (
	"github.com/spf13/cobra"
	"github.com/ungngoctri2003/hoi-thao-FE/cmd/checkoutpatch/opts"
	"github.com/ungngoctri2003/hoi-thao-FE/pkg/checkout"
	"gitlab.com/tozd/go/errors"
)

// NewStatusCmd creates a new status command
func NewStatusCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which changes are still pending",
		Long: `Status runs every rule against the target without writing it.
It will:
1. Resolve and read the target file
2. Apply the rules in memory
3. Report each rule as pending, skipped or disabled`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			op, err := opts.Operator()
			if err != nil {
				return err
			}

			report, err := op.Status(ctx)
			if err != nil {
				opts.UserLogger.LogFailure(err, checkout.ManualFallback)
				return errors.Errorf("checking status: %w", err)
			}

			opts.UserLogger.LogStatus(report.Path, report.Result)
			return nil
		},
	}

	return cmd
}
