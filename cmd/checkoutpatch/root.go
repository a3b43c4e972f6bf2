package main

import (
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/ungngoctri2003/hoi-thao-FE/cmd/checkoutpatch/commands"
	"github.com/ungngoctri2003/hoi-thao-FE/cmd/checkoutpatch/opts"
	"github.com/ungngoctri2003/hoi-thao-FE/pkg/checkout"
	"github.com/ungngoctri2003/hoi-thao-FE/pkg/config"
	"github.com/ungngoctri2003/hoi-thao-FE/pkg/log"
	"github.com/ungngoctri2003/hoi-thao-FE/pkg/store"
	"gitlab.com/tozd/go/errors"
)

// rootFlags holds the flags shared by every command
type rootFlags struct {
	configFile string
	dir        string
	target     string
	backup     bool
	skip       []string
	debug      bool
}

// newRootCmd builds the command tree. Running it without a subcommand applies the changes.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	rootOpts := &opts.RootOpts{Rules: checkout.Rules()}

	cmd := &cobra.Command{
		Use:   "checkoutpatch",
		Short: "Add checkout support to the public check-in page",
		Long: `checkoutpatch rewrites the check-in handlers of the public check-in page so
they send the session ID and the selected action type, and show an action aware
success message. The file is only written when at least one change applies.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return flags.setup(cmd, rootOpts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, rootOpts)
		},
	}

	addRootFlags(cmd, flags)

	cmd.AddCommand(
		commands.NewStatusCmd(rootOpts),
		commands.NewDiffCmd(rootOpts),
		commands.NewRulesCmd(rootOpts),
		newVersionCmd(len(rootOpts.Rules)),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", config.DefaultPath, "config file path (json, yaml or hcl)")
	cmd.PersistentFlags().StringVarP(&flags.dir, "dir", "C", ".", "project directory the target is relative to")
	cmd.PersistentFlags().StringVarP(&flags.target, "file", "f", "", "file to patch, overrides the config target")
	cmd.PersistentFlags().BoolVar(&flags.backup, "backup", false, "write <file>.bak before overwriting")
	cmd.PersistentFlags().StringSliceVar(&flags.skip, "skip", nil, "rule IDs to leave out")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging(debug bool, w io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger
}

// setup loads the configuration, applies flag overrides and fills rootOpts
func (f *rootFlags) setup(cmd *cobra.Command, rootOpts *opts.RootOpts) error {
	logger := setupLogging(f.debug, cmd.ErrOrStderr())
	ctx := logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	rootOpts.UserLogger = log.NewUserLogger(ctx, cmd.OutOrStdout())
	rootOpts.Store = store.New(f.dir)

	configPath := f.configFile
	if configPath != "" && !filepath.IsAbs(configPath) {
		configPath = filepath.Join(f.dir, configPath)
	}

	cfg, err := config.Load(ctx, configPath, cmd.Flags().Changed("config"))
	if err != nil {
		rootOpts.UserLogger.LogFailure(err, "")
		return errors.Errorf("loading config: %w", err)
	}

	if f.target != "" {
		cfg.Target = f.target
	}
	if f.backup {
		cfg.Backup = true
	}
	cfg.AddSkip(f.skip...)

	if err := cfg.Validate(); err != nil {
		rootOpts.UserLogger.LogFailure(err, "")
		return errors.Errorf("validating config: %w", err)
	}

	rootOpts.Config = cfg
	logger.Debug().Str("config", cfg.String()).Str("dir", f.dir).Msg("configuration ready")

	return nil
}

// runApply patches the target and reports every rule outcome
func runApply(cmd *cobra.Command, rootOpts *opts.RootOpts) error {
	ctx := cmd.Context()
	ul := rootOpts.UserLogger

	op, err := rootOpts.Operator()
	if err != nil {
		ul.LogFailure(err, checkout.ManualFallback)
		return err
	}

	ul.Header("Applying check-in/checkout changes to " + rootOpts.Config.Target + "...")

	report, err := op.Apply(ctx)
	if err != nil {
		ul.LogFailure(err, checkout.ManualFallback)
		return errors.Errorf("applying changes: %w", err)
	}

	ul.LogSummary(report.Path, report.Result, report.Written)
	ul.Done("Done! Please check the file and test the application.")

	return nil
}
