package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

type checkOptions struct {
	*Options
	compileOptions

	allEnvs bool
}

func newCheckCommand(opts *Options) *cobra.Command {
	co := &checkOptions{
		Options: opts,
	}

	cmd := &cobra.Command{
		Use:   "check [flags] PATH...",
		Short: "Check that config files compile, reporting warnings",
		Long: `Compile the given config files and directories without printing the result.
Redundant overrides are reported as warnings, and fail the check with --strict.

With --all-envs every environment found in the given directories is checked
as an independent compilation.`,
		Example: `  confpiler check --strict conf/
  confpiler check --all-envs conf/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			co.compileOptions.apply(cmd, co.Config)
			if err := co.Config.Validate(); err != nil {
				return fmt.Errorf("invalid options: %w", err)
			}

			application := newApp(cmd, co.Options)
			defer application.Shutdown()

			if co.allEnvs {
				return application.CheckAll(args)
			}
			return application.Check(args)
		},
	}

	co.compileOptions.register(cmd)
	cmd.Flags().BoolVar(&co.allEnvs, "all-envs", false,
		"check every environment found in the given directories")
	cmd.MarkFlagsMutuallyExclusive("all-envs", "env")

	return cmd
}
