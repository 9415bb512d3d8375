package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattcl/confpiler/internal/config"
	"github.com/mattcl/confpiler/pkg/logger"
)

type buildOptions struct {
	*Options
	compileOptions

	output     string
	json       bool
	noSort     bool
	raw        bool
	outputFile string
}

func newBuildCommand(opts *Options) *cobra.Command {
	bo := &buildOptions{
		Options: opts,
	}

	cmd := &cobra.Command{
		Use:   "build [flags] PATH...",
		Short: "Compile config files and print the result",
		Long: `Compile the given config files and directories, in order, into a flat set
of environment variables and print them.

A directory contributes <dir>/<default> followed by <dir>/<env> when --env is
set and that environment exists in the directory.`,
		Example: `  confpiler build conf/
  confpiler build --env production --prefix app conf/ local.yaml
  confpiler build --json conf/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bo.apply(cmd); err != nil {
				return err
			}

			bo.log.WithFields(logger.Fields{
				"paths":  args,
				"config": bo.Config.String(),
			}).Info("Starting build")

			application := newApp(cmd, bo.Options)
			defer application.Shutdown()

			return application.Build(args)
		},
	}

	bo.compileOptions.register(cmd)
	cmd.Flags().StringVarP(&bo.output, "output", "o", string(config.OutputFormatDotenv),
		"output format: dotenv|json|yaml")
	cmd.Flags().BoolVar(&bo.json, "json", false,
		"output json, same as --output json")
	cmd.Flags().BoolVar(&bo.noSort, "no-sort", false,
		"do not sort dotenv output")
	cmd.Flags().BoolVar(&bo.raw, "raw", false,
		"do not quote dotenv values")
	cmd.Flags().StringVarP(&bo.outputFile, "file", "f", "",
		"write output to file instead of stdout")
	cmd.MarkFlagsMutuallyExclusive("json", "output")
	cmd.MarkFlagsMutuallyExclusive("json", "raw")

	return cmd
}

func (bo *buildOptions) apply(cmd *cobra.Command) error {
	cfg := bo.Config
	bo.compileOptions.apply(cmd, cfg)

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = bo.output
	}
	if bo.json {
		cfg.Output = string(config.OutputFormatJSON)
	}
	if flags.Changed("no-sort") {
		cfg.NoSort = bo.noSort
	}
	if flags.Changed("raw") {
		cfg.Raw = bo.raw
	}
	if flags.Changed("file") {
		cfg.OutputFile = bo.outputFile
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}
