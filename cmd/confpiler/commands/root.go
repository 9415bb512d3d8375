/*
Package commands implements the confpiler command line: the root command
with its global flags and the build, check and version subcommands.
*/
package commands

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mattcl/confpiler/internal/config"
	"github.com/mattcl/confpiler/internal/version"
	"github.com/mattcl/confpiler/pkg/logger"
)

// Options holds command-line options that apply to all commands
type Options struct {
	Config    *config.Config
	Verbosity int
	NoColor   bool

	// Fs replaces the OS filesystem in tests
	Fs afero.Fs

	log logger.Logger
}

// NewRootCommand creates the root command for the application
func NewRootCommand() *cobra.Command {
	return newRootCommand(&Options{})
}

func newRootCommand(opts *Options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "confpiler",
		Short: "Compile layered config files into flat environment variables",
		Long: `confpiler v` + version.Version + `
========================================

Compiles a set of layered config files (yaml, json, toml, ini) into a flat
set of environment variables. Directories contribute their default config
and, with --env, the config for that environment. Later files override
earlier ones.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeCommand(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.Verbosity, "verbose", "v",
		"verbose output (can be used multiple times)")
	rootCmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false,
		"disable colored output")

	rootCmd.AddCommand(
		newBuildCommand(opts),
		newCheckCommand(opts),
		newVersionCommand(opts),
	)

	return rootCmd
}

// initializeCommand loads settings from the environment and applies the
// global flags on top
func initializeCommand(cmd *cobra.Command, opts *Options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = opts.Verbosity
	}
	if flags.Changed("no-color") {
		cfg.NoColor = opts.NoColor
	}

	opts.log = logger.NewLogger(logger.Config{
		Verbosity: cfg.Verbose,
		Output:    cmd.ErrOrStderr(),
	})

	opts.log.WithFields(logger.Fields{
		"verbosity": cfg.Verbose,
		"command":   cmd.Name(),
	}).Debug("Initializing command")

	opts.Config = &cfg
	return nil
}
