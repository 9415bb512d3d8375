package commands

import (
	"github.com/spf13/cobra"

	"github.com/mattcl/confpiler/cmd/confpiler/app"
	"github.com/mattcl/confpiler/internal/config"
)

// compileOptions holds the flags shared by build and check
type compileOptions struct {
	env            string
	defaultName    string
	prefix         string
	separator      string
	arraySeparator string
	strict         bool
}

func (co *compileOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&co.env, "env", "e", "",
		"environment config to layer on top of each directory's default")
	cmd.Flags().StringVarP(&co.defaultName, "default", "d", config.DefaultName,
		"name of the base config in each directory")
	cmd.Flags().StringVarP(&co.prefix, "prefix", "p", "",
		"prefix for every generated key")
	cmd.Flags().StringVarP(&co.separator, "separator", "s", config.DefaultSeparator,
		"separator for nested keys")
	cmd.Flags().StringVarP(&co.arraySeparator, "array-separator", "a", config.DefaultArraySeparator,
		"separator for array elements")
	cmd.Flags().BoolVar(&co.strict, "strict", false,
		"treat warnings as errors")
}

// apply overrides cfg with the flags given on the command line
func (co *compileOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("env") {
		cfg.Environment = co.env
	}
	if flags.Changed("default") {
		cfg.Default = co.defaultName
	}
	if flags.Changed("prefix") {
		cfg.Prefix = co.prefix
	}
	if flags.Changed("separator") {
		cfg.Separator = co.separator
	}
	if flags.Changed("array-separator") {
		cfg.ArraySeparator = co.arraySeparator
	}
	if flags.Changed("strict") {
		cfg.Strict = co.strict
	}
}

// newApp builds the application for a command
func newApp(cmd *cobra.Command, opts *Options) *app.App {
	appOpts := []app.Option{
		app.WithLogger(opts.log),
		app.WithSignals(),
	}
	if opts.Fs != nil {
		appOpts = append(appOpts, app.WithFs(opts.Fs))
	}
	appOpts = append(appOpts, app.WithOutput(cmd.OutOrStdout()))
	return app.New(opts.Config, appOpts...)
}
