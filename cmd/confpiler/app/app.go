/*
Package app wires discovery, loading, compilation and output together for
the confpiler command line.

Usage:

	application := app.New(cfg)
	defer application.Shutdown()

	if err := application.Build(paths); err != nil {
	    log.Fatal(err)
	}
*/
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/term"

	"github.com/mattcl/confpiler/internal/config"
	"github.com/mattcl/confpiler/pkg/discovery"
	"github.com/mattcl/confpiler/pkg/flatconfig"
	"github.com/mattcl/confpiler/pkg/logger"
	"github.com/mattcl/confpiler/pkg/output"
	"github.com/mattcl/confpiler/pkg/source"
)

// App represents the main application container
type App struct {
	config *config.Config
	log    logger.Logger
	fs     afero.Fs
	out    io.Writer
	color  *bool

	discoverer discovery.Discoverer
	loader     *source.Loader

	ctx     context.Context
	cancel  context.CancelFunc
	signals bool
	stop    func()
	once    sync.Once
}

// Option configures an App.
type Option func(*App)

// WithFs replaces the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(a *App) { a.fs = fs }
}

// WithOutput replaces stdout.
func WithOutput(w io.Writer) Option {
	return func(a *App) { a.out = w }
}

// WithLogger replaces the logger built from the config.
func WithLogger(log logger.Logger) Option {
	return func(a *App) { a.log = log }
}

// WithColor forces colored warnings on or off regardless of the terminal.
func WithColor(enabled bool) Option {
	return func(a *App) { a.color = &enabled }
}

// WithSignals cancels in-flight work on SIGINT or SIGTERM.
func WithSignals() Option {
	return func(a *App) { a.signals = true }
}

// New creates a new application instance
func New(cfg *config.Config, opts ...Option) *App {
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		config: cfg,
		fs:     afero.NewOsFs(),
		out:    os.Stdout,
		ctx:    ctx,
		cancel: cancel,
		stop:   func() {},
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.log == nil {
		a.log = logger.NewLogger(logger.Config{
			Verbosity: cfg.Verbose,
		})
	}

	a.discoverer = discovery.NewDiscoverer(a.fs, a.log)
	a.loader = source.NewLoader(a.fs, source.WithLogger(a.log))

	if a.signals {
		a.setupSignalHandling()
	}

	a.log.WithFields(logger.Fields{
		"config": cfg.String(),
	}).Debug("Application initialized")

	return a
}

// Shutdown cancels outstanding work and releases signal handlers. Only the
// first call has any effect.
func (a *App) Shutdown() {
	a.once.Do(func() {
		a.cancel()
		a.stop()
	})
}

// pipeline returns the compilation pipeline for the given sources.
func (a *App) pipeline(sources []string) flatconfig.Pipeline {
	return flatconfig.NewPipeline(
		flatconfig.WithSources(sources...),
		flatconfig.WithSeparator(a.config.Separator),
		flatconfig.WithArraySeparator(a.config.ArraySeparator),
		flatconfig.WithPrefix(a.config.Prefix),
		flatconfig.WithLogger(a.log),
	)
}

// Compile resolves paths for the given environment and compiles them.
func (a *App) Compile(paths []string, environment string) (*flatconfig.FlatConfig, []flatconfig.MergeWarning, error) {
	sources, err := a.discoverer.Resolve(paths, discovery.Options{
		Default:     a.config.Default,
		Environment: environment,
	})
	if err != nil {
		return nil, nil, err
	}

	a.log.WithFields(logger.Fields{
		"environment": environment,
		"sources":     sources,
	}).Info("Compiling configuration")

	return a.pipeline(sources).Build(a.loader)
}

// Build compiles paths and writes the formatted result
func (a *App) Build(paths []string) error {
	formatter, err := output.NewFormatter(output.Config{
		Format: output.Format(a.config.Output),
		NoSort: a.config.NoSort,
		Raw:    a.config.Raw,
	}, a.log)
	if err != nil {
		return err
	}

	conf, warnings, err := a.Compile(paths, a.config.Environment)
	if err != nil {
		return err
	}

	if err := Escalate(warnings, a.config.Strict, a.colorEnabled()); err != nil {
		return err
	}

	for _, w := range warnings {
		a.log.WithFields(logger.Fields{
			"warning": w.String(),
		}).Warn("Redundant value")
	}

	content, err := formatter.Format(conf)
	if err != nil {
		return fmt.Errorf("output formatting failed: %w", err)
	}

	if err := a.writeOutput(content, a.config.OutputFile); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

// Check compiles paths and reports warnings without producing output
func (a *App) Check(paths []string) error {
	fmt.Fprintln(a.out, "Checking configuration...")

	_, warnings, err := a.Compile(paths, a.config.Environment)
	if err != nil {
		return err
	}

	if len(warnings) > 0 {
		fmt.Fprintln(a.out, "Warnings:")
		fmt.Fprintln(a.out, output.FormatWarnings(warnings, a.colorEnabled()))
	}

	if err := Escalate(warnings, a.config.Strict, a.colorEnabled()); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "\nok")
	return nil
}

// writeOutput writes the formatted output to the specified destination
func (a *App) writeOutput(content string, outputPath string) error {
	if outputPath == "" {
		_, err := io.WriteString(a.out, content)
		if err != nil {
			a.log.WithFields(logger.Fields{
				"error": err,
			}).Error("Failed to write to stdout")
		}
		return err
	}

	if err := a.createOutputDirectory(outputPath); err != nil {
		return err
	}

	if err := afero.WriteFile(a.fs, outputPath, []byte(content), 0644); err != nil {
		a.log.WithFields(logger.Fields{
			"error": err,
			"path":  outputPath,
		}).Error("Failed to write output file")
		return fmt.Errorf("failed to write output file: %w", err)
	}

	a.log.WithFields(logger.Fields{
		"path": outputPath,
	}).Info("Output written successfully")
	return nil
}

// createOutputDirectory ensures the output directory exists
func (a *App) createOutputDirectory(path string) error {
	dir := filepath.Dir(path)
	a.log.WithFields(logger.Fields{
		"directory": dir,
	}).Debug("Ensuring output directory exists")

	if err := a.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// colorEnabled reports whether warnings should be colored
func (a *App) colorEnabled() bool {
	if a.config.NoColor {
		return false
	}
	if a.color != nil {
		return *a.color
	}
	return a.isTerminal()
}

// isTerminal checks if the output is going to a terminal
func (a *App) isTerminal() bool {
	f, ok := a.out.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
