/*
Package output renders a compiled configuration as dotenv lines, JSON or
YAML, and renders merge warnings for humans.

Basic usage:

	formatter, err := output.NewFormatter(output.Config{
		Format: output.FormatDotenv,
	}, log)

	text, err := formatter.Format(conf)
*/
package output

import (
	"errors"
	"fmt"

	"github.com/mattcl/confpiler/pkg/flatconfig"
	"github.com/mattcl/confpiler/pkg/logger"
)

// Format represents the output format type
type Format string

const (
	FormatDotenv Format = "dotenv"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
)

// ErrRawConflict is returned when raw output is requested for a structured
// format.
var ErrRawConflict = errors.New("raw output is only available for the dotenv format")

// Formats lists the valid formats.
var Formats = []Format{FormatDotenv, FormatJSON, FormatYAML}

// Config holds formatter configuration
type Config struct {
	Format Format

	// NoSort keeps dotenv lines in map iteration order
	NoSort bool

	// Raw prints dotenv values without quoting or escaping
	Raw bool
}

// Validate checks the format and its flags.
func (c Config) Validate() error {
	switch c.Format {
	case FormatDotenv:
		return nil
	case FormatJSON, FormatYAML:
		if c.Raw {
			return fmt.Errorf("%w: %s", ErrRawConflict, c.Format)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", c.Format)
	}
}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(conf *flatconfig.FlatConfig) (string, error)
}

// formatter implements the Formatter interface
type formatter struct {
	config Config
	log    logger.Logger
}

// NewFormatter creates a new formatter instance. An empty format means
// dotenv.
func NewFormatter(config Config, log logger.Logger) (Formatter, error) {
	if config.Format == "" {
		config.Format = FormatDotenv
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}

	return &formatter{
		config: config,
		log:    log,
	}, nil
}

// Format formats the compiled configuration according to the configured
// format
func (f *formatter) Format(conf *flatconfig.FlatConfig) (string, error) {
	if conf == nil {
		msg := "nil config provided for formatting"
		f.log.Error(msg)
		return "", errors.New(msg)
	}

	f.log.WithFields(logger.Fields{
		"format": f.config.Format,
		"noSort": f.config.NoSort,
		"raw":    f.config.Raw,
		"keys":   conf.Len(),
	}).Debug("Starting format operation")

	switch f.config.Format {
	case FormatDotenv:
		return f.formatDotenv(conf.Items), nil
	case FormatJSON:
		return f.formatJSON(conf.Items)
	case FormatYAML:
		return f.formatYAML(conf.Items)
	default:
		msg := fmt.Sprintf("unsupported format: %s", f.config.Format)
		f.log.Error(msg)
		return "", errors.New(msg)
	}
}
