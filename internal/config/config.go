package config

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration parameters for the application
type Config struct {
	// Separator joins the components of nested keys
	Separator string

	// ArraySeparator joins the elements of arrays
	ArraySeparator string

	// Prefix is prepended to every generated key
	Prefix string

	// Default is the base config name used for directories
	Default string

	// Environment selects an additional config per directory
	Environment string

	// Strict turns merge warnings into a failure
	Strict bool

	// Output specifies the output format (dotenv, json, or yaml)
	Output string

	// OutputFile is the path to write the output (empty for stdout)
	OutputFile string

	// NoSort keeps dotenv output unsorted
	NoSort bool

	// Raw disables quoting of dotenv values
	Raw bool

	// NoColor disables colored output
	NoColor bool

	// Verbose sets the verbosity level
	Verbose int

	// Workers is the number of concurrent checks for check --all-envs
	Workers int

	// RateLimit is the maximum number of checks started per second (0 for unlimited)
	RateLimit int
}

// validOutputFormats contains the list of supported output formats
var validOutputFormats = map[string]bool{
	string(OutputFormatDotenv): true,
	string(OutputFormatJSON):   true,
	string(OutputFormatYAML):   true,
}

// Load reads configuration from environment variables and validates it
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("separator", DefaultSeparator)
	v.SetDefault("array_separator", DefaultArraySeparator)
	v.SetDefault("default", DefaultName)
	v.SetDefault("output", string(OutputFormatDotenv))
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("rate_limit", 0)

	v.SetEnvPrefix("CONFPILER")
	v.AutomaticEnv()

	for _, key := range []string{
		"separator", "array_separator", "prefix", "default", "env",
		"strict", "output", "output_file", "no_sort", "raw", "no_color",
		"verbose", "workers", "rate_limit",
	} {
		_ = v.BindEnv(key)
	}

	cfg := Config{
		Separator:      v.GetString("separator"),
		ArraySeparator: v.GetString("array_separator"),
		Prefix:         v.GetString("prefix"),
		Default:        v.GetString("default"),
		Environment:    v.GetString("env"),
		Strict:         v.GetBool("strict"),
		Output:         strings.ToLower(v.GetString("output")),
		OutputFile:     v.GetString("output_file"),
		NoSort:         v.GetBool("no_sort"),
		Raw:            v.GetBool("raw"),
		NoColor:        v.GetBool("no_color"),
		Verbose:        parseVerbosity(v.GetString("verbose")),
		Workers:        v.GetInt("workers"),
		RateLimit:      v.GetInt("rate_limit"),
	}

	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// parseVerbosity accepts either a count ("2") or a string of 'v's ("vv").
func parseVerbosity(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return strings.Count(s, "v")
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if c.Separator == "" {
		return fmt.Errorf("separator must not be empty")
	}

	if !validOutputFormats[c.Output] {
		return fmt.Errorf("invalid output format: must be one of [dotenv json yaml]")
	}

	if c.Raw && c.Output != string(OutputFormatDotenv) {
		return fmt.Errorf("raw output cannot be combined with the %s format", c.Output)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers count must be positive")
	}
	if c.Workers > runtime.NumCPU()*MaxWorkerMultiplier {
		return fmt.Errorf("workers count cannot exceed system CPU count * %d", MaxWorkerMultiplier)
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must be non-negative")
	}

	if c.Verbose < 0 {
		return fmt.Errorf("verbosity must be non-negative")
	}

	return nil
}

// String returns a string representation of the configuration
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{Separator: %q, ArraySeparator: %q, Prefix: %q, Default: %q, "+
			"Environment: %q, Strict: %v, Output: %s, OutputFile: %s, NoSort: %v, "+
			"Raw: %v, NoColor: %v, Verbose: %d, Workers: %d, RateLimit: %d}",
		c.Separator, c.ArraySeparator, c.Prefix, c.Default,
		c.Environment, c.Strict, c.Output, c.OutputFile, c.NoSort,
		c.Raw, c.NoColor, c.Verbose, c.Workers, c.RateLimit,
	)
}
