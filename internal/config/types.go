package config

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	// OutputFormatDotenv renders KEY="value" lines
	OutputFormatDotenv OutputFormat = "dotenv"

	// OutputFormatJSON represents the JSON output format
	OutputFormatJSON OutputFormat = "json"

	// OutputFormatYAML represents the YAML output format
	OutputFormatYAML OutputFormat = "yaml"
)

// Defaults
const (
	// DefaultSeparator joins nested keys
	DefaultSeparator = "__"

	// DefaultArraySeparator joins array elements
	DefaultArraySeparator = ","

	// DefaultName is the stem of the base config file in a directory
	DefaultName = "default"

	// MaxWorkerMultiplier is the maximum multiple of CPU cores for worker count
	MaxWorkerMultiplier = 4
)
