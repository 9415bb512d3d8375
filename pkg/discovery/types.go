package discovery

// DefaultName is the stem of the source every directory contributes first.
const DefaultName = "default"

// Options controls how directories are expanded.
type Options struct {
	// Default is the name of the base source in each directory
	Default string

	// Environment, when set, selects an additional source per directory
	Environment string
}

// Discoverer expands paths into source identifiers.
type Discoverer interface {
	// Resolve expands paths, in order, into source identifiers
	Resolve(paths []string, opts Options) ([]string, error)

	// Environments lists the environments available in dir
	Environments(dir, defaultName string) ([]string, error)

	// AllEnvironments lists the environments available across every
	// directory in paths
	AllEnvironments(paths []string, defaultName string) ([]string, error)
}
