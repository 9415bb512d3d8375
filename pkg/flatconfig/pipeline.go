package flatconfig

import (
	"fmt"
	"slices"

	"github.com/mattcl/confpiler/pkg/logger"
	"github.com/mattcl/confpiler/pkg/value"
)

const (
	// DefaultSeparator joins the components of a nested key
	DefaultSeparator = "__"

	// DefaultArraySeparator joins the elements of an array value
	DefaultArraySeparator = ","
)

// Loader produces the configuration tree for a source identifier.
type Loader interface {
	Load(source string) (value.Table, error)
}

// Pipeline describes an ordered compilation of sources. It is a value:
// options produce modified copies and Build never changes it.
type Pipeline struct {
	sources        []string
	separator      string
	arraySeparator string
	prefix         string
	log            logger.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSource appends a source identifier. Order matters: later sources
// override earlier ones. Nothing is loaded or validated until Build.
func WithSource(source string) Option {
	return func(p *Pipeline) {
		p.sources = append(p.sources, source)
	}
}

// WithSources appends several source identifiers in order.
func WithSources(sources ...string) Option {
	return func(p *Pipeline) {
		p.sources = append(p.sources, sources...)
	}
}

// WithSeparator sets the separator used to join nested keys.
func WithSeparator(separator string) Option {
	return func(p *Pipeline) {
		p.separator = separator
	}
}

// WithArraySeparator sets the separator used to join array elements.
func WithArraySeparator(separator string) Option {
	return func(p *Pipeline) {
		p.arraySeparator = separator
	}
}

// WithPrefix sets a prefix prepended to every generated key. The prefix is
// always converted to ASCII uppercase.
func WithPrefix(prefix string) Option {
	return func(p *Pipeline) {
		p.prefix = upper(prefix)
	}
}

// WithLogger sets the logger used while building.
func WithLogger(log logger.Logger) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// NewPipeline returns a pipeline with the default separators and the given
// options applied.
func NewPipeline(opts ...Option) Pipeline {
	p := Pipeline{
		separator:      DefaultSeparator,
		arraySeparator: DefaultArraySeparator,
		log:            logger.Nop(),
	}
	return p.With(opts...)
}

// With returns a copy of p with opts applied.
func (p Pipeline) With(opts ...Option) Pipeline {
	p.sources = slices.Clone(p.sources)
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func (p Pipeline) Sources() []string      { return slices.Clone(p.sources) }
func (p Pipeline) Separator() string      { return p.separator }
func (p Pipeline) ArraySeparator() string { return p.arraySeparator }

// Prefix returns the uppercased prefix, or "" when none is set.
func (p Pipeline) Prefix() string { return p.prefix }

// Build loads, flattens and merges every source in order.
//
// It fails with ErrNoConfigSpecified when there are no sources, with
// *DuplicateConfigError when a source is listed twice (before anything is
// loaded), with *SourceError when the loader fails, and with
// *DuplicateKeyError or *UnsupportedArrayError when a source cannot be
// flattened. No partial result is returned on error.
func (p Pipeline) Build(loader Loader) (*FlatConfig, []MergeWarning, error) {
	if len(p.sources) == 0 {
		return nil, nil, ErrNoConfigSpecified
	}

	seen := make(map[string]struct{}, len(p.sources))
	for _, source := range p.sources {
		if _, dup := seen[source]; dup {
			return nil, nil, &DuplicateConfigError{Source: source}
		}
		seen[source] = struct{}{}
	}

	log := p.log
	if log == nil {
		log = logger.Nop()
	}

	compiled := New(p.sources[0])
	var warnings []MergeWarning

	for _, source := range p.sources {
		log.WithFields(logger.Fields{
			"source": source,
		}).Debug("Loading source")

		tree, err := loader.Load(source)
		if err != nil {
			return nil, nil, &SourceError{Source: source, Err: err}
		}

		items, err := Flatten(tree, p.prefix, p.separator, p.arraySeparator)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", source, err)
		}

		log.WithFields(logger.Fields{
			"source": source,
			"keys":   len(items),
		}).Debug("Flattened source")

		merged := compiled.Merge(&FlatConfig{Origin: source, Items: items})
		for _, w := range merged {
			log.WithFields(logger.Fields{
				"source":  source,
				"warning": w.String(),
			}).Debug("Merge warning")
		}
		warnings = append(warnings, merged...)
	}

	log.WithFields(logger.Fields{
		"sources":  len(p.sources),
		"keys":     compiled.Len(),
		"warnings": len(warnings),
	}).Info("Compiled configuration")

	return compiled, warnings, nil
}
