package flatconfig

import (
	"errors"
	"fmt"
)

// ErrNoConfigSpecified is returned by Build when the pipeline has no sources.
var ErrNoConfigSpecified = errors.New("must specify at least one config source")

// DuplicateConfigError indicates a source was specified more than once.
type DuplicateConfigError struct {
	Source string
}

func (e *DuplicateConfigError) Error() string {
	return fmt.Sprintf("the config %q was specified twice", e.Source)
}

// DuplicateKeyError indicates that flattening a single source produced the
// same key twice, e.g. `foo` and `Foo`, or `foo__bar` and `foo: {bar: ...}`.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("the key %q would be overwritten by another value in the same configuration file", e.Key)
}

// UnsupportedArrayError indicates an array containing a table or another
// array.
type UnsupportedArrayError struct {
	Key string
}

func (e *UnsupportedArrayError) Error() string {
	return fmt.Sprintf("the array at %q is unsupported (arrays must not contain arrays or maps to be considered valid)", e.Key)
}

// SourceError wraps a loader failure for a given source. The cause is kept
// as-is.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("failed to load %q: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
