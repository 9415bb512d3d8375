package flatconfig

import "fmt"

// FlatConfig is a flattened configuration: a mapping of uppercase,
// separator-joined keys to string values.
//
// It is both the result of flattening one source (Origin is that source)
// and the compiled result of a pipeline (Origin is the first source).
type FlatConfig struct {
	// Origin identifies where the items came from, used for diagnostics only
	Origin string

	// Items holds the flattened key/value pairs
	Items map[string]string
}

// New returns an empty FlatConfig for the given origin.
func New(origin string) *FlatConfig {
	return &FlatConfig{
		Origin: origin,
		Items:  make(map[string]string),
	}
}

// Len returns the number of items.
func (c *FlatConfig) Len() int {
	return len(c.Items)
}

// MergeWarning is a non-fatal diagnostic produced while merging. Callers
// may choose to treat any warning as an error.
type MergeWarning interface {
	fmt.Stringer

	warning()
}

// RedundantValue reports that Overrider set Key to Value while the merged
// configuration already held exactly that value.
//
// It does not mean the final value of Key is Value: merging A, B, C where B
// holds the redundant value says nothing about whether C changed it again.
type RedundantValue struct {
	Overrider string
	Key       string
	Value     string
}

func (RedundantValue) warning() {}

func (w RedundantValue) String() string {
	return fmt.Sprintf("'%s' is attempting to override '%s' with '%s', but the key already contains that value",
		w.Overrider, w.Key, w.Value)
}
