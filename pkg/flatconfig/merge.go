package flatconfig

import (
	"maps"
	"slices"
)

// Merge merges other into c. Keys from other always win. Every key for which
// other carries exactly the value c already holds produces a RedundantValue
// warning and leaves c untouched.
//
// Warnings are returned in key order.
func (c *FlatConfig) Merge(other *FlatConfig) []MergeWarning {
	var warnings []MergeWarning

	if c.Items == nil {
		c.Items = make(map[string]string, len(other.Items))
	}

	for _, key := range slices.Sorted(maps.Keys(other.Items)) {
		incoming := other.Items[key]

		existing, ok := c.Items[key]
		switch {
		case !ok:
			c.Items[key] = incoming
		case existing == incoming:
			warnings = append(warnings, RedundantValue{
				Overrider: other.Origin,
				Key:       key,
				Value:     existing,
			})
		default:
			c.Items[key] = incoming
		}
	}

	return warnings
}
