package flatconfig

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/mattcl/confpiler/pkg/value"
)

// Flatten converts a configuration tree into a flat mapping.
//
// Keys are the ASCII-uppercased path of table keys joined by separator, with
// the uppercased prefix (if not empty) as the first component. Arrays of
// scalars become one value joined by arraySeparator. Null values produce no
// key.
//
// Flattening fails with *DuplicateKeyError when two paths collapse to the
// same key and with *UnsupportedArrayError when an array holds a table or
// another array.
func Flatten(tree value.Table, prefix, separator, arraySeparator string) (map[string]string, error) {
	f := &flattener{
		separator:      separator,
		arraySeparator: arraySeparator,
		out:            make(map[string]string),
	}

	if prefix != "" {
		f.path = append(f.path, upper(prefix))
	}

	if err := f.table(tree); err != nil {
		return nil, err
	}

	return f.out, nil
}

type flattener struct {
	separator      string
	arraySeparator string
	path           []string
	out            map[string]string
}

func (f *flattener) table(t value.Table) error {
	// sorted so the reported duplicate is the same on every run
	for _, key := range slices.Sorted(maps.Keys(t)) {
		f.path = append(f.path, upper(key))
		err := f.node(t[key])
		f.path = f.path[:len(f.path)-1]

		if err != nil {
			return err
		}
	}
	return nil
}

func (f *flattener) node(v value.Value) error {
	switch n := v.(type) {
	case nil, value.Null:
		return nil

	case value.Table:
		return f.table(n)

	// arrays of scalars only, collapsed into a single joined value
	case value.Array:
		key, err := f.candidate()
		if err != nil {
			return err
		}

		parts := make([]string, len(n))
		for i, elem := range n {
			if elem == nil {
				elem = value.Null{}
			}
			s, ok := elem.(value.Scalar)
			if !ok {
				return &UnsupportedArrayError{Key: key}
			}
			parts[i] = s.String()
		}

		f.out[key] = strings.Join(parts, f.arraySeparator)
		return nil

	case value.Scalar:
		key, err := f.candidate()
		if err != nil {
			return err
		}

		f.out[key] = n.String()
		return nil

	default:
		return fmt.Errorf("unexpected value kind %s", v.Kind())
	}
}

// candidate returns the key for the current path, failing if this source
// already produced it.
func (f *flattener) candidate() (string, error) {
	key := strings.Join(f.path, f.separator)
	if _, exists := f.out[key]; exists {
		return "", &DuplicateKeyError{Key: key}
	}
	return key, nil
}

// upper converts ASCII letters only; other runes are kept as-is.
func upper(s string) string {
	return strings.Map(func(r rune) rune {
		if 'a' <= r && r <= 'z' {
			return r - ('a' - 'A')
		}
		return r
	}, s)
}
