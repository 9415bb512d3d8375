package value

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// UnsupportedTypeError is returned by FromNative for Go values that have no
// configuration representation.
type UnsupportedTypeError struct {
	Path string
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("unsupported value type %s", e.Type)
	}
	return fmt.Sprintf("unsupported value type %s at %q", e.Type, e.Path)
}

// NotTableError is returned by TableFromNative when the document root is
// not a mapping.
type NotTableError struct {
	Kind Kind
}

func (e *NotTableError) Error() string {
	return fmt.Sprintf("document root must be a table, got %s", e.Kind)
}

// TableFromNative converts a decoded document into a Table. A nil document
// is an empty table.
func TableFromNative(doc any) (Table, error) {
	if doc == nil {
		return Table{}, nil
	}

	v, err := FromNative(doc)
	if err != nil {
		return nil, err
	}

	t, ok := v.(Table)
	if !ok {
		return nil, &NotTableError{Kind: v.Kind()}
	}
	return t, nil
}

// FromNative converts the output of a format decoder (maps, slices and Go
// scalars) into a Value tree.
func FromNative(in any) (Value, error) {
	return fromNative(in, "")
}

func fromNative(in any, path string) (Value, error) {
	switch v := in.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case int:
		return Int(v), nil
	case int8:
		return Int(v), nil
	case int16:
		return Int(v), nil
	case int32:
		return Int(v), nil
	case int64:
		return Int(v), nil
	case uint:
		return fromUint(uint64(v)), nil
	case uint8:
		return Int(v), nil
	case uint16:
		return Int(v), nil
	case uint32:
		return Int(v), nil
	case uint64:
		return fromUint(v), nil
	case float32:
		return Float(v), nil
	case float64:
		return Float(v), nil
	case json.Number:
		return fromNumber(v), nil
	case time.Time:
		return String(v.Format(time.RFC3339Nano)), nil
	case map[string]any:
		t := make(Table, len(v))
		for key, child := range v {
			cv, err := fromNative(child, join(path, key))
			if err != nil {
				return nil, err
			}
			t[key] = cv
		}
		return t, nil
	case map[any]any:
		t := make(Table, len(v))
		for rawKey, child := range v {
			key := fmt.Sprint(rawKey)
			cv, err := fromNative(child, join(path, key))
			if err != nil {
				return nil, err
			}
			t[key] = cv
		}
		return t, nil
	case []any:
		a := make(Array, len(v))
		for i, child := range v {
			cv, err := fromNative(child, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			a[i] = cv
		}
		return a, nil
	case []string:
		a := make(Array, len(v))
		for i, s := range v {
			a[i] = String(s)
		}
		return a, nil
	case fmt.Stringer:
		// toml local dates/times and similar
		return String(v.String()), nil
	default:
		return nil, &UnsupportedTypeError{Path: path, Type: fmt.Sprintf("%T", in)}
	}
}

// fromUint keeps values above MaxInt64 exact by falling back to their
// decimal string.
func fromUint(u uint64) Value {
	if u > math.MaxInt64 {
		return String(fmt.Sprintf("%d", u))
	}
	return Int(int64(u))
}

// fromNumber keeps a JSON number exact: integers that do not fit an int64
// and floats that do not fit a float64 stay as their literal text.
func fromNumber(n json.Number) Value {
	if i, err := n.Int64(); err == nil {
		return Int(i)
	}
	if !strings.ContainsAny(n.String(), ".eE") {
		return String(n.String())
	}
	if f, err := n.Float64(); err == nil {
		return Float(f)
	}
	return String(n.String())
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
