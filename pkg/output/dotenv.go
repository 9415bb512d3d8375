package output

import (
	"maps"
	"slices"
	"strings"

	"github.com/alessio/shellescape"
)

func (f *formatter) formatDotenv(items map[string]string) string {
	f.log.Debug("Formatting dotenv output")

	var keys []string
	if f.config.NoSort {
		for k := range items {
			keys = append(keys, k)
		}
	} else {
		keys = slices.Sorted(maps.Keys(items))
	}

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteByte('=')
		if f.config.Raw {
			sb.WriteString(items[k])
		} else {
			sb.WriteString(quote(items[k]))
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// quote returns the shell-escaped value, or the value in double quotes when
// it needs no escaping.
func quote(v string) string {
	escaped := shellescape.Quote(v)
	if escaped != v {
		return escaped
	}
	return `"` + v + `"`
}
