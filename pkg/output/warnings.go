package output

import (
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/mattcl/confpiler/pkg/flatconfig"
)

// FormatWarnings renders one warning per line, indented by four spaces and
// sorted by message.
func FormatWarnings(warnings []flatconfig.MergeWarning, colored bool) string {
	lines := make([]string, 0, len(warnings))
	for _, w := range warnings {
		lines = append(lines, w.String())
	}
	slices.Sort(lines)

	c := color.New(color.FgYellow)
	if colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}

	for i, line := range lines {
		lines[i] = "    " + c.Sprint(line)
	}

	return strings.Join(lines, "\n")
}
