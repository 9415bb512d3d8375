package app

import (
	"github.com/mattcl/confpiler/pkg/flatconfig"
	"github.com/mattcl/confpiler/pkg/output"
)

// WarningsError reports merge warnings escalated by strict mode.
type WarningsError struct {
	Warnings []flatconfig.MergeWarning
	Color    bool
}

func (e *WarningsError) Error() string {
	return "encountered warnings in strict mode:\n" + output.FormatWarnings(e.Warnings, e.Color)
}

// Escalate returns a *WarningsError when strict is set and there are
// warnings, nil otherwise.
func Escalate(warnings []flatconfig.MergeWarning, strict, color bool) error {
	if !strict || len(warnings) == 0 {
		return nil
	}
	return &WarningsError{Warnings: warnings, Color: color}
}
