package design

import (
	"fmt"
	"strings"

	"github.com/chazu/weldgroove/pkg/groove"
)

// Severity indicates whether a validation finding blocks output or is
// merely informational.
type Severity int

const (
	SeverityError   Severity = iota // blocks output
	SeverityWarning                 // informational
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Entry    string   // entry name (empty if design-level)
	Message  string   // human-readable description
	Severity Severity // error or warning
}

func (e ValidationError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Entry, e.Message)
}

// ValidationResult bundles blocking errors and advisory warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// OK reports whether there are no blocking errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate runs all checks on the design and returns every finding. An
// empty slice means the design is valid. The design is not modified.
func Validate(d *Design, opts ...groove.ProfileOption) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateNames(d)...)
	errs = append(errs, validateGrooves(d, opts)...)
	errs = append(errs, validateWorkpieces(d)...)
	return errs
}

// Check runs Validate and separates errors from warnings.
func Check(d *Design, opts ...groove.ProfileOption) ValidationResult {
	var r ValidationResult
	for _, e := range Validate(d, opts...) {
		if e.Severity == SeverityWarning {
			r.Warnings = append(r.Warnings, e)
		} else {
			r.Errors = append(r.Errors, e)
		}
	}
	return r
}

// validateNames checks that every entry is named, names are unique, and the
// name index points at existing entries.
func validateNames(d *Design) []ValidationError {
	var errs []ValidationError

	for name, i := range d.NameIndex {
		if i < 0 || i >= len(d.Entries) || d.Entries[i].Name != name {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("name index entry %q references no entry", name),
				Severity: SeverityError,
			})
		}
	}

	counts := make(map[string]int)
	for i, e := range d.Entries {
		if strings.TrimSpace(e.Name) == "" {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("entry %d (%s) has no name", i, e.Kind),
				Severity: SeverityError,
			})
			continue
		}
		counts[e.Name]++
	}
	for _, e := range d.Entries {
		if n := counts[e.Name]; n > 1 {
			errs = append(errs, ValidationError{
				Entry:    e.Name,
				Message:  fmt.Sprintf("duplicate name assigned to %d entries", n),
				Severity: SeverityError,
			})
			counts[e.Name] = 0
		}
	}
	return errs
}

// validateGrooves checks parameters and builds every profile.
func validateGrooves(d *Design, opts []groove.ProfileOption) []ValidationError {
	var errs []ValidationError
	grooves := d.Grooves()
	if len(grooves) == 0 {
		errs = append(errs, ValidationError{
			Message:  "design has no grooves",
			Severity: SeverityWarning,
		})
	}
	for _, e := range grooves {
		gd, ok := e.Data.(GrooveData)
		if !ok || gd.Groove == nil {
			errs = append(errs, ValidationError{
				Entry:    e.Name,
				Message:  fmt.Sprintf("groove entry carries %T", e.Data),
				Severity: SeverityError,
			})
			continue
		}
		if err := groove.Validate(gd.Groove); err != nil {
			errs = append(errs, ValidationError{Entry: e.Name, Message: err.Error(), Severity: SeverityError})
			continue
		}
		if _, err := gd.Groove.ToProfile(opts...); err != nil {
			errs = append(errs, ValidationError{
				Entry:    e.Name,
				Message:  fmt.Sprintf("profile: %v", err),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

func validateWorkpieces(d *Design) []ValidationError {
	var errs []ValidationError
	for _, e := range d.Workpieces() {
		w, ok := e.Data.(Workpiece)
		if !ok {
			errs = append(errs, ValidationError{
				Entry:    e.Name,
				Message:  fmt.Sprintf("workpiece entry carries %T", e.Data),
				Severity: SeverityError,
			})
			continue
		}
		if strings.TrimSpace(w.Geometry) == "" {
			errs = append(errs, ValidationError{
				Entry:    e.Name,
				Message:  "workpiece has no geometry description",
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}
