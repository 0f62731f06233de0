package token

import "github.com/hashicorp/go-multierror"

// Diagnostic pairs a message with the source span it refers to. Diagnostics
// are collected during parsing and never raised as errors: parsing always
// runs to completion and returns a best-effort tree alongside them.
type Diagnostic struct {
	Message string
	Pos     Position
}

// Error implements the error interface with the short position rendering.
func (d Diagnostic) Error() string {
	return d.Pos.Format(d.Message, true)
}

// String renders the diagnostic with its source line and pointer.
func (d Diagnostic) String() string {
	return d.Pos.Format(d.Message, false)
}

// Diagnostics accumulates diagnostics in the order they are encountered.
//
// A diagnostic that starts exactly where the previous one with the same
// message ends is merged into it by extending the previous span. A run of
// unrecognized characters therefore reports as one diagnostic covering the
// whole run rather than one per character.
type Diagnostics struct {
	list []Diagnostic
}

// Add records a diagnostic, merging it into the previous entry when it
// continues the same message at the exact end offset of the previous span.
func (d *Diagnostics) Add(message string, pos Position) {
	if n := len(d.list); n > 0 && !pos.IsSynthetic() {
		last := &d.list[n-1]
		if last.Message == message &&
			!last.Pos.IsSynthetic() &&
			last.Pos.Document == pos.Document &&
			last.Pos.End() == pos.Offset {
			last.Pos.Length += pos.Length
			return
		}
	}
	d.list = append(d.list, Diagnostic{Message: message, Pos: pos})
}

// Len returns the number of collected diagnostics.
func (d *Diagnostics) Len() int { return len(d.list) }

// List returns the collected diagnostics in order, or nil if there are none.
func (d *Diagnostics) List() []Diagnostic {
	if len(d.list) == 0 {
		return nil
	}
	return d.list
}

// ErrOrNil adapts the diagnostic list into a single error value for callers
// that want ordinary Go error plumbing. Returns nil when the list is empty.
func (d *Diagnostics) ErrOrNil() error {
	if len(d.list) == 0 {
		return nil
	}
	var result *multierror.Error
	for _, diag := range d.list {
		result = multierror.Append(result, diag)
	}
	return result.ErrorOrNil()
}
