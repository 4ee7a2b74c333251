package catalog

import (
	"strconv"
	"strings"
)

// DiagnosticKind classifies a single catalog problem.
type DiagnosticKind string

const (
	KindSchema      DiagnosticKind = "schema"
	KindReferential DiagnosticKind = "referential"
	KindInvariant   DiagnosticKind = "invariant"
	KindWarning     DiagnosticKind = "warning"
)

// Diagnostic is one violation found while loading or validating the
// catalog. Path identifies the offending file; Line is filled in when the
// underlying YAML decode error reported one (strict-decode type errors
// only — yaml.v3 doesn't expose a column for those). Column is reserved
// for a future node-walking decode path and is always 0 today.
type Diagnostic struct {
	Kind    DiagnosticKind
	Path    string
	Field   string
	Message string
	Line    int
	Column  int
}

func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(string(d.Kind))
	b.WriteString(": ")
	if d.Path != "" {
		b.WriteString(d.Path)
		if d.Line > 0 {
			b.WriteString(":")
			b.WriteString(strconv.Itoa(d.Line))
		}
		b.WriteString(": ")
	}
	if d.Field != "" {
		b.WriteString(d.Field)
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	return b.String()
}

// Report aggregates every Diagnostic found in one Load call. It never
// aborts early: every schema, referential, and invariant violation found
// in one pass is collected before the loader returns.
type Report struct {
	Diagnostics []Diagnostic
}

// Add appends one diagnostic.
func (r *Report) Add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// Errors reports only the fatal diagnostics (everything but warnings) —
// the ones that make a catalog unusable.
func (r *Report) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Kind != KindWarning {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors reports whether any fatal diagnostic was recorded.
func (r *Report) HasErrors() bool {
	return len(r.Errors()) > 0
}

// Error renders every fatal diagnostic, one per line, implementing the
// error interface so a *Report can be returned and logged like any other
// error while still carrying the full structured list.
func (r *Report) Error() string {
	errs := r.Errors()
	lines := make([]string, 0, len(errs))
	for _, d := range errs {
		lines = append(lines, d.String())
	}
	return strings.Join(lines, "\n")
}
