// Package diag implements the diagnostics sink consumed by every other
// package in this module. Spec §6 treats the diagnostics engine as an
// opaque collaborator "keyed by diagnostic ID"; this package is that
// sink, in the spirit of the teacher's internal/errors.CompilerError
// but generalized to carry a severity and an optional secondary note
// (spec §7: redefinitions produce an error at the new site plus a note
// at the old one).
package diag

import (
	"fmt"
	"strings"

	"github.com/coral-lang/coralc/internal/token"
)

// Severity classifies a Diagnostic per spec §7's taxonomy. Fatal is
// parser-level and is never produced by this module.
type Severity int

const (
	Error Severity = iota
	Warning
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "severity?"
	}
}

// Diagnostic is a single record emitted against a diagnostic ID, never
// an exception (spec §7). Args are interpolated positionally into the
// catalogue message registered for ID; Note optionally points at a
// secondary location (e.g. the first definition of a redefined symbol).
type Diagnostic struct {
	Severity Severity
	ID       string
	Pos      token.Position
	Args     []any
	Note     *Diagnostic
}

// message renders the catalogue text for d, falling back to the raw ID
// if it isn't registered (keeps this package usable standalone in
// tests that invent ad-hoc IDs).
func (d Diagnostic) message() string {
	tmpl, ok := catalogue[d.ID]
	if !ok {
		return d.ID
	}
	return fmt.Sprintf(tmpl, d.Args...)
}

// String renders "severity: message (line:col)".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s (%s)", d.Severity, d.message(), d.Pos)
}

// Bag accumulates diagnostics for one translation unit's analysis run.
type Bag struct {
	source string
	diags  []Diagnostic
}

// NewBag constructs an empty Bag. source, if non-empty, is used to
// render caret-annotated reports; it is optional (the core never reads
// files, spec §1).
func NewBag(source string) *Bag {
	return &Bag{source: source}
}

// Add records a diagnostic.
func (b *Bag) Add(d Diagnostic) {
	b.diags = append(b.diags, d)
}

// Errorf is a convenience for the common case: an Error-severity
// diagnostic with no note.
func (b *Bag) Errorf(id string, pos token.Position, args ...any) {
	b.Add(Diagnostic{Severity: Error, ID: id, Pos: pos, Args: args})
}

// Warnf is the Warning-severity convenience.
func (b *Bag) Warnf(id string, pos token.Position, args ...any) {
	b.Add(Diagnostic{Severity: Warning, ID: id, Pos: pos, Args: args})
}

// ErrorfWithNote records an Error diagnostic carrying a secondary Note,
// e.g. "duplicate definition" (error) plus "previous definition here"
// (note) per spec §4.2 and §7.
func (b *Bag) ErrorfWithNote(id string, pos token.Position, noteID string, notePos token.Position, args ...any) {
	b.Add(Diagnostic{
		Severity: Error,
		ID:       id,
		Pos:      pos,
		Args:     args,
		Note:     &Diagnostic{Severity: Note, ID: noteID, Pos: notePos, Args: args},
	})
}

// Diagnostics returns the accumulated records in emission order.
func (b *Bag) Diagnostics() []Diagnostic { return b.diags }

// HasErrors reports whether any Error-severity diagnostic was recorded.
// Spec §7: "a translation unit is usable by codegen only if the error
// count is zero" — this is that gate.
func (b *Bag) HasErrors() bool {
	for _, d := range b.diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of Error-severity diagnostics.
func (b *Bag) ErrorCount() int {
	n := 0
	for _, d := range b.diags {
		if d.Severity == Error {
			n++
		}
	}
	return n
}

// Reset clears accumulated diagnostics, keeping the attached source.
func (b *Bag) Reset() {
	b.diags = nil
}

// sourceLine returns the 1-indexed line of source, or "" if unavailable.
func (b *Bag) sourceLine(line int) string {
	if b.source == "" {
		return ""
	}
	lines := strings.Split(b.source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// Report renders every accumulated diagnostic as a multi-line,
// caret-annotated report, in the style of the teacher's
// CompilerError.Format — source line, then a caret under the column,
// then the message. Diagnostics with no attached source render just
// the header line. This is the text go-snaps snapshots in tests.
func (b *Bag) Report() string {
	var sb strings.Builder
	for i, d := range b.diags {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeOne(&sb, b, d, "")
		for n := d.Note; n != nil; n = n.Note {
			writeOne(&sb, b, *n, "  ")
		}
	}
	return sb.String()
}

func writeOne(sb *strings.Builder, b *Bag, d Diagnostic, indent string) {
	fmt.Fprintf(sb, "%s%s: %s: %s\n", indent, d.Pos, d.Severity, d.message())
	line := b.sourceLine(d.Pos.Line)
	if line == "" {
		return
	}
	prefix := fmt.Sprintf("%s%4d | ", indent, d.Pos.Line)
	sb.WriteString(prefix)
	sb.WriteString(line)
	sb.WriteString("\n")
	col := d.Pos.Column
	if col < 1 {
		col = 1
	}
	sb.WriteString(indent)
	sb.WriteString(strings.Repeat(" ", len(prefix)-len(indent)+col-1))
	sb.WriteString("^\n")
}
