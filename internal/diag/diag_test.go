package diag

import (
	"strings"
	"testing"

	"github.com/coral-lang/coralc/internal/token"
)

func TestBag_Report(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		diags       []Diagnostic
		wantContain []string
	}{
		{
			name:   "single warning with source context",
			source: "i32 x = 300000;\ni8 b = x;",
			diags: []Diagnostic{
				{Severity: Warning, ID: "warn_impcast_integer_precision", Pos: token.Position{Line: 2, Column: 7}, Args: []any{"i32", "i8"}},
			},
			wantContain: []string{
				"2:7", "warning", "i32 to i8",
				"   2 | i8 b = x;",
				"^",
			},
		},
		{
			name:   "error with note",
			source: "i32 x;\ni32 x;",
			diags: []Diagnostic{
				{
					Severity: Error, ID: "err_duplicate_definition", Pos: token.Position{Line: 2, Column: 5}, Args: []any{"x"},
					Note: &Diagnostic{Severity: Note, ID: "note_previous_definition", Pos: token.Position{Line: 1, Column: 5}, Args: []any{"x"}},
				},
			},
			wantContain: []string{
				"redefinition of \"x\"",
				"previous definition of \"x\" is here",
			},
		},
		{
			name: "unregistered id falls back to raw id",
			diags: []Diagnostic{
				{Severity: Error, ID: "some_ad_hoc_id", Pos: token.Position{Line: 1, Column: 1}},
			},
			wantContain: []string{"some_ad_hoc_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBag(tt.source)
			for _, d := range tt.diags {
				b.Add(d)
			}
			got := b.Report()
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("Report() missing %q\ngot:\n%s", want, got)
				}
			}
		})
	}
}

func TestBag_HasErrors(t *testing.T) {
	b := NewBag("")
	if b.HasErrors() {
		t.Fatalf("empty bag should not have errors")
	}
	b.Warnf("warn_impcast_integer_precision", token.Position{Line: 1, Column: 1}, "i32", "i8")
	if b.HasErrors() {
		t.Fatalf("warning-only bag should not report HasErrors")
	}
	b.Errorf("err_undeclared_var_use", token.Position{Line: 1, Column: 1}, "foo")
	if !b.HasErrors() {
		t.Fatalf("bag with an error diagnostic should report HasErrors")
	}
	if got := b.ErrorCount(); got != 1 {
		t.Fatalf("ErrorCount() = %d, want 1", got)
	}
}

func TestBag_Reset(t *testing.T) {
	b := NewBag("")
	b.Errorf("err_undeclared_var_use", token.Position{Line: 1, Column: 1}, "foo")
	b.Reset()
	if len(b.Diagnostics()) != 0 {
		t.Fatalf("Reset() left %d diagnostics", len(b.Diagnostics()))
	}
}
