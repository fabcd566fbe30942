package analysis

import (
	"github.com/coral-lang/coralc/internal/ast"
)

// ScopeFlags is the bitset carried by each Scope frame (spec §4.5).
type ScopeFlags uint8

const (
	FnScope ScopeFlags = 1 << iota
	DeclScope
	BreakScope
	ContinueScope
	SwitchScope
	ControlScope
)

// Has reports whether all of want is set in f.
func (f ScopeFlags) Has(want ScopeFlags) bool { return f&want == want }

// maxScopeDepth mirrors original_source/c2c/FunctionAnalyser.h's
// MAX_SCOPE_DEPTH: a language-level bound, not a micro-optimisation
// (spec §9 calls this pattern "acceptable as-is").
const maxScopeDepth = 15

// Scope is one lexical frame of the Function Analyser's scope stack.
// A child frame always inherits BreakScope/ContinueScope from its
// parent; the construct entering it can add flags but not clear
// inherited ones (spec §4.5).
type Scope struct {
	flags ScopeFlags
	decls []ast.Decl
}

func (s *Scope) reset(flags ScopeFlags) {
	s.flags = flags
	s.decls = s.decls[:0]
}

// Declare records a locally-declared Decl in this frame (e.g. the
// VarDecl introduced by a DeclExpr).
func (s *Scope) Declare(d ast.Decl) {
	s.decls = append(s.decls, d)
}

// findLocal returns the Decl named name declared directly in this
// frame, or nil.
func (s *Scope) findLocal(name string) ast.Decl {
	for _, d := range s.decls {
		if d.Name() == name {
			return d
		}
	}
	return nil
}

// AllowBreak reports whether a `break` is legal directly inside this frame.
func (s *Scope) AllowBreak() bool { return s.flags.Has(BreakScope) }

// AllowContinue reports whether a `continue` is legal directly inside this frame.
func (s *Scope) AllowContinue() bool { return s.flags.Has(ContinueScope) }

// inheritedFlags computes the flags a freshly entered child frame
// should start with, before the construct's own flags are OR'd in:
// BreakScope/ContinueScope propagate down from the parent so that, for
// example, a plain compound statement nested inside a loop still
// allows `break` (spec §4.5).
func inheritedFlags(parent *Scope) ScopeFlags {
	if parent == nil {
		return 0
	}
	var f ScopeFlags
	if parent.flags.Has(BreakScope) {
		f |= BreakScope
	}
	if parent.flags.Has(ContinueScope) {
		f |= ContinueScope
	}
	return f
}
