// Package analysis implements the Function Analyser of spec §4.5: it
// walks each top-level FunctionDecl and each global VarDecl with an
// initializer, maintaining a lexical scope stack, type-checking every
// expression and diagnosing all semantic errors.
//
// Grounded on original_source/c2c/FunctionAnalyser.{h,cpp} for the
// scope-stack shape, the ConstModeSetter RAII pattern (replaced here
// with an explicit push/pop pair the caller defers, since Go has no
// destructors) and the call-argument-count diagnostics, and on the
// teacher's internal/semantic pass-based architecture for how an
// analyser is wired to a shared diagnostics sink and symbol/scope
// context.
package analysis

import (
	"github.com/coral-lang/coralc/internal/ast"
	"github.com/coral-lang/coralc/internal/diag"
	"github.com/coral-lang/coralc/internal/resolve"
	"github.com/coral-lang/coralc/internal/types"
)

// Analyser is the Function Analyser for one translation unit.
type Analyser struct {
	FileScope *resolve.FileScope
	Store     *types.Store
	Bag       *diag.Bag

	scopes     [maxScopeDepth]Scope
	scopeIndex int // first free scope = count of scopes currently pushed
	curScope   *Scope

	fn *ast.FunctionDecl // the function currently being analysed, nil at global scope

	constDiagID string
	inConstExpr bool
}

// NewAnalyser constructs a Function Analyser wired to the given
// FileScope, Type Store and diagnostics sink.
func NewAnalyser(fs *resolve.FileScope, store *types.Store, bag *diag.Bag) *Analyser {
	return &Analyser{FileScope: fs, Store: store, Bag: bag}
}

// ScopeDepth returns the number of scopes currently pushed; spec §8
// test 7 requires this to be zero again after analysing any function
// body.
func (a *Analyser) ScopeDepth() int { return a.scopeIndex }

// EnterScope pushes a new frame with the given flags OR'd onto the
// inherited break/continue flags from the current frame (spec §4.5).
func (a *Analyser) EnterScope(flags ScopeFlags) {
	if a.scopeIndex >= maxScopeDepth {
		panic("analysis: scope stack overflow")
	}
	s := &a.scopes[a.scopeIndex]
	s.reset(inheritedFlags(a.curScope) | flags)
	a.curScope = s
	a.scopeIndex++
}

// ExitScope pops the current frame.
func (a *Analyser) ExitScope() {
	if a.scopeIndex == 0 {
		panic("analysis: ExitScope with no active scope")
	}
	a.scopeIndex--
	if a.scopeIndex == 0 {
		a.curScope = nil
		return
	}
	a.curScope = &a.scopes[a.scopeIndex-1]
}

// pushConstMode enters "const mode": non-constant constructs encountered
// until the matching popConstMode will be diagnosed against diagID
// (spec §4.5.2). A nested call replaces the active diagID until its
// matching popConstMode restores the previous one, so the innermost
// context's diagID is the one reported.
func (a *Analyser) pushConstMode(diagID string) (prevDiagID string, prevInConst bool) {
	prevDiagID, prevInConst = a.constDiagID, a.inConstExpr
	a.constDiagID = diagID
	a.inConstExpr = true
	return
}

func (a *Analyser) popConstMode(prevDiagID string, prevInConst bool) {
	a.constDiagID = prevDiagID
	a.inConstExpr = prevInConst
}

// AnalyseGlobalVar type-checks a global VarDecl's initializer (and any
// incremental array extensions) in const-expression context (spec
// §4.5.2, and SPEC_FULL.md §4's incremental-array merge semantics).
func (a *Analyser) AnalyseGlobalVar(v *ast.VarDecl) {
	prevID, prevIn := a.pushConstMode("err_not_constant_expr")
	defer a.popConstMode(prevID, prevIn)

	if v.Init != nil {
		a.analyseInitExpr(v.Init, v.Type)
	}
	for _, inc := range v.Increments {
		a.analyseInitExpr(inc.Value, elementTypeOf(v.Type))
	}
}

// elementTypeOf returns t's array element type, or t itself if t is
// not (after UserType resolution) an array — used to type-check each
// incremental array extension against the right expected type.
func elementTypeOf(t types.QualType) types.QualType {
	u := types.Underlying(t)
	if u.T != nil && u.T.Kind() == types.KindArray {
		return u.T.Element()
	}
	return t
}

// AnalyseFunction walks fn's body (spec §4.5). Scope entry/exit is
// balanced: on return, ScopeDepth() is zero again (spec §8 test 7).
func (a *Analyser) AnalyseFunction(fn *ast.FunctionDecl) {
	if fn.Body == nil {
		return // forward declaration, nothing to analyse
	}
	prevFn := a.fn
	a.fn = fn
	defer func() { a.fn = prevFn }()

	a.EnterScope(FnScope | DeclScope)
	for _, p := range fn.Params {
		a.curScope.Declare(p)
	}
	a.analyseCompoundStmtBody(fn.Body)
	a.ExitScope()
}

// findSymbol resolves name against the live scope chain, then falls
// back to the FileScope (spec §4.5: "findSymbol(name) on a Scope
// searches the frame's decls, else delegates to parent, else to the
// File Scope").
func (a *Analyser) findSymbol(name string) (ast.Decl, resolve.ScopeResult) {
	for i := a.scopeIndex - 1; i >= 0; i-- {
		if d := a.scopes[i].findLocal(name); d != nil {
			return d, resolve.ScopeResult{}
		}
	}
	res := a.FileScope.FindSymbol(name)
	if res.Ok && res.Decl != nil {
		return res.Decl, res
	}
	return nil, res
}

// decl2Type returns the QualType a declaration's identifier use
// evaluates to (original_source/c2c/FunctionAnalyser.cpp's Decl2Type).
func decl2Type(d ast.Decl) types.QualType {
	switch td := d.(type) {
	case *ast.VarDecl:
		return td.Type
	case *ast.FunctionDecl:
		return td.FuncType
	case *ast.EnumConstantDecl:
		return td.EnumType
	case *ast.TypeAliasDecl:
		return td.Aliased
	default:
		return types.QualType{}
	}
}
