package analysis

import (
	"github.com/coral-lang/coralc/internal/ast"
	"github.com/coral-lang/coralc/internal/diag"
	"github.com/coral-lang/coralc/internal/resolve"
	"github.com/coral-lang/coralc/internal/types"
)

// noType is the "no type" sentinel of spec §7: once analysis on a node
// has already failed, subsequent uses short-circuit and return this,
// suppressing cascade diagnostics.
var noType = types.QualType{}

// analyseExpr dispatches one arm per expression kind (spec §4.5) and
// attaches the resulting type to expr before returning it, satisfying
// spec §3's "mutated exactly once" lifecycle.
func (a *Analyser) analyseExpr(expr ast.Expr) types.QualType {
	t := a.analyseExprKind(expr)
	expr.SetType(t)
	return t
}

func (a *Analyser) analyseExprKind(expr ast.Expr) types.QualType {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return a.Store.Builtin(types.INT)
	case *ast.FloatingLiteral:
		return a.Store.Builtin(types.F32)
	case *ast.BooleanLiteral:
		return a.Store.Builtin(types.BOOL)
	case *ast.CharacterLiteral:
		return a.Store.Builtin(types.I8)
	case *ast.StringLiteral:
		return a.Store.Pointer(a.Store.Builtin(types.I8).AddConst())
	case *ast.IdentifierExpr:
		return a.analyseIdentifierExpr(e)
	case *ast.ParenExpr:
		return a.analyseExpr(e.X)
	case *ast.CallExpr:
		return a.analyseCall(e)
	case *ast.MemberExpr:
		return a.analyseMemberExpr(e)
	case *ast.ArraySubscriptExpr:
		return a.analyseArraySubscript(e)
	case *ast.InitListExpr:
		return a.analyseInitList(e)
	case *ast.DeclExpr:
		if e.Var.Init != nil {
			a.analyseInitExpr(e.Var.Init, e.Var.Type)
		}
		if a.curScope != nil {
			a.curScope.Declare(e.Var)
		}
		return e.Var.Type
	case *ast.TypeExpr:
		return e.GetType()
	case *ast.BinaryOpExpr:
		return a.analyseBinaryOperator(e)
	case *ast.ConditionalOpExpr:
		return a.analyseConditionalOperator(e)
	case *ast.UnaryOpExpr:
		return a.analyseUnaryOperator(e)
	case *ast.BuiltinExpr:
		return a.analyseBuiltinExpr(e)
	default:
		return noType
	}
}

// analyseIdentifierExpr implements spec §4.5's Identifier contract.
func (a *Analyser) analyseIdentifierExpr(e *ast.IdentifierExpr) types.QualType {
	res := a.analyseIdentifier(e)
	if !res.Ok {
		d := diag.Diagnostic{Severity: diag.Error, ID: "err_undeclared_var_use", Pos: e.Pos(), Args: []any{e.Name}}
		if suggestion := a.FileScope.FindSymbolInUsed(e.Name); suggestion.Ok && suggestion.Decl != nil {
			d.Note = &diag.Diagnostic{
				Severity: diag.Note, ID: "note_did_you_mean", Pos: suggestion.Decl.Pos(),
				Args: []any{suggestion.Package.Name + "." + suggestion.Decl.Name()},
			}
		}
		a.Bag.Add(d)
		return noType
	}
	if res.Package != nil {
		e.Pkg = res.Package
		return noType // a bare package name carries no value type of its own
	}
	e.Decl = res.Decl
	if a.inConstExpr {
		if vd, ok := res.Decl.(*ast.VarDecl); ok && !vd.Type.IsConst() {
			a.Bag.Errorf(a.constDiagID, e.Pos())
		}
	}
	return decl2Type(res.Decl)
}

// analyseIdentifier resolves e.Name via the live scope chain, falling
// through to the FileScope, and returns the resolve.ScopeResult
// (original_source/c2c/FunctionAnalyser.h's ScopeResult
// analyseIdentifier).
func (a *Analyser) analyseIdentifier(e *ast.IdentifierExpr) resolve.ScopeResult {
	d, res := a.findSymbol(e.Name)
	if d != nil && res.Decl == nil {
		// Found in a live lexical scope frame rather than FileScope.
		return resolve.ScopeResult{Decl: d, Ok: true, Visible: true}
	}
	return res
}

// analyseCall implements spec §4.5's Call contract: the callee's type
// must resolve, through UserType, to a function type; argument-count
// diagnostics follow spec §8 tests 8 and 9.
func (a *Analyser) analyseCall(c *ast.CallExpr) types.QualType {
	if a.inConstExpr {
		a.Bag.Errorf(a.constDiagID, c.Pos())
	}
	calleeType := a.analyseExpr(c.Callee)
	for _, arg := range c.Args {
		a.analyseExpr(arg)
	}

	u := types.Underlying(calleeType)
	if u.T == nil || u.T.Kind() != types.KindFunc {
		if !calleeType.IsNull() {
			a.Bag.Errorf("err_call_not_function", c.Pos())
		}
		return noType
	}
	fn, _ := u.T.FuncDecl().(*ast.FunctionDecl)
	if fn == nil {
		return noType
	}
	a.checkCallArity(fn, c)
	return fn.ReturnType
}

// checkCallArity validates c's argument count against fn's declared
// parameter list (spec §8 tests 8 and 9): too many is only an error
// when fn isn't variadic, and "too few" downgrades to "at least N"
// once fn declares default arguments.
func (a *Analyser) checkCallArity(fn *ast.FunctionDecl, c *ast.CallExpr) {
	declared, given := len(fn.Params), len(c.Args)
	if given > declared && !fn.IsVariadic {
		if fn.HasDefaultArgs {
			a.Bag.Errorf("err_typecheck_call_too_many_args_at_most", c.Pos(), declared, given)
		} else {
			a.Bag.Errorf("err_typecheck_call_too_many_args", c.Pos(), declared, given)
		}
	}
	if given < declared {
		min := fn.MinArgs()
		if given < min {
			if fn.HasDefaultArgs {
				a.Bag.Errorf("err_typecheck_call_too_few_args_at_least", c.Pos(), min, given)
			} else {
				a.Bag.Errorf("err_typecheck_call_too_few_args", c.Pos(), declared, given)
			}
		}
	}
}

// analyseArraySubscript requires a base that is, after user-type
// resolution, an array or a pointer (spec §4.5 "Array subscript"). The
// index is analysed but its type is left unconstrained at this level.
func (a *Analyser) analyseArraySubscript(s *ast.ArraySubscriptExpr) types.QualType {
	baseType := a.analyseExpr(s.Base)
	a.analyseExpr(s.Index)

	u := types.Underlying(baseType)
	if u.T == nil {
		return noType
	}
	switch u.T.Kind() {
	case types.KindArray:
		return u.T.Element()
	case types.KindPointer:
		return u.T.Referent()
	default:
		a.Bag.Errorf("err_not_subscriptable", s.Pos(), baseType.String())
		return noType
	}
}

// analyseInitList analyses every element without a contextual expected
// type; a brace initializer's real element-wise checking happens in
// analyseInitExpr, which is what const-context global initializers and
// incremental array extensions actually call.
func (a *Analyser) analyseInitList(l *ast.InitListExpr) types.QualType {
	for _, el := range l.Elements {
		a.analyseExpr(el)
	}
	return noType
}

// analyseInitExpr analyses expr in a position with a known expected
// type: a global initializer, an incremental array extension, or a
// brace-initializer element. Unlike the bare analyseExpr dispatch, a
// nested InitListExpr is matched element-wise against expected's array
// element type rather than left untyped.
func (a *Analyser) analyseInitExpr(expr ast.Expr, expected types.QualType) types.QualType {
	if il, ok := expr.(*ast.InitListExpr); ok {
		elemType := elementTypeOf(expected)
		for _, el := range il.Elements {
			a.analyseInitExpr(el, elemType)
		}
		il.SetType(expected)
		return expected
	}
	t := a.analyseExpr(expr)
	if !t.IsNull() && !expected.IsNull() {
		a.checkConversion(expr.Pos(), t, expected)
	}
	return t
}

// analyseBuiltinExpr implements sizeof/elemsof (spec §4.5): elemsof
// additionally requires its operand's type to be, after user-type
// resolution, an array or an enum (spec §8 S6).
func (a *Analyser) analyseBuiltinExpr(b *ast.BuiltinExpr) types.QualType {
	t := a.analyseExpr(b.X)
	if b.Func == ast.BuiltinElemsof {
		u := types.Underlying(t)
		if u.T == nil || (u.T.Kind() != types.KindArray && u.T.Kind() != types.KindEnum) {
			a.Bag.Errorf("err_invalid_elemsof_type", b.Pos())
			return noType
		}
	}
	return a.Store.Builtin(types.U32)
}
