package analysis

import (
	"testing"

	"github.com/coral-lang/coralc/internal/ast"
	"github.com/coral-lang/coralc/internal/diag"
	"github.com/coral-lang/coralc/internal/registry"
	"github.com/coral-lang/coralc/internal/resolve"
	"github.com/coral-lang/coralc/internal/token"
	"github.com/coral-lang/coralc/internal/types"
)

func newTestAnalyser(pkgName string) *Analyser {
	reg := registry.NewRegistry()
	pkg := reg.GetOrCreate(pkgName)
	fs := resolve.NewFileScope(reg, pkg)
	store := types.NewStore()
	bag := diag.NewBag("")
	return NewAnalyser(fs, store, bag)
}

// TestScopeBalance_AfterFunctionBody is spec §8 test 7: scope enter/exit
// is balanced — after analysing any function body, the scope index is
// zero again, however deeply the body nests control flow.
func TestScopeBalance_AfterFunctionBody(t *testing.T) {
	a := newTestAnalyser("p")
	voidT := a.Store.Builtin(types.VOID)

	body := &ast.CompoundStmt{Stmts: []ast.Stmt{
		&ast.IfStmt{
			Cond: &ast.BooleanLiteral{Value: true},
			Then: &ast.WhileStmt{
				Cond: &ast.BooleanLiteral{Value: true},
				Body: &ast.CompoundStmt{Stmts: []ast.Stmt{&ast.BreakStmt{}}},
			},
			Else: &ast.ForStmt{
				Body: &ast.CompoundStmt{Stmts: []ast.Stmt{&ast.ContinueStmt{}}},
			},
		},
	}}
	fn := &ast.FunctionDecl{
		BaseDecl:   ast.BaseDecl{NameVal: "f"},
		ReturnType: voidT,
		Body:       body,
	}

	a.AnalyseFunction(fn)

	if a.ScopeDepth() != 0 {
		t.Errorf("ScopeDepth() = %d after AnalyseFunction, want 0", a.ScopeDepth())
	}
	if a.Bag.HasErrors() {
		t.Errorf("unexpected diagnostics: %s", a.Bag.Report())
	}
}

func TestBreakContinue_OutsideLoopDiagnosed(t *testing.T) {
	a := newTestAnalyser("p")
	voidT := a.Store.Builtin(types.VOID)
	body := &ast.CompoundStmt{Stmts: []ast.Stmt{&ast.BreakStmt{}, &ast.ContinueStmt{}}}
	fn := &ast.FunctionDecl{BaseDecl: ast.BaseDecl{NameVal: "f"}, ReturnType: voidT, Body: body}

	a.AnalyseFunction(fn)

	ids := diagIDs(a.Bag)
	if !contains(ids, "err_break_outside_loop_or_switch") {
		t.Errorf("expected err_break_outside_loop_or_switch, got %v", ids)
	}
	if !contains(ids, "err_continue_outside_loop") {
		t.Errorf("expected err_continue_outside_loop, got %v", ids)
	}
}

func diagIDs(bag *diag.Bag) []string {
	var ids []string
	for _, d := range bag.Diagnostics() {
		ids = append(ids, d.ID)
	}
	return ids
}

func contains(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func intLitAt(v int64, line int) *ast.IntegerLiteral {
	return &ast.IntegerLiteral{BaseExpr: ast.BaseExpr{Tok: token.Token{Pos: token.Position{Line: line, Column: 1}}}, Value: v}
}

func identAt(name string, line int) *ast.IdentifierExpr {
	return &ast.IdentifierExpr{BaseExpr: ast.BaseExpr{Tok: token.Token{Pos: token.Position{Line: line, Column: 1}}}, Name: name}
}

// TestAnalyseCall_BoundaryBehaviours is spec §8 tests 8 and 9.
func TestAnalyseCall_BoundaryBehaviours(t *testing.T) {
	a := newTestAnalyser("p")
	i32 := a.Store.Builtin(types.I32)

	mkParam := func(name string, hasDefault bool) *ast.VarDecl {
		v := &ast.VarDecl{BaseDecl: ast.BaseDecl{NameVal: name}, Type: i32, HasDefault: hasDefault}
		if hasDefault {
			v.Init = intLitAt(0, 1)
		}
		return v
	}

	t.Run("no defaults: too many and too few", func(t *testing.T) {
		fn := &ast.FunctionDecl{BaseDecl: ast.BaseDecl{NameVal: "f"}, ReturnType: i32,
			Params: []*ast.VarDecl{mkParam("a", false), mkParam("b", false)}}
		fn.FuncType = a.Store.Function(fn)

		call := &ast.CallExpr{Callee: identAt("f", 1), Args: []ast.Expr{intLitAt(1, 1), intLitAt(2, 1), intLitAt(3, 1)}}
		a.Bag.Reset()
		a.checkCallArity(fn, call)
		if !contains(diagIDs(a.Bag), "err_typecheck_call_too_many_args") {
			t.Errorf("want err_typecheck_call_too_many_args, got %v", diagIDs(a.Bag))
		}

		call2 := &ast.CallExpr{Callee: identAt("f", 1), Args: []ast.Expr{intLitAt(1, 1)}}
		a.Bag.Reset()
		a.checkCallArity(fn, call2)
		if !contains(diagIDs(a.Bag), "err_typecheck_call_too_few_args") {
			t.Errorf("want err_typecheck_call_too_few_args, got %v", diagIDs(a.Bag))
		}
	})

	t.Run("last K defaulted: in-range is clean, under-min is at_least", func(t *testing.T) {
		fn := &ast.FunctionDecl{BaseDecl: ast.BaseDecl{NameVal: "g"}, ReturnType: i32,
			Params:         []*ast.VarDecl{mkParam("a", false), mkParam("b", true), mkParam("c", true)},
			HasDefaultArgs: true}
		fn.FuncType = a.Store.Function(fn)

		for _, given := range []int{1, 2, 3} {
			args := make([]ast.Expr, given)
			for i := range args {
				args[i] = intLitAt(int64(i), 1)
			}
			call := &ast.CallExpr{Callee: identAt("g", 1), Args: args}
			a.Bag.Reset()
			a.checkCallArity(fn, call)
			if a.Bag.HasErrors() {
				t.Errorf("given=%d: unexpected diagnostics %v", given, diagIDs(a.Bag))
			}
		}

		call := &ast.CallExpr{Callee: identAt("g", 1), Args: nil}
		a.Bag.Reset()
		a.checkCallArity(fn, call)
		if !contains(diagIDs(a.Bag), "err_typecheck_call_too_few_args_at_least") {
			t.Errorf("want err_typecheck_call_too_few_args_at_least, got %v", diagIDs(a.Bag))
		}
	})
}
