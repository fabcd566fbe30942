package coral

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/coral-lang/coralc/internal/ast"
	"github.com/coral-lang/coralc/internal/registry"
	"github.com/coral-lang/coralc/internal/token"
	"github.com/coral-lang/coralc/internal/types"
)

// TestPipeline_DiagnosticReportSnapshots pins the rendered diagnostic
// report for a handful of representative scenarios, the same way the
// teacher's fixture tests pin an interpreter's printed output.
func TestPipeline_DiagnosticReportSnapshots(t *testing.T) {
	t.Run("assign to const", func(t *testing.T) {
		reg := registry.NewRegistry()
		p := NewPipeline("p", reg, "const i32 x = 3;\nx = 4;")
		i32Const := p.Store.Builtin(types.I32).AddConst()
		x := p.Actions.ActOnVarDef("x", pos(1), i32Const, false, false, intLit(3))

		body := compound(exprStmt(&ast.BinaryOpExpr{
			BaseExpr: ast.BaseExpr{Tok: token.Token{Pos: pos(2)}},
			Op:       ast.OpAssign,
			LHS:      &ast.IdentifierExpr{BaseExpr: ast.BaseExpr{Tok: token.Token{Pos: pos(2)}}, Name: "x", Decl: x},
			RHS:      intLit(4),
		}))
		voidT := p.Store.Builtin(types.VOID)
		fn := p.Actions.ActOnFuncDecl("f", pos(2), voidT, false, nil, false, false)
		p.Actions.ActOnFinishFunctionBody(fn, body)

		p.BindUses()
		p.RegisterUnit()
		p.Analyse()

		snaps.MatchSnapshot(t, "assign_to_const_report", p.Bag.Report())
	})

	t.Run("lossy conversion", func(t *testing.T) {
		reg := registry.NewRegistry()
		p := NewPipeline("p", reg, "i32 a = 300000;\ni8 b = a;")
		i32T := p.Store.Builtin(types.I32)
		i8T := p.Store.Builtin(types.I8)

		p.Actions.ActOnVarDef("a", pos(1), i32T, false, false, intLit(300000))
		aDecl := p.AST.Decls[0].(*ast.VarDecl)
		p.Actions.ActOnVarDef("b", pos(2), i8T, false, false,
			&ast.IdentifierExpr{BaseExpr: ast.BaseExpr{Tok: token.Token{Pos: pos(2)}}, Name: "a", Decl: aDecl})

		p.BindUses()
		p.RegisterUnit()
		p.Analyse()

		snaps.MatchSnapshot(t, "lossy_conversion_report", p.Bag.Report())
	})
}
