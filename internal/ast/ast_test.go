package ast

import (
	"testing"

	"github.com/coral-lang/coralc/internal/token"
	"github.com/coral-lang/coralc/internal/types"
)

func tok(lit string) token.Token {
	return token.Token{Literal: lit, Pos: token.Position{Line: 1, Column: 1}}
}

func TestIdentifierExpr(t *testing.T) {
	id := &IdentifierExpr{BaseExpr: BaseExpr{Tok: tok("x")}, Name: "x"}
	if id.String() != "x" {
		t.Errorf("String() = %q, want %q", id.String(), "x")
	}
	if id.Kind() != ExprIdentifier {
		t.Errorf("Kind() = %v, want ExprIdentifier", id.Kind())
	}
	if id.Decl != nil {
		t.Errorf("fresh IdentifierExpr must have nil Decl")
	}
}

func TestBinaryOpExpr_String(t *testing.T) {
	lhs := &IntegerLiteral{BaseExpr: BaseExpr{Tok: tok("1")}, Value: 1}
	rhs := &IntegerLiteral{BaseExpr: BaseExpr{Tok: tok("2")}, Value: 2}
	b := &BinaryOpExpr{BaseExpr: BaseExpr{Tok: tok("+")}, Op: OpAdd, LHS: lhs, RHS: rhs}
	if got, want := b.String(), "(1 + 2)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestBinaryOperator_IsAssignment(t *testing.T) {
	tests := []struct {
		op           BinaryOperator
		assignment   bool
		compoundOnly bool
	}{
		{OpAdd, false, false},
		{OpAssign, true, false},
		{OpAddAssign, true, true},
		{OpXorAssign, true, true},
	}
	for _, tt := range tests {
		if got := tt.op.IsAssignment(); got != tt.assignment {
			t.Errorf("%v.IsAssignment() = %v, want %v", tt.op, got, tt.assignment)
		}
		if got := tt.op.IsCompoundAssignment(); got != tt.compoundOnly {
			t.Errorf("%v.IsCompoundAssignment() = %v, want %v", tt.op, got, tt.compoundOnly)
		}
	}
}

func TestUnaryOpExpr_PostfixVsPrefix(t *testing.T) {
	x := &IdentifierExpr{BaseExpr: BaseExpr{Tok: tok("x")}, Name: "x"}
	pre := &UnaryOpExpr{BaseExpr: BaseExpr{Tok: tok("++")}, Op: OpPreInc, X: x}
	post := &UnaryOpExpr{BaseExpr: BaseExpr{Tok: tok("++")}, Op: OpPostInc, X: x}
	if got, want := pre.String(), "++x"; got != want {
		t.Errorf("prefix String() = %q, want %q", got, want)
	}
	if got, want := post.String(), "x++"; got != want {
		t.Errorf("postfix String() = %q, want %q", got, want)
	}
}

func TestFunctionDecl_MinArgs(t *testing.T) {
	s := types.NewStore()
	i32 := s.Builtin(types.I32)
	defaultVal := &IntegerLiteral{BaseExpr: BaseExpr{Tok: tok("0")}}

	fn := &FunctionDecl{
		BaseDecl: BaseDecl{NameVal: "f"},
		Params: []*VarDecl{
			{BaseDecl: BaseDecl{NameVal: "a"}, Type: i32},
			{BaseDecl: BaseDecl{NameVal: "b"}, Type: i32, Init: defaultVal, HasDefault: true},
			{BaseDecl: BaseDecl{NameVal: "c"}, Type: i32, Init: defaultVal, HasDefault: true},
		},
	}
	if got, want := fn.MinArgs(), 1; got != want {
		t.Errorf("MinArgs() = %d, want %d", got, want)
	}

	fnNoDefaults := &FunctionDecl{
		BaseDecl: BaseDecl{NameVal: "g"},
		Params: []*VarDecl{
			{BaseDecl: BaseDecl{NameVal: "a"}, Type: i32},
			{BaseDecl: BaseDecl{NameVal: "b"}, Type: i32},
		},
	}
	if got, want := fnNoDefaults.MinArgs(), 2; got != want {
		t.Errorf("MinArgs() = %d, want %d", got, want)
	}
}

func TestUseDecl_ShortName(t *testing.T) {
	u := &UseDecl{BaseDecl: BaseDecl{NameVal: "use"}, Target: "mathlib"}
	if got, want := u.ShortName(), "mathlib"; got != want {
		t.Errorf("ShortName() = %q, want %q", got, want)
	}
	u.Alias = "m"
	if got, want := u.ShortName(), "m"; got != want {
		t.Errorf("ShortName() with alias = %q, want %q", got, want)
	}
}

func TestAST_AddDeclAndLookup(t *testing.T) {
	a := NewAST("main")
	fn := &FunctionDecl{BaseDecl: BaseDecl{NameVal: "main"}}
	a.AddDecl(fn)
	if got := a.Lookup("main"); got != fn {
		t.Errorf("Lookup(%q) = %v, want %v", "main", got, fn)
	}
	if a.Lookup("missing") != nil {
		t.Errorf("Lookup of missing name must return nil")
	}
}

func TestCompoundStmt_String(t *testing.T) {
	ret := &ReturnStmt{BaseStmt: BaseStmt{Tok: tok("return")}}
	c := &CompoundStmt{Stmts: []Stmt{ret}}
	if got, want := c.String(), "{ return; }"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
