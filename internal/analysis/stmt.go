package analysis

import (
	"github.com/coral-lang/coralc/internal/ast"
	"github.com/coral-lang/coralc/internal/types"
)

// analyseCompoundStmtBody analyses a compound statement's contents in
// the *current* scope, without pushing a new frame — used for a
// function body immediately after EnterScope(FnScope|DeclScope) has
// already pushed the frame the parameters live in.
func (a *Analyser) analyseCompoundStmtBody(c *ast.CompoundStmt) {
	for _, stmt := range c.Stmts {
		a.analyseStmt(stmt)
	}
}

// analyseStmt dispatches on stmt's concrete type (spec §4.5; statements are
// visited in source order, spec §5).
func (a *Analyser) analyseStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.CompoundStmt:
		a.EnterScope(DeclScope)
		a.analyseCompoundStmtBody(s)
		a.ExitScope()
	case *ast.ExprStmt:
		a.analyseStmtExpr(s.X)
	case *ast.ReturnStmt:
		a.analyseReturnStmt(s)
	case *ast.IfStmt:
		a.analyseIfStmt(s)
	case *ast.WhileStmt:
		a.analyseWhileStmt(s)
	case *ast.DoStmt:
		a.analyseDoStmt(s)
	case *ast.ForStmt:
		a.analyseForStmt(s)
	case *ast.SwitchStmt:
		a.analyseSwitchStmt(s)
	case *ast.CaseStmt:
		a.analyseCaseStmt(s)
	case *ast.DefaultStmt:
		a.analyseDefaultStmt(s)
	case *ast.BreakStmt:
		a.analyseBreakStmt(s)
	case *ast.ContinueStmt:
		a.analyseContinueStmt(s)
	case *ast.LabelStmt:
		a.analyseStmt(s.Target)
	case *ast.GotoStmt:
		// nothing to type-check; label existence is a parser-level concern.
	}
}

// analyseStmtExpr analyses an expression used in statement position; a
// DeclExpr additionally registers its VarDecl in the current scope
// (spec §3 "Expr-as-statement").
func (a *Analyser) analyseStmtExpr(x ast.Expr) {
	if d, ok := x.(*ast.DeclExpr); ok {
		if d.Var.Init != nil {
			a.analyseInitExpr(d.Var.Init, d.Var.Type)
		}
		a.curScope.Declare(d.Var)
		return
	}
	a.analyseExpr(x)
}

// checkConditionType analyses cond and consults the conversion matrix
// against BOOL, per spec §4.5.3's "the matrix is consulted on
// assignment and on the condition of if/while/etc."
func (a *Analyser) checkConditionType(cond ast.Expr) {
	t := a.analyseExpr(cond)
	a.checkConversion(cond.Pos(), t, a.Store.Builtin(types.BOOL))
}

func (a *Analyser) analyseReturnStmt(s *ast.ReturnStmt) {
	if s.Value == nil {
		return
	}
	t := a.analyseExpr(s.Value)
	if a.fn != nil && !t.IsNull() {
		a.checkConversion(s.Pos(), t, a.fn.ReturnType)
	}
}

func (a *Analyser) analyseIfStmt(s *ast.IfStmt) {
	a.checkConditionType(s.Cond)
	a.EnterScope(DeclScope)
	a.analyseStmt(s.Then)
	a.ExitScope()
	if s.Else != nil {
		a.EnterScope(DeclScope)
		a.analyseStmt(s.Else)
		a.ExitScope()
	}
}

func (a *Analyser) analyseWhileStmt(s *ast.WhileStmt) {
	a.checkConditionType(s.Cond)
	a.EnterScope(BreakScope | ContinueScope | DeclScope | ControlScope)
	a.analyseStmt(s.Body)
	a.ExitScope()
}

func (a *Analyser) analyseDoStmt(s *ast.DoStmt) {
	a.EnterScope(BreakScope | ContinueScope | DeclScope)
	a.analyseStmt(s.Body)
	a.ExitScope()
	a.checkConditionType(s.Cond)
}

func (a *Analyser) analyseForStmt(s *ast.ForStmt) {
	a.EnterScope(DeclScope)
	if s.Init != nil {
		a.analyseStmt(s.Init)
	}
	if s.Cond != nil {
		a.checkConditionType(s.Cond)
	}
	if s.Post != nil {
		a.analyseExpr(s.Post)
	}
	a.EnterScope(BreakScope | ContinueScope | DeclScope | ControlScope)
	a.analyseStmt(s.Body)
	a.ExitScope()
	a.ExitScope()
}

func (a *Analyser) analyseSwitchStmt(s *ast.SwitchStmt) {
	a.analyseExpr(s.Cond)
	a.EnterScope(BreakScope | SwitchScope)
	for _, c := range s.Cases {
		a.analyseStmt(c)
	}
	a.ExitScope()
}

func (a *Analyser) analyseCaseStmt(s *ast.CaseStmt) {
	a.analyseExpr(s.Value)
	for _, stmt := range s.Body {
		a.analyseStmt(stmt)
	}
}

func (a *Analyser) analyseDefaultStmt(s *ast.DefaultStmt) {
	for _, stmt := range s.Body {
		a.analyseStmt(stmt)
	}
}

func (a *Analyser) analyseBreakStmt(s *ast.BreakStmt) {
	if a.curScope == nil || !a.curScope.AllowBreak() {
		a.Bag.Errorf("err_break_outside_loop_or_switch", s.Pos())
	}
}

func (a *Analyser) analyseContinueStmt(s *ast.ContinueStmt) {
	if a.curScope == nil || !a.curScope.AllowContinue() {
		a.Bag.Errorf("err_continue_outside_loop", s.Pos())
	}
}
