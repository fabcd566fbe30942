package analysis

import "github.com/coral-lang/coralc/internal/ast"

// AnalyseEnumConstants computes each member's Value (spec §9 open
// question, resolved here: the first member defaults to 0, each
// subsequent member defaults to its predecessor's value plus one, and
// an explicit integer-literal initializer overrides the default).
// Initializers are analysed in const-expression context, the same
// treatment as a global variable's initializer (spec §4.5.2).
func (a *Analyser) AnalyseEnumConstants(members []*ast.EnumConstantDecl) {
	prevID, prevIn := a.pushConstMode("err_not_constant_expr")
	defer a.popConstMode(prevID, prevIn)

	var next int64
	for _, m := range members {
		if m.Init != nil {
			a.analyseExpr(m.Init)
			if lit, ok := m.Init.(*ast.IntegerLiteral); ok {
				next = lit.Value
			}
		}
		m.Value = next
		m.HasValue = true
		next++
	}
}
