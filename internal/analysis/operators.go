package analysis

import (
	"github.com/coral-lang/coralc/internal/ast"
	"github.com/coral-lang/coralc/internal/token"
	"github.com/coral-lang/coralc/internal/types"
)

// checkConversion consults the conversion matrix (conversion.go) for a
// value of type from being used where to is expected, diagnosing the
// result per spec §4.5.3. Non-builtin conversions (after user-type
// resolution) fall through silently, matching the spec's stated
// intentional gap.
func (a *Analyser) checkConversion(pos token.Position, from, to types.QualType) {
	if from.IsNull() || to.IsNull() {
		return
	}
	fu, tu := types.Underlying(from), types.Underlying(to)
	if fu.T == nil || tu.T == nil || fu.T.Kind() != types.KindBuiltin || tu.T.Kind() != types.KindBuiltin {
		return
	}
	code := ConversionCode(fu.T.BuiltinKind(), tu.T.BuiltinKind())
	if code == ConvOK {
		return
	}
	id := conversionDiagID[code]
	if code == ConvIncompatible {
		a.Bag.Errorf(id, pos, from.String(), to.String())
		return
	}
	a.Bag.Warnf(id, pos, from.String(), to.String())
}

// checkAssignment diagnoses an assignment to a const-qualified lvalue
// (spec §8 S2).
func (a *Analyser) checkAssignment(pos token.Position, lhs types.QualType) {
	if lhs.IsConst() {
		a.Bag.Errorf("err_typecheck_assign_const", pos)
	}
}

func isComparisonOrLogical(op ast.BinaryOperator) bool {
	switch op {
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe, ast.OpEq, ast.OpNe, ast.OpLogicalAnd, ast.OpLogicalOr:
		return true
	default:
		return false
	}
}

func isFloatBuiltin(q types.QualType) bool {
	return q.T != nil && q.T.Kind() == types.KindBuiltin && (q.T.BuiltinKind() == types.F32 || q.T.BuiltinKind() == types.F64)
}

// arithmeticResultType approximates the "wider of the two operands"
// rule of spec §4.5: float beats integer, F64 beats F32, and an
// all-integer pair conservatively yields INT (the spec explicitly
// permits this).
func (a *Analyser) arithmeticResultType(lt, rt types.QualType) types.QualType {
	lu, ru := types.Underlying(lt), types.Underlying(rt)
	if isFloatBuiltin(lu) || isFloatBuiltin(ru) {
		if (lu.T != nil && lu.T.BuiltinKind() == types.F64) || (ru.T != nil && ru.T.BuiltinKind() == types.F64) {
			return a.Store.Builtin(types.F64)
		}
		return a.Store.Builtin(types.F32)
	}
	return a.Store.Builtin(types.INT)
}

// analyseBinaryOperator implements spec §4.5's Binary-op contract.
func (a *Analyser) analyseBinaryOperator(b *ast.BinaryOpExpr) types.QualType {
	lt := a.analyseExpr(b.LHS)
	rt := a.analyseExpr(b.RHS)

	switch {
	case b.Op == ast.OpAssign:
		a.checkAssignment(b.Pos(), lt)
		a.checkConversion(b.Pos(), rt, lt)
		return lt
	case b.Op.IsCompoundAssignment():
		a.checkAssignment(b.Pos(), lt)
		return lt
	case b.Op == ast.OpShl || b.Op == ast.OpShr || b.Op == ast.OpBitAnd || b.Op == ast.OpBitOr || b.Op == ast.OpBitXor:
		return lt
	case isComparisonOrLogical(b.Op):
		return a.Store.Builtin(types.BOOL)
	default: // arithmetic: * / % + -
		return a.arithmeticResultType(lt, rt)
	}
}

// analyseConditionalOperator returns whichever branch produced a type,
// preferring Then; both branches are always analysed for diagnostics.
func (a *Analyser) analyseConditionalOperator(c *ast.ConditionalOpExpr) types.QualType {
	a.analyseExpr(c.Cond)
	tt := a.analyseExpr(c.Then)
	et := a.analyseExpr(c.Else)
	if !tt.IsNull() {
		return tt
	}
	return et
}

// analyseUnaryOperator implements spec §4.5's Unary contract: `&`
// yields a pointer to the operand type, `*` requires a pointer operand
// and yields its referent, every other operator (including the
// pre/post inc-dec family) yields the operand's own type.
func (a *Analyser) analyseUnaryOperator(u *ast.UnaryOpExpr) types.QualType {
	t := a.analyseExpr(u.X)
	switch u.Op {
	case ast.OpAddrOf:
		return a.Store.Pointer(t)
	case ast.OpDeref:
		ut := types.Underlying(t)
		if ut.T == nil || ut.T.Kind() != types.KindPointer {
			a.Bag.Errorf("err_deref_requires_pointer", u.Pos())
			return noType
		}
		return ut.T.Referent()
	default:
		return t
	}
}
