// Package ast defines the typed AST data model of spec §3: a tagged
// tree of declarations, statements and expressions built by the
// Semantic Actions layer (internal/actions) and mutated exactly once,
// in place, by the Function Analyser (internal/analysis) to attach
// resolved types and declarations.
//
// Spec §9 calls out the source's "OO class hierarchy for AST (Decl/Stmt/Expr
// base + RTTI cast)" as a pattern needing re-architecture, replaced here
// with Go sum-type idiom: small marker interfaces (Decl/Stmt/Expr) plus
// a Kind() discriminant on every concrete node, so callers can switch
// exhaustively on Kind() instead of type-asserting through a hierarchy.
package ast

import (
	"bytes"
	"strings"

	"github.com/coral-lang/coralc/internal/token"
	"github.com/coral-lang/coralc/internal/types"
)

// Node is the capability every Decl, Stmt and Expr shares.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// DeclKind discriminates the Decl variants of spec §3.
type DeclKind int

const (
	DeclFunction DeclKind = iota
	DeclVar
	DeclEnumConstant
	DeclTypeAlias
	DeclStructType
	DeclFunctionType
	DeclArrayValue
	DeclUse
)

// Decl is a top-level or member declaration. All declarations carry a
// name, a source location and a public/private visibility bit (spec §3).
type Decl interface {
	Node
	declNode()
	Kind() DeclKind
	Name() string
	IsPublic() bool
}

// StmtKind discriminates the Stmt variants of spec §3.
type StmtKind int

const (
	StmtReturn StmtKind = iota
	StmtIf
	StmtWhile
	StmtDo
	StmtFor
	StmtSwitch
	StmtCase
	StmtDefault
	StmtBreak
	StmtContinue
	StmtLabel
	StmtGoto
	StmtCompound
	StmtExpr
)

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
	Kind() StmtKind
}

// ExprKind discriminates the Expr variants of spec §3.
type ExprKind int

const (
	ExprIntegerLiteral ExprKind = iota
	ExprFloatingLiteral
	ExprBooleanLiteral
	ExprCharacterLiteral
	ExprStringLiteral
	ExprIdentifier
	ExprParen
	ExprCall
	ExprMember
	ExprArraySubscript
	ExprInitList
	ExprDecl
	ExprType
	ExprBinaryOp
	ExprConditionalOp
	ExprUnaryOp
	ExprBuiltin
)

// Expr is an expression node. Every Expr carries, after analysis, a
// resolved types.QualType (spec §3's "Lifecycle": created during parse,
// mutated exactly once by the Function Analyser, thereafter read-only).
type Expr interface {
	Node
	exprNode()
	Kind() ExprKind
	GetType() types.QualType
	SetType(types.QualType)
}

// BaseExpr factors the Token/Type pair every Expr variant carries.
type BaseExpr struct {
	Tok token.Token
	Typ types.QualType
}

func (b *BaseExpr) exprNode()               {}
func (b *BaseExpr) TokenLiteral() string    { return b.Tok.Literal }
func (b *BaseExpr) Pos() token.Position     { return b.Tok.Pos }
func (b *BaseExpr) GetType() types.QualType { return b.Typ }
func (b *BaseExpr) SetType(t types.QualType) { b.Typ = t }

// BaseStmt factors the Token every Stmt variant carries.
type BaseStmt struct {
	Tok token.Token
}

func (b *BaseStmt) stmtNode()            {}
func (b *BaseStmt) TokenLiteral() string { return b.Tok.Literal }
func (b *BaseStmt) Pos() token.Position  { return b.Tok.Pos }

// BaseDecl factors the Token/Name/Public triple every Decl variant carries.
type BaseDecl struct {
	Tok      token.Token
	NameVal  string
	Public   bool
}

func (b *BaseDecl) declNode()            {}
func (b *BaseDecl) TokenLiteral() string { return b.Tok.Literal }
func (b *BaseDecl) Pos() token.Position  { return b.Tok.Pos }
func (b *BaseDecl) Name() string         { return b.NameVal }
func (b *BaseDecl) IsPublic() bool       { return b.Public }

// AST owns every Decl, Stmt and Expr of one translation unit (spec §3
// "Ownership"): the package name, the ordered top-level declaration
// list (UseDecls must precede all other kinds, spec §4.2), and a name
// -> declaration symbol map.
type AST struct {
	PackageName string
	Decls       []Decl
	symbols     map[string]Decl
}

// NewAST constructs an empty translation unit for the given package name.
func NewAST(packageName string) *AST {
	return &AST{
		PackageName: packageName,
		symbols:     make(map[string]Decl),
	}
}

// AddDecl appends d to the top-level declaration list and indexes it by
// name. It does not check for duplicates — that is the Package
// Registry's job (spec §4.2 invariant); AddDecl always succeeds so that
// analysis can continue past a redefinition.
func (a *AST) AddDecl(d Decl) {
	a.Decls = append(a.Decls, d)
	if _, exists := a.symbols[d.Name()]; !exists {
		a.symbols[d.Name()] = d
	}
}

// Lookup returns the top-level declaration named name, or nil.
func (a *AST) Lookup(name string) Decl {
	return a.symbols[name]
}

// String renders every top-level declaration, newline-separated —
// used for debugging and test fixtures, mirroring the teacher's
// Program.String().
func (a *AST) String() string {
	var out bytes.Buffer
	for _, d := range a.Decls {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	return out.String()
}

// joinNodes renders a slice of Nodes separated by sep, a small helper
// used by several variants' String() methods below.
func joinNodes[T Node](nodes []T, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, sep)
}
