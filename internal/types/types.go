// Package types implements the Type Store: the per-translation-unit
// factory that interns and constructs type values (spec §4.1).
//
// Canonical types (Builtin, Pointer, Array, Func) are interned so that
// two structurally identical types share one Type value; UserType,
// Struct and Enum are mutable handles the caller fills in after
// construction, then never mutates again once resolution completes.
//
// Struct/Enum/Func variants hold a back-reference to their owning
// declaration (a *ast.StructTypeDecl etc. in spec terms). Since the AST
// package depends on this package for QualType, a typed back-reference
// would create an import cycle (Decl -> Type -> Decl) of exactly the
// kind spec §9's design notes call out for replacement: instead of a
// typed pointer we store an opaque `any` handle. The resolver and
// analyser, which import both packages, are the only code that type-
// asserts it back to a concrete *ast.StructTypeDecl / *ast.FunctionDecl
// / *ast.EnumConstantDecl — the Type Store itself never inspects it.
package types

import (
	"strings"
)

// Kind discriminates the Type variants of spec §3.
type Kind int

const (
	KindBuiltin Kind = iota
	KindPointer
	KindArray
	KindUserType
	KindStruct
	KindEnum
	KindFunc
)

func (k Kind) String() string {
	switch k {
	case KindBuiltin:
		return "Builtin"
	case KindPointer:
		return "Pointer"
	case KindArray:
		return "Array"
	case KindUserType:
		return "UserType"
	case KindStruct:
		return "Struct"
	case KindEnum:
		return "Enum"
	case KindFunc:
		return "Func"
	default:
		return "Unknown"
	}
}

// BuiltinKind enumerates the primitive builtin types, in the exact
// order the conversion matrix (§4.5.3) is indexed by.
type BuiltinKind int

const (
	U8 BuiltinKind = iota
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	F32
	F64
	INT // unsuffixed integer literal type; treated as I32 for conversion purposes
	BOOL
	STRING
	VOID
	numBuiltinKinds
)

var builtinNames = [numBuiltinKinds]string{
	U8: "u8", U16: "u16", U32: "u32", U64: "u64",
	I8: "i8", I16: "i16", I32: "i32", I64: "i64",
	F32: "f32", F64: "f64",
	INT: "int", BOOL: "bool", STRING: "string", VOID: "void",
}

func (b BuiltinKind) String() string {
	if b < 0 || b >= numBuiltinKinds {
		return "?"
	}
	return builtinNames[b]
}

// Stringer is the minimal contract this package needs from a source
// expression (e.g. an array's size expression) in order to print it in
// diagnostics and type names, without importing the ast package.
type Stringer interface {
	String() string
}

// Type is a tagged value over the variants of spec §3.
type Type struct {
	kind Kind

	builtin BuiltinKind // KindBuiltin

	referent QualType // KindPointer

	element  QualType // KindArray
	sizeExpr Stringer // KindArray; nil for an unsized/incomplete array
	ownsSize bool     // KindArray: true if this Type allocated its own size expression handle

	userRefName string    // KindUserType: the bare name written in source
	userPkg     string     // KindUserType: qualifying package name, "" if unqualified
	resolved    *QualType // KindUserType: filled in by the resolver; nil until resolved

	structIsUnion bool   // KindStruct
	structName    string // KindStruct, "" for anonymous
	structDecl    any    // KindStruct: opaque *ast.StructTypeDecl, set after construction

	enumName       string    // KindEnum
	enumUnderlying *QualType // KindEnum, nil until resolved
	enumMembers    []any     // KindEnum: opaque []*ast.EnumConstantDecl

	funcDecl any // KindFunc: opaque *ast.FunctionDecl
}

// Kind returns the variant discriminant.
func (t *Type) Kind() Kind { return t.kind }

// IsBuiltin reports whether t is a Builtin of the given kind.
func (t *Type) IsBuiltin(k BuiltinKind) bool { return t.kind == KindBuiltin && t.builtin == k }

// BuiltinKind returns the builtin kind; only meaningful when Kind() == KindBuiltin.
func (t *Type) BuiltinKind() BuiltinKind { return t.builtin }

// Referent returns the pointee type; only meaningful for KindPointer.
func (t *Type) Referent() QualType { return t.referent }

// Element returns the array element type; only meaningful for KindArray.
func (t *Type) Element() QualType { return t.element }

// SizeExpr returns the array's compile-time size expression, or nil for
// an unsized array; only meaningful for KindArray.
func (t *Type) SizeExpr() Stringer { return t.sizeExpr }

// UserRefName returns the bare name written in source for a UserType.
func (t *Type) UserRefName() string { return t.userRefName }

// UserPackage returns the qualifying package name ("" if unqualified).
func (t *Type) UserPackage() string { return t.userPkg }

// Resolved returns the type a UserType resolves to, or nil before resolution.
func (t *Type) Resolved() *QualType { return t.resolved }

// IsResolved reports whether a UserType has been resolved.
func (t *Type) IsResolved() bool { return t.resolved != nil }

// SetResolved attaches the concrete type a UserType refers to. Called
// exactly once, by the resolver's §4.4 checkType walk.
func (t *Type) SetResolved(qt QualType) {
	if t.kind != KindUserType {
		panic("types: SetResolved on non-UserType")
	}
	t.resolved = &qt
}

// SetUserRef records the name (and optional package qualifier) a
// UserType was written with. Called once, at construction time by the
// Semantic Actions layer.
func (t *Type) SetUserRef(pkg, name string) {
	if t.kind != KindUserType {
		panic("types: SetUserRef on non-UserType")
	}
	t.userPkg = pkg
	t.userRefName = name
}

// IsUnion reports whether a Struct variant denotes a union.
func (t *Type) IsUnion() bool { return t.structIsUnion }

// StructName returns the struct/union's name, or "" if anonymous.
func (t *Type) StructName() string { return t.structName }

// StructDecl returns the opaque owning declaration handle (a
// *ast.StructTypeDecl once type-asserted by a caller that imports ast).
func (t *Type) StructDecl() any { return t.structDecl }

// SetStructDecl attaches the owning declaration after construction.
func (t *Type) SetStructDecl(d any) { t.structDecl = d }

// EnumName returns the enum's name.
func (t *Type) EnumName() string { return t.enumName }

// EnumUnderlying returns the enum's underlying integer type, or nil
// before it has been attached.
func (t *Type) EnumUnderlying() *QualType { return t.enumUnderlying }

// EnumMembers returns the opaque member declaration handles (each a
// *ast.EnumConstantDecl once type-asserted).
func (t *Type) EnumMembers() []any { return t.enumMembers }

// SetEnumName attaches the enum's name after construction.
func (t *Type) SetEnumName(name string) { t.enumName = name }

// SetEnumUnderlying attaches the enum's underlying integer type.
func (t *Type) SetEnumUnderlying(qt QualType) { t.enumUnderlying = &qt }

// SetEnumMembers attaches the enum's member declarations.
func (t *Type) SetEnumMembers(m []any) { t.enumMembers = m }

// FuncDecl returns the opaque owning declaration handle (a
// *ast.FunctionDecl once type-asserted).
func (t *Type) FuncDecl() any { return t.funcDecl }

// String renders a human-readable, stable type name (used in diagnostics).
func (t *Type) String() string {
	switch t.kind {
	case KindBuiltin:
		return t.builtin.String()
	case KindPointer:
		return t.referent.String() + "*"
	case KindArray:
		if t.sizeExpr != nil {
			return "[" + t.sizeExpr.String() + "]" + t.element.String()
		}
		return "[]" + t.element.String()
	case KindUserType:
		if t.resolved != nil {
			return t.resolved.String()
		}
		if t.userPkg != "" {
			return t.userPkg + "." + t.userRefName
		}
		return t.userRefName
	case KindStruct:
		kw := "struct"
		if t.structIsUnion {
			kw = "union"
		}
		if t.structName != "" {
			return kw + " " + t.structName
		}
		return kw + " <anonymous>"
	case KindEnum:
		return "enum " + t.enumName
	case KindFunc:
		return "func"
	default:
		return "<invalid type>"
	}
}

// Qualifier bits carried by a QualType.
type Qualifier uint8

const (
	QualNone     Qualifier = 0
	QualConst    Qualifier = 1 << 0
	QualVolatile Qualifier = 1 << 1
)

// QualType pairs a Type handle with accumulated qualifier bits.
type QualType struct {
	T     *Type
	Quals Qualifier
}

// IsConst reports the CONST qualifier.
func (q QualType) IsConst() bool { return q.Quals&QualConst != 0 }

// IsVolatile reports the VOLATILE qualifier.
func (q QualType) IsVolatile() bool { return q.Quals&QualVolatile != 0 }

// AddConst returns a copy of q with CONST set. Qualifier addition is
// monotonic: it never clears a bit that was already set (spec §4.1).
func (q QualType) AddConst() QualType {
	q.Quals |= QualConst
	return q
}

// AddVolatile returns a copy of q with VOLATILE set.
func (q QualType) AddVolatile() QualType {
	q.Quals |= QualVolatile
	return q
}

// IsNull reports whether this QualType carries no Type at all — the "no
// type" sentinel returned once analysis on a node has already failed,
// so that downstream uses of the node don't cascade further errors
// (spec §7).
func (q QualType) IsNull() bool { return q.T == nil }

// String renders the qualified type, e.g. "const i32*".
func (q QualType) String() string {
	if q.T == nil {
		return "<invalid>"
	}
	var sb strings.Builder
	if q.IsConst() {
		sb.WriteString("const ")
	}
	if q.IsVolatile() {
		sb.WriteString("volatile ")
	}
	sb.WriteString(q.T.String())
	return sb.String()
}

// Underlying follows UserType.resolved links until it reaches a
// non-UserType (or an unresolved UserType, in which case it returns the
// UserType itself so callers can detect the unresolved case). Qualifiers
// accumulate across the UserType boundary.
func Underlying(q QualType) QualType {
	for q.T != nil && q.T.kind == KindUserType && q.T.resolved != nil {
		next := *q.T.resolved
		next.Quals |= q.Quals
		q = next
	}
	return q
}
