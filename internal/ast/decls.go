package ast

import (
	"strings"

	"github.com/coral-lang/coralc/internal/types"
)

// VarDecl is a variable declaration: a global, a local, a struct
// member or a function parameter, depending on context (spec §3).
type VarDecl struct {
	BaseDecl
	Type         types.QualType
	Init         Expr // optional initializer; nil if absent
	HasLocal     bool // the 'local' storage qualifier (spec GLOSSARY)
	HasDefault   bool // true when Init is present and this VarDecl is a function parameter
	Increments   []*ArrayValueDecl // incremental array extensions, in declaration order (spec GLOSSARY)
}

func (v *VarDecl) Kind() DeclKind { return DeclVar }
func (v *VarDecl) String() string {
	var sb strings.Builder
	if v.HasLocal {
		sb.WriteString("local ")
	}
	sb.WriteString(v.Type.String())
	sb.WriteString(" ")
	sb.WriteString(v.NameVal)
	if v.Init != nil {
		sb.WriteString(" = ")
		sb.WriteString(v.Init.String())
	}
	return sb.String()
}

// ArrayValueDecl is one `+=`-style extension of a file-scope array
// VarDecl (spec GLOSSARY "Incremental array"). Each increment is
// analysed independently, in declaration order, as a const-context
// initializer against the owning array's element type
// (SPEC_FULL.md §4, grounded on original_source/c2c/Decl.h
// VarDecl::addInitValue and GlobalVarAnalyser.h).
type ArrayValueDecl struct {
	BaseDecl
	Value Expr
}

func (a *ArrayValueDecl) Kind() DeclKind { return DeclArrayValue }
func (a *ArrayValueDecl) String() string { return a.NameVal + " += " + a.Value.String() }

// EnumConstantDecl is one member of an EnumDecl. Value is set during
// analysis (spec §9 open question: default is previous+1, first is 0).
// An Init that is an IntegerLiteral sets Value to the literal's value;
// any other Init expression is analysed but leaves the default value.
type EnumConstantDecl struct {
	BaseDecl
	EnumType types.QualType
	Init     Expr // optional explicit initializer
	Value    int64
	HasValue bool // true once Value has been computed by analysis
}

func (e *EnumConstantDecl) Kind() DeclKind { return DeclEnumConstant }
func (e *EnumConstantDecl) String() string {
	if e.Init != nil {
		return e.NameVal + " = " + e.Init.String()
	}
	return e.NameVal
}

// StructTypeDecl is a struct or union type declaration with an ordered
// member list; members may themselves be nested StructTypeDecls
// (anonymous inner structs, spec §4.3).
type StructTypeDecl struct {
	BaseDecl
	IsUnion  bool
	IsGlobal bool
	Members  []Decl // each a *VarDecl or a nested *StructTypeDecl

	// TypeHandle is the opaque *types.Type this declaration denotes,
	// created by the Semantic Actions layer at declaration time
	// (store.Struct(...)) and back-referenced here so the resolver
	// never has to reconstruct or cache one independently.
	TypeHandle any
}

func (s *StructTypeDecl) Kind() DeclKind { return DeclStructType }
func (s *StructTypeDecl) String() string {
	kw := "struct"
	if s.IsUnion {
		kw = "union"
	}
	return kw + " " + s.NameVal + " { " + joinNodes(s.Members, "; ") + " }"
}

// FunctionDecl is a function declaration or definition (spec §3).
// Body is nil for a forward declaration. FuncType caches the function
// type handle this decl resolves to once its signature has been typed.
type FunctionDecl struct {
	BaseDecl
	ReturnType     types.QualType
	Params         []*VarDecl
	IsVariadic     bool
	HasDefaultArgs bool
	Body           *CompoundStmt
	FuncType       types.QualType
}

func (f *FunctionDecl) Kind() DeclKind { return DeclFunction }
func (f *FunctionDecl) String() string {
	var sb strings.Builder
	if f.Public {
		sb.WriteString("public ")
	}
	sb.WriteString("func ")
	sb.WriteString(f.ReturnType.String())
	sb.WriteString(" ")
	sb.WriteString(f.NameVal)
	sb.WriteString("(")
	sb.WriteString(joinNodes(f.Params, ", "))
	if f.IsVariadic {
		if len(f.Params) > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("...")
	}
	sb.WriteString(")")
	if f.Body != nil {
		sb.WriteString(" ")
		sb.WriteString(f.Body.String())
	}
	return sb.String()
}

// MinArgs returns the smallest argument count this function accepts
// without a diagnostic: the count of leading parameters that have no
// default value (spec §8 test 9).
func (f *FunctionDecl) MinArgs() int {
	n := 0
	for _, p := range f.Params {
		if p.HasDefault {
			break
		}
		n++
	}
	return n
}

// FunctionTypeDecl wraps a FunctionDecl as a named function-pointer
// type declaration (spec §3).
type FunctionTypeDecl struct {
	BaseDecl
	Func *FunctionDecl
}

func (f *FunctionTypeDecl) Kind() DeclKind { return DeclFunctionType }
func (f *FunctionTypeDecl) String() string { return "functype " + f.NameVal + " " + f.Func.String() }

// TypeAliasDecl is a `typedef`-style alias of an existing type.
type TypeAliasDecl struct {
	BaseDecl
	Aliased types.QualType
}

func (t *TypeAliasDecl) Kind() DeclKind { return DeclTypeAlias }
func (t *TypeAliasDecl) String() string { return "type " + t.NameVal + " " + t.Aliased.String() }

// UseDecl is an import directive (spec §3/§4.3).
type UseDecl struct {
	BaseDecl
	Target  string // the imported package's real name
	Alias   string // "" if unaliased
	IsLocal bool   // alias is not re-exported to users of this file's own package
}

func (u *UseDecl) Kind() DeclKind { return DeclUse }
func (u *UseDecl) String() string {
	var sb strings.Builder
	sb.WriteString("use ")
	sb.WriteString(u.Target)
	if u.Alias != "" {
		sb.WriteString(" as ")
		sb.WriteString(u.Alias)
	}
	if u.IsLocal {
		sb.WriteString(" local")
	}
	return sb.String()
}

// ShortName returns the name this import is known by within the file:
// the alias if one was given, otherwise the real package name.
func (u *UseDecl) ShortName() string {
	if u.Alias != "" {
		return u.Alias
	}
	return u.Target
}
