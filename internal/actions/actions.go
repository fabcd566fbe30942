// Package actions implements the Semantic Actions layer of spec §4.3:
// the parser-facing builder the lexer/parser (out of scope, spec §1)
// calls one production at a time. Each action either appends a
// declaration to the translation unit's AST or constructs and returns
// an AST node. Actions perform only syntactic/lexical validation —
// name resolution and type-checking are the Function Analyser's job
// (internal/analysis), not this package's.
package actions

import (
	"strings"

	"github.com/coral-lang/coralc/internal/ast"
	"github.com/coral-lang/coralc/internal/diag"
	"github.com/coral-lang/coralc/internal/token"
	"github.com/coral-lang/coralc/internal/types"
)

// reservedPackageName is the one package name the source language
// reserves for its own runtime support (spec §4.3).
const reservedPackageName = "c2"

// Actions is the Semantic Actions builder for one translation unit. It
// owns neither the Type Store nor the AST it populates — both are
// constructed by the driver (here, the Pipeline) and passed in, mirroring
// the teacher's declarationWalker taking an *Analyzer/PassContext by
// reference rather than owning one itself.
type Actions struct {
	Store *types.Store
	AST   *ast.AST
	Bag   *diag.Bag

	useTargets map[string]bool // real package names already `use`d
	useAliases map[string]bool // aliases (or short names) already bound
}

// NewActions constructs an Actions builder over an already-created AST.
func NewActions(store *types.Store, tu *ast.AST, bag *diag.Bag) *Actions {
	return &Actions{
		Store:      store,
		AST:        tu,
		Bag:        bag,
		useTargets: make(map[string]bool),
		useAliases: make(map[string]bool),
	}
}

// ActOnPackage validates and records the translation unit's own package
// name. Spec §4.3: "Package name c2 is reserved; any name starting with
// __ is rejected."
func (a *Actions) ActOnPackage(name string, pos token.Position) {
	a.checkIdentifierName(name, pos)
	if name == reservedPackageName {
		a.Bag.Errorf("err_reserved_package_name", pos, name)
	}
	a.AST.PackageName = name
}

func (a *Actions) checkIdentifierName(name string, pos token.Position) {
	if strings.HasPrefix(name, "__") {
		a.Bag.Errorf("err_reserved_identifier", pos, name)
	}
}

// ActOnUse validates and appends a UseDecl. Spec §4.3: "A use targeting
// the current package is rejected; duplicate use of the same package is
// rejected; an alias equal to the package's own name is rejected;
// duplicate aliases are rejected."
func (a *Actions) ActOnUse(name string, pos token.Position, alias string, isLocal bool) *ast.UseDecl {
	u := &ast.UseDecl{
		BaseDecl: ast.BaseDecl{Tok: token.Token{Literal: name, Pos: pos}, NameVal: name},
		Target:   name,
		Alias:    alias,
		IsLocal:  isLocal,
	}

	if name == a.AST.PackageName {
		a.Bag.Errorf("err_use_self", pos, name)
	}
	duplicate := a.useTargets[name]
	if duplicate {
		a.Bag.Errorf("err_use_duplicate", pos, name)
	} else {
		a.useTargets[name] = true
	}
	if alias != "" && alias == a.AST.PackageName {
		a.Bag.Errorf("err_use_alias_is_pkg_name", pos, alias)
	}
	short := u.ShortName()
	if !a.useAliases[short] {
		a.useAliases[short] = true
	} else if !duplicate {
		// A repeated use of the same package is already reported above.
		a.Bag.Errorf("err_use_alias_duplicate", pos, short)
	}

	a.AST.AddDecl(u)
	return u
}

// ActOnTypeDef appends a type alias declaration. 'local' is forbidden
// here (spec §4.3).
func (a *Actions) ActOnTypeDef(name string, pos token.Position, aliased types.QualType, public, hasLocal bool) *ast.TypeAliasDecl {
	a.checkIdentifierName(name, pos)
	if hasLocal {
		a.Bag.Errorf("err_local_on_typedef", pos)
	}
	d := &ast.TypeAliasDecl{
		BaseDecl: ast.BaseDecl{Tok: token.Token{Literal: name, Pos: pos}, NameVal: name, Public: public},
		Aliased:  aliased,
	}
	a.AST.AddDecl(d)
	return d
}

// ActOnVarDef appends a global VarDecl. 'local' is forbidden on a
// global (spec §4.3): hasLocal is reported as err_local_on_global, and
// the flag is still recorded on the returned VarDecl.
func (a *Actions) ActOnVarDef(name string, pos token.Position, typ types.QualType, public, hasLocal bool, init ast.Expr) *ast.VarDecl {
	a.checkIdentifierName(name, pos)
	if hasLocal {
		a.Bag.Errorf("err_local_on_global", pos)
	}
	d := &ast.VarDecl{
		BaseDecl: ast.BaseDecl{Tok: token.Token{Literal: name, Pos: pos}, NameVal: name, Public: public},
		Type:     typ,
		Init:     init,
		HasLocal: hasLocal,
	}
	a.AST.AddDecl(d)
	return d
}

// ActOnArrayValue appends one incremental extension of an existing
// file-scope array VarDecl (spec GLOSSARY). Declaration order is
// preserved by appending to owner.Increments.
func (a *Actions) ActOnArrayValue(owner *ast.VarDecl, pos token.Position, value ast.Expr) *ast.ArrayValueDecl {
	d := &ast.ArrayValueDecl{
		BaseDecl: ast.BaseDecl{Tok: token.Token{Pos: pos}, NameVal: owner.Name()},
		Value:    value,
	}
	owner.Increments = append(owner.Increments, d)
	return d
}

// ActOnFunctionArg validates and returns one function parameter.
// Spec §4.3: "Function parameter names must be unique within the
// parameter list" and "'local' is forbidden on function parameters."
// Once any earlier parameter in params had a default value, every
// later one must too (spec §4.3's default-argument ordering rule);
// this is enforced by ActOnFuncDecl once the full list is known, since
// a single argument can't see its successors.
func (a *Actions) ActOnFunctionArg(params []*ast.VarDecl, name string, pos token.Position, typ types.QualType, hasLocal bool, init ast.Expr) *ast.VarDecl {
	if hasLocal {
		a.Bag.Errorf("err_local_on_param", pos)
	}
	for _, p := range params {
		if p.Name() == name {
			a.Bag.Errorf("err_duplicate_param", pos, name)
			break
		}
	}
	return &ast.VarDecl{
		BaseDecl:   ast.BaseDecl{Tok: token.Token{Literal: name, Pos: pos}, NameVal: name},
		Type:       typ,
		Init:       init,
		HasDefault: init != nil,
	}
}

// ActOnFuncDecl validates the finished parameter list and appends the
// FunctionDecl. 'local' is forbidden on the return type (spec §4.3);
// callers pass returnHasLocal=true when the parser saw 'local' there.
func (a *Actions) ActOnFuncDecl(name string, pos token.Position, returnType types.QualType, returnHasLocal bool, params []*ast.VarDecl, variadic, public bool) *ast.FunctionDecl {
	a.checkIdentifierName(name, pos)
	if returnHasLocal {
		a.Bag.Errorf("err_local_on_return_type", pos)
	}

	seenDefault := false
	hasDefaultArgs := false
	for _, p := range params {
		if p.HasDefault {
			seenDefault = true
			hasDefaultArgs = true
		} else if seenDefault {
			a.Bag.Errorf("err_default_arg_order", p.Pos(), p.Name())
		}
	}

	fn := &ast.FunctionDecl{
		BaseDecl:       ast.BaseDecl{Tok: token.Token{Literal: name, Pos: pos}, NameVal: name, Public: public},
		ReturnType:     returnType,
		Params:         params,
		IsVariadic:     variadic,
		HasDefaultArgs: hasDefaultArgs,
	}
	fn.FuncType = a.Store.Function(fn)
	a.AST.AddDecl(fn)
	return fn
}

// ActOnFinishFunctionBody attaches the analysed body to a previously
// declared FunctionDecl (the forward-declaration -> definition link).
func (a *Actions) ActOnFinishFunctionBody(fn *ast.FunctionDecl, body *ast.CompoundStmt) {
	fn.Body = body
}

// ActOnFuncTypeDecl appends a function-pointer type declaration.
func (a *Actions) ActOnFuncTypeDecl(name string, pos token.Position, fn *ast.FunctionDecl, public bool) *ast.FunctionTypeDecl {
	a.checkIdentifierName(name, pos)
	d := &ast.FunctionTypeDecl{
		BaseDecl: ast.BaseDecl{Tok: token.Token{Literal: name, Pos: pos}, NameVal: name, Public: public},
		Func:     fn,
	}
	a.AST.AddDecl(d)
	return d
}

// ActOnStructType begins a struct/union declaration; members are added
// one at a time via ActOnStructVar/ActOnStructMember and the
// declaration is sealed by ActOnStructTypeFinish.
func (a *Actions) ActOnStructType(name string, pos token.Position, isUnion, isGlobal, public bool) *ast.StructTypeDecl {
	if name != "" {
		a.checkIdentifierName(name, pos)
	}
	d := &ast.StructTypeDecl{
		BaseDecl: ast.BaseDecl{Tok: token.Token{Literal: name, Pos: pos}, NameVal: name, Public: public},
		IsUnion:  isUnion,
		IsGlobal: isGlobal,
	}
	th := a.Store.Struct(isUnion, name)
	th.SetStructDecl(d)
	d.TypeHandle = th
	if isGlobal {
		a.AST.AddDecl(d)
	}
	return d
}

// ActOnStructVar appends a field to an in-progress struct declaration.
func (a *Actions) ActOnStructVar(s *ast.StructTypeDecl, name string, pos token.Position, typ types.QualType) *ast.VarDecl {
	d := &ast.VarDecl{
		BaseDecl: ast.BaseDecl{Tok: token.Token{Literal: name, Pos: pos}, NameVal: name},
		Type:     typ,
	}
	s.Members = append(s.Members, d)
	return d
}

// ActOnStructMember appends a nested (possibly anonymous) struct/union
// as a member of an in-progress struct declaration.
func (a *Actions) ActOnStructMember(s *ast.StructTypeDecl, nested *ast.StructTypeDecl) {
	s.Members = append(s.Members, nested)
}

// ActOnStructTypeFinish validates member-name uniqueness, recursing
// into anonymous nested structs (spec §4.3, §8 invariant 4).
func (a *Actions) ActOnStructTypeFinish(s *ast.StructTypeDecl) *ast.StructTypeDecl {
	seen := make(map[string]token.Position)
	a.checkMemberNames(s, seen)
	return s
}

func (a *Actions) checkMemberNames(s *ast.StructTypeDecl, seen map[string]token.Position) {
	for _, m := range s.Members {
		if nested, ok := m.(*ast.StructTypeDecl); ok && nested.Name() == "" {
			a.checkMemberNames(nested, seen)
			continue
		}
		name := m.Name()
		if prior, exists := seen[name]; exists {
			a.Bag.ErrorfWithNote("err_duplicate_member", m.Pos(), "note_previous_definition", prior, name)
			continue
		}
		seen[name] = m.Pos()
	}
}

// ActOnEnumType begins an enum declaration.
func (a *Actions) ActOnEnumType(name string, pos token.Position, underlying types.QualType, public bool) *[]*ast.EnumConstantDecl {
	a.checkIdentifierName(name, pos)
	members := make([]*ast.EnumConstantDecl, 0)
	return &members
}

// ActOnEnumConstant appends one member to an in-progress enum
// declaration. Value assignment (spec §9 open question) is deferred to
// the analyser, which has the const-evaluation machinery; this action
// only records the optional explicit initializer expression.
func (a *Actions) ActOnEnumConstant(members *[]*ast.EnumConstantDecl, name string, pos token.Position, init ast.Expr) *ast.EnumConstantDecl {
	c := &ast.EnumConstantDecl{
		BaseDecl: ast.BaseDecl{Tok: token.Token{Literal: name, Pos: pos}, NameVal: name, Public: true},
		Init:     init,
	}
	*members = append(*members, c)
	return c
}

// ActOnEnumTypeFinished seals the enum declaration, wiring the members
// discovered so far into the Type Store's Enum handle and appending the
// synthetic TypeAliasDecl the parser binds the enum's name to.
func (a *Actions) ActOnEnumTypeFinished(name string, pos token.Position, underlying types.QualType, members []*ast.EnumConstantDecl, public bool) *ast.TypeAliasDecl {
	enumType := a.Store.Enum()
	enumType.SetEnumName(name)
	enumType.SetEnumUnderlying(underlying)
	anyMembers := make([]any, len(members))
	for i, m := range members {
		anyMembers[i] = m
	}
	enumType.SetEnumMembers(anyMembers)

	qt := types.QualType{T: enumType}
	for _, m := range members {
		m.EnumType = qt
	}

	d := &ast.TypeAliasDecl{
		BaseDecl: ast.BaseDecl{Tok: token.Token{Literal: name, Pos: pos}, NameVal: name, Public: public},
		Aliased:  qt,
	}
	a.AST.AddDecl(d)
	return d
}
