// Package coral wires the Type Store, AST, Package Registry, File
// Scope and Function Analyser together into the single configuration
// surface a driver (a CLI, an IDE, a test harness) actually uses: the
// core never reads files or owns a CLI (spec §1), so this is as close
// to an entry point as the module gets.
package coral

import (
	"github.com/coral-lang/coralc/internal/actions"
	"github.com/coral-lang/coralc/internal/analysis"
	"github.com/coral-lang/coralc/internal/ast"
	"github.com/coral-lang/coralc/internal/diag"
	"github.com/coral-lang/coralc/internal/registry"
	"github.com/coral-lang/coralc/internal/resolve"
	"github.com/coral-lang/coralc/internal/types"
)

// Pipeline bundles one translation unit's Type Store, AST, the shared
// Package Registry it resolves names against, its File Scope and its
// Function Analyser. A driver builds one Pipeline per translation unit
// being compiled, sharing the *registry.Registry across every unit in
// the same compilation (spec §5: "the Type Store is owned by the same
// translation unit"; the Registry is the one piece of cross-unit shared
// state, spec §4.2).
type Pipeline struct {
	Store    *types.Store
	AST      *ast.AST
	Bag      *diag.Bag
	Registry *registry.Registry

	Actions   *actions.Actions
	FileScope *resolve.FileScope
	Analyser  *analysis.Analyser
}

// NewPipeline constructs a Pipeline for a translation unit belonging to
// packageName, against reg (shared across every unit of a
// compilation) and source (the raw text, used only to render
// caret-annotated diagnostics — optional, pass "" if unavailable).
func NewPipeline(packageName string, reg *registry.Registry, source string) *Pipeline {
	store := types.NewStore()
	tu := ast.NewAST(packageName)
	bag := diag.NewBag(source)
	ownPkg := reg.GetOrCreate(packageName)

	fs := resolve.NewFileScope(reg, ownPkg)

	return &Pipeline{
		Store:     store,
		AST:       tu,
		Bag:       bag,
		Registry:  reg,
		Actions:   actions.NewActions(store, tu, bag),
		FileScope: fs,
		Analyser:  analysis.NewAnalyser(fs, store, bag),
	}
}

// BindUses registers every UseDecl the Semantic Actions layer appended
// to the AST with the File Scope, and must run after parsing completes
// but before Analyse (spec §5's pass ordering: "all top-level
// declarations must be installed... before the Function Analyser
// runs").
func (p *Pipeline) BindUses() {
	for _, d := range p.AST.Decls {
		if u, ok := d.(*ast.UseDecl); ok {
			p.FileScope.BindUse(u)
		}
	}
}

// RegisterUnit merges this translation unit's declarations into its
// package's shared symbol table (spec §4.2), reporting any
// cross-unit redefinitions into p.Bag.
func (p *Pipeline) RegisterUnit() {
	p.Registry.RegisterUnit(p.AST, p.Bag)
}

// Analyse runs the Function Analyser over every top-level declaration
// (spec §5) in two source-order passes: the first resolves every
// declaration's types (so every UserType used by a later declaration's
// signature already has its resolved slot populated); the second, in
// one walk, computes enum member values and analyses each global
// variable initializer and function body as it reaches them.
func (p *Pipeline) Analyse() {
	for _, d := range p.AST.Decls {
		p.resolveDeclTypes(d)
	}
	for _, d := range p.AST.Decls {
		switch decl := d.(type) {
		case *ast.TypeAliasDecl:
			if decl.Aliased.T != nil && decl.Aliased.T.Kind() == types.KindEnum {
				p.Analyser.AnalyseEnumConstants(enumMembers(decl.Aliased.T))
			}
		case *ast.VarDecl:
			p.Analyser.AnalyseGlobalVar(decl)
		case *ast.FunctionDecl:
			p.Analyser.AnalyseFunction(decl)
		}
	}
}

// resolveDeclTypes runs the File Scope's checkType walk (spec §4.4)
// against every QualType a top-level declaration exposes, so UserType
// references anywhere in a signature or field list are resolved before
// any expression analysis runs.
func (p *Pipeline) resolveDeclTypes(d ast.Decl) {
	switch decl := d.(type) {
	case *ast.VarDecl:
		p.FileScope.CheckType(decl.Type, decl.IsPublic(), decl.Pos(), p.Bag)
	case *ast.TypeAliasDecl:
		p.FileScope.CheckType(decl.Aliased, decl.IsPublic(), decl.Pos(), p.Bag)
	case *ast.FunctionDecl:
		p.FileScope.CheckType(decl.ReturnType, decl.IsPublic(), decl.Pos(), p.Bag)
		for _, param := range decl.Params {
			p.FileScope.CheckType(param.Type, decl.IsPublic(), param.Pos(), p.Bag)
		}
	case *ast.StructTypeDecl:
		p.resolveStructMemberTypes(decl)
	case *ast.FunctionTypeDecl:
		p.resolveDeclTypes(decl.Func)
	}
}

func (p *Pipeline) resolveStructMemberTypes(s *ast.StructTypeDecl) {
	for _, m := range s.Members {
		switch member := m.(type) {
		case *ast.VarDecl:
			p.FileScope.CheckType(member.Type, s.IsPublic(), member.Pos(), p.Bag)
		case *ast.StructTypeDecl:
			p.resolveStructMemberTypes(member)
		}
	}
}

// enumMembers type-asserts an Enum Type's opaque member handles back
// to concrete *ast.EnumConstantDecl values.
func enumMembers(t *types.Type) []*ast.EnumConstantDecl {
	raw := t.EnumMembers()
	out := make([]*ast.EnumConstantDecl, len(raw))
	for i, m := range raw {
		out[i] = m.(*ast.EnumConstantDecl)
	}
	return out
}
