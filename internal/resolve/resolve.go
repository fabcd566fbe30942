// Package resolve implements the File Scope / Resolver of spec §4.4:
// per-translation-unit name resolution across packages, honouring
// import aliases and public/private visibility.
//
// Grounded on original_source/c2c/Scope.h's FileScope (the ScopeResult
// fields ambiguous/external/visible/ok are carried over verbatim) and
// on the teacher's internal/semantic pass architecture for the general
// shape of "a resolver owned by one translation unit, consulting a
// shared registry".
package resolve

import (
	"github.com/coral-lang/coralc/internal/ast"
	"github.com/coral-lang/coralc/internal/diag"
	"github.com/coral-lang/coralc/internal/registry"
	"github.com/coral-lang/coralc/internal/token"
	"github.com/coral-lang/coralc/internal/types"
)

// ScopeResult is the outcome of a name lookup against file scope (spec
// §4.4).
type ScopeResult struct {
	Package   *registry.Package
	Decl      ast.Decl
	Ambiguous bool
	External  bool
	Visible   bool
	Ok        bool
}

// importEntry records one `use` clause's resolved target.
type importEntry struct {
	pkg     *registry.Package
	isLocal bool
}

// FileScope is owned by each translation unit. It maps imported-package
// short names (alias or real name) to the registry.Package they
// resolved to, and tracks which imports are `local` (spec §4.4).
type FileScope struct {
	registry *registry.Registry
	ownName  string
	ownPkg   *registry.Package
	imports  map[string]*importEntry
	// importOrder preserves `use` order so findSymbolInUsed's "first
	// match wins" rule (spec §4.4) is well defined.
	importOrder []string
}

// NewFileScope constructs a FileScope for a translation unit belonging
// to ownPkg, against the shared reg.
func NewFileScope(reg *registry.Registry, ownPkg *registry.Package) *FileScope {
	return &FileScope{
		registry: reg,
		ownName:  ownPkg.Name,
		ownPkg:   ownPkg,
		imports:  make(map[string]*importEntry),
	}
}

// OwnPackage returns the registry.Package this FileScope's translation
// unit belongs to, used by the analyser to tell an own-package symbol
// lookup from a cross-package one when resolving a member access.
func (fs *FileScope) OwnPackage() *registry.Package { return fs.ownPkg }

// BindUse records one resolved `use` clause under its short name
// (alias if given, else the real package name — spec §4.3/§4.4).
func (fs *FileScope) BindUse(u *ast.UseDecl) {
	pkg := fs.registry.GetOrCreate(u.Target)
	short := u.ShortName()
	fs.imports[short] = &importEntry{pkg: pkg, isLocal: u.IsLocal}
	fs.importOrder = append(fs.importOrder, short)
}

// locallyUsed returns every package searched by findSymbol: the file's
// own package, plus every import not marked `local` (spec §4.4 step 2:
// "own package plus every non-local import").
func (fs *FileScope) locallyUsed() []*registry.Package {
	pkgs := []*registry.Package{fs.ownPkg}
	for _, short := range fs.importOrder {
		e := fs.imports[short]
		if !e.isLocal {
			pkgs = append(pkgs, e.pkg)
		}
	}
	return pkgs
}

// FindSymbol implements spec §4.4's findSymbol(name) -> ScopeResult.
func (fs *FileScope) FindSymbol(name string) ScopeResult {
	if e, ok := fs.imports[name]; ok {
		return ScopeResult{Package: e.pkg, External: e.pkg.Name != fs.ownName, Ok: true}
	}

	var result ScopeResult
	found := false
	for _, pkg := range fs.locallyUsed() {
		d := pkg.AllSymbols()[name]
		if d == nil {
			continue
		}
		external := pkg.Name != fs.ownName
		visible := !(external && !d.IsPublic())

		if !found {
			result = ScopeResult{Package: pkg, Decl: d, External: external, Visible: visible, Ok: true}
			found = true
			continue
		}

		// Spec §4.4 step 3: equal visibility between two hits marks
		// ambiguous; a later visible hit after an earlier invisible
		// one wins outright and clears ambiguity.
		if visible == result.Visible {
			result.Ambiguous = true
		} else if visible && !result.Visible {
			result = ScopeResult{Package: pkg, Decl: d, External: external, Visible: visible, Ok: true}
		}
	}
	return result
}

// FindSymbolInUsed implements spec §4.4's findSymbolInUsed: searches
// every imported package (local or not), first match wins, no
// ambiguity tracking. Used to offer "did you mean pkg.name?" on
// unresolved-identifier diagnostics.
func (fs *FileScope) FindSymbolInUsed(name string) ScopeResult {
	for _, short := range fs.importOrder {
		pkg := fs.imports[short].pkg
		if d := pkg.AllSymbols()[name]; d != nil {
			external := pkg.Name != fs.ownName
			return ScopeResult{Package: pkg, Decl: d, External: external, Visible: !(external && !d.IsPublic()), Ok: true}
		}
	}
	return ScopeResult{}
}

// isTypeDecl reports whether d can appear where a type is expected
// (spec §4.4: "require the hit to be a type declaration").
func isTypeDecl(d ast.Decl) bool {
	switch d.Kind() {
	case ast.DeclTypeAlias, ast.DeclStructType, ast.DeclFunctionType:
		return true
	default:
		return false
	}
}

// declType returns the types.QualType a type declaration denotes. For
// StructTypeDecl this is the *types.Type the Semantic Actions layer
// created (and back-referenced via TypeHandle) at declaration time —
// spec §4.1 mints exactly one Struct handle per declaration, and the
// resolver must hand back that same handle, not a new one.
func declType(d ast.Decl) types.QualType {
	switch td := d.(type) {
	case *ast.TypeAliasDecl:
		return td.Aliased
	case *ast.StructTypeDecl:
		return types.QualType{T: td.TypeHandle.(*types.Type)}
	case *ast.FunctionTypeDecl:
		return td.Func.FuncType
	default:
		return types.QualType{}
	}
}

// CheckType implements spec §4.4's checkType(QualType, used_public) ->
// error_count. It recurses structurally through Pointer/Array and, on
// encountering an unresolved UserType, performs bare or qualified
// lookup and attaches the resolved type declaration's type. pos is the
// source location to diagnose against (the UserType node itself carries
// no position — only the expression or declaration that references it
// does, so the caller supplies it).
func (fs *FileScope) CheckType(qt types.QualType, usedPublic bool, pos token.Position, bag *diag.Bag) int {
	errs := 0
	t := qt.T
	if t == nil {
		return errs
	}
	switch t.Kind() {
	case types.KindPointer:
		errs += fs.CheckType(t.Referent(), usedPublic, pos, bag)
	case types.KindArray:
		errs += fs.CheckType(t.Element(), usedPublic, pos, bag)
	case types.KindUserType:
		errs += fs.checkUserType(t, usedPublic, pos, bag)
	}
	return errs
}

func (fs *FileScope) checkUserType(t *types.Type, usedPublic bool, pos token.Position, bag *diag.Bag) int {
	if t.IsResolved() {
		return 0
	}
	name := t.UserRefName()
	pkgQualifier := t.UserPackage()

	if pkgQualifier == "" {
		res := fs.FindSymbol(name)
		if !res.Ok || res.Decl == nil || !isTypeDecl(res.Decl) {
			bag.Errorf("err_unknown_type", pos, name)
			return 1
		}
		if usedPublic && !res.Decl.IsPublic() {
			bag.Errorf("err_type_not_public", pos, name)
			return 1
		}
		t.SetResolved(declType(res.Decl))
		return 0
	}

	entry, ok := fs.imports[pkgQualifier]
	if !ok {
		// The user may have written the real package name where an
		// alias is required (spec §4.4).
		for short, e := range fs.imports {
			if e.pkg.Name == pkgQualifier && short != pkgQualifier {
				bag.Errorf("err_package_has_alias", pos, short)
				return 1
			}
		}
		bag.Errorf("err_unknown_package", pos, pkgQualifier)
		return 1
	}
	d := entry.pkg.AllSymbols()[name]
	if d == nil || !isTypeDecl(d) {
		bag.Errorf("err_unknown_type", pos, name)
		return 1
	}
	if usedPublic && !d.IsPublic() {
		bag.Errorf("err_type_not_public", pos, name)
		return 1
	}
	t.SetResolved(declType(d))
	return 0
}
