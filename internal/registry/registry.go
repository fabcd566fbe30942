// Package registry implements the Package Registry of spec §4.2: it
// aggregates the one or more translation units (ast.AST values) that
// share a package name, and answers visibility-aware symbol lookups
// for the resolver.
//
// Grounded on the teacher's internal/units.UnitRegistry (registration
// by name, case-sensitive here since the source language is case-
// sensitive unlike DWScript's Pascal-derived identifiers, duplicate
// registration rejected) generalized from "one registry of units" to
// "one Package aggregating several ASTs plus a Registry of Packages".
package registry

import (
	"fmt"

	"github.com/coral-lang/coralc/internal/ast"
	"github.com/coral-lang/coralc/internal/diag"
)

// Package aggregates every ast.AST sharing one package name and
// maintains the merged, duplicate-checked symbol table across them
// (spec §4.2 invariant: "within one package the symbol map has unique
// keys").
type Package struct {
	Name    string
	units   []*ast.AST
	symbols map[string]ast.Decl
}

// NewPackage constructs an empty Package.
func NewPackage(name string) *Package {
	return &Package{Name: name, symbols: make(map[string]ast.Decl)}
}

// AddUnit merges unit's top-level declarations into the package's
// symbol table. Each name collision is reported as a pair of
// diagnostics: an error at the new declaration's location, a note at
// the prior one (spec §4.2, §7).
func (p *Package) AddUnit(unit *ast.AST, bag *diag.Bag) {
	p.units = append(p.units, unit)
	for _, d := range unit.Decls {
		if d.Kind() == ast.DeclUse {
			continue
		}
		if prior, exists := p.symbols[d.Name()]; exists {
			bag.ErrorfWithNote("err_duplicate_definition", d.Pos(), "note_previous_definition", prior.Pos(), d.Name())
			continue
		}
		p.symbols[d.Name()] = d
	}
}

// Units returns every translation unit merged into this package.
func (p *Package) Units() []*ast.AST { return p.units }

// findSymbol returns the declaration named name if this package has
// one, regardless of visibility; visibility is applied by the caller
// (spec §4.2: "private declarations are visible only when the
// querying File Scope has the same package name").
func (p *Package) findSymbol(name string) ast.Decl {
	return p.symbols[name]
}

// FindSymbol implements spec §4.2's findSymbol(name) -> Decl?: it
// returns the declaration only if it is public, or if fromOwnPackage is
// true (the querying File Scope belongs to this same package).
func (p *Package) FindSymbol(name string, fromOwnPackage bool) ast.Decl {
	d := p.findSymbol(name)
	if d == nil {
		return nil
	}
	if !fromOwnPackage && !d.IsPublic() {
		return nil
	}
	return d
}

// AllSymbols returns every top-level declaration this package owns,
// public and private alike.
func (p *Package) AllSymbols() map[string]ast.Decl { return p.symbols }

// Registry maps package names to the Package aggregating their units.
// One Registry is shared across every translation unit in a
// compilation (spec §4.2/§5: "the unit of visibility" is the package,
// not the translation unit).
type Registry struct {
	packages map[string]*Package
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{packages: make(map[string]*Package)}
}

// GetOrCreate returns the Package named name, creating it if this is
// the first unit registered under that name.
func (r *Registry) GetOrCreate(name string) *Package {
	if p, ok := r.packages[name]; ok {
		return p
	}
	p := NewPackage(name)
	r.packages[name] = p
	return p
}

// Lookup returns the Package named name, or nil if no unit has
// registered under that name.
func (r *Registry) Lookup(name string) *Package {
	return r.packages[name]
}

// RegisterUnit merges unit into its package's aggregate, creating the
// package on first use.
func (r *Registry) RegisterUnit(unit *ast.AST, bag *diag.Bag) *Package {
	p := r.GetOrCreate(unit.PackageName)
	p.AddUnit(unit, bag)
	return p
}

// Error is returned by operations with no natural diag.Bag to report
// into (e.g. programmatic misuse by a driver), kept distinct from the
// diagnostic stream which is reserved for source-language errors.
type Error struct {
	Op  string
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("registry: %s: %s", e.Op, e.Msg) }
