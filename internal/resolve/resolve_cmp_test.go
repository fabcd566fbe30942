package resolve

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coral-lang/coralc/internal/ast"
	"github.com/coral-lang/coralc/internal/diag"
	"github.com/coral-lang/coralc/internal/registry"
	"github.com/coral-lang/coralc/internal/token"
	"github.com/coral-lang/coralc/internal/types"
)

// TestFindSymbol_VisibilityMatrix exercises spec §4.4's ambiguity and
// visibility rules with table-driven cases, comparing the resulting
// ScopeResult deep-field-by-field (ignoring the unexported fields
// behind registry.Package) rather than hand-listing each assertion.
func TestFindSymbol_VisibilityMatrix(t *testing.T) {
	// Package and Decl carry unexported state (the symbol map, the
	// source token) that go-cmp can't usefully traverse; both are
	// reference types the File Scope hands back by identity, so a
	// pointer-identity Comparer is the right notion of equality here.
	opts := cmp.Options{
		cmp.Comparer(func(a, b *registry.Package) bool { return a == b }),
		cmp.Comparer(func(a, b ast.Decl) bool { return a == b }),
	}

	mkFunc := func(name string, public bool, pos token.Position) *ast.FunctionDecl {
		return &ast.FunctionDecl{BaseDecl: ast.BaseDecl{Tok: token.Token{Literal: name, Pos: pos}, NameVal: name, Public: public}}
	}

	t.Run("own package symbol always visible regardless of publicity", func(t *testing.T) {
		reg := registry.NewRegistry()
		own := reg.GetOrCreate("a")
		bag := diag.NewBag("")
		tu := ast.NewAST("a")
		priv := mkFunc("helper", false, token.Position{Line: 1, Column: 1})
		tu.AddDecl(priv)
		own.AddUnit(tu, bag)

		fs := NewFileScope(reg, own)
		got := fs.FindSymbol("helper")
		want := ScopeResult{Package: own, Decl: priv, External: false, Visible: true, Ok: true}
		if diff := cmp.Diff(want, got, opts); diff != "" {
			t.Errorf("FindSymbol() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("private symbol from a used package is invisible", func(t *testing.T) {
		reg := registry.NewRegistry()
		other := reg.GetOrCreate("lib")
		bag := diag.NewBag("")
		tu := ast.NewAST("lib")
		priv := mkFunc("internalHelper", false, token.Position{Line: 1, Column: 1})
		tu.AddDecl(priv)
		other.AddUnit(tu, bag)

		own := reg.GetOrCreate("app")
		fs := NewFileScope(reg, own)
		fs.BindUse(&ast.UseDecl{BaseDecl: ast.BaseDecl{NameVal: "lib"}, Target: "lib"})

		got := fs.FindSymbol("internalHelper")
		want := ScopeResult{Package: other, Decl: priv, External: true, Visible: false, Ok: true}
		if diff := cmp.Diff(want, got, opts); diff != "" {
			t.Errorf("FindSymbol() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("two equally-visible hits are ambiguous", func(t *testing.T) {
		reg := registry.NewRegistry()
		bag := diag.NewBag("")

		libA := reg.GetOrCreate("liba")
		tuA := ast.NewAST("liba")
		fnA := mkFunc("run", true, token.Position{Line: 1, Column: 1})
		tuA.AddDecl(fnA)
		libA.AddUnit(tuA, bag)

		libB := reg.GetOrCreate("libb")
		tuB := ast.NewAST("libb")
		fnB := mkFunc("run", true, token.Position{Line: 1, Column: 1})
		tuB.AddDecl(fnB)
		libB.AddUnit(tuB, bag)

		own := reg.GetOrCreate("app")
		fs := NewFileScope(reg, own)
		fs.BindUse(&ast.UseDecl{BaseDecl: ast.BaseDecl{NameVal: "liba"}, Target: "liba"})
		fs.BindUse(&ast.UseDecl{BaseDecl: ast.BaseDecl{NameVal: "libb"}, Target: "libb"})

		got := fs.FindSymbol("run")
		if !got.Ambiguous {
			t.Errorf("expected Ambiguous=true, got %+v", got)
		}
	})
}

// TestCheckType_QualTypeResolution uses go-cmp to confirm CheckType
// resolves a UserType's QualType to exactly the alias's own QualType,
// comparing the *types.Type field by pointer identity rather than
// structurally.
func TestCheckType_QualTypeResolution(t *testing.T) {
	reg := registry.NewRegistry()
	bag := diag.NewBag("")
	own := reg.GetOrCreate("p")
	tu := ast.NewAST("p")

	store := types.NewStore()
	aliasTarget := store.Builtin(types.I32)
	alias := &ast.TypeAliasDecl{BaseDecl: ast.BaseDecl{NameVal: "myint", Public: true}, Aliased: aliasTarget}
	tu.AddDecl(alias)
	own.AddUnit(tu, bag)

	fs := NewFileScope(reg, own)
	userType := store.User()
	userType.SetUserRef("", "myint")
	qt := types.QualType{T: userType}

	errs := fs.CheckType(qt, false, token.Position{Line: 1, Column: 1}, bag)
	if errs != 0 {
		t.Fatalf("CheckType() = %d errors, want 0 (%s)", errs, bag.Report())
	}

	// *types.Type is interned/mutable-handle state with unexported
	// fields; a same-pointer Comparer lets go-cmp treat resolution
	// identity the way the Type Store's own invariant does (spec §4.1:
	// "the resolver hands back that same handle, not a new one").
	samePointer := cmp.Comparer(func(a, b *types.Type) bool { return a == b })
	if diff := cmp.Diff(aliasTarget, *userType.Resolved(), samePointer); diff != "" {
		t.Errorf("resolved QualType mismatch (-want +got):\n%s", diff)
	}
}
