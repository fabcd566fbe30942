package types

// Store is the per-translation-unit Type Store of spec §4.1: a factory
// that interns canonical types (Builtin, Pointer, Array, Func) so that
// two structurally identical types share one *Type, and hands out
// mutable handles for UserType/Struct/Enum that the caller fills in
// after construction.
type Store struct {
	builtins [numBuiltinKinds]*Type
	pointers map[pointerKey]*Type
	arrays   map[arrayKey]*Type
	funcs    map[any]*Type // keyed by the opaque FunctionDecl handle: one Func type per decl
}

type pointerKey struct {
	t     *Type
	quals Qualifier
}

type arrayKey struct {
	elem     pointerKey
	sizeExpr Stringer
}

// NewStore constructs an empty Type Store.
func NewStore() *Store {
	return &Store{
		pointers: make(map[pointerKey]*Type),
		arrays:   make(map[arrayKey]*Type),
		funcs:    make(map[any]*Type),
	}
}

// Builtin returns the singleton QualType for a builtin kind (unqualified).
func (s *Store) Builtin(kind BuiltinKind) QualType {
	if s.builtins[kind] == nil {
		s.builtins[kind] = &Type{kind: KindBuiltin, builtin: kind}
	}
	return QualType{T: s.builtins[kind]}
}

// Pointer returns the canonical pointer-to-referent QualType.
func (s *Store) Pointer(referent QualType) QualType {
	key := pointerKey{t: referent.T, quals: referent.Quals}
	if t, ok := s.pointers[key]; ok {
		return QualType{T: t}
	}
	t := &Type{kind: KindPointer, referent: referent}
	s.pointers[key] = t
	return QualType{T: t}
}

// Array returns the canonical array QualType. sizeExpr is nil for an
// unsized/incomplete array; ownsSize records whether this call is the
// one that introduced a fresh size expression (vs. reusing one already
// attached to an incremental array's original VarDecl, spec GLOSSARY).
func (s *Store) Array(element QualType, sizeExpr Stringer, ownsSize bool) QualType {
	key := arrayKey{elem: pointerKey{t: element.T, quals: element.Quals}, sizeExpr: sizeExpr}
	if t, ok := s.arrays[key]; ok {
		return QualType{T: t}
	}
	t := &Type{kind: KindArray, element: element, sizeExpr: sizeExpr, ownsSize: ownsSize}
	s.arrays[key] = t
	return QualType{T: t}
}

// Function returns the canonical QualType wrapping a function declaration.
// decl is opaque here (a *ast.FunctionDecl); one Func type is interned
// per distinct decl handle.
func (s *Store) Function(decl any) QualType {
	if t, ok := s.funcs[decl]; ok {
		return QualType{T: t}
	}
	t := &Type{kind: KindFunc, funcDecl: decl}
	s.funcs[decl] = t
	return QualType{T: t}
}

// User returns a fresh, mutable UserType handle. The caller fills in
// the reference name via SetUserRef and later, once resolved, via
// SetResolved. Unlike Builtin/Pointer/Array/Function, UserType handles
// are never interned: each occurrence in source is a distinct
// reference even when it names the same type (spec §4.1).
func (s *Store) User() *Type {
	return &Type{kind: KindUserType}
}

// Struct returns a fresh, mutable Struct/union handle. The caller
// attaches the owning declaration via SetStructDecl once the member
// list is known.
func (s *Store) Struct(isUnion bool, name string) *Type {
	return &Type{kind: KindStruct, structIsUnion: isUnion, structName: name}
}

// Enum returns a fresh, mutable Enum handle. The caller attaches name,
// underlying type and members via the Set* methods.
func (s *Store) Enum() *Type {
	return &Type{kind: KindEnum}
}
