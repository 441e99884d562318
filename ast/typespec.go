package ast

// TypeSpec is the unresolved, pre-parse-stage representation of a type
// mentioned in source: `N[args...]`, an array, a reference, a raw pointer,
// or a region.  Stage D (type parsing) consumes a TypeSpec and an
// environment and produces a resolved `types.Type`.
type TypeSpec interface {
	Span() *Span
}

type base struct{ span *Span }

func (b base) Span() *Span { return b.span }

// NameSpec is `N` or `N[args...]` — a named type or type parameter
// reference, optionally applied to type arguments.
type NameSpec struct {
	base
	Name QualifiedIdent
	Args []TypeSpec
}

func NewNameSpec(span *Span, name QualifiedIdent, args ...TypeSpec) *NameSpec {
	return &NameSpec{base: base{span}, Name: name, Args: args}
}

// ArraySpec is `[ElemType; Region]`.
type ArraySpec struct {
	base
	Elem   TypeSpec
	Region string
}

// ReadRefSpec is `&Region ReferentType`.
type ReadRefSpec struct {
	base
	Referent TypeSpec
	Region   string
}

// WriteRefSpec is `&!Region ReferentType`.
type WriteRefSpec struct {
	base
	Referent TypeSpec
	Region   string
}

// RawPointerSpec is `*PointeeType`; only legal within unsafe modules.
type RawPointerSpec struct {
	base
	Pointee TypeSpec
}

// RegionSpec names a region-typed value, eg a function parameter of kind
// `region`.
type RegionSpec struct {
	base
	RegionName string
}

// PrimSpec names one of the built-in scalar/unit/boolean types directly
// (`Unit`, `Boolean`, `Integer32`, `SingleFloat`, ...) bypassing named-type
// lookup.
type PrimSpec struct {
	base
	Name string
}

func NewPrimSpec(span *Span, name string) *PrimSpec { return &PrimSpec{base: base{span}, Name: name} }
