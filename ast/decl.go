package ast

// DeclKind enumerates the seven declaration kinds.
type DeclKind int

const (
	DeclConst DeclKind = iota
	DeclRecord
	DeclUnion
	DeclOpaque
	DeclFunc
	DeclTypeclass
	DeclInstance
)

func (k DeclKind) String() string {
	switch k {
	case DeclConst:
		return "const"
	case DeclRecord:
		return "record"
	case DeclUnion:
		return "union"
	case DeclOpaque:
		return "opaque"
	case DeclFunc:
		return "function"
	case DeclTypeclass:
		return "typeclass"
	default:
		return "instance"
	}
}

// Visibility is the declaration-level visibility: Public, Private, or Opaque (only meaningful for type
// declarations).
type Visibility int

const (
	VisPublic Visibility = iota
	VisPrivate
	VisOpaque
)

// TypeParameter is a formal type parameter of a declaration.
// Order is preserved and is observable: it is the positional correspondence
// used when matching type arguments at use sites.
type TypeParameter struct {
	Name            string
	DeclaredUniverse string // one of "Free", "Linear", "Type", "Region"
	SourceDecl      QualifiedIdent
	Constraints     []QualifiedIdent // typeclasses this parameter must satisfy
	DefSpan         *Span
}

// TypeParamSet is an ordered collection of TypeParameters with unique
// names.
type TypeParamSet struct {
	params []TypeParameter
	byName map[string]int
}

// NewTypeParamSet builds an empty TypeParamSet. Add returns a
// *DuplicateTypeParamError when the name is already present.
func NewTypeParamSet() *TypeParamSet {
	return &TypeParamSet{byName: make(map[string]int)}
}

func (s *TypeParamSet) Add(tp TypeParameter) error {
	if _, ok := s.byName[tp.Name]; ok {
		return &DuplicateTypeParamError{Name: tp.Name}
	}
	s.byName[tp.Name] = len(s.params)
	s.params = append(s.params, tp)
	return nil
}

func (s *TypeParamSet) Len() int { return len(s.params) }

func (s *TypeParamSet) At(i int) TypeParameter { return s.params[i] }

func (s *TypeParamSet) All() []TypeParameter { return s.params }

func (s *TypeParamSet) Lookup(name string) (TypeParameter, int, bool) {
	if i, ok := s.byName[name]; ok {
		return s.params[i], i, true
	}
	return TypeParameter{}, -1, false
}

// DuplicateTypeParamError reports a repeated type parameter name within a
// single declaration's typaram list.
type DuplicateTypeParamError struct{ Name string }

func (e *DuplicateTypeParamError) Error() string {
	return "duplicate type parameter name: " + e.Name
}

// -----------------------------------------------------------------------------

// Decl is the parent interface for all seven declaration kinds.
type Decl interface {
	Kind() DeclKind
	Name() string
	Typarams() *TypeParamSet
	Span() *Span
	Visibility() Visibility
}

type declBase struct {
	name     string
	typarams *TypeParamSet
	span     *Span
	vis      Visibility
}

func (d declBase) Name() string             { return d.name }
func (d declBase) Typarams() *TypeParamSet  { return d.typarams }
func (d declBase) Span() *Span              { return d.span }
func (d declBase) Visibility() Visibility   { return d.vis }

// ConstDecl is a top-level constant declaration.
type ConstDecl struct {
	declBase
	TypeAnnot TypeSpec // may be nil if inferred from Value
	Value     Expr
}

func (d *ConstDecl) Kind() DeclKind { return DeclConst }

// FieldSpec is one named, typed slot within a record/union case.
type FieldSpec struct {
	Name    string
	Type    TypeSpec
	DefSpan *Span
}

// RecordDecl is a product type declaration.
type RecordDecl struct {
	declBase
	Universe string // "Free" or "Linear" as declared
	Fields   []FieldSpec
	TypeVis  Visibility // Public or Opaque, per combining
}

func (d *RecordDecl) Kind() DeclKind { return DeclRecord }

// UnionCase is one case of a union/sum type.
type UnionCase struct {
	Name   string
	Slots  []FieldSpec
	DefSpan *Span
}

// UnionDecl is a sum type declaration.
type UnionDecl struct {
	declBase
	Universe string
	Cases    []UnionCase
	TypeVis  Visibility
}

func (d *UnionDecl) Kind() DeclKind { return DeclUnion }

// OpaqueDecl is a type declared with no visible structure outside its
// module.
type OpaqueDecl struct {
	declBase
	Universe string
}

func (d *OpaqueDecl) Kind() DeclKind { return DeclOpaque }

// Param is one formal value parameter of a function.
type Param struct {
	Name    string
	Type    TypeSpec
	DefSpan *Span
}

// FuncDecl is a function declaration; Body is nil for an interface-only
// signature.
type FuncDecl struct {
	declBase
	Params     []Param
	ReturnType TypeSpec
	Body       []Stmt
}

func (d *FuncDecl) Kind() DeclKind { return DeclFunc }

// TypeclassDecl declares a typeclass.  Nova typeclasses take exactly one
// type parameter; a typaram set of any other length is rejected at
// combining time, not here — the AST itself permits a typaram set of any
// length, leaving the single-parameter restriction to be enforced where
// typeclasses are combined across interface and body files.
type TypeclassDecl struct {
	declBase
	Methods []FuncDecl // method signatures (Body nil at this layer; instances supply bodies)
}

func (d *TypeclassDecl) Kind() DeclKind { return DeclTypeclass }

// InstanceDecl implements a typeclass for a concrete or generic-applied
// argument type.
type InstanceDecl struct {
	declBase
	Typeclass QualifiedIdent
	Argument  TypeSpec
	Methods   []FuncDecl
}

func (d *InstanceDecl) Kind() DeclKind { return DeclInstance }

// NewDeclBase is exported so that the (out-of-scope) parser front-end or
// tests can build declBase values without duplicating the accessor
// plumbing above.
func NewDeclBase(name string, typarams *TypeParamSet, span *Span, vis Visibility) declBase {
	return declBase{name: name, typarams: typarams, span: span, vis: vis}
}

// NewFuncDecl is exported so that callers outside this package (tests, the
// parser front-end) can construct a FuncDecl: a plain composite literal
// cannot set the unexported embedded declBase field from another package.
func NewFuncDecl(base declBase, params []Param, returnType TypeSpec, body []Stmt) *FuncDecl {
	return &FuncDecl{base, params, returnType, body}
}

// NewRecordDecl is exported for the same reason as NewFuncDecl.
func NewRecordDecl(base declBase, universe string, fields []FieldSpec, typeVis Visibility) *RecordDecl {
	return &RecordDecl{base, universe, fields, typeVis}
}

// NewTypeclassDecl is exported for the same reason as NewFuncDecl.
func NewTypeclassDecl(base declBase, methods []FuncDecl) *TypeclassDecl {
	return &TypeclassDecl{base, methods}
}

// NewInstanceDecl is exported for the same reason as NewFuncDecl.
func NewInstanceDecl(base declBase, typeclass QualifiedIdent, argument TypeSpec, methods []FuncDecl) *InstanceDecl {
	return &InstanceDecl{base, typeclass, argument, methods}
}
