package types

import (
	"fmt"
	"strings"

	"nova/ast"
)

// Type is the parent interface for the tagged union of resolved types.
// Every variant knows its own effective universe and can render itself for
// diagnostics.
type Type interface {
	Repr() string
	Universe() Universe

	// equals is the type-specific structural comparison.  It must never be
	// called directly except by Equals, which first unwraps TyVar
	// substitutions.
	equals(Type) bool
}

// Equals computes structural equality between two resolved types, looking
// through any substituted TyVar on either side.
func Equals(a, b Type) bool {
	return unwrap(a).equals(unwrap(b))
}

func unwrap(t Type) Type {
	if tv, ok := t.(*TyVar); ok && tv.Value != nil {
		return unwrap(tv.Value)
	}
	return t
}

// -----------------------------------------------------------------------------

// UnitType is the single-valued `Unit` type.
type UnitType struct{}

func (UnitType) Repr() string        { return "Unit" }
func (UnitType) Universe() Universe  { return Free }
func (UnitType) equals(o Type) bool  { _, ok := unwrap(o).(UnitType); return ok }

// BooleanType is `Boolean`.
type BooleanType struct{}

func (BooleanType) Repr() string       { return "Boolean" }
func (BooleanType) Universe() Universe { return Free }
func (BooleanType) equals(o Type) bool { _, ok := unwrap(o).(BooleanType); return ok }

// Signedness of an IntegerType.
type Signedness int

const (
	Signed Signedness = iota
	Unsigned
)

// IntegerType is `Integer(signedness, width)` with width in {8,16,32,64}.
type IntegerType struct {
	Signed Signedness
	Width  int
}

func (it IntegerType) Repr() string {
	prefix := "Integer"
	if it.Signed == Unsigned {
		prefix = "UInteger"
	}
	return fmt.Sprintf("%s%d", prefix, it.Width)
}

func (IntegerType) Universe() Universe { return Free }

func (it IntegerType) equals(o Type) bool {
	oi, ok := unwrap(o).(IntegerType)
	return ok && oi.Signed == it.Signed && oi.Width == it.Width
}

// SingleFloatType is `SingleFloat` (32-bit IEEE float).
type SingleFloatType struct{}

func (SingleFloatType) Repr() string       { return "SingleFloat" }
func (SingleFloatType) Universe() Universe { return Free }
func (SingleFloatType) equals(o Type) bool { _, ok := unwrap(o).(SingleFloatType); return ok }

// DoubleFloatType is `DoubleFloat` (64-bit IEEE float).
type DoubleFloatType struct{}

func (DoubleFloatType) Repr() string       { return "DoubleFloat" }
func (DoubleFloatType) Universe() Universe { return Free }
func (DoubleFloatType) equals(o Type) bool { _, ok := unwrap(o).(DoubleFloatType); return ok }

// RegionIDType is the opaque token produced by resolving a region name
// through the region map.  Two regions are equal only if they
// are the same token: regions have no structural equality beyond identity.
type RegionIDType struct{ ID string }

func (r RegionIDType) Repr() string       { return "'" + r.ID }
func (RegionIDType) Universe() Universe   { return Free }
func (r RegionIDType) equals(o Type) bool { or, ok := unwrap(o).(RegionIDType); return ok && or.ID == r.ID }

// ArrayType is `Array(element_type, region)`.
type ArrayType struct {
	Elem   Type
	Region RegionIDType
}

func (a ArrayType) Repr() string       { return fmt.Sprintf("Array[%s; %s]", a.Elem.Repr(), a.Region.Repr()) }
func (ArrayType) Universe() Universe   { return Free }
func (a ArrayType) equals(o Type) bool {
	oa, ok := unwrap(o).(ArrayType)
	return ok && Equals(a.Elem, oa.Elem) && a.Region.equals(oa.Region)
}

// ReadRefType is `&T` tied to a region.
type ReadRefType struct {
	Referent Type
	Region   RegionIDType
}

func (r ReadRefType) Repr() string       { return "&" + r.Region.Repr() + " " + r.Referent.Repr() }
func (ReadRefType) Universe() Universe   { return Free }
func (r ReadRefType) equals(o Type) bool {
	or, ok := unwrap(o).(ReadRefType)
	return ok && Equals(r.Referent, or.Referent) && r.Region.equals(or.Region)
}

// WriteRefType is `&!T` tied to a region.
type WriteRefType struct {
	Referent Type
	Region   RegionIDType
}

func (r WriteRefType) Repr() string       { return "&!" + r.Region.Repr() + " " + r.Referent.Repr() }
func (WriteRefType) Universe() Universe   { return Free }
func (r WriteRefType) equals(o Type) bool {
	or, ok := unwrap(o).(WriteRefType)
	return ok && Equals(r.Referent, or.Referent) && r.Region.equals(or.Region)
}

// RawPointerType is `*T`, legal only within unsafe modules.
type RawPointerType struct{ Pointee Type }

func (p RawPointerType) Repr() string { return "*" + p.Pointee.Repr() }
func (RawPointerType) Universe() Universe { return Free }
func (p RawPointerType) equals(o Type) bool {
	op, ok := unwrap(o).(RawPointerType)
	return ok && Equals(p.Pointee, op.Pointee)
}

// -----------------------------------------------------------------------------

// NamedType is `NamedType(qident, type_arguments, universe)`.  DeclUniverse
// is U_decl, the universe the referenced declaration was declared with;
// EffUniverse is computed by the rule below and cached at construction
// time by NewNamedType since it never changes once the type is built (type
// arguments are immutable after resolution).
type NamedType struct {
	Name         ast.QualifiedIdent
	Args         []Type
	DeclUniverse Universe
	EffUniverse  Universe
}

// NewNamedType computes the effective universe of a named type:
//   - If DeclUniverse is not Type, the effective universe is DeclUniverse.
//   - If DeclUniverse is Type, the effective universe is Linear if any
//     argument's effective universe is Linear, else Free.
func NewNamedType(name ast.QualifiedIdent, args []Type, declUniverse Universe) *NamedType {
	eff := declUniverse
	if declUniverse == TypeUniverse {
		eff = Free
		for _, a := range args {
			if a.Universe() == Linear {
				eff = Linear
				break
			}
		}
	}

	return &NamedType{Name: name, Args: args, DeclUniverse: declUniverse, EffUniverse: eff}
}

func (n *NamedType) Universe() Universe { return n.EffUniverse }

func (n *NamedType) Repr() string {
	if len(n.Args) == 0 {
		return n.Name.String()
	}

	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.Repr()
	}
	return n.Name.String() + "[" + strings.Join(parts, ", ") + "]"
}

func (n *NamedType) equals(o Type) bool {
	on, ok := unwrap(o).(*NamedType)
	if !ok || n.Name != on.Name || len(n.Args) != len(on.Args) {
		return false
	}
	for i, a := range n.Args {
		if !Equals(a, on.Args[i]) {
			return false
		}
	}
	return true
}

// -----------------------------------------------------------------------------

// TyVar is `TyVar(name, universe, source_decl)`: an occurrence of a type
// parameter within the body of its declaring declaration.  Value, when
// non-nil, is the type the variable stands for; call-site type checking
// records its bindings in a separate substitution map and leaves Value
// nil.  Monomorphization rejects a TyVar whose Value is nil.
type TyVar struct {
	Name             string
	DeclaredUniverse Universe
	SourceDecl       ast.QualifiedIdent
	Value            Type
}

func (tv *TyVar) Universe() Universe {
	if tv.Value != nil {
		return tv.Value.Universe()
	}
	return tv.DeclaredUniverse
}

func (tv *TyVar) Repr() string {
	if tv.Value != nil {
		return tv.Value.Repr()
	}
	return tv.Name
}

func (tv *TyVar) equals(o Type) bool {
	if tv.Value != nil {
		return Equals(tv.Value, o)
	}
	otv, ok := unwrap(o).(*TyVar)
	return ok && otv.Value == nil && otv.Name == tv.Name && otv.SourceDecl == tv.SourceDecl
}
