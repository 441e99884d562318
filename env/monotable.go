package env

import (
	"strings"

	"nova/ast"
	"nova/types"
)

// MonomorphID identifies one concrete instantiation of a generic
// declaration.
type MonomorphID uint64

// MonoTable is the `(qident, [stripped_type]) -> monomorph_id` mapping used
// by monomorphization.  The first encounter of a given key allocates a fresh id;
// subsequent encounters return the same id.  It is the one part of the
// environment that mutates after the program is loaded.
//
// An alternative design threads a `(result, table)` pair through a pure
// walk; since the pipeline is single-threaded, a mutable table behind a
// single reference is equivalent and simpler.
type MonoTable struct {
	ids   map[string]MonomorphID
	next  MonomorphID
	keys  []monoKeyRecord
}

type monoKeyRecord struct {
	Name ast.QualifiedIdent
	Args []types.Type
	ID   MonomorphID
}

// NewMonoTable creates an empty instantiation table. IDs start at 1 so the
// zero value can serve as a "no monomorph" sentinel.
func NewMonoTable() *MonoTable {
	return &MonoTable{ids: make(map[string]MonomorphID), next: 1}
}

func monoKey(name ast.QualifiedIdent, strippedArgs []types.Type) string {
	var sb strings.Builder
	sb.WriteString(name.String())
	for _, a := range strippedArgs {
		sb.WriteByte('|')
		sb.WriteString(a.Repr())
	}
	return sb.String()
}

// Intern returns the monomorph id for (name, strippedArgs), allocating a
// fresh one on first encounter.  Callers MUST pass already-stripped types
// (see package mono): the table's key space is defined over stripped types
// only.
func (t *MonoTable) Intern(name ast.QualifiedIdent, strippedArgs []types.Type) MonomorphID {
	k := monoKey(name, strippedArgs)
	if id, ok := t.ids[k]; ok {
		return id
	}

	id := t.next
	t.next++
	t.ids[k] = id
	t.keys = append(t.keys, monoKeyRecord{Name: name, Args: strippedArgs, ID: id})
	return id
}

// Lookup reports whether a key has already been interned, without
// allocating a new id — used by invariant checks.
func (t *MonoTable) Lookup(name ast.QualifiedIdent, strippedArgs []types.Type) (MonomorphID, bool) {
	id, ok := t.ids[monoKey(name, strippedArgs)]
	return id, ok
}

// Entries returns every interned key in allocation order.  Nothing in this
// repository calls it: package mono lowers each typed body once, and does
// not instantiate a generic declaration's body per type-argument tuple.
func (t *MonoTable) Entries() []monoKeyRecord { return t.keys }
