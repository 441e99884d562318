// Package ast defines the abstracted syntax tree that the semantic analysis
// pipeline consumes. Lexing and parsing are out of scope for this
// repository; these types are the contract that a parser front-end must
// produce.
package ast

import "nova/report"

// QualifiedIdent carries the three parts the data model requires: where a
// name was declared, what it was declared as, and what it is called at the
// point of use. The local name only differs from the original under a
// renaming import (`import Foo as Bar from ...`).
type QualifiedIdent struct {
	SourceModule string
	OriginalName string
	LocalName    string
}

// Qualify builds a QualifiedIdent for a name that is not renamed.
func Qualify(module, name string) QualifiedIdent {
	return QualifiedIdent{SourceModule: module, OriginalName: name, LocalName: name}
}

func (q QualifiedIdent) String() string {
	return q.SourceModule + "." + q.OriginalName
}

// ModuleName is a dotted sequence of atoms.
type ModuleName []string

func (m ModuleName) String() string {
	s := ""
	for i, atom := range m {
		if i > 0 {
			s += "."
		}
		s += atom
	}
	return s
}

// Equal compares two module names atom-by-atom.
func (m ModuleName) Equal(other ModuleName) bool {
	if len(m) != len(other) {
		return false
	}
	for i, a := range m {
		if a != other[i] {
			return false
		}
	}
	return true
}

// ImportMap maps a local name to the qualified identifier it refers to,
// together with the module doing the importing.
// It is consulted while qualifying every type specifier and every
// referenced identifier in a module's body.
type ImportMap struct {
	CurrentModule string
	entries       map[string]QualifiedIdent
}

// NewImportMap creates an empty import map for the given module.
func NewImportMap(currentModule string) *ImportMap {
	return &ImportMap{CurrentModule: currentModule, entries: make(map[string]QualifiedIdent)}
}

// Bind registers a local name as referring to a qualified identifier.
// Re-binding an existing local name is an error the caller (stage A) is
// responsible for reporting; Bind itself just overwrites, applying a
// last-import-wins rule unless the caller checks first.
func (im *ImportMap) Bind(local string, qid QualifiedIdent) {
	im.entries[local] = qid
}

// Lookup resolves a local name through the import map.
func (im *ImportMap) Lookup(local string) (QualifiedIdent, bool) {
	qid, ok := im.entries[local]
	return qid, ok
}

// Span is re-exported for AST node embedding convenience.
type Span = report.Span
