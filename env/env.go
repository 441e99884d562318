// Package env implements the process-wide mutable environment: a set of
// loaded modules, an index of declarations by qualified name, an
// instance registry per typeclass, and a monomorphization table. It is
// append-only: modules are added in topological order of imports and never
// mutated after the full program is loaded, except by the monomorphization
// table.
//
// Declarations are stored in flat tables keyed by qualified name rather
// than a walked reference graph, keeping lookups append-only and O(1).
package env

import (
	"nova/ast"
	"nova/types"
)

// FuncSig is a function declaration's signature as stored in the
// environment: resolved parameter/return types plus the typaram set needed
// to unify a call's argument types.
type FuncSig struct {
	Name       ast.QualifiedIdent
	Typarams   *ast.TypeParamSet
	ParamNames []string
	Params     []types.Type
	Return     types.Type
	Vis        ast.Visibility
}

// TypeDeclEntry is a record/union/opaque type's signature.
type TypeDeclEntry struct {
	Name         ast.QualifiedIdent
	Kind         ast.DeclKind // DeclRecord, DeclUnion, or DeclOpaque
	DeclUniverse types.Universe
	Typarams     *ast.TypeParamSet
	TypeVis      ast.Visibility

	FieldNames []string
	FieldTypes []types.Type // parallel to FieldNames, for records

	CaseNames []string
	CaseSlots [][]types.Type // parallel to CaseNames, for unions
	CaseSlotNames [][]string
}

// ConstEntry is a constant declaration's signature.
type ConstEntry struct {
	Name ast.QualifiedIdent
	Type types.Type
	Vis  ast.Visibility
}

// TypeclassEntry is a typeclass declaration.
type TypeclassEntry struct {
	Name    ast.QualifiedIdent
	Param   ast.TypeParameter
	Methods map[string]FuncSig
}

// InstanceEntry implements a typeclass for a concrete or generic-applied
// argument type.
type InstanceEntry struct {
	Typeclass ast.QualifiedIdent
	Argument  types.Type
	Methods   map[string]FuncSig
}

// Environment is the process-wide mutable state described above.
type Environment struct {
	modules map[string]bool

	typeDecls map[string]TypeDeclEntry
	funcDecls map[string]FuncSig
	constDecls map[string]ConstEntry
	typeclasses map[string]TypeclassEntry
	instances   map[string][]InstanceEntry

	Mono *MonoTable
}

// New creates an empty environment.
func New() *Environment {
	return &Environment{
		modules:     make(map[string]bool),
		typeDecls:   make(map[string]TypeDeclEntry),
		funcDecls:   make(map[string]FuncSig),
		constDecls:  make(map[string]ConstEntry),
		typeclasses: make(map[string]TypeclassEntry),
		instances:   make(map[string][]InstanceEntry),
		Mono:        NewMonoTable(),
	}
}

// AddModule records a module as loaded.  Modules must be added in
// topological order of imports; the
// environment itself does not re-check this, it trusts the caller (the
// pipeline orchestrator) which computed the order.
func (e *Environment) AddModule(name string) { e.modules[name] = true }

func (e *Environment) HasModule(name string) bool { return e.modules[name] }

// AddTypeDecl commits a record/union/opaque declaration's signature.
func (e *Environment) AddTypeDecl(entry TypeDeclEntry) {
	e.typeDecls[entry.Name.String()] = entry
}

func (e *Environment) LookupTypeDeclEntry(name ast.QualifiedIdent) (TypeDeclEntry, bool) {
	entry, ok := e.typeDecls[name.String()]
	return entry, ok
}

// LookupTypeDecl implements types.EnvLookup.
func (e *Environment) LookupTypeDecl(name ast.QualifiedIdent) (types.LocalTypeSig, bool) {
	entry, ok := e.typeDecls[name.String()]
	if !ok {
		return types.LocalTypeSig{}, false
	}
	return types.LocalTypeSig{Name: entry.Name, DeclUniverse: entry.DeclUniverse, TyparamCount: entry.Typarams.Len()}, true
}

// AddFuncDecl commits a function declaration's signature.
func (e *Environment) AddFuncDecl(sig FuncSig) { e.funcDecls[sig.Name.String()] = sig }

func (e *Environment) LookupFuncDecl(name ast.QualifiedIdent) (FuncSig, bool) {
	sig, ok := e.funcDecls[name.String()]
	return sig, ok
}

// AddConstDecl commits a constant declaration's signature.
func (e *Environment) AddConstDecl(entry ConstEntry) { e.constDecls[entry.Name.String()] = entry }

func (e *Environment) LookupConstDecl(name ast.QualifiedIdent) (ConstEntry, bool) {
	entry, ok := e.constDecls[name.String()]
	return entry, ok
}

// AddTypeclass commits a typeclass declaration.
func (e *Environment) AddTypeclass(entry TypeclassEntry) { e.typeclasses[entry.Name.String()] = entry }

func (e *Environment) LookupTypeclass(name ast.QualifiedIdent) (TypeclassEntry, bool) {
	entry, ok := e.typeclasses[name.String()]
	return entry, ok
}

// AddInstance registers an instance under its typeclass.  Overlap checking
// is the caller's (package `instances`) responsibility; the
// environment itself just stores what it is given, append-only.
func (e *Environment) AddInstance(entry InstanceEntry) {
	key := entry.Typeclass.String()
	e.instances[key] = append(e.instances[key], entry)
}

func (e *Environment) InstancesOf(typeclass ast.QualifiedIdent) []InstanceEntry {
	return e.instances[typeclass.String()]
}
