package ast

// ModuleFile is a single parsed source file: either the interface half or
// the body half of a module.  Its Header names the module; the
// combining stage requires the interface and body headers to
// match.
type ModuleFile struct {
	Header ModuleName

	// Imports are the raw, unqualified import directives found in this
	// file's header; stage A (import resolution) turns these into an
	// ImportMap.
	Imports []ImportDirective

	// Decls are the declarations found in this file, in source order.
	// For an interface file every FuncDecl/InstanceDecl has a nil Body:
	// only signatures are present.  For a body file every declaration
	// carries its full definition.
	Decls []Decl
}

// ImportDirective is one `import Name [as Local] from Module;` or
// `import Module;` clause.
type ImportDirective struct {
	Module     ModuleName
	Name       string // empty when importing the whole module under its own name
	LocalAlias string // empty unless renamed
	Span       *Span
}
