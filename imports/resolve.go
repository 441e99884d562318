// Package imports implements stage A of the pipeline: resolving a
// module's raw import directives against the environment into an
// ast.ImportMap. Imports are per-symbol and qualified-name based: a
// directive names exactly one declaration from another module, optionally
// under a local alias.
package imports

import (
	"nova/ast"
	"nova/env"
	"nova/report"
)

// Resolve builds the import map for one module file, checking every
// `import Name [as Local] from Module;` directive against declarations
// already committed to the environment. Modules are loaded in topological
// order of imports, so every module a file imports from is
// already present in e by the time Resolve runs.
func Resolve(e *env.Environment, currentModule string, directives []ast.ImportDirective) (*ast.ImportMap, []*report.CompileError) {
	im := ast.NewImportMap(currentModule)
	var errs []*report.CompileError

	for _, d := range directives {
		modName := d.Module.String()

		if !e.HasModule(modName) {
			errs = append(errs, report.New(report.KindDeclaration, d.Span,
				"cannot import from unknown or not-yet-loaded module `%s`", modName))
			continue
		}

		if d.Name == "" {
			// Whole-module import is not itself a bindable local name in
			// this data model; record nothing further, the module being
			// loaded is sufficient for qualified-name lookups elsewhere.
			continue
		}

		qid := ast.QualifiedIdent{SourceModule: modName, OriginalName: d.Name, LocalName: d.Name}
		if !existsAndPublic(e, qid) {
			errs = append(errs, report.New(report.KindDeclaration, d.Span,
				"module `%s` has no public declaration named `%s`", modName, d.Name))
			continue
		}

		local := d.Name
		if d.LocalAlias != "" {
			local = d.LocalAlias
			qid.LocalName = d.LocalAlias
		}

		if _, already := im.Lookup(local); already {
			errs = append(errs, report.New(report.KindDeclaration, d.Span,
				"name `%s` imported multiple times", local))
			continue
		}

		im.Bind(local, qid)
	}

	if len(errs) > 0 {
		return im, errs
	}
	return im, nil
}

func existsAndPublic(e *env.Environment, qid ast.QualifiedIdent) bool {
	if entry, ok := e.LookupTypeDeclEntry(qid); ok {
		return entry.TypeVis == ast.VisPublic || entry.TypeVis == ast.VisOpaque
	}
	if sig, ok := e.LookupFuncDecl(qid); ok {
		return sig.Vis == ast.VisPublic
	}
	if c, ok := e.LookupConstDecl(qid); ok {
		return c.Vis == ast.VisPublic
	}
	if _, ok := e.LookupTypeclass(qid); ok {
		return true // typeclass declarations are always importable by name
	}
	return false
}
