// Package extract implements stage C of the pipeline: turning a combined
// module's declarations into committed environment entries, resolving every
// declared signature's type specifiers along the way (stage D proper is the
// `types.Parse` call this package drives, per declaration, in the order
// fixed by the single-threaded pipeline: types before constants before
// functions before typeclasses before instances).
package extract

import (
	"nova/ast"
	"nova/combine"
	"nova/env"
	"nova/instances"
	"nova/report"
	"nova/types"
)

// Extract commits every declaration of cm to e, reporting diagnostics
// through rep rather than halting on the first error so that a module's
// unrelated declarations can still be extracted independently.
func Extract(e *env.Environment, rep *report.Reporter, moduleName string, cm *combine.CombinedModule, unsafeModule bool) {
	localSigs := localTypeSigs(moduleName, cm)

	// Type declarations are extracted first: function/const/typeclass/instance signatures may reference
	// any type declared anywhere else in the same module regardless of
	// declaration order, which localSigs makes possible before any of them
	// are committed to the environment.
	for _, cd := range cm.Decls {
		switch d := cd.Decl.(type) {
		case *ast.RecordDecl:
			extractRecord(e, rep, moduleName, localSigs, cd, d, unsafeModule)
		case *ast.UnionDecl:
			extractUnion(e, rep, moduleName, localSigs, cd, d, unsafeModule)
		case *ast.OpaqueDecl:
			extractOpaque(e, moduleName, cd, d)
		}
	}

	for _, cd := range cm.Decls {
		switch d := cd.Decl.(type) {
		case *ast.ConstDecl:
			extractConst(e, rep, moduleName, localSigs, cd, d, unsafeModule)
		}
	}

	for _, cd := range cm.Decls {
		switch d := cd.Decl.(type) {
		case *ast.FuncDecl:
			extractFunc(e, rep, moduleName, localSigs, cd, d, unsafeModule)
		}
	}

	for _, cd := range cm.Decls {
		switch d := cd.Decl.(type) {
		case *ast.TypeclassDecl:
			extractTypeclass(e, rep, moduleName, localSigs, cd, d, unsafeModule)
		}
	}

	// Instances last: they need every typeclass and every concrete/generic
	// argument type already resolvable.
	for _, cd := range cm.Decls {
		switch d := cd.Decl.(type) {
		case *ast.InstanceDecl:
			extractInstance(e, rep, moduleName, localSigs, cd, d, unsafeModule)
		}
	}
}

// localTypeSigs builds the "locally declared type signatures" input needed
// alongside the environment: every record/union/opaque
// declaration of this module, keyed by local spelling, before any of them
// is committed to e. This lets mutually- or self-referential types within
// one module resolve regardless of declaration order.
func localTypeSigs(moduleName string, cm *combine.CombinedModule) map[string]types.LocalTypeSig {
	sigs := make(map[string]types.LocalTypeSig)

	for _, cd := range cm.Decls {
		var universe string
		switch d := cd.Decl.(type) {
		case *ast.RecordDecl:
			universe = d.Universe
		case *ast.UnionDecl:
			universe = d.Universe
		case *ast.OpaqueDecl:
			universe = d.Universe
		default:
			continue
		}

		u, _ := types.ParseUniverse(universe)
		qid := ast.QualifiedIdent{SourceModule: moduleName, OriginalName: cd.Decl.Name(), LocalName: cd.Decl.Name()}
		sigs[cd.Decl.Name()] = types.LocalTypeSig{Name: qid, DeclUniverse: u, TyparamCount: cd.Decl.Typarams().Len()}
	}

	return sigs
}

func extractRecord(e *env.Environment, rep *report.Reporter, moduleName string, localSigs map[string]types.LocalTypeSig, cd combine.CombinedDecl, d *ast.RecordDecl, unsafeModule bool) {
	defer report.CatchErrors(rep, d.Span())

	u, ok := types.ParseUniverse(d.Universe)
	if !ok {
		rep.Report(report.New(report.KindType, d.Span(), "unknown universe `%s` on record `%s`", d.Universe, d.Name()))
		return
	}

	regions := types.NewRegionMap()
	fieldNames := make([]string, len(d.Fields))
	fieldTypes := make([]types.Type, len(d.Fields))
	for i, f := range d.Fields {
		fieldNames[i] = f.Name
		fieldTypes[i] = types.Parse(e, localSigs, regions, d.Typarams(), f.Type, unsafeModule)
	}

	qid := ast.QualifiedIdent{SourceModule: moduleName, OriginalName: d.Name(), LocalName: d.Name()}
	e.AddTypeDecl(env.TypeDeclEntry{
		Name: qid, Kind: ast.DeclRecord, DeclUniverse: u, Typarams: d.Typarams(), TypeVis: cd.TypeVis,
		FieldNames: fieldNames, FieldTypes: fieldTypes,
	})
}

func extractUnion(e *env.Environment, rep *report.Reporter, moduleName string, localSigs map[string]types.LocalTypeSig, cd combine.CombinedDecl, d *ast.UnionDecl, unsafeModule bool) {
	defer report.CatchErrors(rep, d.Span())

	u, ok := types.ParseUniverse(d.Universe)
	if !ok {
		rep.Report(report.New(report.KindType, d.Span(), "unknown universe `%s` on union `%s`", d.Universe, d.Name()))
		return
	}

	regions := types.NewRegionMap()
	caseNames := make([]string, len(d.Cases))
	caseSlots := make([][]types.Type, len(d.Cases))
	caseSlotNames := make([][]string, len(d.Cases))
	for i, c := range d.Cases {
		caseNames[i] = c.Name
		slots := make([]types.Type, len(c.Slots))
		slotNames := make([]string, len(c.Slots))
		for j, s := range c.Slots {
			slotNames[j] = s.Name
			slots[j] = types.Parse(e, localSigs, regions, d.Typarams(), s.Type, unsafeModule)
		}
		caseSlots[i] = slots
		caseSlotNames[i] = slotNames
	}

	qid := ast.QualifiedIdent{SourceModule: moduleName, OriginalName: d.Name(), LocalName: d.Name()}
	e.AddTypeDecl(env.TypeDeclEntry{
		Name: qid, Kind: ast.DeclUnion, DeclUniverse: u, Typarams: d.Typarams(), TypeVis: cd.TypeVis,
		CaseNames: caseNames, CaseSlots: caseSlots, CaseSlotNames: caseSlotNames,
	})
}

func extractOpaque(e *env.Environment, moduleName string, cd combine.CombinedDecl, d *ast.OpaqueDecl) {
	u, _ := types.ParseUniverse(d.Universe)
	qid := ast.QualifiedIdent{SourceModule: moduleName, OriginalName: d.Name(), LocalName: d.Name()}
	e.AddTypeDecl(env.TypeDeclEntry{Name: qid, Kind: ast.DeclOpaque, DeclUniverse: u, Typarams: d.Typarams(), TypeVis: cd.TypeVis})
}

func extractConst(e *env.Environment, rep *report.Reporter, moduleName string, localSigs map[string]types.LocalTypeSig, cd combine.CombinedDecl, d *ast.ConstDecl, unsafeModule bool) {
	defer report.CatchErrors(rep, d.Span())

	qid := ast.QualifiedIdent{SourceModule: moduleName, OriginalName: d.Name(), LocalName: d.Name()}

	if d.TypeAnnot == nil {
		// Inference from Value is a typechecking-stage concern; extraction
		// only commits signatures that are already explicit, deferring
		// untyped constants to be filled in once the body is checked.
		e.AddConstDecl(env.ConstEntry{Name: qid, Type: nil, Vis: cd.Vis})
		return
	}

	regions := types.NewRegionMap()
	t := types.Parse(e, localSigs, regions, ast.NewTypeParamSet(), d.TypeAnnot, unsafeModule)
	e.AddConstDecl(env.ConstEntry{Name: qid, Type: t, Vis: cd.Vis})
}

func extractFunc(e *env.Environment, rep *report.Reporter, moduleName string, localSigs map[string]types.LocalTypeSig, cd combine.CombinedDecl, d *ast.FuncDecl, unsafeModule bool) {
	defer report.CatchErrors(rep, d.Span())

	qid := ast.QualifiedIdent{SourceModule: moduleName, OriginalName: d.Name(), LocalName: d.Name()}
	sig := buildFuncSig(e, localSigs, qid, d.Typarams(), d.Params, d.ReturnType, unsafeModule)
	sig.Vis = cd.Vis
	e.AddFuncDecl(sig)
}

func buildFuncSig(e *env.Environment, localSigs map[string]types.LocalTypeSig, qid ast.QualifiedIdent, typarams *ast.TypeParamSet, params []ast.Param, returnType ast.TypeSpec, unsafeModule bool) env.FuncSig {
	regions := types.NewRegionMap()

	paramNames := make([]string, len(params))
	paramTypes := make([]types.Type, len(params))
	for i, p := range params {
		paramNames[i] = p.Name
		paramTypes[i] = types.Parse(e, localSigs, regions, typarams, p.Type, unsafeModule)
	}

	var ret types.Type = types.UnitType{}
	if returnType != nil {
		ret = types.Parse(e, localSigs, regions, typarams, returnType, unsafeModule)
	}

	return env.FuncSig{Name: qid, Typarams: typarams, ParamNames: paramNames, Params: paramTypes, Return: ret}
}

func extractTypeclass(e *env.Environment, rep *report.Reporter, moduleName string, localSigs map[string]types.LocalTypeSig, cd combine.CombinedDecl, d *ast.TypeclassDecl, unsafeModule bool) {
	defer report.CatchErrors(rep, d.Span())

	qid := ast.QualifiedIdent{SourceModule: moduleName, OriginalName: d.Name(), LocalName: d.Name()}

	methods := make(map[string]env.FuncSig)
	for _, m := range d.Methods {
		mqid := ast.QualifiedIdent{SourceModule: moduleName, OriginalName: d.Name() + "." + m.Name(), LocalName: d.Name() + "." + m.Name()}
		methods[m.Name()] = buildFuncSig(e, localSigs, mqid, d.Typarams(), m.Params, m.ReturnType, unsafeModule)
	}

	e.AddTypeclass(env.TypeclassEntry{Name: qid, Param: d.Typarams().At(0), Methods: methods})
}

func extractInstance(e *env.Environment, rep *report.Reporter, moduleName string, localSigs map[string]types.LocalTypeSig, cd combine.CombinedDecl, d *ast.InstanceDecl, unsafeModule bool) {
	defer report.CatchErrors(rep, d.Span())

	regions := types.NewRegionMap()
	argType := types.Parse(e, localSigs, regions, d.Typarams(), d.Argument, unsafeModule)

	methods := make(map[string]env.FuncSig)
	for _, m := range d.Methods {
		mqid := ast.QualifiedIdent{SourceModule: moduleName, OriginalName: d.Typeclass.String() + "#" + m.Name(), LocalName: d.Typeclass.String() + "#" + m.Name()}
		methods[m.Name()] = buildFuncSig(e, localSigs, mqid, d.Typarams(), m.Params, m.ReturnType, unsafeModule)
	}

	if err := instances.Register(e, d, argType, methods); err != nil {
		rep.Report(err)
	}
}
