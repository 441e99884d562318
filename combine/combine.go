// Package combine implements stage B of the pipeline: unifying a module's
// interface file and body file into one combined module whose declarations
// carry both signature (from the interface) and body (from the body) and
// whose private entries come from body-only declarations.
package combine

import (
	"nova/ast"
	"nova/report"
)

// CombinedDecl is one declaration of the combined module, carrying the
// visibility computed by combining.
type CombinedDecl struct {
	Decl    ast.Decl
	Vis     ast.Visibility
	TypeVis ast.Visibility // meaningful only for record/union/opaque decls
}

// CombinedModule is the output of stage B.
type CombinedModule struct {
	Name  string
	Decls []CombinedDecl
}

// Combine merges an interface file and a body file into one CombinedModule.
// All structural comparisons
// between interface and body declarations happen "prior to qualification"
//: they compare TypeSpec syntax trees by local spelling, not
// resolved types, since type resolution (stage D) has not run yet.
func Combine(iface, body *ast.ModuleFile) (*CombinedModule, []*report.CompileError) {
	var errs []*report.CompileError

	ifaceName := iface.Header.String()
	bodyName := body.Header.String()
	if ifaceName != bodyName {
		errs = append(errs, report.New(report.KindDeclaration, nil,
			"module name mismatch: interface declares `%s`, body declares `%s`", ifaceName, bodyName))
		return nil, errs
	}

	bodyByName := make(map[string]ast.Decl)
	var bodyInstances []*ast.InstanceDecl
	matchedBodyInstances := make(map[*ast.InstanceDecl]bool)

	for _, d := range body.Decls {
		if inst, ok := d.(*ast.InstanceDecl); ok {
			bodyInstances = append(bodyInstances, inst)
			continue
		}
		bodyByName[d.Name()] = d
	}

	matchedNames := make(map[string]bool)

	cm := &CombinedModule{Name: ifaceName}

	for _, d := range iface.Decls {
		if tc, ok := d.(*ast.TypeclassDecl); ok {
			if tc.Typarams().Len() != 1 {
				errs = append(errs, report.New(report.KindDeclaration, tc.Span(),
					"multi-argument typeclass unsupported: `%s` declares %d type parameters", tc.Name(), tc.Typarams().Len()))
				continue
			}
		}

		if inst, ok := d.(*ast.InstanceDecl); ok {
			bodyInst, ok := findMatchingInstance(bodyInstances, inst)
			if !ok {
				errs = append(errs, report.New(report.KindDeclaration, inst.Span(),
					"missing body definition for instance of `%s`", inst.Typeclass.String()))
				continue
			}
			matchedBodyInstances[bodyInst] = true

			if axis := instanceMismatchAxis(inst, bodyInst); axis != "" {
				errs = append(errs, report.New(report.KindDeclaration, inst.Span(),
					"interface and body instances of `%s` disagree on %s", inst.Typeclass.String(), axis))
				continue
			}

			cm.Decls = append(cm.Decls, CombinedDecl{Decl: mergeInstance(inst, bodyInst), Vis: ast.VisPublic})
			continue
		}

		b, ok := bodyByName[d.Name()]
		matchedNames[d.Name()] = true
		if !ok {
			errs = append(errs, report.New(report.KindDeclaration, d.Span(),
				"missing body definition for `%s`", d.Name()))
			continue
		}

		merged, typeVis, axis := mergeDecl(d, b)
		if axis != "" {
			errs = append(errs, report.New(report.KindDeclaration, d.Span(),
				"interface and body declarations of `%s` disagree on %s", d.Name(), axis))
			continue
		}

		cm.Decls = append(cm.Decls, CombinedDecl{Decl: merged, Vis: ast.VisPublic, TypeVis: typeVis})
	}

	// Body-only definitions become Private. Instance bodies matched above
	// are elided; unmatched ones are private instances.
	for _, d := range body.Decls {
		if inst, ok := d.(*ast.InstanceDecl); ok {
			if !matchedBodyInstances[inst] {
				cm.Decls = append(cm.Decls, CombinedDecl{Decl: inst, Vis: ast.VisPrivate})
			}
			continue
		}

		if matchedNames[d.Name()] {
			continue
		}

		if tc, ok := d.(*ast.TypeclassDecl); ok {
			if tc.Typarams().Len() != 1 {
				errs = append(errs, report.New(report.KindDeclaration, tc.Span(),
					"multi-argument typeclass unsupported: `%s` declares %d type parameters", tc.Name(), tc.Typarams().Len()))
				continue
			}
		}

		cm.Decls = append(cm.Decls, CombinedDecl{Decl: d, Vis: ast.VisPrivate, TypeVis: ast.VisPrivate})
	}

	if len(errs) > 0 {
		return cm, errs
	}
	return cm, nil
}

// mergeDecl verifies D (interface) and B (body) agree on kind and, for
// functions/types, on structure; it returns the merged declaration (the
// body's, since only the body carries definitions), the computed TypeVis,
// and the name of the first mismatching axis (empty if none).
func mergeDecl(d, b ast.Decl) (ast.Decl, ast.Visibility, string) {
	switch id := d.(type) {
	case *ast.OpaqueDecl:
		// Opaque interface declarations hide the body's real structure:
		// the body may be a full record/union (or another opaque decl).
		// Decision recorded in DESIGN.md.
		bu, ok := bodyUniverse(b)
		if !ok {
			return nil, 0, "kind"
		}
		if bu != id.Universe {
			return nil, 0, "universe"
		}
		return b, ast.VisOpaque, ""

	case *ast.RecordDecl:
		bb, ok := b.(*ast.RecordDecl)
		if !ok {
			return nil, 0, "kind"
		}
		if id.Universe != bb.Universe {
			return nil, 0, "universe"
		}
		if !typaramsEqual(id.Typarams(), bb.Typarams()) {
			return nil, 0, "typarams"
		}
		return bb, ast.VisPublic, ""

	case *ast.UnionDecl:
		bb, ok := b.(*ast.UnionDecl)
		if !ok {
			return nil, 0, "kind"
		}
		if id.Universe != bb.Universe {
			return nil, 0, "universe"
		}
		if !typaramsEqual(id.Typarams(), bb.Typarams()) {
			return nil, 0, "typarams"
		}
		return bb, ast.VisPublic, ""

	case *ast.ConstDecl:
		if _, ok := b.(*ast.ConstDecl); !ok {
			return nil, 0, "kind"
		}
		return b, 0, ""

	case *ast.FuncDecl:
		bf, ok := b.(*ast.FuncDecl)
		if !ok {
			return nil, 0, "kind"
		}
		if !typaramsEqual(id.Typarams(), bf.Typarams()) {
			return nil, 0, "typarams"
		}
		if !paramsEqual(id.Params, bf.Params) {
			return nil, 0, "value parameters"
		}
		if !specEqual(id.ReturnType, bf.ReturnType) {
			return nil, 0, "return type"
		}
		return bf, 0, ""

	case *ast.TypeclassDecl:
		bt, ok := b.(*ast.TypeclassDecl)
		if !ok {
			return nil, 0, "kind"
		}
		if !typaramsEqual(id.Typarams(), bt.Typarams()) {
			return nil, 0, "typarams"
		}
		return bt, 0, ""

	default:
		return b, 0, ""
	}
}

func bodyUniverse(b ast.Decl) (string, bool) {
	switch bb := b.(type) {
	case *ast.RecordDecl:
		return bb.Universe, true
	case *ast.UnionDecl:
		return bb.Universe, true
	case *ast.OpaqueDecl:
		return bb.Universe, true
	default:
		return "", false
	}
}

func findMatchingInstance(candidates []*ast.InstanceDecl, target *ast.InstanceDecl) (*ast.InstanceDecl, bool) {
	for _, c := range candidates {
		if c.Typeclass == target.Typeclass && specEqual(c.Argument, target.Argument) {
			return c, true
		}
	}
	return nil, false
}

// instanceMismatchAxis matches an interface instance against its body
// definition on typeclass name, typarams, and argument type.
func instanceMismatchAxis(d, b *ast.InstanceDecl) string {
	if !typaramsEqual(d.Typarams(), b.Typarams()) {
		return "typarams"
	}
	if !specEqual(d.Argument, b.Argument) {
		return "argument type"
	}
	return ""
}

func mergeInstance(d, b *ast.InstanceDecl) *ast.InstanceDecl { return b }

// -----------------------------------------------------------------------------
// Structural equality, prior to qualification: compared at the
// TypeSpec syntax level using local spellings, since stage D (type
// resolution) has not yet run.

func typaramsEqual(a, b *ast.TypeParamSet) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		pa, pb := a.At(i), b.At(i)
		if pa.Name != pb.Name || pa.DeclaredUniverse != pb.DeclaredUniverse {
			return false
		}
	}
	return true
}

func paramsEqual(a, b []ast.Param) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !specEqual(a[i].Type, b[i].Type) {
			return false
		}
	}
	return true
}

func specEqual(a, b ast.TypeSpec) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case *ast.PrimSpec:
		bv, ok := b.(*ast.PrimSpec)
		return ok && av.Name == bv.Name

	case *ast.NameSpec:
		bv, ok := b.(*ast.NameSpec)
		if !ok || av.Name.LocalName != bv.Name.LocalName || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !specEqual(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true

	case *ast.ArraySpec:
		bv, ok := b.(*ast.ArraySpec)
		return ok && av.Region == bv.Region && specEqual(av.Elem, bv.Elem)

	case *ast.ReadRefSpec:
		bv, ok := b.(*ast.ReadRefSpec)
		return ok && av.Region == bv.Region && specEqual(av.Referent, bv.Referent)

	case *ast.WriteRefSpec:
		bv, ok := b.(*ast.WriteRefSpec)
		return ok && av.Region == bv.Region && specEqual(av.Referent, bv.Referent)

	case *ast.RawPointerSpec:
		bv, ok := b.(*ast.RawPointerSpec)
		return ok && specEqual(av.Pointee, bv.Pointee)

	case *ast.RegionSpec:
		bv, ok := b.(*ast.RegionSpec)
		return ok && av.RegionName == bv.RegionName

	default:
		return false
	}
}
