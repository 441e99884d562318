package extract

import (
	"testing"

	"nova/ast"
	"nova/combine"
	"nova/env"
	"nova/report"
	"nova/types"
)

func recordDecl(name, universe string, fields ...ast.FieldSpec) *ast.RecordDecl {
	return ast.NewRecordDecl(ast.NewDeclBase(name, ast.NewTypeParamSet(), nil, ast.VisPublic), universe, fields, ast.VisPublic)
}

func funcDecl(name string, params []ast.Param, ret ast.TypeSpec) *ast.FuncDecl {
	return ast.NewFuncDecl(ast.NewDeclBase(name, ast.NewTypeParamSet(), nil, ast.VisPublic), params, ret, nil)
}

// Extracting a record commits a resolved field list under its qualified
// name, with the declared universe preserved.
func TestExtractRecord(t *testing.T) {
	e := env.New()
	e.AddModule("main")
	rep := report.NewReporter(report.LogLevelSilent, report.FormatText)

	decl := recordDecl("Point", "Free",
		ast.FieldSpec{Name: "x", Type: ast.NewPrimSpec(nil, "Integer32")},
		ast.FieldSpec{Name: "y", Type: ast.NewPrimSpec(nil, "Integer32")},
	)
	cm := &combine.CombinedModule{Name: "main", Decls: []combine.CombinedDecl{{Decl: decl, Vis: ast.VisPublic, TypeVis: ast.VisPublic}}}

	Extract(e, rep, "main", cm, false)
	if rep.ErrorCount() != 0 {
		t.Fatalf("expected no errors, got: %v", rep.Errors())
	}

	entry, ok := e.LookupTypeDeclEntry(ast.Qualify("main", "Point"))
	if !ok {
		t.Fatal("expected `Point` to be committed to the environment")
	}
	if entry.DeclUniverse != types.Free {
		t.Fatalf("expected Free universe, got %s", entry.DeclUniverse)
	}
	if len(entry.FieldNames) != 2 || entry.FieldNames[0] != "x" || entry.FieldNames[1] != "y" {
		t.Fatalf("unexpected field names: %v", entry.FieldNames)
	}
	if !types.Equals(entry.FieldTypes[0], types.IntegerType{Signed: types.Signed, Width: 32}) {
		t.Fatalf("unexpected field type: %s", entry.FieldTypes[0].Repr())
	}
}

// A function signature referencing a record declared later in the same
// module still resolves, since every type is extracted before any
// function.
func TestExtractFuncReferencingLaterRecord(t *testing.T) {
	e := env.New()
	e.AddModule("main")
	rep := report.NewReporter(report.LogLevelSilent, report.FormatText)

	fn := funcDecl("Origin", nil, ast.NewNameSpec(nil, ast.QualifiedIdent{LocalName: "Point"}))
	rec := recordDecl("Point", "Free", ast.FieldSpec{Name: "x", Type: ast.NewPrimSpec(nil, "Integer32")})

	cm := &combine.CombinedModule{
		Name: "main",
		Decls: []combine.CombinedDecl{
			{Decl: fn, Vis: ast.VisPublic},
			{Decl: rec, Vis: ast.VisPublic, TypeVis: ast.VisPublic},
		},
	}

	Extract(e, rep, "main", cm, false)
	if rep.ErrorCount() != 0 {
		t.Fatalf("expected no errors, got: %v", rep.Errors())
	}

	sig, ok := e.LookupFuncDecl(ast.Qualify("main", "Origin"))
	if !ok {
		t.Fatal("expected `Origin` to be committed to the environment")
	}
	named, ok := sig.Return.(*types.NamedType)
	if !ok || named.Name.String() != ast.Qualify("main", "Point").String() {
		t.Fatalf("expected a reference to `Point`, got %s", sig.Return.Repr())
	}
}

// A function whose return type does not resolve reports a diagnostic but
// does not stop the rest of the module from being extracted.
func TestExtractContinuesAfterError(t *testing.T) {
	e := env.New()
	e.AddModule("main")
	rep := report.NewReporter(report.LogLevelSilent, report.FormatText)

	badFn := funcDecl("Bad", nil, ast.NewNameSpec(nil, ast.QualifiedIdent{LocalName: "DoesNotExist"}))
	goodFn := funcDecl("Good", nil, nil)

	cm := &combine.CombinedModule{
		Name: "main",
		Decls: []combine.CombinedDecl{
			{Decl: badFn, Vis: ast.VisPublic},
			{Decl: goodFn, Vis: ast.VisPublic},
		},
	}

	Extract(e, rep, "main", cm, false)
	if rep.ErrorCount() == 0 {
		t.Fatal("expected an error extracting `Bad`")
	}
	if _, ok := e.LookupFuncDecl(ast.Qualify("main", "Good")); !ok {
		t.Fatal("expected `Good` to still be extracted despite `Bad` failing")
	}
}
