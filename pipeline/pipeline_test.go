package pipeline

import (
	"testing"

	"nova/ast"
	"nova/env"
	"nova/mono"
	"nova/report"
)

func funcDecl(name string, params []ast.Param, ret ast.TypeSpec, body []ast.Stmt) *ast.FuncDecl {
	return ast.NewFuncDecl(ast.NewDeclBase(name, ast.NewTypeParamSet(), nil, ast.VisPublic), params, ret, body)
}

func moduleA() (ModuleInput, string) {
	identitySig := funcDecl("Identity",
		[]ast.Param{{Name: "x", Type: ast.NewPrimSpec(nil, "Integer32")}},
		ast.NewPrimSpec(nil, "Integer32"), nil)
	identityBody := funcDecl("Identity",
		[]ast.Param{{Name: "x", Type: ast.NewPrimSpec(nil, "Integer32")}},
		ast.NewPrimSpec(nil, "Integer32"),
		[]ast.Stmt{&ast.ReturnStmt{Value: &ast.IdentExpr{Ident: ast.QualifiedIdent{LocalName: "x"}}}})

	return ModuleInput{
		Name:  "a",
		Iface: &ast.ModuleFile{Header: ast.ModuleName{"a"}, Decls: []ast.Decl{identitySig}},
		Body:  &ast.ModuleFile{Header: ast.ModuleName{"a"}, Decls: []ast.Decl{identityBody}},
	}, "a"
}

func moduleB(aName string) ModuleInput {
	mainSig := funcDecl("Main", nil, nil, nil)
	mainBody := funcDecl("Main", nil, nil, []ast.Stmt{
		&ast.ExprStmt{Value: &ast.CallExpr{
			Func: ast.Qualify(aName, "Identity"),
			Args: []ast.Expr{&ast.LitExpr{Kind: ast.LitInt, Text: "1"}},
		}},
	})

	imports := []ast.ImportDirective{{Module: ast.ModuleName{aName}, Name: "Identity"}}

	return ModuleInput{
		Name:  "b",
		Iface: &ast.ModuleFile{Header: ast.ModuleName{"b"}, Imports: imports, Decls: []ast.Decl{mainSig}},
		Body:  &ast.ModuleFile{Header: ast.ModuleName{"b"}, Imports: imports, Decls: []ast.Decl{mainBody}},
	}
}

// Modules are processed in topological order of imports, and stage H is
// skipped entirely when no target is given.
func TestRunTypecheckOnly(t *testing.T) {
	a, aName := moduleA()
	b := moduleB(aName)
	rep := report.NewReporter(report.LogLevelSilent, report.FormatText)

	result, err := Run(rep, []ModuleInput{b, a}, nil)
	if err != nil {
		t.Fatalf("expected a clean run, got: %v", err)
	}
	if rep.ErrorCount() != 0 {
		t.Fatalf("expected no diagnostics, got: %v", rep.Errors())
	}
	if !result.Env.HasModule("a") || !result.Env.HasModule("b") {
		t.Fatal("expected both modules to be committed to the environment")
	}
}

// Supplying a lowering target drives stage H and produces a non-empty
// artifact.
func TestRunWithLoweringTarget(t *testing.T) {
	a, aName := moduleA()
	b := moduleB(aName)
	rep := report.NewReporter(report.LogLevelSilent, report.FormatText)

	target := newStubTarget()
	_, err := Run(rep, []ModuleInput{a, b}, target)
	if err != nil {
		t.Fatalf("expected a clean run, got: %v", err)
	}
	if len(target.lowered) == 0 {
		t.Fatal("expected at least one function to be lowered")
	}
}

// An import cycle is reported as an error before any stage runs.
func TestRunImportCycleDetected(t *testing.T) {
	aMod := ModuleInput{
		Name:  "a",
		Iface: &ast.ModuleFile{Header: ast.ModuleName{"a"}, Imports: []ast.ImportDirective{{Module: ast.ModuleName{"b"}}}},
		Body:  &ast.ModuleFile{Header: ast.ModuleName{"a"}},
	}
	bMod := ModuleInput{
		Name:  "b",
		Iface: &ast.ModuleFile{Header: ast.ModuleName{"b"}, Imports: []ast.ImportDirective{{Module: ast.ModuleName{"a"}}}},
		Body:  &ast.ModuleFile{Header: ast.ModuleName{"b"}},
	}
	rep := report.NewReporter(report.LogLevelSilent, report.FormatText)

	if _, err := Run(rep, []ModuleInput{aMod, bMod}, nil); err == nil {
		t.Fatal("expected an import cycle error")
	}
}

// A module that fails type checking aborts the whole run; a later module is
// never reached.
func TestRunAbortsOnFirstError(t *testing.T) {
	bad := funcDecl("Bad", nil, nil, []ast.Stmt{
		&ast.ExprStmt{Value: &ast.CallExpr{Func: ast.Qualify("c", "DoesNotExist"), Args: nil}},
	})
	cMod := ModuleInput{
		Name:  "c",
		Iface: &ast.ModuleFile{Header: ast.ModuleName{"c"}, Decls: []ast.Decl{funcDecl("Bad", nil, nil, nil)}},
		Body:  &ast.ModuleFile{Header: ast.ModuleName{"c"}, Decls: []ast.Decl{bad}},
	}
	a, _ := moduleA()

	rep := report.NewReporter(report.LogLevelSilent, report.FormatText)
	result, err := Run(rep, []ModuleInput{cMod, a}, nil)
	if err == nil {
		t.Fatal("expected the run to abort on the failing module")
	}
	if result != nil {
		t.Fatal("expected no result on an aborted run")
	}
}

// stubTarget records which functions were lowered without building any
// real backend IR.
type stubTarget struct {
	lowered []ast.QualifiedIdent
}

func newStubTarget() *stubTarget { return &stubTarget{} }

func (s *stubTarget) LowerFunc(name ast.QualifiedIdent, _ env.FuncSig, _ []mono.MonoStmt) error {
	s.lowered = append(s.lowered, name)
	return nil
}

func (s *stubTarget) Finish() ([]byte, error) { return []byte("stub"), nil }
