package linearity

import (
	"testing"

	"nova/ast"
	"nova/env"
	"nova/report"
	"nova/typecheck"
	"nova/types"
)

// newTestEnv registers `record R : Linear is x: Integer32 end` and a
// function `Consume(r: R)`, and returns the environment and R's qualified
// name.
func newTestEnv() (*env.Environment, ast.QualifiedIdent) {
	e := env.New()
	e.AddModule("main")

	rName := ast.Qualify("main", "R")
	e.AddTypeDecl(env.TypeDeclEntry{
		Name:         rName,
		Kind:         ast.DeclRecord,
		DeclUniverse: types.Linear,
		Typarams:     ast.NewTypeParamSet(),
		FieldNames:   []string{"x"},
		FieldTypes:   []types.Type{types.IntegerType{Signed: types.Signed, Width: 32}},
	})

	e.AddFuncDecl(env.FuncSig{
		Name:       ast.Qualify("main", "Consume"),
		Typarams:   ast.NewTypeParamSet(),
		ParamNames: []string{"r"},
		Params:     []types.Type{types.NewNamedType(rName, nil, types.Linear)},
		Return:     types.UnitType{},
	})

	return e, rName
}

func recordLit(rName ast.QualifiedIdent) ast.Expr {
	return &ast.RecordLitExpr{
		Type: rName,
		Fields: []ast.FieldInit{
			{Name: "x", Value: &ast.LitExpr{Kind: ast.LitInt, Text: "32"}},
		},
	}
}

func localIdent(name string) ast.Expr {
	return &ast.IdentExpr{Ident: ast.QualifiedIdent{LocalName: name}}
}

// run type-checks and then linearity-checks body, returning the reporter
// that collected the diagnostics.
func run(t *testing.T, e *env.Environment, body []ast.Stmt) *report.Reporter {
	t.Helper()
	rep := report.NewReporter(report.LogLevelSilent, report.FormatText)
	sig := env.FuncSig{Name: ast.Qualify("main", "Main"), Typarams: ast.NewTypeParamSet()}
	c := typecheck.NewChecker(e, rep, sig, false)
	typed := c.CheckFunc(body)
	if rep.ErrorCount() == 0 {
		CheckFunc(e, rep, sig, typed)
	}
	return rep
}

// Scenario 1: destructure a linear record. Expected: accepted.
func TestDestructureLinearRecord_Accepted(t *testing.T) {
	e, rName := newTestEnv()
	body := []ast.Stmt{
		&ast.LetStmt{Name: "r", Value: recordLit(rName)},
		&ast.DestructureStmt{Slots: []string{"x"}, Value: localIdent("r")},
		&ast.ReturnStmt{},
	}
	rep := run(t, e, body)
	if rep.ErrorCount() != 0 {
		t.Fatalf("expected acceptance, got %d error(s): %v", rep.ErrorCount(), rep.Errors())
	}
}

// Scenario 2: forget a linear record. Expected: LinearityError.
func TestForgetLinearRecord_Rejected(t *testing.T) {
	e, rName := newTestEnv()
	body := []ast.Stmt{
		&ast.LetStmt{Name: "r", Value: recordLit(rName)},
		&ast.ReturnStmt{},
	}
	rep := run(t, e, body)
	if rep.ErrorCount() == 0 {
		t.Fatal("expected a LinearityError, got none")
	}
	if rep.Errors()[0].ErrKind != report.KindLinearity {
		t.Fatalf("expected LinearityError, got %s", rep.Errors()[0].ErrKind)
	}
}

// Scenario 3: consume in both branches of `if`. Expected: accepted.
func TestConsumeInBothBranches_Accepted(t *testing.T) {
	e, rName := newTestEnv()
	body := []ast.Stmt{
		&ast.LetStmt{Name: "r", Value: recordLit(rName)},
		&ast.IfStmt{
			Cond: &ast.LitExpr{Kind: ast.LitBool, Text: "true"},
			Then: []ast.Stmt{&ast.DestructureStmt{Slots: []string{"x"}, Value: localIdent("r")}},
			Else: []ast.Stmt{&ast.DestructureStmt{Slots: []string{"x"}, Value: localIdent("r")}},
		},
		&ast.ReturnStmt{},
	}
	rep := run(t, e, body)
	if rep.ErrorCount() != 0 {
		t.Fatalf("expected acceptance, got %d error(s): %v", rep.ErrorCount(), rep.Errors())
	}
}

// Scenario 4: asymmetric consume (consumed in `then`, not in `else`).
// Expected: LinearityError: asymmetric consumption across branches.
func TestAsymmetricConsume_Rejected(t *testing.T) {
	e, rName := newTestEnv()
	body := []ast.Stmt{
		&ast.LetStmt{Name: "r", Value: recordLit(rName)},
		&ast.IfStmt{
			Cond: &ast.LitExpr{Kind: ast.LitBool, Text: "true"},
			Then: []ast.Stmt{&ast.DestructureStmt{Slots: []string{"x"}, Value: localIdent("r")}},
			Else: []ast.Stmt{},
		},
		&ast.ReturnStmt{},
	}
	rep := run(t, e, body)
	if rep.ErrorCount() == 0 {
		t.Fatal("expected a LinearityError, got none")
	}
	if rep.Errors()[0].ErrKind != report.KindLinearity {
		t.Fatalf("expected LinearityError, got %s", rep.Errors()[0].ErrKind)
	}
}

// Scenario 5: consume twice by call. Expected: LinearityError: value used
// after being consumed.
func TestConsumeTwiceByCall_Rejected(t *testing.T) {
	e, rName := newTestEnv()
	body := []ast.Stmt{
		&ast.LetStmt{Name: "r", Value: recordLit(rName)},
		&ast.ExprStmt{Value: &ast.CallExpr{Func: ast.Qualify("main", "Consume"), Args: []ast.Expr{localIdent("r")}}},
		&ast.ExprStmt{Value: &ast.CallExpr{Func: ast.Qualify("main", "Consume"), Args: []ast.Expr{localIdent("r")}}},
	}
	rep := run(t, e, body)
	if rep.ErrorCount() == 0 {
		t.Fatal("expected a LinearityError, got none")
	}
	if rep.Errors()[0].ErrKind != report.KindLinearity {
		t.Fatalf("expected LinearityError, got %s", rep.Errors()[0].ErrKind)
	}
}

// Scenario 6: forget a case binding. Destructuring a union's `Some` arm
// binds a linear value but never consumes it. Expected: LinearityError:
// value forgotten.
func TestForgetCaseBinding_Rejected(t *testing.T) {
	e, rName := newTestEnv()

	optName := ast.Qualify("main", "Optional")
	e.AddTypeDecl(env.TypeDeclEntry{
		Name:          optName,
		Kind:          ast.DeclUnion,
		DeclUniverse:  types.Linear,
		Typarams:      ast.NewTypeParamSet(),
		CaseNames:     []string{"Some", "None"},
		CaseSlots:     [][]types.Type{{types.NewNamedType(rName, nil, types.Linear)}, {}},
		CaseSlotNames: [][]string{{"value"}, {}},
	})

	e.AddFuncDecl(env.FuncSig{
		Name:       ast.Qualify("main", "MakeOptional"),
		Typarams:   ast.NewTypeParamSet(),
		ParamNames: []string{"r"},
		Params:     []types.Type{types.NewNamedType(rName, nil, types.Linear)},
		Return:     types.NewNamedType(optName, nil, types.Linear),
	})

	body := []ast.Stmt{
		&ast.LetStmt{Name: "r", Value: recordLit(rName)},
		&ast.LetStmt{Name: "o", Value: &ast.CallExpr{Func: ast.Qualify("main", "MakeOptional"), Args: []ast.Expr{localIdent("r")}}},
		&ast.CaseStmt{
			Scrutinee: localIdent("o"),
			Arms: []ast.CaseArm{
				{CaseName: "Some", Binds: []string{"value"}, Body: []ast.Stmt{}},
				{CaseName: "None", Binds: []string{}, Body: []ast.Stmt{}},
			},
		},
	}
	rep := run(t, e, body)
	if rep.ErrorCount() == 0 {
		t.Fatal("expected a LinearityError, got none")
	}
	if rep.Errors()[0].ErrKind != report.KindLinearity {
		t.Fatalf("expected LinearityError, got %s", rep.Errors()[0].ErrKind)
	}
}
