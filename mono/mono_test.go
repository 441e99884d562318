package mono

import (
	"testing"

	"nova/ast"
	"nova/env"
	"nova/report"
	"nova/typecheck"
	"nova/types"
)

// Invariant 4: stripping is idempotent.
func TestStripIdempotent(t *testing.T) {
	boxName := ast.Qualify("main", "Box")
	linear := types.NewNamedType(ast.Qualify("main", "R"), nil, types.Linear)
	nested := types.NewNamedType(boxName, []types.Type{linear}, types.TypeUniverse)

	once := Strip(nested)
	twice := Strip(once)
	if !types.Equals(once, twice) {
		t.Fatalf("stripping is not idempotent: strip(t)=%s, strip(strip(t))=%s", once.Repr(), twice.Repr())
	}
}

// Invariant 5: a type's universe is unchanged by stripping its regions.
func TestUniverseInvariantUnderStrip(t *testing.T) {
	boxName := ast.Qualify("main", "Box")
	linear := types.NewNamedType(ast.Qualify("main", "R"), nil, types.Linear)
	withArr := types.NewNamedType(boxName, []types.Type{linear}, types.TypeUniverse)

	stripped := Strip(withArr)
	if withArr.Universe() != stripped.Universe() {
		t.Fatalf("universe changed under stripping: %s != %s", withArr.Universe(), stripped.Universe())
	}

	arr := types.ArrayType{Elem: types.IntegerType{Signed: types.Signed, Width: 32}, Region: types.RegionIDType{ID: "r"}}
	strippedArr := Strip(arr)
	if arr.Universe() != strippedArr.Universe() {
		t.Fatalf("array universe changed under stripping: %s != %s", arr.Universe(), strippedArr.Universe())
	}
}

// Two instantiations differing only in a named type's region argument must
// strip to the same representation, since the monomorph key is computed
// from Strip's output.
func TestStripDropsRegionTypeArgument(t *testing.T) {
	boxName := ast.Qualify("main", "Box")
	withR1 := types.NewNamedType(boxName, []types.Type{
		types.IntegerType{Signed: types.Signed, Width: 32},
		types.RegionIDType{ID: "r1"},
	}, types.TypeUniverse)
	withR2 := types.NewNamedType(boxName, []types.Type{
		types.IntegerType{Signed: types.Signed, Width: 32},
		types.RegionIDType{ID: "r2"},
	}, types.TypeUniverse)

	strippedR1 := Strip(withR1)
	strippedR2 := Strip(withR2)
	if !types.Equals(strippedR1, strippedR2) {
		t.Fatalf("region-only-distinct instantiations did not collapse: %s vs %s", strippedR1.Repr(), strippedR2.Repr())
	}

	named, ok := strippedR1.(*types.NamedType)
	if !ok {
		t.Fatalf("expected *NamedType, got %T", strippedR1)
	}
	if len(named.Args) != 1 {
		t.Fatalf("expected the region argument to be dropped, got %d args", len(named.Args))
	}
}

func TestStripUnsubstitutedTyVarPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Strip to panic on an unsubstituted type variable")
		}
	}()
	Strip(&types.TyVar{Name: "T", DeclaredUniverse: types.TypeUniverse})
}

func newGenericIdentityEnv() (*env.Environment, ast.QualifiedIdent) {
	e := env.New()
	e.AddModule("main")

	typarams := ast.NewTypeParamSet()
	_ = typarams.Add(ast.TypeParameter{Name: "T", DeclaredUniverse: "Free"})

	name := ast.Qualify("main", "Identity")
	e.AddFuncDecl(env.FuncSig{
		Name:       name,
		Typarams:   typarams,
		ParamNames: []string{"x"},
		Params:     []types.Type{&types.TyVar{Name: "T", DeclaredUniverse: types.Free, SourceDecl: name}},
		Return:     &types.TyVar{Name: "T", DeclaredUniverse: types.Free, SourceDecl: name},
	})
	return e, name
}

// Invariant 3: for every generic call in the monomorphic AST, the
// instantiation table contains its (name, stripped_args) key.
func TestGenericCallIsInterned(t *testing.T) {
	e, identityName := newGenericIdentityEnv()

	sig := env.FuncSig{Name: ast.Qualify("main", "Main"), Typarams: ast.NewTypeParamSet()}
	rep := report.NewReporter(report.LogLevelSilent, report.FormatText)
	c := typecheck.NewChecker(e, rep, sig, false)

	body := []ast.Stmt{
		&ast.ExprStmt{Value: &ast.CallExpr{
			Func: identityName,
			Args: []ast.Expr{&ast.LitExpr{Kind: ast.LitInt, Text: "1"}},
		}},
	}
	typed := c.CheckFunc(body)
	if rep.ErrorCount() != 0 {
		t.Fatalf("expected the call to type-check cleanly, got: %v", rep.Errors())
	}

	lowerer := NewLowerer(e)
	mono := lowerer.LowerFunc(typed)

	stmt, ok := mono[0].(*MExprStmt)
	if !ok {
		t.Fatalf("expected *MExprStmt, got %T", mono[0])
	}
	call, ok := stmt.Value.(*MCallGeneric)
	if !ok {
		t.Fatalf("expected a generic call to be tabulated, got %T", stmt.Value)
	}

	strippedArgs := []types.Type{types.IntegerType{Signed: types.Signed, Width: 32}}
	id, found := e.Mono.Lookup(identityName, strippedArgs)
	if !found {
		t.Fatal("expected the instantiation table to contain the call's key")
	}
	if id != call.ID {
		t.Fatalf("tabulated id %d does not match the lowered call's id %d", id, call.ID)
	}
}
