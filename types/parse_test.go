package types

import (
	"testing"

	"nova/ast"
	"nova/report"
)

// fakeEnv is a minimal EnvLookup backed by a flat map, standing in for
// env.Environment so this package's tests don't depend on package env.
type fakeEnv map[string]LocalTypeSig

func (f fakeEnv) LookupTypeDecl(name ast.QualifiedIdent) (LocalTypeSig, bool) {
	sig, ok := f[name.String()]
	return sig, ok
}

func TestParsePrimitive(t *testing.T) {
	spec := ast.NewPrimSpec(nil, "Integer32")
	got := Parse(fakeEnv{}, nil, NewRegionMap(), ast.NewTypeParamSet(), spec, false)
	want := IntegerType{Signed: Signed, Width: 32}
	if !Equals(got, want) {
		t.Fatalf("got %s, want %s", got.Repr(), want.Repr())
	}
}

func TestParseUnknownPrimitivePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Parse to panic on an unknown primitive")
		}
	}()
	Parse(fakeEnv{}, nil, NewRegionMap(), ast.NewTypeParamSet(), ast.NewPrimSpec(nil, "NotAType"), false)
}

func TestParseTyparamYieldsTyVar(t *testing.T) {
	typarams := ast.NewTypeParamSet()
	if err := typarams.Add(ast.TypeParameter{Name: "T", DeclaredUniverse: "Free"}); err != nil {
		t.Fatal(err)
	}

	spec := ast.NewNameSpec(nil, ast.QualifiedIdent{LocalName: "T"})
	got := Parse(fakeEnv{}, nil, NewRegionMap(), typarams, spec, false)

	tv, ok := got.(*TyVar)
	if !ok {
		t.Fatalf("expected *TyVar, got %T", got)
	}
	if tv.Name != "T" || tv.DeclaredUniverse != Free {
		t.Fatalf("unexpected TyVar: %+v", tv)
	}
}

func TestParseNamedTypeFromEnvironment(t *testing.T) {
	rName := ast.Qualify("main", "R")
	env := fakeEnv{rName.String(): {Name: rName, DeclUniverse: Linear, TyparamCount: 0}}

	spec := ast.NewNameSpec(nil, rName)
	got := Parse(env, nil, NewRegionMap(), ast.NewTypeParamSet(), spec, false)

	named, ok := got.(*NamedType)
	if !ok {
		t.Fatalf("expected *NamedType, got %T", got)
	}
	if named.Universe() != Linear {
		t.Fatalf("expected Linear universe, got %s", named.Universe())
	}
}

func TestParseNamedTypeWrongArgCountPanics(t *testing.T) {
	boxName := ast.Qualify("main", "Box")
	env := fakeEnv{boxName.String(): {Name: boxName, DeclUniverse: TypeUniverse, TyparamCount: 1}}

	defer func() {
		if recover() == nil {
			t.Fatal("expected Parse to panic on an arity mismatch")
		}
	}()
	Parse(env, nil, NewRegionMap(), ast.NewTypeParamSet(), ast.NewNameSpec(nil, boxName), false)
}

func TestParseRawPointerRequiresUnsafe(t *testing.T) {
	spec := &ast.RawPointerSpec{Pointee: ast.NewPrimSpec(nil, "Integer32")}

	defer func() {
		x := recover()
		if x == nil {
			t.Fatal("expected Parse to panic outside an unsafe module")
		}
		le, ok := x.(*report.LocalError)
		if !ok || le.ErrKind != report.KindType {
			t.Fatalf("expected a TypeError, got %v", x)
		}
	}()
	Parse(fakeEnv{}, nil, NewRegionMap(), ast.NewTypeParamSet(), spec, false)
}

func TestParseRawPointerAllowedWhenUnsafe(t *testing.T) {
	spec := &ast.RawPointerSpec{Pointee: ast.NewPrimSpec(nil, "Integer32")}
	got := Parse(fakeEnv{}, nil, NewRegionMap(), ast.NewTypeParamSet(), spec, true)
	if _, ok := got.(RawPointerType); !ok {
		t.Fatalf("expected RawPointerType, got %T", got)
	}
}
