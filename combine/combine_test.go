package combine

import (
	"testing"

	"nova/ast"
)

func funcDecl(name string, vis ast.Visibility, body []ast.Stmt) *ast.FuncDecl {
	return ast.NewFuncDecl(ast.NewDeclBase(name, ast.NewTypeParamSet(), nil, vis), nil, nil, body)
}

func typeclassDecl(name string, typarams *ast.TypeParamSet) *ast.TypeclassDecl {
	return ast.NewTypeclassDecl(ast.NewDeclBase(name, typarams, nil, ast.VisPublic), nil)
}

// Scenario 8: module name mismatch. Interface names `Foo`, body names `Bar`.
// Expected: DeclarationError: module name mismatch.
func TestModuleNameMismatch(t *testing.T) {
	iface := &ast.ModuleFile{Header: ast.ModuleName{"Foo"}}
	body := &ast.ModuleFile{Header: ast.ModuleName{"Bar"}}

	_, errs := Combine(iface, body)
	if len(errs) == 0 {
		t.Fatal("expected a DeclarationError, got none")
	}
	if errs[0].ErrKind.String() != "DeclarationError" {
		t.Fatalf("expected DeclarationError, got %s", errs[0].ErrKind)
	}
}

// Scenario 7: multi-argument typeclass. A typeclass with two parameters.
// Expected: DeclarationError: multi-argument typeclass unsupported.
func TestMultiArgumentTypeclassRejected(t *testing.T) {
	typarams := ast.NewTypeParamSet()
	_ = typarams.Add(ast.TypeParameter{Name: "A", DeclaredUniverse: "Type"})
	_ = typarams.Add(ast.TypeParameter{Name: "B", DeclaredUniverse: "Type"})

	iface := &ast.ModuleFile{
		Header: ast.ModuleName{"Main"},
		Decls:  []ast.Decl{typeclassDecl("Pair", typarams)},
	}
	body := &ast.ModuleFile{
		Header: ast.ModuleName{"Main"},
		Decls:  []ast.Decl{typeclassDecl("Pair", typarams)},
	}

	_, errs := Combine(iface, body)
	if len(errs) == 0 {
		t.Fatal("expected a DeclarationError, got none")
	}
	if errs[0].ErrKind.String() != "DeclarationError" {
		t.Fatalf("expected DeclarationError, got %s", errs[0].ErrKind)
	}
}

// A multi-argument typeclass declared only in the body (no interface
// counterpart) is rejected the same way as one present in both halves.
func TestMultiArgumentTypeclassRejectedBodyOnly(t *testing.T) {
	typarams := ast.NewTypeParamSet()
	_ = typarams.Add(ast.TypeParameter{Name: "A", DeclaredUniverse: "Type"})
	_ = typarams.Add(ast.TypeParameter{Name: "B", DeclaredUniverse: "Type"})

	iface := &ast.ModuleFile{Header: ast.ModuleName{"Main"}}
	bodyOnly := &ast.ModuleFile{
		Header: ast.ModuleName{"Main"},
		Decls:  []ast.Decl{typeclassDecl("Pair", typarams)},
	}

	cm, errs := Combine(iface, bodyOnly)
	if len(errs) == 0 {
		t.Fatal("expected a DeclarationError, got none")
	}
	if errs[0].ErrKind.String() != "DeclarationError" {
		t.Fatalf("expected DeclarationError, got %s", errs[0].ErrKind)
	}
	for _, d := range cm.Decls {
		if _, ok := d.Decl.(*ast.TypeclassDecl); ok {
			t.Fatal("expected the multi-argument typeclass not to be committed")
		}
	}
}

// Round-trip: combining a matching interface/body pair yields the
// interface's declared signature exactly, with the body's definition
// attached and Public visibility.
func TestCombineRoundTrip(t *testing.T) {
	ifaceFn := funcDecl("Main", ast.VisPublic, nil)
	bodyFn := funcDecl("Main", ast.VisPublic, []ast.Stmt{&ast.ReturnStmt{}})

	iface := &ast.ModuleFile{Header: ast.ModuleName{"Main"}, Decls: []ast.Decl{ifaceFn}}
	body := &ast.ModuleFile{Header: ast.ModuleName{"Main"}, Decls: []ast.Decl{bodyFn}}

	cm, errs := Combine(iface, body)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got: %v", errs)
	}
	if len(cm.Decls) != 1 {
		t.Fatalf("expected exactly one combined declaration, got %d", len(cm.Decls))
	}

	merged := cm.Decls[0]
	if merged.Decl.Name() != "Main" {
		t.Fatalf("expected combined decl named `Main`, got `%s`", merged.Decl.Name())
	}
	if merged.Vis != ast.VisPublic {
		t.Fatalf("expected Public visibility, got %v", merged.Vis)
	}
	fd, ok := merged.Decl.(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected a *ast.FuncDecl, got %T", merged.Decl)
	}
	if len(fd.Body) != 1 {
		t.Fatalf("expected the body's definition to be attached, got %d statement(s)", len(fd.Body))
	}
}

// A body-only declaration becomes a private entry not present in the
// interface.
func TestCombinePrivateBodyOnlyDecl(t *testing.T) {
	iface := &ast.ModuleFile{Header: ast.ModuleName{"Main"}}
	body := &ast.ModuleFile{
		Header: ast.ModuleName{"Main"},
		Decls:  []ast.Decl{funcDecl("helper", ast.VisPrivate, []ast.Stmt{&ast.ReturnStmt{}})},
	}

	cm, errs := Combine(iface, body)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got: %v", errs)
	}
	if len(cm.Decls) != 1 || cm.Decls[0].Vis != ast.VisPrivate {
		t.Fatalf("expected one private decl, got %+v", cm.Decls)
	}
}
