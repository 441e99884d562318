// Package pipeline orchestrates stages A through H over a set of modules,
// single-threaded and non-suspending: stages A through D run on one module
// at a time, then stages E through H run on each function body in turn,
// and the whole run aborts on the first stage that reports an error. It computes the module processing order
// itself, since env.Environment trusts its caller to add modules in
// topological order of imports.
package pipeline

import (
	"fmt"

	"nova/ast"
	"nova/combine"
	"nova/env"
	"nova/extract"
	"nova/imports"
	"nova/linearity"
	"nova/lower"
	"nova/mono"
	"nova/report"
	"nova/typecheck"
)

// ModuleInput is one module's interface and body files plus whatever the
// surrounding module-config loader decided about it.
type ModuleInput struct {
	Name   string
	Iface  *ast.ModuleFile
	Body   *ast.ModuleFile
	Unsafe bool
}

// Result carries everything a driver (the CLI, or a test) needs after a
// successful run.
type Result struct {
	Env *env.Environment
}

// Run processes every module in mods in topological order of imports,
// stopping at the first module or stage that reports an error. target may
// be nil, in which case stage H (lowering) is skipped — useful for a
// type-check-only invocation.
func Run(rep *report.Reporter, mods []ModuleInput, target lower.Target) (*Result, error) {
	order, err := topoOrder(mods)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]ModuleInput, len(mods))
	for _, m := range mods {
		byName[m.Name] = m
	}

	e := env.New()

	for _, name := range order {
		mi := byName[name]

		cm, errs := combine.Combine(mi.Iface, mi.Body)
		if reportAll(rep, errs) {
			return nil, fmt.Errorf("module `%s` failed to combine", name)
		}

		e.AddModule(name)

		if _, errs := imports.Resolve(e, name, mi.Iface.Imports); reportAll(rep, errs) {
			return nil, fmt.Errorf("module `%s` failed to resolve imports", name)
		}

		extract.Extract(e, rep, name, cm, mi.Unsafe)
		if !rep.ShouldProceed() {
			return nil, fmt.Errorf("module `%s` failed extraction", name)
		}

		if err := checkModule(e, rep, name, cm, mi.Unsafe, target); err != nil {
			return nil, err
		}
	}

	return &Result{Env: e}, nil
}

// checkModule runs stages E through H over every function body and
// instance method body of one already-extracted module: type checking,
// linearity checking, monomorphization, and (if a target is given)
// lowering. Constant initializers are type-checked too, since extraction
// leaves an untyped ConstEntry.Type nil when no annotation was given.
func checkModule(e *env.Environment, rep *report.Reporter, moduleName string, cm *combine.CombinedModule, unsafeModule bool, target lower.Target) error {
	for _, cd := range cm.Decls {
		switch d := cd.Decl.(type) {
		case *ast.FuncDecl:
			if err := checkFuncBody(e, rep, moduleName, d.Name(), d.Body, unsafeModule, target); err != nil {
				return err
			}

		case *ast.ConstDecl:
			if d.Value == nil {
				continue
			}
			qid := ast.QualifiedIdent{SourceModule: moduleName, OriginalName: d.Name(), LocalName: d.Name()}
			sig := env.FuncSig{Name: qid, Typarams: ast.NewTypeParamSet()}
			c := typecheck.NewChecker(e, rep, sig, unsafeModule)
			te := c.CheckExpr(d.Value)
			if !rep.ShouldProceed() {
				return fmt.Errorf("module `%s`: constant `%s` failed type checking", moduleName, d.Name())
			}
			if entry, ok := e.LookupConstDecl(qid); ok && entry.Type == nil && te != nil {
				entry.Type = te.Type()
				e.AddConstDecl(entry)
			}

		case *ast.InstanceDecl:
			for _, m := range d.Methods {
				name := d.Typeclass.String() + "#" + m.Name()
				if err := checkFuncBody(e, rep, moduleName, name, m.Body, unsafeModule, target); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func checkFuncBody(e *env.Environment, rep *report.Reporter, moduleName, declName string, body []ast.Stmt, unsafeModule bool, target lower.Target) error {
	qid := ast.QualifiedIdent{SourceModule: moduleName, OriginalName: declName, LocalName: declName}
	sig, ok := e.LookupFuncDecl(qid)
	if !ok {
		return fmt.Errorf("module `%s`: declaration `%s` missing from the environment after extraction", moduleName, declName)
	}

	c := typecheck.NewChecker(e, rep, sig, unsafeModule)
	typed := c.CheckFunc(body)
	if !rep.ShouldProceed() {
		return fmt.Errorf("module `%s`: `%s` failed type checking", moduleName, declName)
	}

	linearity.CheckFunc(e, rep, sig, typed)
	if !rep.ShouldProceed() {
		return fmt.Errorf("module `%s`: `%s` failed linearity checking", moduleName, declName)
	}

	lowerer := mono.NewLowerer(e)
	monoBody := lowerer.LowerFunc(typed)
	if !rep.ShouldProceed() {
		return fmt.Errorf("module `%s`: `%s` failed monomorphization", moduleName, declName)
	}

	if target != nil {
		if err := target.LowerFunc(qid, sig, monoBody); err != nil {
			return fmt.Errorf("module `%s`: `%s` failed lowering: %w", moduleName, declName, err)
		}
	}

	return nil
}

func reportAll(rep *report.Reporter, errs []*report.CompileError) bool {
	for _, ce := range errs {
		rep.Report(ce)
	}
	return len(errs) > 0
}

// topoOrder computes a processing order for mods where every module
// appears after every module it imports from, failing on an import cycle.
func topoOrder(mods []ModuleInput) ([]string, error) {
	deps := make(map[string][]string, len(mods))
	known := make(map[string]bool, len(mods))
	for _, m := range mods {
		known[m.Name] = true
	}

	for _, m := range mods {
		seen := make(map[string]bool)
		for _, d := range m.Iface.Imports {
			dep := d.Module.String()
			if dep == m.Name || seen[dep] || !known[dep] {
				continue
			}
			seen[dep] = true
			deps[m.Name] = append(deps[m.Name], dep)
		}
	}

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(mods))
	var order []string

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("import cycle detected at module `%s`", name)
		}
		state[name] = visiting
		for _, dep := range deps[name] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[name] = done
		order = append(order, name)
		return nil
	}

	for _, m := range mods {
		if err := visit(m.Name); err != nil {
			return nil, err
		}
	}

	return order, nil
}
