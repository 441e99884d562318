// Package instances implements typeclass instance registration, shape
// validation, and overlap checking against a conflict table keyed by
// typeclass, in the spirit of an operator-overload table but generalized to
// user-declared typeclasses and instances.
package instances

import (
	"nova/ast"
	"nova/env"
	"nova/report"
	"nova/types"
)

// Register validates a resolved instance and, if valid, checks it for overlap
// against every instance already registered for the same typeclass before
// adding it to the environment.
func Register(e *env.Environment, decl *ast.InstanceDecl, argType types.Type, methods map[string]env.FuncSig) *report.CompileError {
	tc, ok := e.LookupTypeclass(decl.Typeclass)
	if !ok {
		return report.New(report.KindType, decl.Span(), "unknown typeclass `%s`", decl.Typeclass.String())
	}

	if !validShape(decl.Typarams(), argType) {
		return report.New(report.KindInstance, decl.Span(),
			"bad instance argument shape: `%s` is neither a concrete type nor a generic type applied to distinct type variables covering the instance's type parameters", argType.Repr())
	}

	declaredUniverse, _ := types.ParseUniverse(tc.Param.DeclaredUniverse)
	if !types.Compatible(declaredUniverse, argType.Universe()) {
		return report.New(report.KindInstance, decl.Span(),
			"instance argument `%s` has universe `%s`, which typeclass `%s` does not accept",
			argType.Repr(), argType.Universe().String(), decl.Typeclass.String())
	}

	for _, existing := range e.InstancesOf(decl.Typeclass) {
		if overlaps(existing.Argument, argType) {
			return report.New(report.KindInstance, decl.Span(),
				"overlapping instances of `%s`: `%s` overlaps with existing instance `%s`",
				decl.Typeclass.String(), argType.Repr(), existing.Argument.Repr())
		}
	}

	e.AddInstance(env.InstanceEntry{Typeclass: decl.Typeclass, Argument: argType, Methods: methods})
	return nil
}

// validShape checks an instance's argument shape: either (a) a
// concrete non-generic type, or (b) a generic type applied to a tuple of
// distinct type variables that together cover the instance's typarams.
func validShape(typarams *ast.TypeParamSet, argType types.Type) bool {
	named, ok := argType.(*types.NamedType)
	if !ok {
		// Non-named types (scalars, arrays, refs, pointers) are always
		// "concrete" in the sense the shape rule cares about only if the
		// instance itself declares no type parameters.
		return typarams.Len() == 0
	}

	if typarams.Len() == 0 {
		// Concrete, non-generic instance argument: fine regardless of
		// whether the named type itself carries arguments, as long as
		// none of them are unbound type variables (which could only
		// happen if the parser produced one without a typaram to bind
		// it — an internal error at this point, not a shape error).
		return !containsTyVar(named)
	}

	// Generic-applied case: every argument position must be a distinct
	// TyVar, and together they must cover exactly the instance's typaram
	// set.
	if len(named.Args) != typarams.Len() {
		return false
	}

	seen := make(map[string]bool)
	for _, a := range named.Args {
		tv, ok := a.(*types.TyVar)
		if !ok || tv.Value != nil {
			return false
		}
		if seen[tv.Name] {
			return false // not distinct
		}
		seen[tv.Name] = true

		if _, _, ok := typarams.Lookup(tv.Name); !ok {
			return false // doesn't belong to this instance's typaram set
		}
	}

	return len(seen) == typarams.Len()
}

func containsTyVar(t types.Type) bool {
	switch v := t.(type) {
	case *types.TyVar:
		return v.Value == nil
	case *types.NamedType:
		for _, a := range v.Args {
			if containsTyVar(a) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// overlaps reports whether two instance arguments overlap: whether there
// exists a substitution making them structurally equal.
// Because the shape rule above restricts every instance argument to either
// fully concrete or fully-typevar-parameterized, this reduces to: same
// top-level type constructor, with every argument position pairwise
// unifiable (an unbound type variable unifies with anything).
func overlaps(a, b types.Type) bool {
	return unifiable(a, b)
}

func unifiable(a, b types.Type) bool {
	if isWildcard(a) || isWildcard(b) {
		return true
	}

	an, aok := a.(*types.NamedType)
	bn, bok := b.(*types.NamedType)
	if aok != bok {
		return false
	}
	if aok {
		if an.Name != bn.Name || len(an.Args) != len(bn.Args) {
			return false
		}
		for i := range an.Args {
			if !unifiable(an.Args[i], bn.Args[i]) {
				return false
			}
		}
		return true
	}

	return types.Equals(a, b)
}

func isWildcard(t types.Type) bool {
	tv, ok := t.(*types.TyVar)
	return ok && tv.Value == nil
}
