package types

import (
	"nova/ast"
	"nova/report"
)

// LocalTypeSig is a type signature declared within the module currently
// being processed but not yet committed to the environment").
type LocalTypeSig struct {
	Name         ast.QualifiedIdent
	DeclUniverse Universe
	TyparamCount int
}

// EnvLookup is the subset of the environment's behavior that type parsing
// needs.  It is defined here (rather than importing package env directly)
// to avoid a dependency cycle: the environment stores resolved types and so
// necessarily imports this package.
type EnvLookup interface {
	LookupTypeDecl(name ast.QualifiedIdent) (LocalTypeSig, bool)
}

// primitives maps the built-in scalar/unit/boolean spellings to
// their Type value.
var primitives = map[string]Type{
	"Unit":         UnitType{},
	"Boolean":      BooleanType{},
	"Integer8":     IntegerType{Signed: Signed, Width: 8},
	"Integer16":    IntegerType{Signed: Signed, Width: 16},
	"Integer32":    IntegerType{Signed: Signed, Width: 32},
	"Integer64":    IntegerType{Signed: Signed, Width: 64},
	"UInteger8":    IntegerType{Signed: Unsigned, Width: 8},
	"UInteger16":   IntegerType{Signed: Unsigned, Width: 16},
	"UInteger32":   IntegerType{Signed: Unsigned, Width: 32},
	"UInteger64":   IntegerType{Signed: Unsigned, Width: 64},
	"SingleFloat":  SingleFloatType{},
	"DoubleFloat":  DoubleFloatType{},
}

// Parse resolves a type specifier into a fully resolved Type, checking
// names in this order:
//
//  1. in-scope typarams (bare name, no arguments) -> TyVar
//  2. locally declared (same-module, not-yet-committed) type signatures
//  3. the environment
//  4. otherwise, TypeError "unknown type"
func Parse(env EnvLookup, localSigs map[string]LocalTypeSig, regions *RegionMap, typarams *ast.TypeParamSet, spec ast.TypeSpec, unsafeModule bool) Type {
	switch s := spec.(type) {
	case *ast.PrimSpec:
		if t, ok := primitives[s.Name]; ok {
			return t
		}
		report.Raise(report.KindType, "unknown primitive type `%s`", s.Name)
		return nil

	case *ast.NameSpec:
		return parseName(env, localSigs, regions, typarams, s, unsafeModule)

	case *ast.ArraySpec:
		elem := Parse(env, localSigs, regions, typarams, s.Elem, unsafeModule)
		region := resolveRegion(regions, s.Region)
		return ArrayType{Elem: elem, Region: region}

	case *ast.ReadRefSpec:
		referent := Parse(env, localSigs, regions, typarams, s.Referent, unsafeModule)
		region := resolveRegion(regions, s.Region)
		return ReadRefType{Referent: referent, Region: region}

	case *ast.WriteRefSpec:
		referent := Parse(env, localSigs, regions, typarams, s.Referent, unsafeModule)
		region := resolveRegion(regions, s.Region)
		return WriteRefType{Referent: referent, Region: region}

	case *ast.RawPointerSpec:
		if !unsafeModule {
			report.Raise(report.KindType, "raw pointer types may only appear in an unsafe module")
		}
		pointee := Parse(env, localSigs, regions, typarams, s.Pointee, unsafeModule)
		return RawPointerType{Pointee: pointee}

	case *ast.RegionSpec:
		resolveRegion(regions, s.RegionName)
		return RegionIDType{ID: s.RegionName}

	default:
		report.Raise(report.KindInternal, "unhandled type specifier kind")
		return nil
	}
}

func resolveRegion(regions *RegionMap, name string) RegionIDType {
	if tok, ok := regions.Lookup(name); ok {
		return tok
	}
	report.Raise(report.KindType, "unknown region `%s`", name)
	return RegionIDType{}
}

func parseName(env EnvLookup, localSigs map[string]LocalTypeSig, regions *RegionMap, typarams *ast.TypeParamSet, s *ast.NameSpec, unsafeModule bool) Type {
	bare := s.Name.LocalName

	// Step 1: in-scope typarams, only when applied to zero arguments.
	if len(s.Args) == 0 {
		if tp, _, ok := typarams.Lookup(bare); ok {
			u, _ := ParseUniverse(tp.DeclaredUniverse)
			return &TyVar{Name: tp.Name, DeclaredUniverse: u, SourceDecl: tp.SourceDecl}
		}
	}

	// Step 2: locally declared (same-module, uncommitted) type signatures.
	if sig, ok := localSigs[bare]; ok {
		return instantiateNamed(env, localSigs, regions, typarams, s, sig.Name, sig.DeclUniverse, sig.TyparamCount, unsafeModule)
	}

	// Step 3: the environment.
	if sig, ok := env.LookupTypeDecl(s.Name); ok {
		return instantiateNamed(env, localSigs, regions, typarams, s, sig.Name, sig.DeclUniverse, sig.TyparamCount, unsafeModule)
	}

	// Step 4: unknown.
	report.Raise(report.KindType, "unknown type `%s`", bare)
	return nil
}

func instantiateNamed(env EnvLookup, localSigs map[string]LocalTypeSig, regions *RegionMap, typarams *ast.TypeParamSet, s *ast.NameSpec, name ast.QualifiedIdent, declUniverse Universe, typaramCount int, unsafeModule bool) Type {
	if len(s.Args) != typaramCount {
		report.Raise(report.KindType, "type `%s` expects %d type argument(s), got %d", name.String(), typaramCount, len(s.Args))
	}

	args := make([]Type, len(s.Args))
	for i, a := range s.Args {
		args[i] = Parse(env, localSigs, regions, typarams, a, unsafeModule)
	}

	return NewNamedType(name, args, declUniverse)
}
