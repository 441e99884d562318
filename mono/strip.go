// Package mono implements stage G: monomorphization. It strips regions
// from resolved types and walks a stage-F-checked typed tree, replacing
// every generic call (function or method) with a reference to a
// monomorph id tabulated in the environment's instantiation table.
package mono

import (
	"nova/report"
	"nova/types"
)

// Strip erases every region component from a resolved type: Array/ReadRef/
// WriteRef lose their region (replaced by a fixed region-less token), a
// bare Region-universe type argument is dropped entirely wherever it
// occurs as one of a named type's type arguments, and raw pointers pass
// through unchanged apart from stripping their pointee. Strip is
// idempotent: stripping an already-stripped type returns it unchanged,
// since the only region-bearing positions it touches are normalized to
// the same fixed token both times.
func Strip(t types.Type) types.Type {
	switch v := t.(type) {
	case *types.TyVar:
		if v.Value == nil {
			report.Raise(report.KindInternal, "unsubstituted type parameter `%s` reached monomorphization", v.Name)
		}
		return Strip(v.Value)

	case *types.NamedType:
		args := make([]types.Type, 0, len(v.Args))
		for _, a := range v.Args {
			if _, isRegion := a.(types.RegionIDType); isRegion {
				continue
			}
			args = append(args, Strip(a))
		}
		return types.NewNamedType(v.Name, args, v.DeclUniverse)

	case types.ArrayType:
		return types.ArrayType{Elem: Strip(v.Elem), Region: erasedRegion}

	case types.ReadRefType:
		return types.ReadRefType{Referent: Strip(v.Referent), Region: erasedRegion}

	case types.WriteRefType:
		return types.WriteRefType{Referent: Strip(v.Referent), Region: erasedRegion}

	case types.RawPointerType:
		return types.RawPointerType{Pointee: Strip(v.Pointee)}

	default:
		return t
	}
}

// erasedRegion is the fixed token every stripped Array/ReadRef/WriteRef
// carries in place of its real region; regions have no runtime presence; the zero
// token exists only to keep Strip's idempotence trivial (stripping the zero
// token again yields the zero token).
var erasedRegion = types.RegionIDType{}
