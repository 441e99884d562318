// Package lower implements stage H: translating a monomorphic function
// signature into a lowering target's intermediate representation. Full
// code generation from the monomorphic statement tree is out of scope
// (see DESIGN.md); this package only builds the wiring point a real
// backend would hang a statement-level emitter off of.
package lower

import (
	"bytes"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"

	"nova/ast"
	"nova/env"
	"nova/mono"
	"nova/report"
	"nova/types"
)

// Target is the lowering boundary: one call per monomorphized function
// signature, with a final call to produce the emitted artifact.
type Target interface {
	LowerFunc(name ast.QualifiedIdent, sig env.FuncSig, body []mono.MonoStmt) error
	Finish() ([]byte, error)
}

// LLVMTarget builds one LLVM IR module, declaring a function skeleton per
// monomorphized signature with a body that returns a zero value of the
// return type. This is deliberately thin: it proves out the signature
// translation (the part of lowering every later statement-level emitter
// would build on) without emitting the statements themselves.
type LLVMTarget struct {
	module *ir.Module
}

func NewLLVMTarget() *LLVMTarget {
	return &LLVMTarget{module: ir.NewModule()}
}

// LowerFunc declares a function in the target module with parameter and
// return types translated from the stripped nova types of sig, and a
// single basic block returning a zero value.
func (t *LLVMTarget) LowerFunc(name ast.QualifiedIdent, sig env.FuncSig, _ []mono.MonoStmt) error {
	params := make([]*ir.Param, len(sig.Params))
	for i, p := range sig.Params {
		params[i] = ir.NewParam(sig.ParamNames[i], llvmType(mono.Strip(p)))
	}

	retType := llvmType(mono.Strip(sig.Return))
	fn := t.module.NewFunc(name.String(), retType, params...)

	block := fn.NewBlock("")
	if _, isVoid := retType.(*lltypes.VoidType); isVoid {
		block.NewRet(nil)
	} else {
		block.NewRet(zeroValue(retType))
	}

	return nil
}

// Finish renders the accumulated module as LLVM IR assembly text.
func (t *LLVMTarget) Finish() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := t.module.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// llvmType translates a stripped nova type into its LLVM IR counterpart.
// Records, unions, and opaque types have no stable layout specified by
// this pipeline (layout decisions are a backend concern outside this
// boundary's scope), so a named type lowers to an opaque pointer: a
// stand-in any real backend would replace with a pointer to its actual
// generated struct layout.
func llvmType(t types.Type) lltypes.Type {
	switch v := t.(type) {
	case types.UnitType:
		return lltypes.Void
	case types.BooleanType:
		return lltypes.I1
	case types.IntegerType:
		switch v.Width {
		case 8:
			return lltypes.I8
		case 16:
			return lltypes.I16
		case 32:
			return lltypes.I32
		case 64:
			return lltypes.I64
		default:
			report.Raise(report.KindInternal, "unsupported integer width %d", v.Width)
		}
	case types.SingleFloatType:
		return lltypes.Float
	case types.DoubleFloatType:
		return lltypes.Double
	case *types.NamedType:
		return lltypes.NewPointer(lltypes.NewStruct())
	case types.ArrayType:
		return lltypes.NewPointer(llvmType(v.Elem))
	case types.ReadRefType:
		return lltypes.NewPointer(llvmType(v.Referent))
	case types.WriteRefType:
		return lltypes.NewPointer(llvmType(v.Referent))
	case types.RawPointerType:
		return lltypes.NewPointer(llvmType(v.Pointee))
	}
	report.Raise(report.KindInternal, "unhandled type in lowering: %s", t.Repr())
	return nil
}

func zeroValue(t lltypes.Type) constant.Constant {
	switch v := t.(type) {
	case *lltypes.IntType:
		return constant.NewInt(v, 0)
	case *lltypes.FloatType:
		return constant.NewFloat(v, 0)
	case *lltypes.PointerType:
		return constant.NewNull(v)
	default:
		report.Raise(report.KindInternal, "no zero value for LLVM type %s", t.String())
		return nil
	}
}
