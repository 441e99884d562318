package mono

import (
	"nova/ast"
	"nova/env"
	"nova/typecheck"
	"nova/types"
)

// MonoExpr is the parent interface for an expression node in the
// monomorphic tree: every type occurring in it has already been passed
// through Strip.
type MonoExpr interface {
	Node() ast.Expr
	Type() types.Type
}

type exprBase struct {
	node ast.Expr
	typ  types.Type
}

func (b exprBase) Node() ast.Expr   { return b.node }
func (b exprBase) Type() types.Type { return b.typ }

// MIdent is a reference to a binding or a top-level constant.
type MIdent struct {
	exprBase
	Ident ast.QualifiedIdent
}

// MLit is a literal value, unchanged from stage E.
type MLit struct {
	exprBase
	Kind ast.LitKind
	Text string
}

// MCallDirect is a call to a non-generic function: nothing to tabulate.
type MCallDirect struct {
	exprBase
	Callee ast.QualifiedIdent
	Args   []MonoExpr
}

// MCallGeneric is a call resolved to a specific monomorph: a generic
// function call with a non-empty substitution, or any method call (method
// calls are always tabulated, keyed by the resolved method's qualified
// name, since which instance's body to run is itself a per-type-argument
// choice).
type MCallGeneric struct {
	exprBase
	ID     env.MonomorphID
	Callee ast.QualifiedIdent
	Args   []MonoExpr
}

// MRecordLit is a record construction with its type argument tuple
// stripped.
type MRecordLit struct {
	exprBase
	TypeName ast.QualifiedIdent
	Fields   []MFieldInit
}

type MFieldInit struct {
	Name  string
	Value MonoExpr
}

// MPath is a path expression whose slot type has been stripped.
type MPath struct {
	exprBase
	Head MonoExpr
	Kind ast.PathKind
	Slot string
	Idx  MonoExpr
}

type MBinOp struct {
	exprBase
	Op          ast.BinOp
	Left, Right MonoExpr
}

type MBorrow struct {
	exprBase
	Write      bool
	Target     ast.QualifiedIdent
	RegionName string
}

type MCaseArm struct {
	CaseName string
	Binds    []MBind
	Body     []MonoStmt
}

type MBind struct {
	Name string
	Type types.Type
}

type MCase struct {
	exprBase
	Scrutinee MonoExpr
	Arms      []MCaseArm
}

// -----------------------------------------------------------------------------

type MonoStmt interface{ Node() ast.Stmt }

type stmtBase struct{ node ast.Stmt }

func (b stmtBase) Node() ast.Stmt { return b.node }

type MLet struct {
	stmtBase
	Name  string
	Type  types.Type
	Value MonoExpr
}

type MDestructure struct {
	stmtBase
	Slots []MBind
	Value MonoExpr
}

type MExprStmt struct {
	stmtBase
	Value MonoExpr
}

type MAssign struct {
	stmtBase
	Target MonoExpr
	Value  MonoExpr
}

type MReturn struct {
	stmtBase
	Value MonoExpr
}

type MIf struct {
	stmtBase
	Cond       MonoExpr
	Then, Else []MonoStmt
}

type MCaseStmt struct {
	stmtBase
	Scrutinee MonoExpr
	Arms      []MCaseArm
}

type MWhile struct {
	stmtBase
	Cond MonoExpr
	Body []MonoStmt
}

type MFor struct {
	stmtBase
	BindName string
	ElemType types.Type
	Iter     MonoExpr
	Body     []MonoStmt
}

type MBorrowStmt struct {
	stmtBase
	Write      bool
	Target     ast.QualifiedIdent
	RefName    string
	RegionName string
	Body       []MonoStmt
}

type MBlock struct {
	stmtBase
	Body []MonoStmt
}

// -----------------------------------------------------------------------------

// Lowerer carries the environment whose instantiation table accumulates
// monomorph ids as generic calls are discovered during the walk.
type Lowerer struct {
	Env *env.Environment
}

func NewLowerer(e *env.Environment) *Lowerer { return &Lowerer{Env: e} }

// LowerFunc monomorphizes one function body, in postorder: every
// sub-expression is lowered before the call or type annotation containing
// it is tabulated, so a generic call nested inside another generic call's
// argument is interned first.
func (l *Lowerer) LowerFunc(body []typecheck.TypedStmt) []MonoStmt {
	out := make([]MonoStmt, len(body))
	for i, s := range body {
		out[i] = l.stmt(s)
	}
	return out
}

func (l *Lowerer) block(stmts []typecheck.TypedStmt) []MonoStmt {
	out := make([]MonoStmt, len(stmts))
	for i, s := range stmts {
		out[i] = l.stmt(s)
	}
	return out
}

func (l *Lowerer) caseArms(arms []typecheck.TCaseArm) []MCaseArm {
	out := make([]MCaseArm, len(arms))
	for i, a := range arms {
		binds := make([]MBind, len(a.Binds))
		for j, b := range a.Binds {
			binds[j] = MBind{Name: b.Name, Type: Strip(b.Type)}
		}
		out[i] = MCaseArm{CaseName: a.CaseName, Binds: binds, Body: l.block(a.Body)}
	}
	return out
}

func (l *Lowerer) stmt(s typecheck.TypedStmt) MonoStmt {
	switch st := s.(type) {
	case *typecheck.TLet:
		return &MLet{stmtBase{s.Node()}, st.Name, Strip(st.Type), l.expr(st.Value)}

	case *typecheck.TDestructure:
		slots := make([]MBind, len(st.Slots))
		for i, sl := range st.Slots {
			slots[i] = MBind{Name: sl.Name, Type: Strip(sl.Type)}
		}
		return &MDestructure{stmtBase{s.Node()}, slots, l.expr(st.Value)}

	case *typecheck.TExprStmt:
		return &MExprStmt{stmtBase{s.Node()}, l.expr(st.Value)}

	case *typecheck.TAssign:
		return &MAssign{stmtBase{s.Node()}, l.expr(st.Target), l.expr(st.Value)}

	case *typecheck.TReturn:
		var v MonoExpr
		if st.Value != nil {
			v = l.expr(st.Value)
		}
		return &MReturn{stmtBase{s.Node()}, v}

	case *typecheck.TIf:
		return &MIf{stmtBase{s.Node()}, l.expr(st.Cond), l.block(st.Then), l.block(st.Else)}

	case *typecheck.TCaseStmt:
		return &MCaseStmt{stmtBase{s.Node()}, l.expr(st.Scrutinee), l.caseArms(st.Arms)}

	case *typecheck.TWhile:
		return &MWhile{stmtBase{s.Node()}, l.expr(st.Cond), l.block(st.Body)}

	case *typecheck.TFor:
		return &MFor{stmtBase{s.Node()}, st.BindName, Strip(st.ElemType), l.expr(st.Iter), l.block(st.Body)}

	case *typecheck.TBorrowStmt:
		return &MBorrowStmt{stmtBase{s.Node()}, st.Write, st.Target, st.RefName, st.RegionName, l.block(st.Body)}

	case *typecheck.TBlock:
		return &MBlock{stmtBase{s.Node()}, l.block(st.Body)}

	default:
		return nil
	}
}

func (l *Lowerer) expr(e typecheck.TypedExpr) MonoExpr {
	switch ex := e.(type) {
	case *typecheck.TIdent:
		return &MIdent{exprBase{e.Node(), Strip(e.Type())}, ex.Ident}

	case *typecheck.TLit:
		return &MLit{exprBase{e.Node(), Strip(e.Type())}, ex.Kind, ex.Text}

	case *typecheck.TCall:
		args := l.exprs(ex.Args)
		if len(ex.Subst) == 0 {
			return &MCallDirect{exprBase{e.Node(), Strip(e.Type())}, ex.Callee.Name, args}
		}
		strippedArgs := make([]types.Type, ex.Callee.Typarams.Len())
		for i := 0; i < ex.Callee.Typarams.Len(); i++ {
			strippedArgs[i] = Strip(ex.Subst[ex.Callee.Typarams.At(i).Name])
		}
		id := l.Env.Mono.Intern(ex.Callee.Name, strippedArgs)
		return &MCallGeneric{exprBase{e.Node(), Strip(e.Type())}, id, ex.Callee.Name, args}

	case *typecheck.TMethodCall:
		args := l.exprs(ex.Args)
		strippedArgs := []types.Type{Strip(ex.Instance)}
		id := l.Env.Mono.Intern(ex.MethodSig.Name, strippedArgs)
		return &MCallGeneric{exprBase{e.Node(), Strip(e.Type())}, id, ex.MethodSig.Name, args}

	case *typecheck.TRecordLit:
		fields := make([]MFieldInit, len(ex.Fields))
		for i, f := range ex.Fields {
			fields[i] = MFieldInit{Name: f.Name, Value: l.expr(f.Value)}
		}
		return &MRecordLit{exprBase{e.Node(), Strip(e.Type())}, ex.TypeName, fields}

	case *typecheck.TPath:
		var idx MonoExpr
		if ex.Idx != nil {
			idx = l.expr(ex.Idx)
		}
		return &MPath{exprBase{e.Node(), Strip(e.Type())}, l.expr(ex.Head), ex.Kind, ex.Slot, idx}

	case *typecheck.TBinOp:
		return &MBinOp{exprBase{e.Node(), Strip(e.Type())}, ex.Op, l.expr(ex.Left), l.expr(ex.Right)}

	case *typecheck.TBorrow:
		return &MBorrow{exprBase{e.Node(), Strip(e.Type())}, ex.Write, ex.Target, ex.RegionName}

	case *typecheck.TCase:
		return &MCase{exprBase{e.Node(), Strip(e.Type())}, l.expr(ex.Scrutinee), l.caseArms(ex.Arms)}

	default:
		return nil
	}
}

func (l *Lowerer) exprs(es []typecheck.TypedExpr) []MonoExpr {
	out := make([]MonoExpr, len(es))
	for i, e := range es {
		out[i] = l.expr(e)
	}
	return out
}
