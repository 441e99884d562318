// Package typecheck implements stage E of the pipeline: checking the
// expressions and statements of a function body (or constant initializer)
// against the environment, producing a typed tree parallel to the
// abstracted syntax tree rather than mutating it in place.
//
// Grounded on the `sem` package (the `HIRExpr` interface with its
// `Type()` accessor and `ExprBase` holding the resolved `typing.DataType`,
// built by a separate walk over the syntax tree rather than decorating it).
// Generalized from chai's untyped-AST-to-HIR walk (which also resolves
// names and desugars syntax) to this pipeline's narrower contract: names
// are already qualified and borrows already desugared into ast.BorrowExpr
// by the time a TypedExpr tree is built, so this package only adds types.
package typecheck

import (
	"nova/ast"
	"nova/env"
	"nova/types"
)

// TypedExpr is the parent interface for every typed expression node: the
// original untyped node plus its resolved type.
type TypedExpr interface {
	Node() ast.Expr
	Type() types.Type
}

type exprBase struct {
	node ast.Expr
	typ  types.Type
}

func (b exprBase) Node() ast.Expr  { return b.node }
func (b exprBase) Type() types.Type { return b.typ }

// TIdent is a typed reference to a qualified binding.
type TIdent struct {
	exprBase
	Ident ast.QualifiedIdent
}

// TLit is a typed literal.
type TLit struct {
	exprBase
	Kind ast.LitKind
	Text string
}

// TCall is a typed function call. Subst is the substitution computed by
// unifying the callee's formal parameter types against the argument types;
// it is total over the callee's typarams, per the function-call contract.
// It is empty for a non-generic callee.
type TCall struct {
	exprBase
	Callee env.FuncSig
	Args   []TypedExpr
	Subst  map[string]types.Type
}

// TMethodCall is a typed method call, resolved to a single instance.
type TMethodCall struct {
	exprBase
	Typeclass    ast.QualifiedIdent
	Method       string
	Instance     types.Type // the resolved instance's argument type
	MethodSig    env.FuncSig
	Receiver     TypedExpr
	Args         []TypedExpr
	Subst        map[string]types.Type
}

// TRecordLit is a typed record construction.
type TRecordLit struct {
	exprBase
	TypeName ast.QualifiedIdent
	Fields   []TFieldInit
}

type TFieldInit struct {
	Name  string
	Value TypedExpr
}

// TPath is a typed path expression (`head.slot`, `head->slot`, `head[idx]`).
type TPath struct {
	exprBase
	Head TypedExpr
	Kind ast.PathKind
	Slot string
	Idx  TypedExpr
}

// TBinOp is a typed binary operator application.
type TBinOp struct {
	exprBase
	Op          ast.BinOp
	Left, Right TypedExpr
}

// TBorrow is a typed borrow expression.
type TBorrow struct {
	exprBase
	Write      bool
	Target     ast.QualifiedIdent
	RegionName string
}

// TCaseArm is one typed arm of a case expression.
type TCaseArm struct {
	CaseName string
	Binds    []TBind
	Body     []TypedStmt
}

// TBind is a slot bound by a case arm, carrying its declared type for
// linearity's introduction rule.
type TBind struct {
	Name string
	Type types.Type
}

// TCase is a typed case-matching expression.
type TCase struct {
	exprBase
	Scrutinee TypedExpr
	Arms      []TCaseArm
}

// -----------------------------------------------------------------------------

// TypedStmt is the parent interface for every typed statement node.
type TypedStmt interface {
	Node() ast.Stmt
}

type stmtBase struct{ node ast.Stmt }

func (b stmtBase) Node() ast.Stmt { return b.node }

// TLet introduces a new binding of a resolved type.
type TLet struct {
	stmtBase
	Name  string
	Type  types.Type
	Value TypedExpr
}

// TDestructure destructures a linear record into typed slot bindings.
type TDestructure struct {
	stmtBase
	Slots []TBind
	Value TypedExpr
}

// TExprStmt evaluates an expression for effect.
type TExprStmt struct {
	stmtBase
	Value TypedExpr
}

// TAssign writes through a write-borrowed reference or mutable local.
type TAssign struct {
	stmtBase
	Target TypedExpr
	Value  TypedExpr
}

// TReturn returns a value, or nothing for a bare `return;`.
type TReturn struct {
	stmtBase
	Value TypedExpr
}

// TIf is a typed two-armed conditional.
type TIf struct {
	stmtBase
	Cond       TypedExpr
	Then, Else []TypedStmt
}

// TCaseStmt is the statement form of case analysis.
type TCaseStmt struct {
	stmtBase
	Scrutinee TypedExpr
	Arms      []TCaseArm
}

// TWhile is a typed condition-guarded loop.
type TWhile struct {
	stmtBase
	Cond TypedExpr
	Body []TypedStmt
}

// TFor is a typed bounded loop over an iterable.
type TFor struct {
	stmtBase
	BindName string
	ElemType types.Type
	Iter     TypedExpr
	Body     []TypedStmt
}

// TBorrowStmt is a typed borrow scope.
type TBorrowStmt struct {
	stmtBase
	Write      bool
	Target     ast.QualifiedIdent
	RefName    string
	RegionName string
	Body       []TypedStmt
}

// TBlock groups statements into a nested lexical scope.
type TBlock struct {
	stmtBase
	Body []TypedStmt
}
