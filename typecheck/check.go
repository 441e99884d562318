package typecheck

import (
	"nova/ast"
	"nova/env"
	"nova/report"
	"nova/types"
)

// Checker holds the state threaded through one function body's (or
// constant initializer's) stage E walk: the environment to resolve
// against, the region scope, and the stack of local-binding scopes a
// let/destructure/borrow/case-arm pushes and pops as blocks open and close.
//
// Grounded on `walk.Walker` (carries a `*sem.Scope` stack and
// the enclosing function's symbol table across the walk of one function
// body), generalized from chai's name-resolving walk to a walk that
// assumes names are already qualified and only adds types.
type Checker struct {
	Env          *env.Environment
	Rep          *report.Reporter
	Regions      *types.RegionMap
	Typarams     *ast.TypeParamSet
	UnsafeModule bool

	scopes []map[string]types.Type
}

// NewChecker creates a checker seeded with a function's declared
// parameters already bound in the outermost scope.
func NewChecker(e *env.Environment, rep *report.Reporter, sig env.FuncSig, unsafeModule bool) *Checker {
	c := &Checker{
		Env: e, Rep: rep, Regions: types.NewRegionMap(), Typarams: sig.Typarams, UnsafeModule: unsafeModule,
		scopes: []map[string]types.Type{make(map[string]types.Type)},
	}
	for i, name := range sig.ParamNames {
		c.bind(name, sig.Params[i])
	}
	return c
}

func (c *Checker) push()    { c.scopes = append(c.scopes, make(map[string]types.Type)) }
func (c *Checker) pop()     { c.scopes = c.scopes[:len(c.scopes)-1] }
func (c *Checker) bind(name string, t types.Type) {
	c.scopes[len(c.scopes)-1][name] = t
}

func (c *Checker) lookupLocal(name string) (types.Type, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if t, ok := c.scopes[i][name]; ok {
			return t, true
		}
	}
	return nil, false
}

// CheckFunc checks every statement of a function body in sequence,
// reporting diagnostics through c.Rep rather than halting on the first
// error within the body — each top-level statement gets its own
// span-adorned recover scope, mirroring report.CatchErrors's
// per-declaration recovery used at earlier stages.
func (c *Checker) CheckFunc(body []ast.Stmt) []TypedStmt {
	return c.checkBlock(body)
}

// CheckExpr type-checks a single expression outside of any statement
// context, such as a top-level constant's initializer, with its own
// recover scope.
func (c *Checker) CheckExpr(e ast.Expr) (te TypedExpr) {
	defer report.CatchErrors(c.Rep, e.Span())
	return c.checkExpr(e)
}

func (c *Checker) checkBlock(stmts []ast.Stmt) []TypedStmt {
	out := make([]TypedStmt, 0, len(stmts))
	for _, s := range stmts {
		if ts := c.checkStmtRecovered(s); ts != nil {
			out = append(out, ts)
		}
	}
	return out
}

func (c *Checker) checkStmtRecovered(s ast.Stmt) (ts TypedStmt) {
	defer report.CatchErrors(c.Rep, s.Span())
	return c.checkStmt(s)
}

func (c *Checker) checkStmt(s ast.Stmt) TypedStmt {
	switch st := s.(type) {
	case *ast.LetStmt:
		val := c.checkExpr(st.Value)
		declared := val.Type()
		if st.TypeAnnot != nil {
			declared = types.Parse(c.Env, nil, c.Regions, c.Typarams, st.TypeAnnot, c.UnsafeModule)
			if !types.Equals(declared, val.Type()) {
				report.Raise(report.KindType, "let binding `%s` declared as `%s` but initialized with `%s`", st.Name, declared.Repr(), val.Type().Repr())
			}
		}
		c.bind(st.Name, declared)
		return &TLet{stmtBase{s}, st.Name, declared, val}

	case *ast.DestructureStmt:
		val := c.checkExpr(st.Value)
		named, ok := val.Type().(*types.NamedType)
		if !ok {
			report.Raise(report.KindType, "destructuring requires a record value, got `%s`", val.Type().Repr())
		}
		entry, ok := c.Env.LookupTypeDeclEntry(named.Name)
		if !ok || entry.Kind != ast.DeclRecord {
			report.Raise(report.KindType, "`%s` is not a record type", named.Name.String())
		}
		if len(st.Slots) != len(entry.FieldNames) {
			report.Raise(report.KindType, "destructure pattern names %d slot(s), record `%s` has %d", len(st.Slots), named.Name.String(), len(entry.FieldNames))
		}

		fieldSubst := substFromArgs(entry.Typarams, named.Args)
		binds := make([]TBind, len(st.Slots))
		for i, slotName := range st.Slots {
			ft := substitute(entry.FieldTypes[i], fieldSubst)
			binds[i] = TBind{Name: slotName, Type: ft}
			c.bind(slotName, ft)
		}
		return &TDestructure{stmtBase{s}, binds, val}

	case *ast.ExprStmt:
		return &TExprStmt{stmtBase{s}, c.checkExpr(st.Value)}

	case *ast.AssignStmt:
		target := c.checkExpr(st.Target)
		val := c.checkExpr(st.Value)
		var referent types.Type
		switch tt := target.Type().(type) {
		case types.WriteRefType:
			referent = tt.Referent
		default:
			referent = target.Type()
		}
		if !types.Equals(referent, val.Type()) {
			report.Raise(report.KindType, "cannot assign `%s` through a target of type `%s`", val.Type().Repr(), target.Type().Repr())
		}
		return &TAssign{stmtBase{s}, target, val}

	case *ast.ReturnStmt:
		var val TypedExpr
		if st.Value != nil {
			val = c.checkExpr(st.Value)
		}
		return &TReturn{stmtBase{s}, val}

	case *ast.IfStmt:
		cond := c.checkExpr(st.Cond)
		if _, ok := cond.Type().(types.BooleanType); !ok {
			report.Raise(report.KindType, "`if` condition must be `Boolean`, got `%s`", cond.Type().Repr())
		}
		c.push()
		thenStmts := c.checkBlock(st.Then)
		c.pop()
		c.push()
		elseStmts := c.checkBlock(st.Else)
		c.pop()
		return &TIf{stmtBase{s}, cond, thenStmts, elseStmts}

	case *ast.CaseStmt:
		scrut, arms := c.checkCaseArms(st.Scrutinee, st.Arms)
		return &TCaseStmt{stmtBase{s}, scrut, arms}

	case *ast.WhileStmt:
		cond := c.checkExpr(st.Cond)
		if _, ok := cond.Type().(types.BooleanType); !ok {
			report.Raise(report.KindType, "`while` condition must be `Boolean`, got `%s`", cond.Type().Repr())
		}
		c.push()
		body := c.checkBlock(st.Body)
		c.pop()
		return &TWhile{stmtBase{s}, cond, body}

	case *ast.ForStmt:
		iter := c.checkExpr(st.Iter)
		arr, ok := iter.Type().(types.ArrayType)
		if !ok {
			report.Raise(report.KindType, "`for` requires an array iterable, got `%s`", iter.Type().Repr())
		}
		c.push()
		c.bind(st.BindName, arr.Elem)
		body := c.checkBlock(st.Body)
		c.pop()
		return &TFor{stmtBase{s}, st.BindName, arr.Elem, iter, body}

	case *ast.BorrowStmt:
		targetType, ok := c.lookupLocal(st.Target.LocalName)
		if !ok {
			report.Raise(report.KindType, "cannot borrow unknown binding `%s`", st.Target.LocalName)
		}
		c.Regions.Push()
		region := c.Regions.Bind(st.RegionName)
		var refType types.Type
		if st.Write {
			refType = types.WriteRefType{Referent: targetType, Region: region}
		} else {
			refType = types.ReadRefType{Referent: targetType, Region: region}
		}
		c.push()
		c.bind(st.RefName, refType)
		body := c.checkBlock(st.Body)
		c.pop()
		c.Regions.Pop()
		return &TBorrowStmt{stmtBase{s}, st.Write, st.Target, st.RefName, st.RegionName, body}

	case *ast.BlockStmt:
		c.push()
		body := c.checkBlock(st.Body)
		c.pop()
		return &TBlock{stmtBase{s}, body}

	default:
		report.Raise(report.KindInternal, "unhandled statement kind")
		return nil
	}
}

func (c *Checker) checkCaseArms(scrutinee ast.Expr, armsIn []ast.CaseArm) (TypedExpr, []TCaseArm) {
	scrut := c.checkExpr(scrutinee)
	named, ok := scrut.Type().(*types.NamedType)
	if !ok {
		report.Raise(report.KindType, "case scrutinee must be a union value, got `%s`", scrut.Type().Repr())
	}
	entry, ok := c.Env.LookupTypeDeclEntry(named.Name)
	if !ok || entry.Kind != ast.DeclUnion {
		report.Raise(report.KindType, "`%s` is not a union type", named.Name.String())
	}

	covered := make(map[string]bool)
	subst := substFromArgs(entry.Typarams, named.Args)

	arms := make([]TCaseArm, len(armsIn))
	for ai, arm := range armsIn {
		idx := -1
		for i, cn := range entry.CaseNames {
			if cn == arm.CaseName {
				idx = i
				break
			}
		}
		if idx < 0 {
			report.Raise(report.KindType, "`%s` has no case named `%s`", named.Name.String(), arm.CaseName)
		}
		if covered[arm.CaseName] {
			report.Raise(report.KindType, "case `%s` matched more than once", arm.CaseName)
		}
		covered[arm.CaseName] = true

		slots := entry.CaseSlots[idx]
		if len(arm.Binds) != len(slots) {
			report.Raise(report.KindType, "case `%s` binds %d name(s), declares %d slot(s)", arm.CaseName, len(arm.Binds), len(slots))
		}

		c.push()
		binds := make([]TBind, len(arm.Binds))
		for i, bindName := range arm.Binds {
			bt := substitute(slots[i], subst)
			binds[i] = TBind{Name: bindName, Type: bt}
			c.bind(bindName, bt)
		}
		body := c.checkBlock(arm.Body)
		c.pop()

		arms[ai] = TCaseArm{CaseName: arm.CaseName, Binds: binds, Body: body}
	}

	if len(covered) != len(entry.CaseNames) {
		report.Raise(report.KindType, "case analysis of `%s` does not cover every case exactly once", named.Name.String())
	}

	return scrut, arms
}

func (c *Checker) checkExpr(e ast.Expr) TypedExpr {
	switch ex := e.(type) {
	case *ast.IdentExpr:
		// A local binding (let/destructure/borrow/case-arm/parameter) has no
		// module to qualify under, so the front end leaves SourceModule empty
		// for it; anything else names a top-level constant.
		if ex.Ident.SourceModule == "" {
			if t, ok := c.lookupLocal(ex.Ident.LocalName); ok {
				return &TIdent{exprBase{ex, t}, ex.Ident}
			}
			report.Raise(report.KindType, "unknown binding `%s`", ex.Ident.LocalName)
		}
		if cst, ok := c.Env.LookupConstDecl(ex.Ident); ok {
			return &TIdent{exprBase{ex, cst.Type}, ex.Ident}
		}
		report.Raise(report.KindType, "unknown identifier `%s`", ex.Ident.String())
		return nil

	case *ast.LitExpr:
		return &TLit{exprBase{ex, litType(ex.Kind)}, ex.Kind, ex.Text}

	case *ast.CallExpr:
		return c.checkCall(ex)

	case *ast.MethodCallExpr:
		return c.checkMethodCall(ex)

	case *ast.RecordLitExpr:
		return c.checkRecordLit(ex)

	case *ast.PathExpr:
		return c.checkPath(ex)

	case *ast.BinOpExpr:
		return c.checkBinOp(ex)

	case *ast.BorrowExpr:
		targetType, ok := c.lookupLocal(ex.Target.LocalName)
		if !ok {
			report.Raise(report.KindType, "cannot borrow unknown binding `%s`", ex.Target.LocalName)
		}
		region := c.Regions.Bind(ex.RegionName)
		var t types.Type
		if ex.Write {
			t = types.WriteRefType{Referent: targetType, Region: region}
		} else {
			t = types.ReadRefType{Referent: targetType, Region: region}
		}
		return &TBorrow{exprBase{ex, t}, ex.Write, ex.Target, ex.RegionName}

	case *ast.CaseExpr:
		scrut, arms := c.checkCaseArms(ex.Scrutinee, ex.Arms)
		// A case expression's arms are statement lists, not a trailing
		// value expression (see the open-question decision recorded in
		// DESIGN.md); its own type is Unit.
		return &TCase{exprBase{ex, types.UnitType{}}, scrut, arms}

	default:
		report.Raise(report.KindInternal, "unhandled expression kind")
		return nil
	}
}

func (c *Checker) checkCall(ex *ast.CallExpr) TypedExpr {
	sig, ok := c.Env.LookupFuncDecl(ex.Func)
	if !ok {
		report.Raise(report.KindType, "unknown function `%s`", ex.Func.String())
	}
	if len(ex.Args) != len(sig.Params) {
		report.Raise(report.KindType, "`%s` takes %d argument(s), got %d", ex.Func.String(), len(sig.Params), len(ex.Args))
	}

	args := make([]TypedExpr, len(ex.Args))
	subst := make(map[string]types.Type)
	for i, a := range ex.Args {
		args[i] = c.checkExpr(a)
		if !unify(sig.Params[i], args[i].Type(), subst) {
			report.Raise(report.KindType, "argument %d to `%s`: cannot unify `%s` with `%s`", i+1, ex.Func.String(), sig.Params[i].Repr(), args[i].Type().Repr())
		}
	}
	requireTotalSubst(sig.Typarams, subst, ex.Func.String())

	return &TCall{exprBase{ex, substitute(sig.Return, subst)}, sig, args, subst}
}

func (c *Checker) checkMethodCall(ex *ast.MethodCallExpr) TypedExpr {
	recv := c.checkExpr(ex.Receiver)

	if _, ok := c.Env.LookupTypeclass(ex.Typeclass); !ok {
		report.Raise(report.KindType, "unknown typeclass `%s`", ex.Typeclass.String())
	}

	var chosen *env.InstanceEntry
	var instSubst map[string]types.Type
	for _, inst := range c.Env.InstancesOf(ex.Typeclass) {
		s := make(map[string]types.Type)
		if unify(inst.Argument, recv.Type(), s) {
			i := inst
			chosen = &i
			instSubst = s
			break
		}
	}
	if chosen == nil {
		report.Raise(report.KindInstance, "no instance of `%s` for `%s`", ex.Typeclass.String(), recv.Type().Repr())
	}
	methodSig, ok := chosen.Methods[ex.Method]
	if !ok {
		report.Raise(report.KindType, "typeclass `%s` has no method `%s`", ex.Typeclass.String(), ex.Method)
	}

	if len(ex.Args) != len(methodSig.Params) {
		report.Raise(report.KindType, "`%s.%s` takes %d argument(s), got %d", ex.Typeclass.String(), ex.Method, len(methodSig.Params), len(ex.Args))
	}

	args := make([]TypedExpr, len(ex.Args))
	for i, a := range ex.Args {
		args[i] = c.checkExpr(a)
		if !types.Equals(substitute(methodSig.Params[i], instSubst), args[i].Type()) {
			report.Raise(report.KindType, "argument %d to `%s.%s`: expected `%s`, got `%s`", i+1, ex.Typeclass.String(), ex.Method, substitute(methodSig.Params[i], instSubst).Repr(), args[i].Type().Repr())
		}
	}

	resultType := substitute(methodSig.Return, instSubst)
	return &TMethodCall{exprBase{ex, resultType}, ex.Typeclass, ex.Method, chosen.Argument, methodSig, recv, args, instSubst}
}

func (c *Checker) checkRecordLit(ex *ast.RecordLitExpr) TypedExpr {
	entry, ok := c.Env.LookupTypeDeclEntry(ex.Type)
	if !ok || entry.Kind != ast.DeclRecord {
		report.Raise(report.KindType, "`%s` is not a record type", ex.Type.String())
	}
	if len(ex.Fields) != len(entry.FieldNames) {
		report.Raise(report.KindType, "`%s` has %d field(s), literal names %d", ex.Type.String(), len(entry.FieldNames), len(ex.Fields))
	}

	subst := make(map[string]types.Type)
	fields := make([]TFieldInit, len(ex.Fields))
	for i, fi := range ex.Fields {
		idx := -1
		for j, fn := range entry.FieldNames {
			if fn == fi.Name {
				idx = j
				break
			}
		}
		if idx < 0 {
			report.Raise(report.KindType, "`%s` has no field named `%s`", ex.Type.String(), fi.Name)
		}
		val := c.checkExpr(fi.Value)
		if !unify(entry.FieldTypes[idx], val.Type(), subst) {
			report.Raise(report.KindType, "field `%s` of `%s`: cannot unify `%s` with `%s`", fi.Name, ex.Type.String(), entry.FieldTypes[idx].Repr(), val.Type().Repr())
		}
		fields[i] = TFieldInit{Name: fi.Name, Value: val}
	}
	requireTotalSubst(entry.Typarams, subst, ex.Type.String())

	args := make([]types.Type, entry.Typarams.Len())
	for i := 0; i < entry.Typarams.Len(); i++ {
		args[i] = subst[entry.Typarams.At(i).Name]
	}
	resultType := types.NewNamedType(ex.Type, args, entry.DeclUniverse)

	return &TRecordLit{exprBase{ex, resultType}, ex.Type, fields}
}

func (c *Checker) checkPath(ex *ast.PathExpr) TypedExpr {
	head := c.checkExpr(ex.Head)

	switch ex.Kind {
	case ast.PathDot:
		named, ok := head.Type().(*types.NamedType)
		if !ok {
			report.Raise(report.KindType, "`.%s` requires a record value, got `%s`", ex.Slot, head.Type().Repr())
		}
		entry, ok := c.Env.LookupTypeDeclEntry(named.Name)
		if !ok || entry.Kind != ast.DeclRecord {
			report.Raise(report.KindType, "`%s` is not a record type", named.Name.String())
		}
		idx := -1
		for i, fn := range entry.FieldNames {
			if fn == ex.Slot {
				idx = i
				break
			}
		}
		if idx < 0 {
			report.Raise(report.KindType, "`%s` has no field `%s`", named.Name.String(), ex.Slot)
		}
		fieldSubst := substFromArgs(entry.Typarams, named.Args)
		return &TPath{exprBase{ex, substitute(entry.FieldTypes[idx], fieldSubst)}, head, ex.Kind, ex.Slot, nil}

	case ast.PathPointer:
		if !c.UnsafeModule {
			report.Raise(report.KindType, "pointer slot access `->%s` is only allowed in an unsafe module", ex.Slot)
		}
		ptr, ok := head.Type().(types.RawPointerType)
		if !ok {
			report.Raise(report.KindType, "`->%s` requires a raw pointer, got `%s`", ex.Slot, head.Type().Repr())
		}
		named, ok := ptr.Pointee.(*types.NamedType)
		if !ok {
			report.Raise(report.KindType, "`->%s` requires a pointer to a record", ex.Slot)
		}
		entry, ok := c.Env.LookupTypeDeclEntry(named.Name)
		if !ok || entry.Kind != ast.DeclRecord {
			report.Raise(report.KindType, "`%s` is not a record type", named.Name.String())
		}
		idx := -1
		for i, fn := range entry.FieldNames {
			if fn == ex.Slot {
				idx = i
				break
			}
		}
		if idx < 0 {
			report.Raise(report.KindType, "`%s` has no field `%s`", named.Name.String(), ex.Slot)
		}
		fieldSubst := substFromArgs(entry.Typarams, named.Args)
		return &TPath{exprBase{ex, substitute(entry.FieldTypes[idx], fieldSubst)}, head, ex.Kind, ex.Slot, nil}

	case ast.PathIndex:
		arr, ok := head.Type().(types.ArrayType)
		if !ok {
			report.Raise(report.KindType, "`[...]` requires an array, got `%s`", head.Type().Repr())
		}
		idx := c.checkExpr(ex.Idx)
		if _, ok := idx.Type().(types.IntegerType); !ok {
			report.Raise(report.KindType, "array index must be an integer, got `%s`", idx.Type().Repr())
		}
		return &TPath{exprBase{ex, arr.Elem}, head, ex.Kind, "", idx}

	default:
		report.Raise(report.KindInternal, "unhandled path kind")
		return nil
	}
}

func (c *Checker) checkBinOp(ex *ast.BinOpExpr) TypedExpr {
	left := c.checkExpr(ex.Left)
	right := c.checkExpr(ex.Right)

	switch ex.Op {
	case ast.OpAnd, ast.OpOr:
		if _, ok := left.Type().(types.BooleanType); !ok {
			report.Raise(report.KindType, "logical operator requires `Boolean` operands, got `%s`", left.Type().Repr())
		}
		if !types.Equals(left.Type(), right.Type()) {
			report.Raise(report.KindType, "logical operator requires operands of the same type")
		}
		return &TBinOp{exprBase{ex, types.BooleanType{}}, ex.Op, left, right}

	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		if !types.Equals(left.Type(), right.Type()) {
			report.Raise(report.KindType, "comparison requires operands of the same type, got `%s` and `%s`", left.Type().Repr(), right.Type().Repr())
		}
		return &TBinOp{exprBase{ex, types.BooleanType{}}, ex.Op, left, right}

	default: // arithmetic
		if !types.Equals(left.Type(), right.Type()) {
			report.Raise(report.KindType, "arithmetic requires operands of the same type, got `%s` and `%s`", left.Type().Repr(), right.Type().Repr())
		}
		return &TBinOp{exprBase{ex, left.Type()}, ex.Op, left, right}
	}
}

func litType(k ast.LitKind) types.Type {
	switch k {
	case ast.LitUnit:
		return types.UnitType{}
	case ast.LitBool:
		return types.BooleanType{}
	case ast.LitInt:
		return types.IntegerType{Signed: types.Signed, Width: 32}
	case ast.LitFloat:
		return types.DoubleFloatType{}
	default:
		report.Raise(report.KindInternal, "unhandled literal kind")
		return nil
	}
}

// unify attempts to make formal and actual structurally equal by binding
// any unbound TyVar occurring in formal within subst, failing if a TyVar is
// bound inconsistently across two occurrences.
func unify(formal, actual types.Type, subst map[string]types.Type) bool {
	if tv, ok := formal.(*types.TyVar); ok && tv.Value == nil {
		if existing, bound := subst[tv.Name]; bound {
			return types.Equals(existing, actual)
		}
		subst[tv.Name] = actual
		return true
	}

	switch fv := formal.(type) {
	case *types.NamedType:
		av, ok := actual.(*types.NamedType)
		if !ok || fv.Name != av.Name || len(fv.Args) != len(av.Args) {
			return false
		}
		for i := range fv.Args {
			if !unify(fv.Args[i], av.Args[i], subst) {
				return false
			}
		}
		return true

	case types.ArrayType:
		av, ok := actual.(types.ArrayType)
		return ok && av.Region == fv.Region && unify(fv.Elem, av.Elem, subst)

	case types.ReadRefType:
		av, ok := actual.(types.ReadRefType)
		return ok && av.Region == fv.Region && unify(fv.Referent, av.Referent, subst)

	case types.WriteRefType:
		av, ok := actual.(types.WriteRefType)
		return ok && av.Region == fv.Region && unify(fv.Referent, av.Referent, subst)

	case types.RawPointerType:
		av, ok := actual.(types.RawPointerType)
		return ok && unify(fv.Pointee, av.Pointee, subst)

	default:
		return types.Equals(formal, actual)
	}
}

// substitute replaces every unbound TyVar occurring in t with its binding
// in subst, recursing through the structural type constructors. A TyVar
// with no binding in subst (not one of the typarams being instantiated) is
// left as-is.
func substitute(t types.Type, subst map[string]types.Type) types.Type {
	switch v := t.(type) {
	case *types.TyVar:
		if v.Value != nil {
			return substitute(v.Value, subst)
		}
		if rep, ok := subst[v.Name]; ok {
			return rep
		}
		return v

	case *types.NamedType:
		args := make([]types.Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = substitute(a, subst)
		}
		return types.NewNamedType(v.Name, args, v.DeclUniverse)

	case types.ArrayType:
		return types.ArrayType{Elem: substitute(v.Elem, subst), Region: v.Region}

	case types.ReadRefType:
		return types.ReadRefType{Referent: substitute(v.Referent, subst), Region: v.Region}

	case types.WriteRefType:
		return types.WriteRefType{Referent: substitute(v.Referent, subst), Region: v.Region}

	case types.RawPointerType:
		return types.RawPointerType{Pointee: substitute(v.Pointee, subst)}

	default:
		return t
	}
}

// substFromArgs builds the substitution a named type's own type-argument
// tuple implies for its declaration's typarams, used when a field/case
// slot type mentions the declaration's typarams and the value's concrete
// arguments are already known (eg reading a field off an already-built
// `Box[Integer32]`).
func substFromArgs(typarams *ast.TypeParamSet, args []types.Type) map[string]types.Type {
	subst := make(map[string]types.Type, typarams.Len())
	for i := 0; i < typarams.Len() && i < len(args); i++ {
		subst[typarams.At(i).Name] = args[i]
	}
	return subst
}

func requireTotalSubst(typarams *ast.TypeParamSet, subst map[string]types.Type, forName string) {
	for _, tp := range typarams.All() {
		if _, ok := subst[tp.Name]; !ok {
			report.Raise(report.KindType, "call to `%s` leaves type parameter `%s` unresolved", forName, tp.Name)
		}
	}
}
