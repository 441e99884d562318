// Package linearity implements stage F: a flow-sensitive walk over the
// typed statement tree that threads a consumption table from binding
// identifiers to consumption states, accepting or rejecting the program
// on the nine rules governing introduction, consumption, scope closure,
// branch joining, loops, destructuring, call arguments, and borrows.
//
// The walk produces no value; it reports LinearityErrors through the
// given Reporter and otherwise has no observable effect.
package linearity

import (
	"nova/env"
	"nova/report"
	"nova/typecheck"
	"nova/types"
)

type state int

const (
	unconsumed state = iota
	consumed
	borrowedRead
	borrowedWrite
)

type binding struct {
	name      string
	typ       types.Type
	linear    bool
	declDepth int
}

// Checker threads one function body's consumption table and lexical
// scope stack through the walk.
type Checker struct {
	Env *env.Environment
	Rep *report.Reporter

	nextID   int
	bindings map[int]binding
	table    map[int]state

	scopes []map[string]int
	depth  int

	loopEntryDepths []int
}

func newChecker(e *env.Environment, rep *report.Reporter) *Checker {
	return &Checker{
		Env: e, Rep: rep,
		bindings: make(map[int]binding),
		table:    make(map[int]state),
		scopes:   []map[string]int{make(map[string]int)},
	}
}

// CheckFunc walks a function body (already typed by stage E), seeding
// the outermost scope with its parameters.
func CheckFunc(e *env.Environment, rep *report.Reporter, sig env.FuncSig, body []typecheck.TypedStmt) {
	c := newChecker(e, rep)
	for i, name := range sig.ParamNames {
		c.declare(name, sig.Params[i])
	}
	c.checkBlock(body)
	c.popScopeRecovered()
}

func (c *Checker) declare(name string, t types.Type) int {
	id := c.nextID
	c.nextID++
	c.bindings[id] = binding{name: name, typ: t, linear: t.Universe() == types.Linear, declDepth: c.depth}
	c.table[id] = unconsumed
	c.scopes[len(c.scopes)-1][name] = id
	return id
}

func (c *Checker) lookup(name string) (int, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if id, ok := c.scopes[i][name]; ok {
			return id, true
		}
	}
	return 0, false
}

func (c *Checker) pushScope() {
	c.depth++
	c.scopes = append(c.scopes, make(map[string]int))
}

// popScopeRecovered closes the outermost scope at function exit, where no
// enclosing statement's recover scope is left to catch a forgotten-value
// error the way checkStmtRecovered catches one raised mid-body.
func (c *Checker) popScopeRecovered() {
	defer report.CatchErrors(c.Rep, nil)
	c.popScope()
}

// popScope closes the innermost scope, rule 4: every linear binding
// introduced within it must be Consumed.
func (c *Checker) popScope() {
	frame := c.scopes[len(c.scopes)-1]
	for name, id := range frame {
		b := c.bindings[id]
		if b.linear && c.table[id] != consumed {
			report.Raise(report.KindLinearity, "value `%s` forgotten", name)
		}
	}
	c.scopes = c.scopes[:len(c.scopes)-1]
	c.depth--
}

func cloneTable(m map[int]state) map[int]state {
	out := make(map[int]state, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// consume implements rule 3 (consume transitions Unconsumed -> Consumed,
// any other state is an error) and rule 6's loop restriction. It is a
// no-op for a Free-universe binding: copies of Free values are
// unrestricted per rule 2.
func (c *Checker) consume(id int) {
	b := c.bindings[id]
	if !b.linear {
		return
	}

	switch c.table[id] {
	case consumed:
		report.Raise(report.KindLinearity, "value `%s` used after being consumed", b.name)
	case borrowedRead, borrowedWrite:
		report.Raise(report.KindLinearity, "cannot consume `%s` while it is borrowed", b.name)
	}

	if len(c.loopEntryDepths) > 0 {
		entryDepth := c.loopEntryDepths[len(c.loopEntryDepths)-1]
		if b.declDepth <= entryDepth {
			report.Raise(report.KindLinearity, "linear binding `%s` declared outside the loop may not be consumed inside it", b.name)
		}
	}

	c.table[id] = consumed
}

// consumeValue implements the "pass by value" usage kind of rule 2. The
// expression's sub-structure (call arguments, record fields, and so on) is
// walked first; then, if the expression is a bare reference to a binding,
// using its value here consumes that binding. Anything else (a call result,
// a freshly built record, a literal) has no binding behind it to consume.
func (c *Checker) consumeValue(te typecheck.TypedExpr) {
	c.walkExpr(te)
	ident, ok := te.(*typecheck.TIdent)
	if !ok {
		return
	}
	if id, ok := c.lookup(ident.Ident.LocalName); ok {
		c.consume(id)
	}
}

// beginBorrow implements rule 9: a borrow moves the binding out of
// Unconsumed for the duration of the borrow scope, excluding it from
// further consume or borrow until the scope ends.
func (c *Checker) beginBorrow(id int, write bool) state {
	b := c.bindings[id]
	if !b.linear {
		return unconsumed
	}
	prior := c.table[id]
	if prior != unconsumed {
		report.Raise(report.KindLinearity, "cannot borrow `%s`: not currently unconsumed", b.name)
	}
	if write {
		c.table[id] = borrowedWrite
	} else {
		c.table[id] = borrowedRead
	}
	return prior
}

func (c *Checker) endBorrow(id int, prior state) {
	if c.bindings[id].linear {
		c.table[id] = prior
	}
}

// -----------------------------------------------------------------------------

func (c *Checker) checkBlock(stmts []typecheck.TypedStmt) {
	for _, s := range stmts {
		c.checkStmtRecovered(s)
	}
}

func (c *Checker) checkStmtRecovered(s typecheck.TypedStmt) {
	defer report.CatchErrors(c.Rep, s.Node().Span())
	c.checkStmt(s)
}

func (c *Checker) checkStmt(s typecheck.TypedStmt) {
	switch st := s.(type) {
	case *typecheck.TLet:
		c.consumeValue(st.Value)
		c.declare(st.Name, st.Type)

	case *typecheck.TDestructure:
		// Rule 7: destructuring a linear record consumes the whole and
		// introduces each slot as Unconsumed if linear.
		c.consumeValue(st.Value)
		for _, slot := range st.Slots {
			c.declare(slot.Name, slot.Type)
		}

	case *typecheck.TExprStmt:
		c.walkExpr(st.Value)

	case *typecheck.TAssign:
		c.walkExpr(st.Target)
		c.consumeValue(st.Value)

	case *typecheck.TReturn:
		if st.Value != nil {
			c.consumeValue(st.Value)
		}

	case *typecheck.TIf:
		c.walkExpr(st.Cond)
		snapshot := cloneTable(c.table)

		c.pushScope()
		c.checkBlock(st.Then)
		c.popScope()
		thenTable := cloneTable(c.table)

		c.table = cloneTable(snapshot)
		c.pushScope()
		c.checkBlock(st.Else)
		c.popScope()
		elseTable := cloneTable(c.table)

		c.joinBranches(snapshot, thenTable, elseTable)

	case *typecheck.TCaseStmt:
		c.checkCaseArms(st.Scrutinee, st.Arms)

	case *typecheck.TWhile:
		c.checkLoop(func() {
			c.walkExpr(st.Cond)
			c.pushScope()
			c.checkBlock(st.Body)
			c.popScope()
		})

	case *typecheck.TFor:
		c.checkLoop(func() {
			c.walkExpr(st.Iter)
			c.pushScope()
			c.declare(st.BindName, st.ElemType)
			c.checkBlock(st.Body)
			c.popScope()
		})

	case *typecheck.TBorrowStmt:
		id, ok := c.lookup(st.Target.LocalName)
		if !ok {
			report.Raise(report.KindInternal, "borrow target `%s` is not in scope", st.Target.LocalName)
		}
		prior := c.beginBorrow(id, st.Write)
		c.pushScope()
		c.declare(st.RefName, borrowRefType(c.bindings[id].typ, st.RegionName, st.Write))
		c.checkBlock(st.Body)
		c.popScope()
		c.endBorrow(id, prior)

	case *typecheck.TBlock:
		c.pushScope()
		c.checkBlock(st.Body)
		c.popScope()

	default:
		report.Raise(report.KindInternal, "unhandled typed statement kind")
	}
}

// borrowRefType builds the reference binding's own type: always
// Free-universe regardless of what it refers to, so the reference itself
// is never subject to the consume/scope-closure rules — only the
// borrowed binding it names is.
func borrowRefType(referent types.Type, regionName string, write bool) types.Type {
	region := types.RegionIDType{ID: regionName}
	if write {
		return types.WriteRefType{Referent: referent, Region: region}
	}
	return types.ReadRefType{Referent: referent, Region: region}
}

// checkLoop implements rule 6 and the one-step fixpoint from the
// algorithm: the loop body is analyzed once, and the consumption state
// of every binding live before the loop must be unchanged afterward.
func (c *Checker) checkLoop(analyzeOnce func()) {
	c.loopEntryDepths = append(c.loopEntryDepths, c.depth)
	before := cloneTable(c.table)

	analyzeOnce()

	for id, was := range before {
		if c.table[id] != was {
			report.Raise(report.KindLinearity, "linear binding `%s` is not consumed consistently across loop iterations", c.bindings[id].name)
		}
	}

	c.loopEntryDepths = c.loopEntryDepths[:len(c.loopEntryDepths)-1]
}

// joinBranches implements rule 5: every binding live before the branch
// must agree across every arm's resulting table.
func (c *Checker) joinBranches(before map[int]state, tables ...map[int]state) {
	for id := range before {
		for _, t := range tables[1:] {
			if t[id] != tables[0][id] {
				report.Raise(report.KindLinearity, "asymmetric consumption of `%s` across branches", c.bindings[id].name)
			}
		}
	}
	c.table = tables[0]
}

func (c *Checker) checkCaseArms(scrutinee typecheck.TypedExpr, arms []typecheck.TCaseArm) {
	// Case analysis is treated as a destructure of the scrutinee, per the
	// "forget a case binding" scenario: matching consumes the scrutinee and
	// introduces each arm's binds as Unconsumed if linear.
	c.consumeValue(scrutinee)

	if len(arms) == 0 {
		return
	}

	before := cloneTable(c.table)
	tables := make([]map[int]state, len(arms))

	for i, arm := range arms {
		c.table = cloneTable(before)
		c.pushScope()
		for _, b := range arm.Binds {
			c.declare(b.Name, b.Type)
		}
		c.checkBlock(arm.Body)
		c.popScope()
		tables[i] = cloneTable(c.table)
	}

	c.joinBranches(before, tables...)
}

// walkExpr visits an expression's sub-structure for its side effects on
// the consumption table: call/method-call arguments and receivers,
// record-literal field values, and borrow expressions. Everything else
// (identifiers read in place, literals, path projections, binary
// operators) is a read of an unrestricted value under rule 2 and leaves
// the table untouched.
func (c *Checker) walkExpr(te typecheck.TypedExpr) {
	switch ex := te.(type) {
	case *typecheck.TCall:
		for _, a := range ex.Args {
			c.consumeValue(a)
		}

	case *typecheck.TMethodCall:
		c.consumeValue(ex.Receiver)
		for _, a := range ex.Args {
			c.consumeValue(a)
		}

	case *typecheck.TRecordLit:
		for _, f := range ex.Fields {
			c.consumeValue(f.Value)
		}

	case *typecheck.TBorrow:
		id, ok := c.lookup(ex.Target.LocalName)
		if !ok {
			report.Raise(report.KindInternal, "borrow target `%s` is not in scope", ex.Target.LocalName)
		}
		// A borrow expression (as opposed to a borrow statement) has no
		// body of its own: it is released by the end of the statement
		// that evaluates it, which this walk treats as immediate — only
		// checking that the binding is currently borrowable.
		prior := c.beginBorrow(id, ex.Write)
		c.endBorrow(id, prior)

	case *typecheck.TPath:
		c.walkExpr(ex.Head)
		if ex.Idx != nil {
			c.walkExpr(ex.Idx)
		}

	case *typecheck.TBinOp:
		c.walkExpr(ex.Left)
		c.walkExpr(ex.Right)

	case *typecheck.TCase:
		c.checkCaseArms(ex.Scrutinee, ex.Arms)
	}
}
