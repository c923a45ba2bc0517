package annot

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/lfgparse/lfg/debug"
	"github.com/lfgparse/lfg/equation"
)

// CheckSatisfiable rejects a schema whose top-level boolean skeleton can
// never be satisfied no matter how its identifiers ground, e.g.
// Conjunction(Equals(true, e, a), Equals(false, e, a)) unconditionally
// required. This is the grammar-construction-time check spec §7 calls for
// ("a malformed grammar ... fails loudly at grammar construction, not
// during parsing").
//
// It is grounded on the satisfiability check the teacher runs over a
// schema's accept formula before the schema is used (see the sibling
// go-tony/schema package's formula builder): build a propositional
// formula from the equation tree, one boolean variable per distinct
// constraint proposition (same operands, ignoring polarity), negate the
// literal for a negative reading, then ask a SAT solver whether the
// formula can be true at all.
func CheckSatisfiable(schema *equation.Schema) error {
	b := &formulaBuilder{
		c:    logic.NewC(),
		vars: make(map[string]z.Lit),
	}
	top := b.build(schema)
	if b.err != nil {
		return b.err
	}
	sat := b.satisfiable(top)
	if debug.Sat() {
		debug.Logf("satcheck: %s -> satisfiable=%v\n", schema, sat)
	}
	if !sat {
		return fmt.Errorf("schema is unsatisfiable regardless of grounding: %s", schema)
	}
	return nil
}

type formulaBuilder struct {
	c    *logic.C
	vars map[string]z.Lit
	err  error
}

func (b *formulaBuilder) build(eq *equation.Schema) z.Lit {
	if b.err != nil || eq == nil {
		return b.c.T
	}
	switch eq.Kind {
	case equation.EqDisjunction:
		return b.c.Ors(b.build(eq.Sub1), b.build(eq.Sub2))
	case equation.EqConjunction:
		return b.c.Ands(b.build(eq.Sub1), b.build(eq.Sub2))
	case equation.EqAssign, equation.EqContain:
		// Defining equations are unconditionally required within whatever
		// branch chooses them; they don't interact with the boolean
		// skeleton a disjunction/conjunction of constraints describes.
		return b.c.T
	case equation.EqEquals, equation.EqContains, equation.EqExists:
		return b.proposition(eq)
	default:
		b.err = fmt.Errorf("annot: unexpected equation kind %s", eq.Kind)
		return b.c.F
	}
}

// proposition returns the literal for a constraint equation's underlying
// proposition (same operands map to the same variable regardless of
// polarity), negated when the equation's polarity is false. This makes
// Equals(true, e, a) and Equals(false, e, a) exact opposites of the same
// variable, so a conjunction of both is trivially unsatisfiable without
// any extra mutex bookkeeping.
func (b *formulaBuilder) proposition(eq *equation.Schema) z.Lit {
	key := operandKey(eq)
	lit, ok := b.vars[key]
	if !ok {
		lit = b.c.Lit()
		b.vars[key] = lit
	}
	if eq.Pos {
		return lit
	}
	return lit.Not()
}

func operandKey(eq *equation.Schema) string {
	switch eq.Kind {
	case equation.EqEquals, equation.EqContains:
		return fmt.Sprintf("%s:%s:%s", eq.Kind, exprKey(eq.L), exprKey(eq.R))
	case equation.EqExists:
		return fmt.Sprintf("exists:%s", exprKey(eq.E))
	}
	return eq.String()
}

func exprKey(e *equation.SchemaExpr) string {
	switch e.Kind {
	case equation.ExprID:
		return e.ID.String()
	case equation.ExprAttr:
		return exprKey(e.Base) + "." + e.Attr
	case equation.ExprAtom:
		return fmt.Sprintf("atom:%v:%v:%v:%v", e.Atom.Kind, e.Atom.Symbol, e.Atom.Bool, e.Atom.Form)
	}
	return "?"
}

func (b *formulaBuilder) satisfiable(top z.Lit) bool {
	g := gini.New()
	b.c.ToCnf(g)
	g.Assume(top)
	return g.Solve() == 1
}
