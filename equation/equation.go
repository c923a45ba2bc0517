package equation

import "fmt"

// EqKind tags the three levels of the equation algebra (spec §3): compound
// (Disjunction/Conjunction), defining (Assignment/Containment), and
// constraint (Equals/Contains/Exists).
type EqKind int

const (
	EqDisjunction EqKind = iota
	EqConjunction
	EqAssign
	EqContain
	EqEquals
	EqContains
	EqExists
)

func (k EqKind) String() string {
	switch k {
	case EqDisjunction:
		return "or"
	case EqConjunction:
		return "and"
	case EqAssign:
		return "="
	case EqContain:
		return "in"
	case EqEquals:
		return "=?"
	case EqContains:
		return "in?"
	case EqExists:
		return "exists?"
	}
	return "unknown"
}

func (k EqKind) IsCompound() bool  { return k == EqDisjunction || k == EqConjunction }
func (k EqKind) IsDefining() bool  { return k == EqAssign || k == EqContain }
func (k EqKind) IsConstraint() bool {
	return k == EqEquals || k == EqContains || k == EqExists
}

// Equation is an equation over identifier kind ID. A single struct with a
// kind tag plays the role of the closed three-level sum type described by
// the spec: compound equations hold Sub1/Sub2, binary defining/constraint
// equations hold L/R, Exists holds E alone, and Pos carries polarity for
// constraint equations only.
type Equation[ID comparable] struct {
	Kind       EqKind
	Sub1, Sub2 *Equation[ID]
	L, R       *Expr[ID]
	E          *Expr[ID]
	Pos        bool
}

func Disjunction[I comparable](a, b *Equation[I]) *Equation[I] {
	return &Equation[I]{Kind: EqDisjunction, Sub1: a, Sub2: b}
}

func Conjunction[I comparable](a, b *Equation[I]) *Equation[I] {
	return &Equation[I]{Kind: EqConjunction, Sub1: a, Sub2: b}
}

// ConjunctionAll folds a non-empty list of equations into a right-leaning
// conjunction; a single-element list is returned unwrapped.
func ConjunctionAll[I comparable](eqs []*Equation[I]) *Equation[I] {
	if len(eqs) == 0 {
		return nil
	}
	out := eqs[len(eqs)-1]
	for i := len(eqs) - 2; i >= 0; i-- {
		out = Conjunction(eqs[i], out)
	}
	return out
}

func Assign[I comparable](lhs, rhs *Expr[I]) *Equation[I] {
	return &Equation[I]{Kind: EqAssign, L: lhs, R: rhs}
}

func Contain[I comparable](elem, container *Expr[I]) *Equation[I] {
	return &Equation[I]{Kind: EqContain, L: elem, R: container}
}

func Equals[I comparable](pos bool, l, r *Expr[I]) *Equation[I] {
	return &Equation[I]{Kind: EqEquals, Pos: pos, L: l, R: r}
}

func Contains[I comparable](pos bool, elem, container *Expr[I]) *Equation[I] {
	return &Equation[I]{Kind: EqContains, Pos: pos, L: elem, R: container}
}

func Exists[I comparable](pos bool, e *Expr[I]) *Equation[I] {
	return &Equation[I]{Kind: EqExists, Pos: pos, E: e}
}

// Schema is an equation written against the relative identifiers UP/DOWN,
// attached to one RHS slot of one production (or to a lexicon entry).
type Schema = Equation[RelID]

// Ground is an equation over absolute identifiers, the only shape the
// solver accepts.
type Ground = Equation[AbsID]

// Negate distributes negation through the algebra (spec §4.1). Negating a
// defining equation leaves the defining domain and produces a constraint
// equation (you never "un-assign"); negating a constraint only flips its
// polarity; De Morgan applies to compound equations.
func Negate[I comparable](eq *Equation[I]) *Equation[I] {
	switch eq.Kind {
	case EqDisjunction:
		return Conjunction(Negate(eq.Sub1), Negate(eq.Sub2))
	case EqConjunction:
		return Disjunction(Negate(eq.Sub1), Negate(eq.Sub2))
	case EqAssign:
		return Equals(false, eq.L, eq.R)
	case EqContain:
		return Contains(false, eq.L, eq.R)
	case EqEquals:
		return Equals(!eq.Pos, eq.L, eq.R)
	case EqContains:
		return Contains(!eq.Pos, eq.L, eq.R)
	case EqExists:
		return Exists(!eq.Pos, eq.E)
	default:
		panic("equation: unreachable equation kind")
	}
}

// GroundEquation substitutes up/down for UP/DOWN throughout a schema,
// recursing through compound structure. Defined for every schema and every
// pair of absolute IDs; the result contains no UP/DOWN (grounding
// totality, spec §8 property 2).
func GroundEquation(up, down AbsID, eq *Schema) *Ground {
	switch eq.Kind {
	case EqDisjunction:
		return Disjunction(GroundEquation(up, down, eq.Sub1), GroundEquation(up, down, eq.Sub2))
	case EqConjunction:
		return Conjunction(GroundEquation(up, down, eq.Sub1), GroundEquation(up, down, eq.Sub2))
	case EqAssign:
		return Assign(groundExpr(up, down, eq.L), groundExpr(up, down, eq.R))
	case EqContain:
		return Contain(groundExpr(up, down, eq.L), groundExpr(up, down, eq.R))
	case EqEquals:
		return Equals(eq.Pos, groundExpr(up, down, eq.L), groundExpr(up, down, eq.R))
	case EqContains:
		return Contains(eq.Pos, groundExpr(up, down, eq.L), groundExpr(up, down, eq.R))
	case EqExists:
		return Exists(eq.Pos, groundExpr(up, down, eq.E))
	default:
		panic("equation: unreachable equation kind")
	}
}

// String renders an equation using UP/DOWN notation for schemas and #N
// notation for grounded equations; it is for diagnostics only, not parsed
// back.
func (eq *Equation[I]) String() string {
	switch eq.Kind {
	case EqDisjunction:
		return fmt.Sprintf("(%s) or (%s)", eq.Sub1, eq.Sub2)
	case EqConjunction:
		return fmt.Sprintf("(%s) and (%s)", eq.Sub1, eq.Sub2)
	case EqAssign:
		return fmt.Sprintf("%s = %s", exprString(eq.L), exprString(eq.R))
	case EqContain:
		return fmt.Sprintf("%s in %s", exprString(eq.L), exprString(eq.R))
	case EqEquals:
		op := "=="
		if !eq.Pos {
			op = "!="
		}
		return fmt.Sprintf("%s %s %s", exprString(eq.L), op, exprString(eq.R))
	case EqContains:
		op := "in"
		if !eq.Pos {
			op = "not-in"
		}
		return fmt.Sprintf("%s %s %s", exprString(eq.L), op, exprString(eq.R))
	case EqExists:
		if eq.Pos {
			return fmt.Sprintf("exists(%s)", exprString(eq.E))
		}
		return fmt.Sprintf("!exists(%s)", exprString(eq.E))
	}
	return "?"
}

func exprString[I comparable](e *Expr[I]) string {
	switch e.Kind {
	case ExprID:
		return fmt.Sprintf("%v", e.ID)
	case ExprAttr:
		return fmt.Sprintf("%s.%s", exprString(e.Base), e.Attr)
	case ExprAtom:
		switch e.Atom.Kind {
		case AtomSymbol:
			return e.Atom.Symbol
		case AtomBool:
			return fmt.Sprintf("%v", e.Atom.Bool)
		case AtomForm:
			return fmt.Sprintf("%s<%v>", e.Atom.Form.Pred, e.Atom.Form.Roles)
		}
	}
	return "?"
}
