package solve

import (
	"github.com/lfgparse/lfg/debug"
	"github.com/lfgparse/lfg/equation"
	"github.com/lfgparse/lfg/fstruct"
)

// applyDefining drives one branch's defining equations (Assign, Contain)
// to a fixed point. Each equation is monotone — it can only bind a
// previously-unbound attribute or union two classes — so repeated passes
// over the same list, stopping once a full pass makes no change, always
// terminates and the result does not depend on equation order (spec §4.4,
// "solver monotonicity" / "confluence").
func applyDefining(s *fstruct.Store, defining []*equation.Ground, gen *equation.IDGen) error {
	for pass := 0; ; pass++ {
		before := s.Version()
		for _, eq := range defining {
			if err := applyOne(s, eq, gen); err != nil {
				if debug.Solve() {
					debug.Logf("solve: pass %d: %s failed: %v\n", pass, eq, err)
				}
				return err
			}
		}
		if s.Version() == before {
			if debug.Solve() {
				debug.Logf("solve: fixed point after %d pass(es)\n", pass+1)
			}
			return nil
		}
	}
}

func applyOne(s *fstruct.Store, eq *equation.Ground, gen *equation.IDGen) error {
	switch eq.Kind {
	case equation.EqAssign:
		// An atom literal on either side sets the other side's class
		// directly (spec §4.4 step 2, row 1: "set that class's value to
		// the atom") rather than resolving the literal into a class of
		// its own — doing the latter would mint a fresh, never-equal
		// class on every pass and the fixed point would never close.
		if eq.R.Kind == equation.ExprAtom {
			lhs, _, err := resolve(s, eq.L, true, gen)
			if err != nil {
				return err
			}
			_, err = s.SetAtom(lhs, eq.R.Atom)
			return err
		}
		if eq.L.Kind == equation.ExprAtom {
			rhs, _, err := resolve(s, eq.R, true, gen)
			if err != nil {
				return err
			}
			_, err = s.SetAtom(rhs, eq.L.Atom)
			return err
		}
		lhs, _, err := resolve(s, eq.L, true, gen)
		if err != nil {
			return err
		}
		rhs, _, err := resolve(s, eq.R, true, gen)
		if err != nil {
			return err
		}
		_, err = s.Union(lhs, rhs)
		return err
	case equation.EqContain:
		container, _, err := resolve(s, eq.R, true, gen)
		if err != nil {
			return err
		}
		if eq.L.Kind == equation.ExprAtom {
			return s.AddAtomToSet(container, eq.L.Atom, gen)
		}
		elem, _, err := resolve(s, eq.L, true, gen)
		if err != nil {
			return err
		}
		return s.AddToSet(container, elem)
	default:
		return nil // constraints are checked after the fixed point, not applied here
	}
}
