// Package solve turns one f-description into the set of f-structures it
// admits (spec §4.4, §5). A description first expands into independent
// branches along its disjunctions; each branch is solved to a fixed
// point, checked, and canonicalized on its own.
package solve

import "github.com/lfgparse/lfg/equation"

// expand flattens a description's Disjunction/Conjunction skeleton into a
// list of branches, each a flat list of defining/constraint leaf
// equations. Branches are independent (spec §8 property: "solving branch
// i never touches state from branch j"): callers give each branch its
// own fresh fstruct.Store.
func expand(eq *equation.Ground) [][]*equation.Ground {
	if eq == nil {
		return [][]*equation.Ground{nil}
	}
	switch eq.Kind {
	case equation.EqDisjunction:
		return append(expand(eq.Sub1), expand(eq.Sub2)...)
	case equation.EqConjunction:
		left := expand(eq.Sub1)
		right := expand(eq.Sub2)
		out := make([][]*equation.Ground, 0, len(left)*len(right))
		for _, l := range left {
			for _, r := range right {
				combined := make([]*equation.Ground, 0, len(l)+len(r))
				combined = append(combined, l...)
				combined = append(combined, r...)
				out = append(out, combined)
			}
		}
		return out
	default:
		return [][]*equation.Ground{{eq}}
	}
}
