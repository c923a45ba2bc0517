package solve

import (
	"fmt"

	"github.com/lfgparse/lfg/equation"
	"github.com/lfgparse/lfg/fstruct"
)

// checkConstraints evaluates every Equals/Contains/Exists equation in
// constraints against the already-fixed-point store, read-only. A
// negative constraint is checked exactly like its positive counterpart
// and then negated — it never mints anything on the way (spec §4.4 step
// 3), which is why resolve is always called with create=false here.
func checkConstraints(s *fstruct.Store, constraints []*equation.Ground, gen *equation.IDGen) error {
	for _, eq := range constraints {
		ok, err := checkOne(s, eq, gen)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("solve: constraint failed: %s", eq)
		}
	}
	return nil
}

func checkOne(s *fstruct.Store, eq *equation.Ground, gen *equation.IDGen) (bool, error) {
	switch eq.Kind {
	case equation.EqEquals:
		equal, resolved, err := equalsHolds(s, eq.L, eq.R, gen)
		if err != nil {
			return false, err
		}
		if !resolved {
			// A side denotes no value: "equal" is unconfirmable, so
			// a positive equality fails and a negative one holds
			// vacuously, matching how EqExists treats an unbound path.
			return !eq.Pos, nil
		}
		return equal == eq.Pos, nil
	case equation.EqContains:
		holds, err := containsHolds(s, eq.L, eq.R, gen)
		if err != nil {
			return false, err
		}
		return holds == eq.Pos, nil
	case equation.EqExists:
		v, err := resolveValue(s, eq.E, false, gen)
		if err != nil {
			return false, err
		}
		return v.ok == eq.Pos, nil
	default:
		return true, nil // defining equations were already applied
	}
}

// equalsHolds reports (equal, resolvedBoth). When either side fails to
// resolve (an unbound attribute under a read-only lookup), resolvedBoth
// is false and the caller treats the comparison as not holding, matching
// "unresolved reads as absent" (spec §4.4 step 3).
func equalsHolds(s *fstruct.Store, l, r *equation.GroundExpr, gen *equation.IDGen) (bool, bool, error) {
	lv, err := resolveValue(s, l, false, gen)
	if err != nil {
		return false, false, err
	}
	rv, err := resolveValue(s, r, false, gen)
	if err != nil {
		return false, false, err
	}
	if !lv.ok || !rv.ok {
		return false, false, nil
	}
	return valueEqual(s, lv, rv), true, nil
}

func containsHolds(s *fstruct.Store, elem, container *equation.GroundExpr, gen *equation.IDGen) (bool, error) {
	cid, cok, err := resolve(s, container, false, gen)
	if err != nil {
		return false, err
	}
	if !cok {
		return false, nil
	}
	ev, err := resolveValue(s, elem, false, gen)
	if err != nil {
		return false, err
	}
	if !ev.ok {
		return false, nil
	}
	members, ok := s.PeekSet(cid)
	if !ok {
		return false, nil
	}
	for _, m := range members {
		if valueEqual(s, value{id: m, ok: true}, ev) {
			return true, nil
		}
	}
	return false, nil
}
