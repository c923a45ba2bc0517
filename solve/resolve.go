package solve

import (
	"fmt"

	"github.com/lfgparse/lfg/equation"
	"github.com/lfgparse/lfg/fstruct"
)

// resolve dereferences a grounded expression that denotes a class — an
// ↑/↓ reference or an attribute path off one — minting fresh ids for
// unbound attributes when create is true and failing closed (never
// mutating) when it is false. A read-only resolve is what spec §4.4 step
// 3 requires for constraint checking: "a negative constraint must never
// itself cause lazy extension."
//
// An atom literal has no class of its own (it is a value, not a
// reference) and is never passed to resolve directly; callers that may
// see one use resolveValue instead.
func resolve(s *fstruct.Store, e *equation.GroundExpr, create bool, gen *equation.IDGen) (equation.AbsID, bool, error) {
	switch e.Kind {
	case equation.ExprID:
		return e.ID, true, nil
	case equation.ExprAttr:
		base, ok, err := resolve(s, e.Base, create, gen)
		if err != nil {
			return 0, false, err
		}
		if !ok {
			return 0, false, nil
		}
		return s.GetFeature(base, e.Attr, create, gen)
	default:
		return 0, false, fmt.Errorf("solve: unreachable expr kind %v", e.Kind)
	}
}

// value is what a grounded expression denotes: either a class (id valid)
// or a literal atom with no class of its own.
type value struct {
	id     equation.AbsID
	atom   equation.Atom
	isAtom bool
	ok     bool
}

// resolveValue resolves e, which may be an atom literal, never minting a
// throwaway class for one — an atom's identity is its value, checked by
// equality wherever it is compared, not by allocating a store entry for
// every occurrence. This keeps resolution read-only whenever create is
// false, and keeps repeated resolution of the same literal idempotent
// when create is true (required for the defining-equation fixed point to
// converge; see applyOne).
func resolveValue(s *fstruct.Store, e *equation.GroundExpr, create bool, gen *equation.IDGen) (value, error) {
	if e.Kind == equation.ExprAtom {
		return value{atom: e.Atom, isAtom: true, ok: true}, nil
	}
	id, ok, err := resolve(s, e, create, gen)
	return value{id: id, ok: ok}, err
}

// valueEqual reports whether the two already-resolved values are equal,
// comparing by class when both are classes and by atom equality whenever
// either side is a literal. It never mutates the store.
func valueEqual(s *fstruct.Store, a, b value) bool {
	if a.isAtom && b.isAtom {
		return a.atom.Equal(b.atom)
	}
	if a.isAtom != b.isAtom {
		lit, cls := a, b
		if cls.isAtom {
			lit, cls = b, a
		}
		v, ok := s.PeekValue(cls.id)
		return ok && v.Kind == fstruct.ValAtom && v.Atom.Equal(lit.atom)
	}
	return s.Find(a.id) == s.Find(b.id) || valuesEqualByValue(s, a.id, b.id)
}

func valuesEqualByValue(s *fstruct.Store, a, b equation.AbsID) bool {
	av, aok := s.PeekValue(a)
	bv, bok := s.PeekValue(b)
	if !aok || !bok {
		return false
	}
	if av.Kind != fstruct.ValAtom || bv.Kind != fstruct.ValAtom {
		return false
	}
	return av.Atom.Equal(bv.Atom)
}
