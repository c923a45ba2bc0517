package solve

import (
	"context"
	"testing"

	"github.com/lfgparse/lfg/equation"
	"github.com/lfgparse/lfg/fstruct"
)

func attr(base *equation.GroundExpr, name string) *equation.GroundExpr {
	return equation.AttrOf(base, name)
}

func id(i equation.AbsID) *equation.GroundExpr {
	return equation.ID(i)
}

func atom(a equation.Atom) *equation.GroundExpr {
	return equation.AtomExpr[equation.AbsID](a)
}

func TestSolveAgreementSucceeds(t *testing.T) {
	const root equation.AbsID = 1
	// SUBJ NUM = sg, SUBJ NUM = sg (two independent assigns agreeing)
	desc := equation.Conjunction(
		equation.Assign(attr(attr(id(root), "SUBJ"), "NUM"), atom(equation.Symbol("sg"))),
		equation.Assign(attr(attr(id(root), "SUBJ"), "NUM"), atom(equation.Symbol("sg"))),
	)
	got, err := Solve(context.Background(), desc, root, 2, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 f-structure, got %d", len(got))
	}
	subj := got[0].Features["SUBJ"]
	if subj == nil || subj.Features["NUM"].Atom.Symbol != "sg" {
		t.Fatalf("unexpected f-structure: %+v", got[0])
	}
}

func TestSolveAgreementFails(t *testing.T) {
	const root equation.AbsID = 1
	desc := equation.Conjunction(
		equation.Assign(attr(attr(id(root), "SUBJ"), "NUM"), atom(equation.Symbol("sg"))),
		equation.Assign(attr(attr(id(root), "SUBJ"), "NUM"), atom(equation.Symbol("pl"))),
	)
	got, err := Solve(context.Background(), desc, root, 2, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected a clashing NUM assignment to reject every branch, got %+v", got)
	}
}

func TestSolveDisjunctionKeepsBothViableBranches(t *testing.T) {
	const root equation.AbsID = 1
	desc := equation.Disjunction(
		equation.Assign(attr(id(root), "MOOD"), atom(equation.Symbol("decl"))),
		equation.Assign(attr(id(root), "MOOD"), atom(equation.Symbol("inter"))),
	)
	got, err := Solve(context.Background(), desc, root, 2, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 f-structures from the disjunction, got %d", len(got))
	}
}

func TestSolveNegativeExistence(t *testing.T) {
	const root equation.AbsID = 1
	// Reject any branch where OBJ is actually present.
	desc := equation.Exists(false, attr(id(root), "OBJ"))
	got, err := Solve(context.Background(), desc, root, 2, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 f-structure, got %d", len(got))
	}
	if got[0].Features["OBJ"] != nil {
		t.Fatalf("OBJ should not have been created by a read-only existence check")
	}
}

func TestSolveNegativeExistenceRejectsWhenBound(t *testing.T) {
	const root equation.AbsID = 1
	desc := equation.Conjunction(
		equation.Assign(attr(id(root), "OBJ"), atom(equation.Symbol("x"))),
		equation.Exists(false, attr(id(root), "OBJ")),
	)
	got, err := Solve(context.Background(), desc, root, 2, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected negative existence to reject a branch where OBJ is bound, got %+v", got)
	}
}

// A description that assigns the same atom to the same path from several
// independent equations must still reach a fixed point: resolving an
// atom literal must not mint a fresh, forever-distinct class on every
// pass (see resolve.go's resolveValue).
func TestSolveRepeatedAtomAssignTerminates(t *testing.T) {
	const root equation.AbsID = 1
	desc := equation.ConjunctionAll([]*equation.Ground{
		equation.Assign(attr(id(root), "NUM"), atom(equation.Symbol("sg"))),
		equation.Assign(attr(id(root), "NUM"), atom(equation.Symbol("sg"))),
		equation.Assign(attr(id(root), "NUM"), atom(equation.Symbol("sg"))),
		equation.Assign(attr(id(root), "NUM"), atom(equation.Symbol("sg"))),
	})
	got, err := Solve(context.Background(), desc, root, 2, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 f-structure, got %d", len(got))
	}
	if got[0].Features["NUM"].Atom.Symbol != "sg" {
		t.Fatalf("unexpected f-structure: %+v", got[0])
	}
}

// Containing the same atom literal twice must not grow the set: the
// second Contain equation is a no-op once the atom is already a member.
func TestSolveContainmentDedupesRepeatedAtom(t *testing.T) {
	const root equation.AbsID = 1
	desc := equation.ConjunctionAll([]*equation.Ground{
		equation.Contain(atom(equation.Symbol("x")), attr(id(root), "ADJUNCTS")),
		equation.Contain(atom(equation.Symbol("x")), attr(id(root), "ADJUNCTS")),
	})
	got, err := Solve(context.Background(), desc, root, 2, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 f-structure, got %d", len(got))
	}
	adjuncts := got[0].Features["ADJUNCTS"]
	if adjuncts == nil || len(adjuncts.Elems) != 1 {
		t.Fatalf("expected a single deduplicated element, got %+v", adjuncts)
	}
}

// A positive equality constraint against an atom literal must hold
// without ever extending the store — read-only resolution of an atom
// never mints a class (see resolve.go's resolveValue/valueEqual).
func TestSolveEqualsAgainstAtomLiteral(t *testing.T) {
	const root equation.AbsID = 1
	desc := equation.Conjunction(
		equation.Assign(attr(id(root), "NUM"), atom(equation.Symbol("sg"))),
		equation.Equals(true, attr(id(root), "NUM"), atom(equation.Symbol("sg"))),
	)
	got, err := Solve(context.Background(), desc, root, 2, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 f-structure, got %d", len(got))
	}
}

// Checking an Equals constraint against an atom literal must never
// mutate the store, even when the literal fails to match — a negative
// constraint check cannot be allowed to extend the store on its way to
// failing (spec §4.4 step 3).
func TestCheckConstraintsAgainstAtomNeverMutates(t *testing.T) {
	s := fstruct.NewStore()
	gen := equation.NewIDGen()
	const root equation.AbsID = 1000

	if _, err := s.SetAtom(root, equation.Symbol("sg")); err != nil {
		t.Fatalf("SetAtom: %v", err)
	}
	before := s.Version()

	eqs := []*equation.Ground{equation.Equals(true, id(root), atom(equation.Symbol("pl")))}
	if err := checkConstraints(s, eqs, gen); err == nil {
		t.Fatalf("expected the mismatched atom to fail the constraint")
	}
	if s.Version() != before {
		t.Fatalf("a failing atom equality check mutated the store")
	}
}

func TestSolveContainment(t *testing.T) {
	const root equation.AbsID = 1
	desc := equation.Conjunction(
		equation.Contain(atom(equation.Symbol("x")), attr(id(root), "ADJUNCTS")),
		equation.Contains(true, atom(equation.Symbol("x")), attr(id(root), "ADJUNCTS")),
	)
	got, err := Solve(context.Background(), desc, root, 2, Options{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 f-structure, got %d", len(got))
	}
	adjuncts := got[0].Features["ADJUNCTS"]
	if adjuncts == nil || adjuncts.Kind != fstruct.KindSet || len(adjuncts.Elems) != 1 {
		t.Fatalf("unexpected ADJUNCTS: %+v", adjuncts)
	}
}
