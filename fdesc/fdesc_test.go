package fdesc

import (
	"testing"

	"github.com/lfgparse/lfg/annot"
	"github.com/lfgparse/lfg/equation"
)

func TestBuildTerminalGroundsReflexively(t *testing.T) {
	spec := equation.Assign(equation.AttrOf(equation.Up(), "PRED"),
		equation.AtomExpr[equation.RelID](equation.Symbol("dog")))
	tree := &annot.Annotated{Kind: annot.Terminal, Symbol: "N", Token: "dog", Spec: spec}

	desc, root := Build(tree, equation.NewIDGen())
	if desc == nil {
		t.Fatalf("expected a non-nil description for a terminal with a spec")
	}
	if desc.Kind != equation.EqAssign {
		t.Fatalf("expected the terminal's own assign equation, got kind %s", desc.Kind)
	}
	// up == down == the terminal's own id; the atom on the RHS is untouched.
	if desc.L.Base.ID != root {
		t.Fatalf("expected the terminal's up to ground to its own id %v, got %v", root, desc.L.Base.ID)
	}
	if desc.R.Atom.Symbol != "dog" {
		t.Fatalf("expected the RHS atom to pass through grounding unchanged, got %v", desc.R.Atom)
	}
}

func TestBuildTerminalWithNoSpecIsNil(t *testing.T) {
	tree := &annot.Annotated{Kind: annot.Terminal, Symbol: "N", Token: "dog"}
	desc, _ := Build(tree, equation.NewIDGen())
	if desc != nil {
		t.Fatalf("expected a nil description for a terminal with no spec, got %v", desc)
	}
}

// A production slot with no functional annotation (a nil Spec) is valid
// input — NewGrammar accepts it and ConjunctionAll(nil) naturally yields
// nil for it — and must not panic GroundEquation.
func TestBuildNonTerminalSkipsNilChildSpec(t *testing.T) {
	child := &annot.Annotated{Kind: annot.Terminal, Symbol: "ADV", Token: "quickly"}
	tree := &annot.Annotated{
		Kind:   annot.NonTerminal,
		Symbol: "VP",
		Children: []annot.AnnotatedChild{
			{Spec: nil, Node: child},
		},
	}

	desc, root := Build(tree, equation.NewIDGen())
	if desc != nil {
		t.Fatalf("expected a nil description when the only child has a nil spec and no equations of its own, got %v", desc)
	}
	if root == 0 {
		t.Fatalf("expected a valid root id regardless of the nil spec")
	}
}

func TestBuildNonTerminalConjoinsChildren(t *testing.T) {
	headShare := equation.Assign(equation.Up(), equation.Down())
	child := &annot.Annotated{Kind: annot.Terminal, Symbol: "N", Token: "dog",
		Spec: equation.Assign(equation.AttrOf(equation.Up(), "PRED"), equation.AtomExpr[equation.RelID](equation.Symbol("dog")))}
	tree := &annot.Annotated{
		Kind:   annot.NonTerminal,
		Symbol: "NP",
		Children: []annot.AnnotatedChild{
			{Spec: headShare, Node: child},
		},
	}

	desc, root := Build(tree, equation.NewIDGen())
	if desc == nil {
		t.Fatalf("expected a non-nil description")
	}
	if desc.Kind != equation.EqConjunction {
		t.Fatalf("expected the mother-slot equation conjoined with the child's own description, got kind %s", desc.Kind)
	}
	// desc.Sub1 is the slot's own grounded equation: ↑ = ↓ with up = root.
	if desc.Sub1.L.ID != root {
		t.Fatalf("expected the slot equation's up to ground to the mother's id %v", root)
	}
}
