package patch

import (
	"testing"

	"github.com/lfgparse/lfg/annot"
	"github.com/lfgparse/lfg/equation"
)

func demoProductions() []*annot.Production {
	return []*annot.Production{
		{
			Parent:   "NP",
			Children: []annot.Symbol{"N"},
			Specs:    []*equation.Schema{equation.Assign(equation.Up(), equation.Down())},
		},
	}
}

func TestMarshalApplyRoundTrip(t *testing.T) {
	before := demoProductions()
	if _, err := Marshal(before); err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	// A no-op patch (test the op) should round-trip to an equivalent
	// production set.
	after, err := Apply(before, []byte(`[{"op":"test","path":"/productions/0/parent","value":"NP"}]`))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(after) != 1 || after[0].Parent != "NP" || string(after[0].Children[0]) != "N" {
		t.Fatalf("expected the round-tripped production to be unchanged, got %+v", after)
	}
	if after[0].Specs[0].Kind != equation.EqAssign {
		t.Fatalf("expected the head-sharing schema to survive the round trip, got kind %s", after[0].Specs[0].Kind)
	}
}

func TestApplyRenamesParentSymbol(t *testing.T) {
	before := demoProductions()
	after, err := Apply(before, []byte(`[{"op":"replace","path":"/productions/0/parent","value":"NBAR"}]`))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if after[0].Parent != "NBAR" {
		t.Fatalf("expected the patched parent symbol NBAR, got %s", after[0].Parent)
	}
}
