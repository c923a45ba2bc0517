package lexicon

import (
	"testing"

	"github.com/lfgparse/lfg/annot"
	"github.com/lfgparse/lfg/equation"
)

func TestCategoriesAndSymbols(t *testing.T) {
	sgSpec := equation.Assign(equation.AttrOf(equation.Up(), "NUM"), equation.AtomExpr[equation.RelID](equation.Symbol("sg")))
	l := New([]Entry{
		{Token: "dog", Symbol: "N", Spec: sgSpec},
	})

	cats := l.Categories("N")
	if len(cats) != 1 {
		t.Fatalf("expected 1 category, got %d", len(cats))
	}
	specs, ok := cats[0].Lookup("dog")
	if !ok || len(specs) != 1 {
		t.Fatalf("Lookup(dog): ok=%v specs=%v", ok, specs)
	}
	if _, ok := cats[0].Lookup("cat"); ok {
		t.Fatalf("Lookup(cat) should not match an unregistered token")
	}

	syms := l.Symbols("dog")
	if len(syms) != 1 || syms[0] != annot.Symbol("N") {
		t.Fatalf("Symbols(dog) = %v, want [N]", syms)
	}
}
