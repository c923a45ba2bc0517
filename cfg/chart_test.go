package cfg

import (
	"testing"

	"github.com/lfgparse/lfg/annot"
	"github.com/lfgparse/lfg/equation"
)

// stubLexicon realizes "x" as both A and B, with no equations attached.
type stubLexicon struct{}

func (stubLexicon) Categories(symbol annot.Symbol) []annot.LexicalCategory {
	if symbol != "A" && symbol != "B" {
		return nil
	}
	return []annot.LexicalCategory{{
		Symbol: symbol,
		Lookup: func(token string) ([]*equation.Schema, bool) {
			if token == "x" {
				return []*equation.Schema{nil}, true
			}
			return nil, false
		},
	}}
}

func TestChartParserFindsAllParses(t *testing.T) {
	productions := []*annot.Production{
		{Parent: "S", Children: []annot.Symbol{"A", "B"}, Specs: []*equation.Schema{nil, nil}},
		{Parent: "S", Children: []annot.Symbol{"B", "A"}, Specs: []*equation.Schema{nil, nil}},
	}
	g, err := annot.NewGrammar(productions, stubLexicon{}, "S")
	if err != nil {
		t.Fatalf("NewGrammar: %v", err)
	}

	p := NewChartParser(g, func(token string) []annot.Symbol {
		if token == "x" {
			return []annot.Symbol{"A", "B"}
		}
		return nil
	})

	trees, err := p.Parse([]string{"x", "x"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(trees) != 2 {
		t.Fatalf("expected 2 parses (S->A B and S->B A), got %d", len(trees))
	}
}

// unaryLexicon realizes "the" as Det and "dog" as N, with no equations.
type unaryLexicon struct{}

func (unaryLexicon) Categories(symbol annot.Symbol) []annot.LexicalCategory {
	tok := map[annot.Symbol]string{"Det": "the", "N": "dog"}[symbol]
	if tok == "" {
		return nil
	}
	return []annot.LexicalCategory{{
		Symbol: symbol,
		Lookup: func(token string) ([]*equation.Schema, bool) {
			if token == tok {
				return []*equation.Schema{nil}, true
			}
			return nil, false
		},
	}}
}

// A unary production (S -> NP) whose sole child (NP -> Det N) is built at
// exactly the same span must still be found: the chain has to close within
// one span before the parser moves on to longer spans.
func TestChartParserFindsUnaryChainAtSameSpan(t *testing.T) {
	productions := []*annot.Production{
		{Parent: "S", Children: []annot.Symbol{"NP"}, Specs: []*equation.Schema{nil}},
		{Parent: "NP", Children: []annot.Symbol{"Det", "N"}, Specs: []*equation.Schema{nil, nil}},
	}
	g, err := annot.NewGrammar(productions, unaryLexicon{}, "S")
	if err != nil {
		t.Fatalf("NewGrammar: %v", err)
	}
	p := NewChartParser(g, func(token string) []annot.Symbol {
		switch token {
		case "the":
			return []annot.Symbol{"Det"}
		case "dog":
			return []annot.Symbol{"N"}
		}
		return nil
	})

	trees, err := p.Parse([]string{"the", "dog"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(trees) != 1 {
		t.Fatalf("expected exactly 1 parse (S->NP->Det N), got %d", len(trees))
	}
	if trees[0].Symbol != "S" || len(trees[0].Children) != 1 || trees[0].Children[0].Symbol != "NP" {
		t.Fatalf("unexpected parse shape: %+v", trees[0])
	}
}

func TestChartParserNoParse(t *testing.T) {
	productions := []*annot.Production{
		{Parent: "S", Children: []annot.Symbol{"A", "B"}, Specs: []*equation.Schema{nil, nil}},
	}
	g, err := annot.NewGrammar(productions, stubLexicon{}, "S")
	if err != nil {
		t.Fatalf("NewGrammar: %v", err)
	}
	p := NewChartParser(g, func(token string) []annot.Symbol {
		return nil
	})
	if _, err := p.Parse([]string{"y"}); err == nil {
		t.Fatalf("expected no parse for an unrecognized token")
	}
}
