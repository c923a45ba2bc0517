package annot

import (
	"testing"

	"github.com/lfgparse/lfg/equation"
)

type stubLexicon map[Symbol][]LexicalCategory

func (l stubLexicon) Categories(s Symbol) []LexicalCategory { return l[s] }

func schemaFor(symbols map[string]*equation.Schema) LexicalCategory {
	return LexicalCategory{
		Lookup: func(token string) ([]*equation.Schema, bool) {
			s, ok := symbols[token]
			if !ok {
				return nil, false
			}
			return []*equation.Schema{s}, true
		},
	}
}

func TestAnnotateTerminalEnumeratesLexicalCategories(t *testing.T) {
	spec := equation.Assign(equation.Up(), equation.Down())
	lex := stubLexicon{"N": {schemaFor(map[string]*equation.Schema{"dog": spec})}}
	tree := &Tree{Kind: Terminal, Symbol: "N", Token: "dog"}

	got := Annotate(tree, &Grammar{Lexicon: lex})
	if len(got) != 1 {
		t.Fatalf("expected exactly one annotation, got %d", len(got))
	}
	if got[0].Spec != spec {
		t.Fatalf("expected the lexicon's own schema to be attached unchanged")
	}
}

func TestAnnotateNonTerminalFansOutOverProductionsAndChildren(t *testing.T) {
	lex := stubLexicon{
		"N": {schemaFor(map[string]*equation.Schema{
			"dog": equation.Assign(equation.Up(), equation.Down()),
			"cat": equation.Assign(equation.Up(), equation.Down()),
		})},
	}
	g, err := NewGrammar([]*Production{
		{Parent: "NP", Children: []Symbol{"N"}, Specs: []*equation.Schema{equation.Assign(equation.Up(), equation.Down())}},
	}, lex, "NP")
	if err != nil {
		t.Fatalf("NewGrammar: %v", err)
	}

	tree := &Tree{Kind: NonTerminal, Symbol: "NP", Children: []*Tree{
		{Kind: Terminal, Symbol: "N", Token: "dog"},
	}}
	got := Annotate(tree, g)
	if len(got) != 1 {
		t.Fatalf("expected one annotation (one production x one lexical reading), got %d", len(got))
	}
}

func TestNewGrammarRejectsUnsatisfiableSchema(t *testing.T) {
	e := equation.AttrOf(equation.Up(), "X")
	a := equation.AtomExpr[equation.RelID](equation.Symbol("y"))
	bad := equation.Conjunction(equation.Equals(true, e, a), equation.Equals(false, e, a))

	_, err := NewGrammar([]*Production{
		{Parent: "S", Children: []Symbol{"N"}, Specs: []*equation.Schema{bad}},
	}, nil, "S")
	if err == nil {
		t.Fatalf("expected an unsatisfiable top-level schema to be rejected at construction")
	}
}

func TestNewGrammarRejectsArityMismatch(t *testing.T) {
	_, err := NewGrammar([]*Production{
		{Parent: "S", Children: []Symbol{"N", "V"}, Specs: []*equation.Schema{equation.Assign(equation.Up(), equation.Down())}},
	}, nil, "S")
	if err == nil {
		t.Fatalf("expected a RHS/spec length mismatch to be rejected at construction")
	}
}
