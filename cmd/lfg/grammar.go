package main

import (
	"github.com/lfgparse/lfg/annot"
	"github.com/lfgparse/lfg/equation"
	"github.com/lfgparse/lfg/lexicon"
)

// demoGrammar builds a small English fragment (S -> NP VP, transitive
// and intransitive verbs, subject-verb number agreement) that the parse
// subcommand and the lsp server always use; neither accepts a grammar
// file. A real deployment
// supplies its own annot.Grammar and lexicon.Lexicon; this one exists
// to exercise the pipeline end to end from the CLI.
func demoGrammar() (*annot.Grammar, *lexicon.Lexicon, error) {
	up := equation.Up()
	down := equation.Down()

	headSharesUp := equation.Assign(up, down) // ↑ = ↓

	npSubj := equation.ConjunctionAll([]*equation.Schema{
		equation.Assign(equation.AttrOf(up, "SUBJ"), down),
	})
	// The VP head shares the sentence's f-structure, and the sentence's
	// SUBJ must agree in number with whatever NUM the VP's own head verb
	// contributed.
	vpIsUp := equation.Conjunction(
		headSharesUp,
		equation.Equals(true, equation.AttrOf(equation.AttrOf(up, "SUBJ"), "NUM"), equation.AttrOf(down, "NUM")),
	)
	objIsObj := equation.Assign(equation.AttrOf(up, "OBJ"), down)

	lex := lexicon.New([]lexicon.Entry{
		{Token: "dog", Symbol: "N", Spec: pred("dog", nil, "sg")},
		{Token: "dogs", Symbol: "N", Spec: pred("dog", nil, "pl")},
		{Token: "cat", Symbol: "N", Spec: pred("cat", nil, "sg")},
		{Token: "cats", Symbol: "N", Spec: pred("cat", nil, "pl")},
		{Token: "sleeps", Symbol: "V", Spec: pred("sleep", []string{"SUBJ"}, "sg")},
		{Token: "sleep", Symbol: "V", Spec: pred("sleep", []string{"SUBJ"}, "pl")},
		{Token: "chases", Symbol: "V", Spec: pred("chase", []string{"SUBJ", "OBJ"}, "sg")},
		{Token: "chase", Symbol: "V", Spec: pred("chase", []string{"SUBJ", "OBJ"}, "pl")},
	})

	productions := []*annot.Production{
		{Parent: "S", Children: []annot.Symbol{"NP", "VP"}, Specs: []*equation.Schema{npSubj, vpIsUp}},
		{Parent: "NP", Children: []annot.Symbol{"N"}, Specs: []*equation.Schema{headSharesUp}},
		{Parent: "VP", Children: []annot.Symbol{"V"}, Specs: []*equation.Schema{headSharesUp}},
		{Parent: "VP", Children: []annot.Symbol{"V", "NP"}, Specs: []*equation.Schema{headSharesUp, objIsObj}},
	}

	g, err := annot.NewGrammar(productions, lex, "S")
	if err != nil {
		return nil, nil, err
	}
	return g, lex, nil
}

// pred builds the lexical schema for a word: ↑ PRED = pred<roles>, plus
// ↑ NUM = num for agreement.
func pred(p string, roles []string, num string) *equation.Schema {
	up := equation.Up()
	eqs := []*equation.Schema{
		equation.Assign(equation.AttrOf(up, "PRED"), equation.AtomExpr[equation.RelID](equation.Form(equation.SemForm{Pred: p, Roles: roles}))),
		equation.Assign(equation.AttrOf(up, "NUM"), equation.AtomExpr[equation.RelID](equation.Symbol(num))),
	}
	return equation.ConjunctionAll(eqs)
}
