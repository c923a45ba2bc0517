// Package lexicon is the default in-memory implementation of the
// external lexicon collaborator (spec §6): a static table of lexical
// categories, each a CFG symbol plus a token -> schema-set function.
package lexicon

import (
	"github.com/lfgparse/lfg/annot"
	"github.com/lfgparse/lfg/equation"
)

// Entry is one lexicon line: a token realizing symbol under spec, e.g.
// "dog" realizing N with PRED dog and NUM left open for the mother's
// schema to fill in via agreement.
type Entry struct {
	Token  string
	Symbol annot.Symbol
	Spec   *equation.Schema
}

// Lexicon is a static, in-memory Lexicon (annot.Lexicon) plus the
// reverse index (token -> symbols) the default chart parser (package
// cfg) needs to seed its chart.
type Lexicon struct {
	bySymbol map[annot.Symbol][]annot.LexicalCategory
	byToken  map[string]map[annot.Symbol]bool
}

func New(entries []Entry) *Lexicon {
	l := &Lexicon{
		bySymbol: make(map[annot.Symbol][]annot.LexicalCategory),
		byToken:  make(map[string]map[annot.Symbol]bool),
	}
	specsByKey := make(map[string][]*equation.Schema)
	haveCategory := make(map[annot.Symbol]bool)

	for _, e := range entries {
		key := string(e.Symbol) + "\x00" + e.Token
		specsByKey[key] = append(specsByKey[key], e.Spec)

		if l.byToken[e.Token] == nil {
			l.byToken[e.Token] = make(map[annot.Symbol]bool)
		}
		l.byToken[e.Token][e.Symbol] = true

		if !haveCategory[e.Symbol] {
			haveCategory[e.Symbol] = true
			symbol := e.Symbol
			l.bySymbol[symbol] = append(l.bySymbol[symbol], annot.LexicalCategory{
				Symbol: symbol,
				Lookup: func(token string) ([]*equation.Schema, bool) {
					specs, ok := specsByKey[string(symbol)+"\x00"+token]
					return specs, ok
				},
			})
		}
	}
	return l
}

// Categories implements annot.Lexicon.
func (l *Lexicon) Categories(symbol annot.Symbol) []annot.LexicalCategory {
	return l.bySymbol[symbol]
}

// Symbols implements cfg.Terminals: every preterminal symbol token was
// registered under.
func (l *Lexicon) Symbols(token string) []annot.Symbol {
	set := l.byToken[token]
	out := make([]annot.Symbol, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	return out
}
