// Package annot builds the annotated AST (spec §4.2): it pairs a
// context-free parse tree, supplied by an external parser collaborator,
// with the LFG annotation schemas attached to the productions and lexical
// entries it used.
package annot

import (
	"fmt"
	"strings"

	"github.com/lfgparse/lfg/equation"
)

// Symbol is a CFG grammar symbol, shared by nonterminals, preterminals and
// terminals.
type Symbol string

// Production is a CFG production annotated with one schema per RHS symbol
// (spec §3, "LFG production"). len(Children) must equal len(Specs).
type Production struct {
	Parent   Symbol
	Children []Symbol
	Specs    []*equation.Schema
}

func (p *Production) projection() string {
	syms := make([]string, len(p.Children))
	for i, s := range p.Children {
		syms[i] = string(s)
	}
	return string(p.Parent) + "->" + strings.Join(syms, " ")
}

// LexicalCategory is a lexical entry type: a CFG symbol plus a function
// from surface token to the set of specifications it licenses. An empty,
// non-nil slice is a legal answer meaning "this category matches the
// token but assigns it no equations"; a nil/false answer means "this
// category does not apply to this token".
type LexicalCategory struct {
	Symbol Symbol
	Lookup func(token string) ([]*equation.Schema, bool)
}

// Lexicon groups lexical categories by the CFG symbol they realize, the
// external collaborator described in spec §6.
type Lexicon interface {
	Categories(symbol Symbol) []LexicalCategory
}

// Grammar groups LFG productions by their CFG projection (spec §4.2: "Look
// up all LFG productions whose CFG projection equals P"), so that several
// annotation choices can share one surface rule.
type Grammar struct {
	byProjection map[string][]*Production
	Lexicon      Lexicon
	Start        Symbol
}

// NewGrammar validates and indexes a set of productions. A production
// whose RHS length does not match its specification count, or whose
// top-level schema shape is unsatisfiable in isolation, is a programmer
// error and is rejected here rather than during parsing (spec §7).
func NewGrammar(productions []*Production, lex Lexicon, start Symbol) (*Grammar, error) {
	g := &Grammar{
		byProjection: make(map[string][]*Production),
		Lexicon:      lex,
		Start:        start,
	}
	for _, p := range productions {
		if len(p.Children) != len(p.Specs) {
			return nil, fmt.Errorf("annot: production %s has %d RHS symbols but %d specifications",
				p.projection(), len(p.Children), len(p.Specs))
		}
		for _, spec := range p.Specs {
			if spec == nil {
				continue
			}
			if err := CheckSatisfiable(spec); err != nil {
				return nil, fmt.Errorf("annot: production %s: %w", p.projection(), err)
			}
		}
		g.byProjection[p.projection()] = append(g.byProjection[p.projection()], p)
	}
	return g, nil
}

// Productions returns every production in the grammar, in no particular
// order. It exists for collaborators (e.g. the default CFG parser) that
// need to see the bare CFG skeleton, not the per-production lookup
// Annotate itself uses.
func (g *Grammar) Productions() []*Production {
	var out []*Production
	for _, ps := range g.byProjection {
		out = append(out, ps...)
	}
	return out
}

func (g *Grammar) productionsFor(parent Symbol, children []Symbol) []*Production {
	syms := make([]string, len(children))
	for i, s := range children {
		syms[i] = string(s)
	}
	key := string(parent) + "->" + strings.Join(syms, " ")
	return g.byProjection[key]
}
