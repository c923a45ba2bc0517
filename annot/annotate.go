package annot

import "github.com/lfgparse/lfg/equation"

// AnnotatedChild pairs one child of a nonterminal node with the
// specification it inherits from its mother's chosen production (spec
// §3: "every internal node pairs each child with the specification that
// child inherits in its mother's annotation").
type AnnotatedChild struct {
	Spec *equation.Schema
	Node *Annotated
}

// Annotated mirrors one parse tree under one particular choice of
// annotation. Terminals carry their own specification directly, obtained
// from the lexicon entry that licensed them (spec §3); nonterminals carry
// it per child instead, since the specification comes from the mother's
// production, not from the child itself.
type Annotated struct {
	Kind     TreeKind
	Symbol   Symbol
	Token    string          // Terminal only
	Spec     *equation.Schema // Terminal only
	Children []AnnotatedChild // NonTerminal only
}

// Annotate enumerates every admissible annotated version of t (spec
// §4.2). Nonterminal nodes fan out over the Cartesian product of (LFG
// productions matching this node's CFG projection) × (per-child annotation
// choices); terminal nodes fan out over every specification any matching
// lexical category yields for this token. Empty and Hole nodes pass
// through unchanged, with no contribution to the result count.
func Annotate(t *Tree, g *Grammar) []*Annotated {
	switch t.Kind {
	case Empty:
		return []*Annotated{{Kind: Empty}}
	case Hole:
		return []*Annotated{{Kind: Hole, Symbol: t.Symbol}}
	case Terminal:
		return annotateTerminal(t, g)
	case NonTerminal:
		return annotateNonTerminal(t, g)
	default:
		return nil
	}
}

func annotateTerminal(t *Tree, g *Grammar) []*Annotated {
	var out []*Annotated
	if g.Lexicon == nil {
		return out
	}
	for _, cat := range g.Lexicon.Categories(t.Symbol) {
		specs, ok := cat.Lookup(t.Token)
		if !ok {
			continue
		}
		for _, spec := range specs {
			out = append(out, &Annotated{
				Kind:   Terminal,
				Symbol: t.Symbol,
				Token:  t.Token,
				Spec:   spec,
			})
		}
	}
	return out
}

func annotateNonTerminal(t *Tree, g *Grammar) []*Annotated {
	childSymbols := make([]Symbol, len(t.Children))
	for i, c := range t.Children {
		childSymbols[i] = c.Symbol
	}
	productions := g.productionsFor(t.Symbol, childSymbols)
	if len(productions) == 0 {
		return nil
	}

	// Per-child candidate sets, computed once and reused across every
	// matching production.
	childCandidates := make([][]*Annotated, len(t.Children))
	for i, c := range t.Children {
		childCandidates[i] = Annotate(c, g)
		if len(childCandidates[i]) == 0 {
			return nil
		}
	}

	var out []*Annotated
	for _, p := range productions {
		out = append(out, cartesianChildren(t.Symbol, p, childCandidates, 0, nil)...)
	}
	return out
}

// cartesianChildren enumerates the Cartesian product of per-slot candidate
// annotations for one production, pairing each with its slot's schema.
func cartesianChildren(parent Symbol, p *Production, candidates [][]*Annotated, i int, chosen []AnnotatedChild) []*Annotated {
	if i == len(candidates) {
		out := make([]AnnotatedChild, len(chosen))
		copy(out, chosen)
		return []*Annotated{{
			Kind:     NonTerminal,
			Symbol:   parent,
			Children: out,
		}}
	}
	var results []*Annotated
	for _, cand := range candidates[i] {
		next := append(chosen, AnnotatedChild{Spec: p.Specs[i], Node: cand})
		results = append(results, cartesianChildren(parent, p, candidates, i+1, next)...)
	}
	return results
}
