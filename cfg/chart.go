// Package cfg is the default CFG-parsing collaborator (spec §6): a
// bottom-up chart parser that, unlike a CNF-restricted CYK parser,
// accepts productions of any arity and returns every parse a token
// sequence admits rather than a single best-scoring one — ambiguity is
// a first-class output here, not something to rank away.
//
// Grounded on the CYK table-by-span construction in ling0322-pcfg's
// cyk.go, generalized from binary CNF rules to arbitrary-arity RHS by
// recursively partitioning a span into as many pieces as the rule has
// children instead of always splitting it into two.
package cfg

import (
	"fmt"

	"github.com/lfgparse/lfg/annot"
)

// Terminals reports which preterminal symbols a surface token can
// realize. The default lexicon (package lexicon) implements this by
// scanning its own category table; a caller with a different lexicon
// supplies its own.
type Terminals func(token string) []annot.Symbol

// ChartParser implements lfg.Parser over an annot.Grammar's bare CFG
// skeleton.
type ChartParser struct {
	rules     map[annot.Symbol][][]annot.Symbol // parent -> list of RHS
	terminals Terminals
}

func NewChartParser(g *annot.Grammar, terminals Terminals) *ChartParser {
	p := &ChartParser{rules: make(map[annot.Symbol][][]annot.Symbol), terminals: terminals}
	seen := make(map[string]bool)
	for _, prod := range g.Productions() {
		key := rhsKey(prod.Parent, prod.Children)
		if seen[key] {
			continue
		}
		seen[key] = true
		p.rules[prod.Parent] = append(p.rules[prod.Parent], prod.Children)
	}
	return p
}

func rhsKey(parent annot.Symbol, children []annot.Symbol) string {
	s := string(parent)
	for _, c := range children {
		s += "|" + string(c)
	}
	return s
}

// spanKey identifies one particular derivation of parent at a span by the
// identity of the child trees it combines, so the same-span fixed-point
// loop in Parse can tell a genuinely new derivation from one it already
// recorded.
func spanKey(parent annot.Symbol, children []*annot.Tree) string {
	s := string(parent)
	for _, c := range children {
		s += fmt.Sprintf("|%p", c)
	}
	return s
}

// Parse returns every parse tree the grammar admits for tokens, rooted
// at any symbol that spans the whole sequence (the caller — package lfg
// — is responsible for filtering to a particular start symbol if it
// cares).
func (p *ChartParser) Parse(tokens []string) ([]*annot.Tree, error) {
	n := len(tokens)
	if n == 0 {
		return nil, fmt.Errorf("cfg: empty token sequence")
	}

	// chart[start][end] maps symbol -> every tree spanning tokens[start:end]
	chart := make([][]map[annot.Symbol][]*annot.Tree, n+1)
	for i := range chart {
		chart[i] = make([]map[annot.Symbol][]*annot.Tree, n+1)
		for j := range chart[i] {
			chart[i][j] = make(map[annot.Symbol][]*annot.Tree)
		}
	}

	for i, tok := range tokens {
		for _, sym := range p.terminals(tok) {
			chart[i][i+1][sym] = append(chart[i][i+1][sym], &annot.Tree{
				Kind: annot.Terminal, Symbol: sym, Token: tok,
			})
		}
	}

	for length := 1; length <= n; length++ {
		for start := 0; start+length <= n; start++ {
			end := start + length

			// A unary production's sole child can span this exact
			// [start,end) range, so building it can make a new parent
			// derivable at the very same span (A -> B, B -> C, ...).
			// Sweep the rules against this span to a fixed point before
			// moving on, rather than trusting one map-order pass to have
			// seen every chain.
			seen := make(map[string]bool)
			for sym, trees := range chart[start][end] {
				for _, t := range trees {
					seen[spanKey(sym, t.Children)] = true
				}
			}
			for {
				added := false
				for parent, rhss := range p.rules {
					for _, rhs := range rhss {
						for _, trees := range matchRHS(chart, rhs, start, end) {
							key := spanKey(parent, trees)
							if seen[key] {
								continue
							}
							seen[key] = true
							chart[start][end][parent] = append(chart[start][end][parent], &annot.Tree{
								Kind:     annot.NonTerminal,
								Symbol:   parent,
								Children: trees,
							})
							added = true
						}
					}
				}
				if !added {
					break
				}
			}
		}
	}

	var out []*annot.Tree
	for _, trees := range chart[0][n] {
		out = append(out, trees...)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("cfg: no parse for %v", tokens)
	}
	return out, nil
}

// matchRHS enumerates every way of covering [start,end) with exactly one
// tree per rhs[i], i.e. the Cartesian product over every partition of
// the span into len(rhs) contiguous pieces that each slot's chart
// actually has a tree for.
func matchRHS(chart [][]map[annot.Symbol][]*annot.Tree, rhs []annot.Symbol, start, end int) [][]*annot.Tree {
	if len(rhs) == 0 {
		if start == end {
			return [][]*annot.Tree{{}}
		}
		return nil
	}
	var out [][]*annot.Tree
	sym := rhs[0]
	for split := start + 1; split <= end; split++ {
		firstTrees := chart[start][split][sym]
		if len(firstTrees) == 0 {
			continue
		}
		rest := matchRHS(chart, rhs[1:], split, end)
		if len(rest) == 0 {
			continue
		}
		for _, t := range firstTrees {
			for _, r := range rest {
				combined := make([]*annot.Tree, 0, len(r)+1)
				combined = append(combined, t)
				combined = append(combined, r...)
				out = append(out, combined)
			}
		}
	}
	return out
}
