// Package lfg is the driver that ties the LFG pipeline together: an
// external CFG parser hands it ambiguous parse trees, it annotates each
// one against a Grammar (package annot), builds the f-description
// (package fdesc), and solves it (package solve) into the f-structures
// the sentence admits.
package lfg

import (
	"context"
	"fmt"

	"github.com/lfgparse/lfg/annot"
	"github.com/lfgparse/lfg/debug"
	"github.com/lfgparse/lfg/equation"
	"github.com/lfgparse/lfg/fdesc"
	"github.com/lfgparse/lfg/fstruct"
	"github.com/lfgparse/lfg/solve"
)

// Parser is the external CFG-parsing collaborator (spec §6): given a
// token sequence it returns every CFG parse tree that licenses it, under
// whatever grammar it was built against. The core never constructs a
// Tree itself.
type Parser interface {
	Parse(tokens []string) ([]*annot.Tree, error)
}

// Engine wires a CFG Parser to an LFG Grammar.
type Engine struct {
	Parser  Parser
	Grammar *annot.Grammar
	Options solve.Options
}

func NewEngine(p Parser, g *annot.Grammar) *Engine {
	return &Engine{Parser: p, Grammar: g}
}

// Result pairs one CFG parse tree under one annotation choice with the
// f-structures that annotation's disjunction branches admit. A tree with
// several admissible annotations yields several Results sharing the same
// Tree.
type Result struct {
	Tree        *annot.Tree
	FStructures []*fstruct.FStructure
}

// ParseTokens runs the full pipeline over tokens: every CFG parse tree,
// every annotation of every tree, every f-description, every solved
// branch — flattened spec §8 property "ambiguity union": the final
// answer set is the union over every source of ambiguity, not just the
// first one that succeeds.
//
// A sentence with no parse rooted at the grammar's start symbol, no
// admissible annotation, or no satisfiable reading is not an error: it
// returns an empty Result slice with a nil error, the same way Solve
// reports a fully rejected description. Any error the Parser returns is
// passed through wrapped, including a "no parse" error: cfg.ChartParser
// reports a token sequence it cannot parse that way, so with it an
// unparseable sentence yields an error, not an empty result. err
// otherwise signals a genuine solver infrastructure failure.
func (e *Engine) ParseTokens(ctx context.Context, tokens []string) ([]Result, error) {
	trees, err := e.Parser.Parse(tokens)
	if err != nil {
		return nil, fmt.Errorf("lfg: parse: %w", err)
	}
	if e.Grammar.Start != "" {
		filtered := trees[:0]
		for _, t := range trees {
			if t.Symbol == e.Grammar.Start {
				filtered = append(filtered, t)
			}
		}
		trees = filtered
	}
	if len(trees) == 0 {
		if debug.Annotate() {
			debug.Logf("lfg: no CFG parse for %v\n", tokens)
		}
		return []Result{}, nil
	}

	out := []Result{}
	for _, t := range trees {
		annotated := annot.Annotate(t, e.Grammar)
		if debug.Annotate() {
			debug.Logf("lfg: tree admits %d annotation(s)\n", len(annotated))
		}
		for _, a := range annotated {
			gen := equation.NewIDGen()
			desc, root := fdesc.Build(a, gen)
			if debug.Ground() {
				debug.Logf("lfg: f-description rooted at %s: %s\n", root, desc)
			}
			if desc == nil {
				// No equations at all: every attribute is unconstrained,
				// trivially solved to an empty f-structure.
				out = append(out, Result{Tree: t, FStructures: []*fstruct.FStructure{{Kind: fstruct.KindUnset}}})
				continue
			}
			fss, err := solve.Solve(ctx, desc, root, gen.Peek(), e.Options)
			if err != nil {
				return nil, fmt.Errorf("lfg: solve: %w", err)
			}
			if len(fss) == 0 {
				continue
			}
			out = append(out, Result{Tree: t, FStructures: fss})
		}
	}
	return out, nil
}
