// Package fdesc builds an f-description: the conjunction of ground
// equations obtained by walking one annotated tree and resolving every
// UP/DOWN reference to a freshly minted absolute identifier (spec §4.3).
package fdesc

import (
	"github.com/lfgparse/lfg/annot"
	"github.com/lfgparse/lfg/equation"
)

// Build walks t, allocating one fresh AbsID per node visited (including
// terminals), and returns the conjunction of every grounded equation plus
// the root node's own ID. A nil description means the tree contributed no
// equations at all (a bare Hole or Empty node), which is legal.
func Build(t *annot.Annotated, gen *equation.IDGen) (*equation.Ground, equation.AbsID) {
	id := gen.Fresh()

	switch t.Kind {
	case annot.Terminal:
		if t.Spec == nil {
			return nil, id
		}
		// A terminal has no further children of its own; its lexical
		// schema is grounded reflexively, up == down == its own id,
		// since ↑ for a word's lexical entry means "the f-structure of
		// this word" and there is nothing further down to distinguish.
		return equation.GroundEquation(id, id, t.Spec), id

	case annot.NonTerminal:
		var desc *equation.Ground
		for _, child := range t.Children {
			childDesc, childID := Build(child.Node, gen)
			if child.Spec != nil {
				desc = conjoin(desc, equation.GroundEquation(id, childID, child.Spec))
			}
			desc = conjoin(desc, childDesc)
		}
		return desc, id

	default: // Hole, Empty
		return nil, id
	}
}

func conjoin(a, b *equation.Ground) *equation.Ground {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return equation.Conjunction(a, b)
}
