// Package render prints and diffs solved f-structures (spec §4.4 step
// 4's output, consumed by a human or a test fixture). Coloring follows
// the teacher's Colors table (package encode); diffing follows its
// libdiff object-diff, adapted from tony-format's field-rename diff to
// an f-structure's attribute-rename diff.
package render

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Attr tags which part of a printed f-structure a color applies to.
type Attr int

const (
	AttrName Attr = iota
	AttrAtomSymbol
	AttrAtomBool
	AttrPred
	AttrBracket
)

// Colors maps an Attr to the function that paints a string with it.
type Colors struct {
	Map map[Attr]func(string, ...any) string
}

// NewColors is the default color table, one entry per Attr.
func NewColors() *Colors {
	c := &Colors{Map: map[Attr]func(string, ...any) string{}}
	c.Map[AttrName] = color.RGB(128, 168, 196).SprintfFunc()
	c.Map[AttrAtomSymbol] = color.RGB(8, 196, 16).SprintfFunc()
	c.Map[AttrAtomBool] = color.CyanString
	c.Map[AttrPred] = color.RGB(196, 96, 16).SprintfFunc()
	c.Map[AttrBracket] = color.RGB(255, 0, 196).SprintfFunc()
	return c
}

func (c *Colors) paint(attr Attr, s string) string {
	if c == nil {
		return s
	}
	if f, ok := c.Map[attr]; ok {
		return f(s)
	}
	return s
}

// AutoColors returns NewColors() when w is a terminal, NO_COLOR is unset,
// and no explicit choice has been made, nil otherwise — isatty.IsTerminal
// gated exactly the way the teacher's CLI decides whether to colorize
// stdout, plus the NO_COLOR check fatih/color's own SprintfFunc values
// already honor internally (checked here too so a disabled Colors value
// is nil rather than a live-but-suppressed one).
func AutoColors(w *os.File) *Colors {
	if w == nil || os.Getenv("NO_COLOR") != "" {
		return nil
	}
	if isatty.IsTerminal(w.Fd()) {
		return NewColors()
	}
	return nil
}
