package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lfgparse/lfg/equation"
	"github.com/lfgparse/lfg/fstruct"
)

// Pretty writes a deterministic, indented rendering of fs to w. Feature
// attributes are sorted alphabetically, and set members by their rendered
// text, so two equal f-structures always
// print identically regardless of map iteration order, making the
// output usable as a test fixture (spec §1 test-tooling note).
func Pretty(w io.Writer, fs *fstruct.FStructure, colors *Colors) error {
	return prettyRec(w, fs, colors, 0, make(map[*fstruct.FStructure]bool))
}

func prettyRec(w io.Writer, fs *fstruct.FStructure, colors *Colors, depth int, onPath map[*fstruct.FStructure]bool) error {
	if fs == nil {
		_, err := fmt.Fprint(w, "_")
		return err
	}
	switch fs.Kind {
	case fstruct.KindUnset:
		_, err := fmt.Fprint(w, colors.paint(AttrBracket, "_"))
		return err
	case fstruct.KindAtom:
		return printAtom(w, fs.Atom, colors)
	case fstruct.KindSet:
		if _, err := fmt.Fprint(w, colors.paint(AttrBracket, "{")); err != nil {
			return err
		}
		elems := make([]string, len(fs.Elems))
		for i, e := range fs.Elems {
			var b strings.Builder
			if err := prettyRec(&b, e, colors, depth+1, onPath); err != nil {
				return err
			}
			elems[i] = b.String()
		}
		sort.Strings(elems)
		for i, e := range elems {
			if i > 0 {
				if _, err := fmt.Fprint(w, ", "); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprint(w, e); err != nil {
				return err
			}
		}
		_, err := fmt.Fprint(w, colors.paint(AttrBracket, "}"))
		return err
	case fstruct.KindFeature:
		if onPath[fs] {
			_, err := fmt.Fprint(w, colors.paint(AttrBracket, "<cycle>"))
			return err
		}
		onPath[fs] = true
		defer delete(onPath, fs)

		if _, err := fmt.Fprint(w, colors.paint(AttrBracket, "[")); err != nil {
			return err
		}
		attrs := make([]string, 0, len(fs.Features))
		for a := range fs.Features {
			attrs = append(attrs, a)
		}
		sort.Strings(attrs)
		indent := strings.Repeat("  ", depth+1)
		for _, a := range attrs {
			if _, err := fmt.Fprintf(w, "\n%s%s = ", indent, colors.paint(AttrName, a)); err != nil {
				return err
			}
			if err := prettyRec(w, fs.Features[a], colors, depth+1, onPath); err != nil {
				return err
			}
		}
		if len(attrs) > 0 {
			if _, err := fmt.Fprintf(w, "\n%s", strings.Repeat("  ", depth)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprint(w, colors.paint(AttrBracket, "]"))
		return err
	default:
		return fmt.Errorf("render: unreachable f-structure kind %v", fs.Kind)
	}
}

func printAtom(w io.Writer, a equation.Atom, colors *Colors) error {
	var err error
	switch a.Kind {
	case equation.AtomSymbol:
		_, err = fmt.Fprint(w, colors.paint(AttrAtomSymbol, a.Symbol))
	case equation.AtomBool:
		_, err = fmt.Fprint(w, colors.paint(AttrAtomBool, fmt.Sprintf("%v", a.Bool)))
	case equation.AtomForm:
		_, err = fmt.Fprint(w, colors.paint(AttrPred, fmt.Sprintf("%s<%s>", a.Form.Pred, strings.Join(a.Form.Roles, ","))))
	}
	return err
}

// String is a convenience wrapper returning Pretty's output as a string,
// uncolored (no terminal to gate the color decision on).
func String(fs *fstruct.FStructure) string {
	var b strings.Builder
	_ = Pretty(&b, fs, nil)
	return b.String()
}
