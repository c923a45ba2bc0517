package render

import (
	"fmt"
	"sort"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/lfgparse/lfg/fstruct"
)

// Diff is one line of a structural diff between two f-structures: an
// attribute that was added, removed, or whose value changed at some
// path.
type Diff struct {
	Path string
	Kind DiffKind
	From string
	To   string
}

type DiffKind int

const (
	DiffAdded DiffKind = iota
	DiffRemoved
	DiffChanged
)

func (k DiffKind) String() string {
	switch k {
	case DiffAdded:
		return "+"
	case DiffRemoved:
		return "-"
	case DiffChanged:
		return "~"
	}
	return "?"
}

// DiffFStructures reports every attribute added, removed, or changed
// between from and to, depth-first. It maps each side's attribute set
// to a rune string and runs it through diffmatchpatch.DiffMainRunes —
// the same rename-detection trick the teacher's object-diff uses for
// JSON object field names — so that an attribute present on both sides
// recurses instead of printing as an unrelated add+remove pair.
func DiffFStructures(from, to *fstruct.FStructure) []Diff {
	return diffRec("", from, to)
}

func diffRec(path string, from, to *fstruct.FStructure) []Diff {
	if from == to {
		return nil
	}
	if from == nil || from.Kind == fstruct.KindUnset {
		if to == nil || to.Kind == fstruct.KindUnset {
			return nil
		}
		return []Diff{{Path: path, Kind: DiffAdded, To: String(to)}}
	}
	if to == nil || to.Kind == fstruct.KindUnset {
		return []Diff{{Path: path, Kind: DiffRemoved, From: String(from)}}
	}
	if from.Kind != to.Kind {
		return []Diff{{Path: path, Kind: DiffChanged, From: String(from), To: String(to)}}
	}

	switch from.Kind {
	case fstruct.KindAtom:
		if from.Atom.Equal(to.Atom) {
			return nil
		}
		return []Diff{{Path: path, Kind: DiffChanged, From: String(from), To: String(to)}}
	case fstruct.KindFeature:
		return diffFeatures(path, from, to)
	case fstruct.KindSet:
		if fstruct.Equal(from, to) {
			return nil
		}
		return []Diff{{Path: path, Kind: DiffChanged, From: String(from), To: String(to)}}
	default:
		return nil
	}
}

func diffFeatures(path string, from, to *fstruct.FStructure) []Diff {
	fieldMap := map[string]rune{}
	fromRunes := runesFor(fieldMap, from.Features)
	toRunes := runesFor(fieldMap, to.Features)
	runeField := make(map[rune]string, len(fieldMap))
	for f, r := range fieldMap {
		runeField[r] = f
	}

	dmp := diffpatch.New()
	diffs := dmp.DiffMainRunes(fromRunes, toRunes, false)

	var out []Diff
	for _, d := range diffs {
		for _, r := range d.Text {
			field := runeField[r]
			sub := path + "." + field
			switch d.Type {
			case diffpatch.DiffDelete:
				out = append(out, Diff{Path: sub, Kind: DiffRemoved, From: String(from.Features[field])})
			case diffpatch.DiffInsert:
				out = append(out, Diff{Path: sub, Kind: DiffAdded, To: String(to.Features[field])})
			case diffpatch.DiffEqual:
				out = append(out, diffRec(sub, from.Features[field], to.Features[field])...)
			}
		}
	}
	return out
}

func runesFor(m map[string]rune, features map[string]*fstruct.FStructure) []rune {
	names := make([]string, 0, len(features))
	for f := range features {
		names = append(names, f)
	}
	sort.Strings(names)
	rs := make([]rune, len(names))
	for i, f := range names {
		r, ok := m[f]
		if !ok {
			r = rune(len(m))
			m[f] = r
		}
		rs[i] = r
	}
	return rs
}

// Summary renders a diff list as human-readable lines, one per entry.
func Summary(diffs []Diff) []string {
	out := make([]string, len(diffs))
	for i, d := range diffs {
		switch d.Kind {
		case DiffAdded:
			out[i] = fmt.Sprintf("%s %s: %s", d.Kind, d.Path, d.To)
		case DiffRemoved:
			out[i] = fmt.Sprintf("%s %s: %s", d.Kind, d.Path, d.From)
		case DiffChanged:
			out[i] = fmt.Sprintf("%s %s: %s -> %s", d.Kind, d.Path, d.From, d.To)
		}
	}
	return out
}
