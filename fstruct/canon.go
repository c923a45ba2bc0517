package fstruct

import "github.com/lfgparse/lfg/equation"

// Kind mirrors ValueKind for the public, immutable view produced once
// solving finishes.
type Kind int

const (
	KindUnset Kind = iota
	KindAtom
	KindFeature
	KindSet
)

// FStructure is the immutable, canonicalized result of solving one
// branch's description (spec §4.4 step 4: "the solved store is converted
// to a read-only f-structure keyed by identity, not by representative
// id, so that re-entrant structure shows up as a shared pointer rather
// than being copied"). Two attributes that resolve to the same
// underlying class point at the exact same *FStructure, which is what
// makes cyclic and shared substructure representable without infinite
// unfolding.
type FStructure struct {
	Kind     Kind
	Atom     equation.Atom
	Features map[string]*FStructure
	Elems    []*FStructure
}

// Canonicalize converts the store's view of root into an FStructure,
// memoizing by class representative so that cycles and shared
// substructure resolve to one shared pointer instead of recursing
// forever.
func Canonicalize(s *Store, root equation.AbsID) *FStructure {
	memo := make(map[equation.AbsID]*FStructure)
	return canon(s, root, memo)
}

func canon(s *Store, id equation.AbsID, memo map[equation.AbsID]*FStructure) *FStructure {
	rep := s.Find(id)
	if fs, ok := memo[rep]; ok {
		return fs
	}
	fs := &FStructure{}
	memo[rep] = fs // install before recursing so cycles see this pointer

	v, ok := s.value[rep]
	if !ok {
		return fs
	}
	switch v.Kind {
	case Unset:
		fs.Kind = KindUnset
	case ValAtom:
		fs.Kind = KindAtom
		fs.Atom = v.Atom
	case ValFeature:
		fs.Kind = KindFeature
		fs.Features = make(map[string]*FStructure, len(v.Features))
		for attr, target := range v.Features {
			fs.Features[attr] = canon(s, target, memo)
		}
	case ValSet:
		fs.Kind = KindSet
		for e := range v.Elems {
			fs.Elems = append(fs.Elems, canon(s, e, memo))
		}
	}
	return fs
}

// Equal reports whether two f-structures are structurally identical,
// treating shared/cyclic substructure correctly by tracking which pairs
// are already assumed equal on the current recursion path.
func Equal(a, b *FStructure) bool {
	return equalRec(a, b, make(map[[2]*FStructure]bool))
}

func equalRec(a, b *FStructure, seen map[[2]*FStructure]bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	key := [2]*FStructure{a, b}
	if seen[key] {
		return true
	}
	seen[key] = true

	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindAtom:
		return a.Atom.Equal(b.Atom)
	case KindFeature:
		if len(a.Features) != len(b.Features) {
			return false
		}
		for attr, av := range a.Features {
			bv, ok := b.Features[attr]
			if !ok || !equalRec(av, bv, seen) {
				return false
			}
		}
		return true
	case KindSet:
		if len(a.Elems) != len(b.Elems) {
			return false
		}
		used := make([]bool, len(b.Elems))
		for _, ae := range a.Elems {
			matched := false
			for j, be := range b.Elems {
				if used[j] {
					continue
				}
				if equalRec(ae, be, seen) {
					used[j] = true
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
		return true
	default: // KindUnset
		return true
	}
}
