// Package fstruct is the F-structure model: a disjoint-set union over
// absolute identifiers plus a value map keyed by class representative
// (spec §3, §4.4). It is the only mutable state the solver touches, and
// it is local to one branch (spec §5): branches never share a Store.
package fstruct

import (
	"fmt"

	"github.com/lfgparse/lfg/equation"
)

// ValueKind tags what a class representative currently holds.
type ValueKind int

const (
	Unset ValueKind = iota
	ValAtom
	ValFeature
	ValSet
)

// Value is the payload living on one class's representative.
type Value struct {
	Kind     ValueKind
	Atom     equation.Atom
	Features map[string]equation.AbsID // attribute -> id of its value's class
	Elems    map[equation.AbsID]bool   // set members, keyed by class rep
}

// Store is a branch-local union-find over AbsID plus the value living on
// each class's representative.
type Store struct {
	parent  map[equation.AbsID]equation.AbsID
	value   map[equation.AbsID]*Value
	version int // bumped on every mutation, used to detect a fixed point
}

func NewStore() *Store {
	return &Store{
		parent: make(map[equation.AbsID]equation.AbsID),
		value:  make(map[equation.AbsID]*Value),
	}
}

// Version reports how many mutations have happened so far; callers drive
// the fixed-point loop by comparing Version before and after a pass.
func (s *Store) Version() int { return s.version }

// Find returns id's class representative, compressing the path as it
// goes. Path compression is safe here because values only grow onto the
// representative (spec §9).
func (s *Store) Find(id equation.AbsID) equation.AbsID {
	root := id
	for {
		p, ok := s.parent[root]
		if !ok || p == root {
			break
		}
		root = p
	}
	// compress
	for id != root {
		next := s.parent[id]
		if next == id {
			break
		}
		s.parent[id] = root
		id = next
	}
	return root
}

func (s *Store) ensure(id equation.AbsID) {
	if _, ok := s.parent[id]; !ok {
		s.parent[id] = id
	}
	if _, ok := s.value[id]; !ok {
		s.value[id] = &Value{Kind: Unset}
	}
}

// Clone deep-copies the store for disjunction branch splitting (spec §9:
// "a branch-local solver state is copied on each split").
func (s *Store) Clone() *Store {
	out := &Store{
		parent:  make(map[equation.AbsID]equation.AbsID, len(s.parent)),
		value:   make(map[equation.AbsID]*Value, len(s.value)),
		version: s.version,
	}
	for k, v := range s.parent {
		out.parent[k] = v
	}
	for k, v := range s.value {
		nv := &Value{Kind: v.Kind, Atom: v.Atom}
		if v.Features != nil {
			nv.Features = make(map[string]equation.AbsID, len(v.Features))
			for a, id := range v.Features {
				nv.Features[a] = id
			}
		}
		if v.Elems != nil {
			nv.Elems = make(map[equation.AbsID]bool, len(v.Elems))
			for e := range v.Elems {
				nv.Elems[e] = true
			}
		}
		out.value[k] = nv
	}
	return out
}

// SetAtom sets id's class to atom, failing if the class already holds an
// incompatible atom or a feature map (invariant (a) and (b) of spec §3).
func (s *Store) SetAtom(id equation.AbsID, atom equation.Atom) (changed bool, err error) {
	rep := s.Find(id)
	s.ensure(rep)
	v := s.value[rep]
	switch v.Kind {
	case Unset:
		v.Kind = ValAtom
		v.Atom = atom
		s.bump()
		return true, nil
	case ValAtom:
		if v.Atom.Equal(atom) {
			return false, nil
		}
		return false, fmt.Errorf("fstruct: %s already has atom %s, cannot also be %s", rep, describeAtom(v.Atom), describeAtom(atom))
	case ValFeature:
		return false, fmt.Errorf("fstruct: %s already has a feature map, cannot also be atomic %s", rep, describeAtom(atom))
	case ValSet:
		return false, fmt.Errorf("fstruct: %s is a set, cannot also be atomic %s", rep, describeAtom(atom))
	}
	return false, nil
}

func describeAtom(a equation.Atom) string {
	switch a.Kind {
	case equation.AtomSymbol:
		return a.Symbol
	case equation.AtomBool:
		return fmt.Sprintf("%v", a.Bool)
	case equation.AtomForm:
		return fmt.Sprintf("%s<%v>", a.Form.Pred, a.Form.Roles)
	}
	return "?"
}

// GetFeature resolves id.attr, lazily binding a fresh id when the
// attribute is unset and create is true (spec §4.4 step 2, row 3); with
// create false it is the read-only resolver used during constraint
// checking (spec §4.4 step 3) and never mutates the store.
func (s *Store) GetFeature(id equation.AbsID, attr string, create bool, gen *equation.IDGen) (equation.AbsID, bool, error) {
	rep := s.Find(id)
	s.ensure(rep)
	v := s.value[rep]
	switch v.Kind {
	case Unset:
		if !create {
			return 0, false, nil
		}
		v.Kind = ValFeature
		v.Features = make(map[string]equation.AbsID)
	case ValFeature:
		// fall through
	default:
		return 0, false, fmt.Errorf("fstruct: %s is not a feature structure, cannot access .%s", rep, attr)
	}
	if fid, ok := v.Features[attr]; ok {
		return s.Find(fid), true, nil
	}
	if !create {
		return 0, false, nil
	}
	fresh := gen.Fresh()
	s.ensure(fresh)
	v.Features[attr] = fresh
	s.bump()
	return fresh, true, nil
}

// BindFeature forces id.attr to equal value directly, for a caller that
// already has a concrete id to bind (rather than minting a fresh one to
// union against). If attr is already bound, its existing target is
// unioned with value instead.
func (s *Store) BindFeature(id equation.AbsID, attr string, value equation.AbsID) (bool, error) {
	rep := s.Find(id)
	s.ensure(rep)
	v := s.value[rep]
	if v.Kind == Unset {
		v.Kind = ValFeature
		v.Features = make(map[string]equation.AbsID)
	} else if v.Kind != ValFeature {
		return false, fmt.Errorf("fstruct: %s is not a feature structure, cannot bind .%s", rep, attr)
	}
	if existing, ok := v.Features[attr]; ok {
		return s.Union(existing, value)
	}
	v.Features[attr] = s.Find(value)
	s.bump()
	return true, nil
}

// Union merges a's and b's classes. Feature maps merge key-wise,
// recursively unioning any attribute present on both sides; an atom meets
// an incompatible atom or a feature map and fails (spec §4.4 step 2, row
// 2).
func (s *Store) Union(a, b equation.AbsID) (changed bool, err error) {
	ra, rb := s.Find(a), s.Find(b)
	if ra == rb {
		return false, nil
	}
	s.ensure(ra)
	s.ensure(rb)
	va, vb := s.value[ra], s.value[rb]

	merged, err := s.mergeValues(va, vb)
	if err != nil {
		return false, err
	}

	// rb becomes the representative; ra points to it. (Arbitrary but
	// consistent — callers never depend on which side wins.)
	s.parent[ra] = rb
	s.value[rb] = merged
	delete(s.value, ra)
	s.bump()

	// Any attribute binding that happened to point at ra's feature ids
	// still resolves correctly through Find, so no further rewrite is
	// needed; attributes are always dereferenced through Find before use.
	if merged.Kind == ValFeature {
		for attr, id := range merged.Features {
			merged.Features[attr] = s.Find(id)
		}
	}
	if merged.Kind == ValSet {
		reduced := make(map[equation.AbsID]bool, len(merged.Elems))
		for e := range merged.Elems {
			reduced[s.Find(e)] = true
		}
		merged.Elems = reduced
	}
	return true, nil
}

// mergeValues combines two class values as part of a Union. Shared
// feature attributes recurse into a nested Union of their targets, so two
// structures that each already bind the same attribute to different ids
// end up with those ids unioned too, not silently picking one side.
func (s *Store) mergeValues(a, b *Value) (*Value, error) {
	if a.Kind == Unset {
		return b, nil
	}
	if b.Kind == Unset {
		return a, nil
	}
	if a.Kind == ValAtom && b.Kind == ValAtom {
		if a.Atom.Equal(b.Atom) {
			return a, nil
		}
		return nil, fmt.Errorf("fstruct: incompatible atoms %s and %s", describeAtom(a.Atom), describeAtom(b.Atom))
	}
	if a.Kind == ValSet && b.Kind == ValSet {
		out := &Value{Kind: ValSet, Elems: make(map[equation.AbsID]bool, len(a.Elems)+len(b.Elems))}
		for e := range a.Elems {
			out.Elems[e] = true
		}
		for e := range b.Elems {
			out.Elems[e] = true
		}
		return out, nil
	}
	if a.Kind == ValFeature && b.Kind == ValFeature {
		out := &Value{Kind: ValFeature, Features: make(map[string]equation.AbsID, len(a.Features)+len(b.Features))}
		for attr, id := range a.Features {
			out.Features[attr] = id
		}
		for attr, id := range b.Features {
			existing, ok := out.Features[attr]
			if !ok {
				out.Features[attr] = id
				continue
			}
			if s.Find(existing) == s.Find(id) {
				continue
			}
			if _, err := s.Union(existing, id); err != nil {
				return nil, fmt.Errorf("fstruct: merging .%s: %w", attr, err)
			}
			out.Features[attr] = s.Find(id)
		}
		return out, nil
	}
	return nil, fmt.Errorf("fstruct: incompatible values (%v, %v)", a.Kind, b.Kind)
}

// AddToSet inserts elem into the set at container's class, creating the
// set on first insertion. Failing if container already holds an atom or
// a feature map (spec §3: Containment targets only ever denote sets).
func (s *Store) AddToSet(container, elem equation.AbsID) error {
	rep := s.Find(container)
	s.ensure(rep)
	v := s.value[rep]
	switch v.Kind {
	case Unset:
		v.Kind = ValSet
		v.Elems = make(map[equation.AbsID]bool)
	case ValSet:
		// fall through
	default:
		return fmt.Errorf("fstruct: %s is not a set, cannot contain a new element", rep)
	}
	e := s.Find(elem)
	if v.Elems[e] {
		return nil
	}
	v.Elems[e] = true
	s.bump()
	return nil
}

// AddAtomToSet inserts atom into the set at container's class, skipping
// the insertion if an equal atom is already a member. An atom literal
// has no identity of its own, so membership is checked by value instead
// of minting a class for every element — without this, re-applying the
// same containment equation on every fixed-point pass would mint a
// fresh, distinct class each time and the set would grow forever.
func (s *Store) AddAtomToSet(container equation.AbsID, atom equation.Atom, gen *equation.IDGen) error {
	rep := s.Find(container)
	s.ensure(rep)
	v := s.value[rep]
	switch v.Kind {
	case Unset:
		v.Kind = ValSet
		v.Elems = make(map[equation.AbsID]bool)
	case ValSet:
		// fall through
	default:
		return fmt.Errorf("fstruct: %s is not a set, cannot contain a new element", rep)
	}
	for e := range v.Elems {
		ev, ok := s.value[e]
		if ok && ev.Kind == ValAtom && ev.Atom.Equal(atom) {
			return nil
		}
	}
	id := gen.Fresh()
	if _, err := s.SetAtom(id, atom); err != nil {
		return err
	}
	v.Elems[s.Find(id)] = true
	s.bump()
	return nil
}

// PeekValue returns the value at id's class without mutating the store,
// for read-only constraint checking.
func (s *Store) PeekValue(id equation.AbsID) (*Value, bool) {
	v, ok := s.value[s.Find(id)]
	return v, ok
}

// PeekSet returns the current members of the set at id's class, or false
// if id's class is not a set.
func (s *Store) PeekSet(id equation.AbsID) ([]equation.AbsID, bool) {
	v, ok := s.value[s.Find(id)]
	if !ok || v.Kind != ValSet {
		return nil, false
	}
	out := make([]equation.AbsID, 0, len(v.Elems))
	for e := range v.Elems {
		out = append(out, e)
	}
	return out, true
}

func (s *Store) bump() { s.version++ }
