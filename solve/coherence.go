package solve

import (
	"fmt"

	"github.com/lfgparse/lfg/equation"
	"github.com/lfgparse/lfg/fstruct"
)

// governableRoles is the canonical set of grammatical-function attributes
// a semantic form's argument roles range over (spec §4.4 step 4,
// coherence/completeness; left unspecified by the algebra itself, fixed
// here as an Open Question decision — see the design notes).
var governableRoles = map[string]bool{
	"SUBJ": true, "OBJ": true, "OBJ2": true,
	"COMP": true, "XCOMP": true, "OBL": true, "POSS": true,
}

// checkCoherence walks every f-structure reachable from root and, for
// each one governed by a semantic form (a PRED-bearing atom), verifies:
//   - completeness: every role the form names is present as an attribute
//     on that same f-structure;
//   - coherence: every governable attribute present on that f-structure
//     is named as a role by the form.
//
// Non-PRED-bearing f-structures are not checked; the requirement only
// binds where a semantic form actually governs.
func checkCoherence(s *fstruct.Store, root equation.AbsID) error {
	seen := make(map[equation.AbsID]bool)
	return walkCoherence(s, root, seen)
}

func walkCoherence(s *fstruct.Store, id equation.AbsID, seen map[equation.AbsID]bool) error {
	rep := s.Find(id)
	if seen[rep] {
		return nil
	}
	seen[rep] = true

	v, ok := s.PeekValue(rep)
	if ok && v.Kind == fstruct.ValSet {
		for e := range v.Elems {
			if err := walkCoherence(s, e, seen); err != nil {
				return err
			}
		}
		return nil
	}
	if !ok || v.Kind != fstruct.ValFeature {
		return nil
	}

	if pred, ok := v.Features["PRED"]; ok {
		if pv, ok := s.PeekValue(pred); ok && pv.Kind == fstruct.ValAtom && pv.Atom.Kind == equation.AtomForm {
			if err := checkGovernance(v, pv.Atom.Form, rep); err != nil {
				return err
			}
		}
	}
	for _, target := range v.Features {
		if err := walkCoherence(s, target, seen); err != nil {
			return err
		}
	}
	return nil
}

func checkGovernance(v *fstruct.Value, form equation.SemForm, rep equation.AbsID) error {
	required := make(map[string]bool, len(form.Roles))
	for _, r := range form.Roles {
		required[r] = true
	}
	for role := range required {
		if _, ok := v.Features[role]; !ok {
			return fmt.Errorf("solve: %s is incomplete: %s requires %s", rep, form.Pred, role)
		}
	}
	for attr := range v.Features {
		if attr == "PRED" || !governableRoles[attr] {
			continue
		}
		if !required[attr] {
			return fmt.Errorf("solve: %s is incoherent: %s does not govern %s", rep, form.Pred, attr)
		}
	}
	return nil
}
