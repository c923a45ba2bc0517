// Package patch lets a grammar be edited incrementally: marshal it to
// JSON, apply an RFC 6902 JSON patch, parse the result back into
// Productions. The approach (marshal the document, decode+apply the
// patch, parse the result back into the domain type) follows the
// json-patch operator this module's ancestor used for documents.
package patch

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/lfgparse/lfg/annot"
	"github.com/lfgparse/lfg/equation"
)

// Doc is the JSON-serializable form of a production list: one entry per
// annot.Production, with schemas spelled out as a small discriminated
// union rather than the pointer tree equation.Schema uses internally.
type Doc struct {
	Productions []ProductionDoc `json:"productions"`
}

type ProductionDoc struct {
	Parent   string       `json:"parent"`
	Children []string     `json:"children"`
	Specs    []*SchemaDoc `json:"specs"` // one per child, null for "no schema"
}

// SchemaDoc mirrors equation.Schema's shape for marshaling. Kind follows
// equation.EqKind's String() spellings.
type SchemaDoc struct {
	Kind string     `json:"kind"`
	Sub1 *SchemaDoc `json:"sub1,omitempty"`
	Sub2 *SchemaDoc `json:"sub2,omitempty"`
	L    *ExprDoc   `json:"l,omitempty"`
	R    *ExprDoc   `json:"r,omitempty"`
	E    *ExprDoc   `json:"e,omitempty"`
	Pos  bool       `json:"pos,omitempty"`
}

type ExprDoc struct {
	Kind   string   `json:"kind"` // "up", "down", "attr", "atom"
	Base   *ExprDoc `json:"base,omitempty"`
	Attr   string   `json:"attr,omitempty"`
	Atom   string   `json:"atom,omitempty"`   // AtomSymbol value
	Bool   *bool    `json:"bool,omitempty"`   // AtomBool value
	Pred   string   `json:"pred,omitempty"`   // AtomForm predicate
	Roles  []string `json:"roles,omitempty"`  // AtomForm roles
}

// Marshal converts a production set to its patchable JSON document.
func Marshal(productions []*annot.Production) ([]byte, error) {
	doc := Doc{Productions: make([]ProductionDoc, len(productions))}
	for i, p := range productions {
		pd := ProductionDoc{Parent: string(p.Parent), Specs: make([]*SchemaDoc, len(p.Specs))}
		for _, c := range p.Children {
			pd.Children = append(pd.Children, string(c))
		}
		for j, spec := range p.Specs {
			pd.Specs[j] = schemaToDoc(spec)
		}
		doc.Productions[i] = pd
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Apply applies an RFC 6902 JSON patch to a marshaled grammar document
// and parses the result back into Productions.
func Apply(productions []*annot.Production, rawPatch []byte) ([]*annot.Production, error) {
	before, err := Marshal(productions)
	if err != nil {
		return nil, fmt.Errorf("patch: marshal: %w", err)
	}
	ops, err := jsonpatch.DecodePatch(rawPatch)
	if err != nil {
		return nil, fmt.Errorf("patch: decode: %w", err)
	}
	after, err := ops.Apply(before)
	if err != nil {
		return nil, fmt.Errorf("patch: apply: %w", err)
	}
	var doc Doc
	if err := json.Unmarshal(after, &doc); err != nil {
		return nil, fmt.Errorf("patch: unmarshal result: %w", err)
	}
	out := make([]*annot.Production, len(doc.Productions))
	for i, pd := range doc.Productions {
		children := make([]annot.Symbol, len(pd.Children))
		for j, c := range pd.Children {
			children[j] = annot.Symbol(c)
		}
		specs := make([]*equation.Schema, len(pd.Specs))
		for j, sd := range pd.Specs {
			specs[j] = docToSchema(sd)
		}
		out[i] = &annot.Production{Parent: annot.Symbol(pd.Parent), Children: children, Specs: specs}
	}
	return out, nil
}

func schemaToDoc(eq *equation.Schema) *SchemaDoc {
	if eq == nil {
		return nil
	}
	d := &SchemaDoc{Kind: eq.Kind.String(), Pos: eq.Pos}
	switch eq.Kind {
	case equation.EqDisjunction, equation.EqConjunction:
		d.Sub1 = schemaToDoc(eq.Sub1)
		d.Sub2 = schemaToDoc(eq.Sub2)
	case equation.EqAssign, equation.EqContain, equation.EqEquals, equation.EqContains:
		d.L = exprToDoc(eq.L)
		d.R = exprToDoc(eq.R)
	case equation.EqExists:
		d.E = exprToDoc(eq.E)
	}
	return d
}

func docToSchema(d *SchemaDoc) *equation.Schema {
	if d == nil {
		return nil
	}
	switch d.Kind {
	case "or":
		return equation.Disjunction(docToSchema(d.Sub1), docToSchema(d.Sub2))
	case "and":
		return equation.Conjunction(docToSchema(d.Sub1), docToSchema(d.Sub2))
	case "=":
		return equation.Assign(docToExpr(d.L), docToExpr(d.R))
	case "in":
		return equation.Contain(docToExpr(d.L), docToExpr(d.R))
	case "=?":
		return equation.Equals(d.Pos, docToExpr(d.L), docToExpr(d.R))
	case "in?":
		return equation.Contains(d.Pos, docToExpr(d.L), docToExpr(d.R))
	case "exists?":
		return equation.Exists(d.Pos, docToExpr(d.E))
	}
	return nil
}

func exprToDoc(e *equation.SchemaExpr) *ExprDoc {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case equation.ExprID:
		if e.ID == equation.UP {
			return &ExprDoc{Kind: "up"}
		}
		return &ExprDoc{Kind: "down"}
	case equation.ExprAttr:
		return &ExprDoc{Kind: "attr", Base: exprToDoc(e.Base), Attr: e.Attr}
	case equation.ExprAtom:
		switch e.Atom.Kind {
		case equation.AtomSymbol:
			return &ExprDoc{Kind: "atom", Atom: e.Atom.Symbol}
		case equation.AtomBool:
			b := e.Atom.Bool
			return &ExprDoc{Kind: "atom", Bool: &b}
		case equation.AtomForm:
			return &ExprDoc{Kind: "atom", Pred: e.Atom.Form.Pred, Roles: e.Atom.Form.Roles}
		}
	}
	return nil
}

func docToExpr(d *ExprDoc) *equation.SchemaExpr {
	if d == nil {
		return nil
	}
	switch d.Kind {
	case "up":
		return equation.Up()
	case "down":
		return equation.Down()
	case "attr":
		return equation.AttrOf(docToExpr(d.Base), d.Attr)
	case "atom":
		switch {
		case d.Bool != nil:
			return equation.AtomExpr[equation.RelID](equation.Bool(*d.Bool))
		case d.Pred != "":
			return equation.AtomExpr[equation.RelID](equation.Form(equation.SemForm{Pred: d.Pred, Roles: d.Roles}))
		default:
			return equation.AtomExpr[equation.RelID](equation.Symbol(d.Atom))
		}
	}
	return nil
}
