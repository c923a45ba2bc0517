// Package combinator builds lexical categories from small expr-lang
// scripts instead of Go closures, so a grammar's morphology can live in
// configuration rather than code. Grounded on the teacher's script
// operator (package eval): compile an expr-lang program once, then run
// it per input with a small typed environment.
package combinator

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/lfgparse/lfg/annot"
	"github.com/lfgparse/lfg/equation"
)

// Env is the expr-lang environment a rule's scripts run against.
type Env struct {
	Token string
}

// Rule compiles into one annot.LexicalCategory. Match decides whether
// the category applies to a token at all (an empty Match always
// matches); Build evaluates to a map[string]any of attribute name to
// atomic value — a string becomes a Symbol atom, a bool becomes a Bool
// atom — each turned into an assignment `↑.attr = value`.
type Rule struct {
	Symbol annot.Symbol
	Match  string
	Build  string
}

// Compiled is a Rule with its expr-lang programs pre-compiled, ready to
// become an annot.LexicalCategory.
type Compiled struct {
	symbol annot.Symbol
	match  *vm.Program
	build  *vm.Program
}

func Compile(r Rule) (*Compiled, error) {
	c := &Compiled{symbol: r.Symbol}
	if r.Match != "" {
		prg, err := expr.Compile(r.Match, expr.Env(Env{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("combinator: compiling match for %s: %w", r.Symbol, err)
		}
		c.match = prg
	}
	if r.Build != "" {
		prg, err := expr.Compile(r.Build, expr.Env(Env{}))
		if err != nil {
			return nil, fmt.Errorf("combinator: compiling build for %s: %w", r.Symbol, err)
		}
		c.build = prg
	}
	return c, nil
}

// Category turns the compiled rule into an annot.LexicalCategory.
func (c *Compiled) Category() annot.LexicalCategory {
	return annot.LexicalCategory{
		Symbol: c.symbol,
		Lookup: func(token string) ([]*equation.Schema, bool) {
			env := Env{Token: token}
			if c.match != nil {
				out, err := expr.Run(c.match, env)
				if err != nil || out != true {
					return nil, false
				}
			}
			if c.build == nil {
				return []*equation.Schema{nil}, true
			}
			res, err := expr.Run(c.build, env)
			if err != nil {
				return nil, false
			}
			fields, ok := res.(map[string]any)
			if !ok {
				return nil, false
			}
			schema, err := schemaFromFields(fields)
			if err != nil {
				return nil, false
			}
			return []*equation.Schema{schema}, true
		},
	}
}

func schemaFromFields(fields map[string]any) (*equation.Schema, error) {
	var eqs []*equation.Schema
	for attr, v := range fields {
		var atom equation.Atom
		switch val := v.(type) {
		case string:
			atom = equation.Symbol(val)
		case bool:
			atom = equation.Bool(val)
		default:
			return nil, fmt.Errorf("combinator: field %q has unsupported type %T", attr, v)
		}
		eqs = append(eqs, equation.Assign(equation.AttrOf(equation.Up(), attr), equation.AtomExpr[equation.RelID](atom)))
	}
	return equation.ConjunctionAll(eqs), nil
}
