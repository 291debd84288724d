package semantic

import "fmt"

// freshNameSeed is the starting counter for leaf names introduced by
// SubstituteLeafs that have no binding (a rule template naming a new
// temporary, e.g. a scratch register introduced by the rule itself).
// original_source/InsnSelector/TransformationRules.cpp seeds
// Rule::OpNum at 200 to stay clear of any name a hand-authored ISA
// description is likely to use.
const freshNameSeed = 200

// NameGenerator produces fresh leaf names, used by SubstituteLeafs to
// rename unbound template leaves so repeated rule application never
// collides two different temporaries under the same name. A single
// NameGenerator must be shared across an entire Search call so that
// names stay unique within that search's whole derivation.
type NameGenerator struct {
	next int
}

// NewNameGenerator returns a generator seeded at freshNameSeed.
func NewNameGenerator() *NameGenerator {
	return &NameGenerator{next: freshNameSeed}
}

// Next returns the next fresh name, prefixed for readability in
// diagnostics and rendered templates (pkg/codegen).
func (g *NameGenerator) Next(prefix string) string {
	n := g.next
	g.next++
	return fmt.Sprintf("%s%d", prefix, n)
}

// SubstituteLeafs walks template in post-order and returns a new tree
// where every abstract leaf is resolved: a leaf bound in b is replaced
// by a clone of its bound subtree; an unbound leaf is replaced by a
// fresh leaf of the same kind and type, named via gen, so two
// applications of the same rule never alias each other's temporaries.
// This is SubstituteLeafs in
// original_source/InsnSelector/TransformationRules.cpp.
func SubstituteLeafs(template Expr, b Bindings, gen *NameGenerator) Expr {
	switch n := template.(type) {
	case *Operand:
		if n.Kind != LeafAbstract {
			c := *n
			return &c
		}
		if bound, ok := b[n.Name]; ok {
			return bound.Clone()
		}
		fresh := *n
		fresh.Name = gen.Next("t")
		return &fresh
	case *Operator:
		children := make([]Expr, len(n.Children))
		for i, c := range n.Children {
			children[i] = SubstituteLeafs(c, b, gen)
		}
		return &Operator{Type: n.Type, ReturnType: n.ReturnType, Name: n.Name, Children: children}
	case *AssignOperator:
		out := &AssignOperator{
			Dest: SubstituteLeafs(n.Dest, b, gen),
			Src:  SubstituteLeafs(n.Src, b, gen),
		}
		if n.Predicate != nil {
			out.Predicate = SubstituteLeafs(n.Predicate, b, gen)
		}
		return out
	default:
		return template.Clone()
	}
}
