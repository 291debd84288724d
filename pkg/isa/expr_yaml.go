package isa

import (
	"github.com/pkg/errors"

	"github.com/rafaelauler/accgen-go/pkg/semantic"
)

// exprNode is the on-disk shape of one expression-tree node. It is
// deliberately a single flat struct rather than a tagged union — YAML
// has no native sum types, and a flat struct with "whichever fields
// are set" is the shape wayneeseguin-graft's own config structs use
// for its tree-shaped input documents.
type exprNode struct {
	// Op names an operator ("add", "sub", "neg", "memref", "call",
	// "return", or a user-defined operator) and Args holds its
	// children, in order. Type, when set alongside Op, names the
	// operator's return type (spec.md §3's Operator.ReturnType) rather
	// than a leaf's type; it is omitted (wildcard) for operators whose
	// result type is irrelevant to matching, e.g. Assign.
	Op   string     `yaml:"op,omitempty"`
	Args []exprNode `yaml:"args,omitempty"`

	// Assign is set instead of Op/Args for an assign node.
	Assign *assignNode `yaml:"assign,omitempty"`

	// Leaf selects a leaf kind: "abstract", "register", "immediate",
	// "constant", or "fragment".
	Leaf  string `yaml:"leaf,omitempty"`
	Name  string `yaml:"name,omitempty"`
	Type  string `yaml:"type,omitempty"`
	Value int64  `yaml:"value,omitempty"`
	Frag  string `yaml:"fragment,omitempty"`

	// Params is an ordered list of parameter names, set only on a
	// "fragment" leaf: FragmentLibrary.ExpandAll renames the
	// alternative tree's Register/Immediate leaves, in pre-order, to
	// these names (spec.md §3's FragOperand "ordered list of parameter
	// names", §4.1's expansion-time renaming).
	Params []string `yaml:"params,omitempty"`
}

type assignNode struct {
	Dest      exprNode  `yaml:"dest"`
	Src       exprNode  `yaml:"src"`
	Predicate *exprNode `yaml:"predicate,omitempty"`
}

// exprBuilder resolves operand/operator type names against a shared
// semantic.TypeTable while walking an exprNode tree into a
// semantic.Expr.
type exprBuilder struct {
	tt *semantic.TypeTable
}

func (b *exprBuilder) build(n exprNode) (semantic.Expr, error) {
	if n.Assign != nil {
		dest, err := b.build(n.Assign.Dest)
		if err != nil {
			return nil, errors.Wrap(err, "assign dest")
		}
		src, err := b.build(n.Assign.Src)
		if err != nil {
			return nil, errors.Wrap(err, "assign src")
		}
		var pred semantic.Expr
		if n.Assign.Predicate != nil {
			pred, err = b.build(*n.Assign.Predicate)
			if err != nil {
				return nil, errors.Wrap(err, "assign predicate")
			}
		}
		return semantic.NewAssign(dest, src, pred), nil
	}

	if n.Leaf != "" {
		return b.buildLeaf(n)
	}

	if n.Op == "" {
		return nil, ErrUnknownOperator
	}
	children := make([]semantic.Expr, len(n.Args))
	for i, a := range n.Args {
		c, err := b.build(a)
		if err != nil {
			return nil, errors.Wrapf(err, "arg %d of %q", i, n.Op)
		}
		children[i] = c
	}
	ot := b.tt.InternOperatorType(n.Op, int32(len(children)))
	if ot.Arity >= 0 && int(ot.Arity) != len(children) {
		return nil, errors.Errorf("operator %q takes %d arguments, got %d", n.Op, ot.Arity, len(children))
	}
	retType := semantic.OperandType{}
	if n.Type != "" {
		retType = b.tt.InternOperandType(n.Type, 0, 0)
	}
	return semantic.NewOperator(ot, retType, n.Op, children...), nil
}

func (b *exprBuilder) buildLeaf(n exprNode) (semantic.Expr, error) {
	typ := semantic.OperandType{}
	if n.Type != "" {
		typ = b.tt.InternOperandType(n.Type, 0, 0)
	}
	switch n.Leaf {
	case "abstract":
		return semantic.NewAbstract(n.Name, typ), nil
	case "register":
		return semantic.NewRegister(n.Name, typ), nil
	case "immediate":
		return semantic.NewImmediate(n.Name, typ), nil
	case "constant":
		return semantic.NewConstant(n.Name, typ, semantic.ConstType(n.Value)), nil
	case "fragment":
		return semantic.NewFragment(n.Name, n.Frag, typ, n.Params), nil
	default:
		return nil, errors.Wrapf(ErrUnknownLeafKind, "%q", n.Leaf)
	}
}
