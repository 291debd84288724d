package semantic

// Expr is a node in an expression tree: either a leaf Operand or an
// interior Operator/AssignOperator. The variant set is closed to this
// package's constructors via the unexported exprNode marker, mirroring
// the sealed Node/Operand/Operator hierarchy in
// original_source/InsnSelector/Semantic.h.
type Expr interface {
	Clone() Expr
	exprNode()
}

// LeafKind distinguishes the operand leaf variants.
type LeafKind int

const (
	LeafConstant LeafKind = iota
	LeafRegister
	LeafImmediate
	LeafFragment
	LeafAbstract
)

// Operand is a leaf node: a constant, register, immediate, fragment
// reference, or an as-yet-unbound abstract operand. Name is the
// leaf's binding identity used by the matcher (ExtractLeafNames,
// MatchRule) and by SubstituteLeafs' fresh-name renaming.
type Operand struct {
	Kind   LeafKind
	Name   string
	Type   OperandType
	Const  ConstType // valid only when Kind == LeafConstant
	Frag   string    // fragment name, valid only when Kind == LeafFragment
	Params []string  // ordered parameter names, valid only when Kind == LeafFragment
}

func (o *Operand) exprNode() {}

// Clone returns a deep (here, value) copy of the leaf.
func (o *Operand) Clone() Expr {
	c := *o
	return &c
}

// NewConstant builds a constant leaf.
func NewConstant(name string, typ OperandType, value ConstType) *Operand {
	return &Operand{Kind: LeafConstant, Name: name, Type: typ, Const: value}
}

// NewRegister builds a register-operand leaf.
func NewRegister(name string, typ OperandType) *Operand {
	return &Operand{Kind: LeafRegister, Name: name, Type: typ}
}

// NewImmediate builds an immediate-operand leaf: a placeholder taking
// any compile-time constant value, distinct from a fixed Constant.
func NewImmediate(name string, typ OperandType) *Operand {
	return &Operand{Kind: LeafImmediate, Name: name, Type: typ}
}

// NewFragment builds a leaf standing for an operand fragment to be
// expanded by FragmentLibrary.ExpandAll before search begins. params is
// the ordered list of parameter names FragmentLibrary.expand uses to
// rename the fragment's alternative tree's Register/Immediate leaves,
// in pre-order, once the fragment reference itself expands (spec.md
// §3's FragOperand). It may be nil for a fragment with no parameters.
func NewFragment(name, fragName string, typ OperandType, params []string) *Operand {
	return &Operand{Kind: LeafFragment, Name: name, Type: typ, Frag: fragName, Params: params}
}

// NewAbstract builds an unbound named leaf: a pattern variable used on
// a Rule's pattern side, matched structurally by MatchRule and
// resolved by SubstituteLeafs.
func NewAbstract(name string, typ OperandType) *Operand {
	return &Operand{Kind: LeafAbstract, Name: name, Type: typ}
}

// Operator is an interior node: an operator type applied to an
// ordered list of child expressions, with a return OperandType
// (spec.md §3) — the type/size of the value the operator computes,
// checked by MatchRule when a non-wildcard pattern variable binds an
// entire operator subtree rather than a single leaf.
type Operator struct {
	Type       OperatorType
	ReturnType OperandType
	Name       string
	Children   []Expr
}

func (p *Operator) exprNode() {}

// Clone returns a deep copy of the subtree rooted at p.
func (p *Operator) Clone() Expr {
	children := make([]Expr, len(p.Children))
	for i, c := range p.Children {
		children[i] = c.Clone()
	}
	return &Operator{Type: p.Type, ReturnType: p.ReturnType, Name: p.Name, Children: children}
}

// NewOperator builds an interior node. It panics on an arity mismatch:
// arities only ever come from pkg/isa's loader or this package's own
// rule engine, never from uncontrolled input, so a mismatch here is an
// invariant violation rather than a normal error (spec.md §7).
func NewOperator(typ OperatorType, returnType OperandType, name string, children ...Expr) *Operator {
	if typ.Arity >= 0 && int(typ.Arity) != len(children) {
		panic("semantic: operator arity mismatch for " + name)
	}
	return &Operator{Type: typ, ReturnType: returnType, Name: name, Children: children}
}

// AssignOperator is the distinguished assign node: Dest := Src, with
// an optional guarding Predicate. PrimaryOp (hash.go) looks through an
// AssignOperator to its Src child and ignores Predicate entirely, per
// the Open Question decision in DESIGN.md — this mirrors
// original_source/InsnSelector/Search.cpp's PrimaryOperatorType.
type AssignOperator struct {
	Dest      Expr
	Src       Expr
	Predicate Expr // nil when unconditional
}

func (a *AssignOperator) exprNode() {}

// Clone returns a deep copy, including Predicate when present.
func (a *AssignOperator) Clone() Expr {
	c := &AssignOperator{Dest: a.Dest.Clone(), Src: a.Src.Clone()}
	if a.Predicate != nil {
		c.Predicate = a.Predicate.Clone()
	}
	return c
}

// Children returns [Dest, Src], the AssignOperator's two operands as
// a 2-ary Operator of type OpAssign would hold them; Predicate is not
// included. The tree walkers in this package (Walk, hash.go, match.go,
// substitute.go) switch on the node type and read Dest, Src and
// Predicate directly rather than calling this method.
func (a *AssignOperator) Children() []Expr { return []Expr{a.Dest, a.Src} }

// OperatorType reports the AssignOperator's fixed type so callers can
// treat it uniformly with Operator.Type.
func (a *AssignOperator) OperatorType() OperatorType {
	return OperatorType{TypeID: OpAssign, Arity: 2}
}

// NewAssign builds an AssignOperator. predicate may be nil.
func NewAssign(dest, src, predicate Expr) *AssignOperator {
	return &AssignOperator{Dest: dest, Src: src, Predicate: predicate}
}

// Walk calls visit for e and, recursively, for every child in
// pre-order. visit returning false stops the recursion into that
// node's children (but not its siblings).
func Walk(e Expr, visit func(Expr) bool) {
	if !visit(e) {
		return
	}
	switch n := e.(type) {
	case *Operator:
		for _, c := range n.Children {
			Walk(c, visit)
		}
	case *AssignOperator:
		Walk(n.Dest, visit)
		Walk(n.Src, visit)
	}
}
