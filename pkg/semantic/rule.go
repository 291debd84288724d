package semantic

// Rule is a bidirectional rewrite rule: LHS and RHS are two
// expression trees forming the pattern pair
// original_source/InsnSelector/TransformationRules.{h,cpp} calls
// a TransformationRule. A rule can be applied forward (match LHS,
// produce RHS) or backward (match RHS, produce LHS); Cost is added to
// a SearchResult whenever the rule contributes to a derivation.
type Rule struct {
	Name string
	LHS  Expr
	RHS  Expr
	Cost int

	// Equivalent marks a rule as a true equivalence (lhs means exactly
	// rhs) rather than a one-directional cost rewrite; BackwardApply
	// is only permitted when this is set (spec.md §4.3). The composes
	// branch of Decompose does not check it.
	Equivalent bool

	// Decomposes is true when RHS contains a Decomp operator
	// (spec.md §3): forward-applying this rule — matching LHS against
	// the goal and substituting into RHS — produces a Decomp-rooted
	// tree whose children sever into independent subgoals, rather than
	// a single replacement tree.
	Decomposes bool

	// Composes is true when LHS contains a Decomp operator: the mirror
	// of Decomposes for the backward direction, used by Decompose when
	// a rule severs a goal via its LHS rather than its RHS.
	Composes bool

	// OpTransforms records how individual named operands map between
	// LHS and RHS beyond plain structural substitution — e.g. an
	// immediate that must be shifted or masked when a rule rewrites it
	// (spec.md §3). Expr is an opaque string. The matcher and the
	// search engine do not read these, and SearchResult does not carry
	// them (its OpTransforms field holds rewritten trees instead).
	OpTransforms []OperandTransformation
}

// OperandTransformation records that the operand named LHSName on a
// rule's LHS corresponds to the operand named RHSName on its RHS under
// Expr, an opaque transformation expression passed through to the
// code generator unevaluated (spec.md §3).
type OperandTransformation struct {
	LHSName string
	RHSName string
	Expr    string
}

// ValidateDecompPlacement enforces DESIGN.md's Open Question 1
// decision: a Decomp operator may appear only at e's root. A Decomp
// anywhere below the root, including as an immediate child of the
// root, is rejected, and so is a Decomp nested inside a root Decomp.
// original_source/InsnSelector/TransformationRules.cpp's SeverTree
// comments that a nested Decomp is undefined behavior and may leak;
// accgen-go rejects such rules entirely at ISA-load time instead of
// reproducing that undefined behavior.
func ValidateDecompPlacement(e Expr) error {
	op, ok := e.(*Operator)
	if !ok {
		return nil
	}
	if op.Type.TypeID == OpDecomp {
		for _, c := range op.Children {
			if ContainsDecomp(c) {
				return &NestedDecompError{}
			}
		}
		return nil
	}
	if ContainsDecomp(e) {
		return &NestedDecompError{}
	}
	return nil
}

// ContainsDecomp reports whether e contains a Decomp operator anywhere
// in its tree; it underlies both ValidateDecompPlacement and a rule's
// derived Decomposes/Composes flags (spec.md §3: "decomposes is true
// iff rhs contains a Decomp operator; composes is true iff lhs
// contains it").
func ContainsDecomp(e Expr) bool {
	found := false
	Walk(e, func(n Expr) bool {
		if op, ok := n.(*Operator); ok && op.Type.TypeID == OpDecomp {
			found = true
			return false
		}
		return !found
	})
	return found
}

// ForwardApply matches r.LHS against target; on success it returns
// the tree obtained by substituting the bindings into r.RHS via
// SubstituteLeafs. This is Rule::Apply in the forward direction
// (original_source/InsnSelector/TransformationRules.cpp).
func (r *Rule) ForwardApply(target Expr, gen *NameGenerator) (Expr, Bindings, bool) {
	b := make(Bindings)
	if !MatchRule(r.LHS, target, b) {
		return nil, nil, false
	}
	return SubstituteLeafs(r.RHS, b, gen), b, true
}

// BackwardApply matches r.RHS against target and substitutes into
// r.LHS, the mirror-image application used when the search engine
// works backward from a goal toward known instruction shapes. It is
// permitted only when r.Equivalent: a one-directional cost rewrite
// means lhs rewrites to rhs, not the reverse, and applying it backward
// would derive an unsound transformation (spec.md §4.3).
func (r *Rule) BackwardApply(target Expr, gen *NameGenerator) (Expr, Bindings, bool) {
	if !r.Equivalent {
		return nil, nil, false
	}
	b := make(Bindings)
	if !MatchRule(r.RHS, target, b) {
		return nil, nil, false
	}
	return SubstituteLeafs(r.LHS, b, gen), b, true
}

// Decompose severs target into independent subgoals according to a
// Decomp-rooted rule. When r.Decomposes it forward-applies r (matching
// r.LHS against target, substituting the captured bindings into
// r.RHS); otherwise, when r.Composes, it applies r backward (matching
// r.RHS against target, substituting into r.LHS) without requiring
// r.Equivalent — decompose's backward branch is a severing operation
// in its own right, not a claim that lhs and rhs are interchangeable
// (spec.md §4.3). Either way it then severs the resulting tree's
// top-level Decomp operator, handing back its children as independent
// goals. It returns ok == false if r does neither, target does not
// match the chosen pattern side, or the substituted result is not
// itself Decomp-rooted (DESIGN.md Open Question 1: a rule that passed
// ValidateDecompPlacement has Decomp only at the root of a side, so a
// successful application on a decomposing/composing rule always lands
// here). This
// is ApplyDecompositionRule in original_source/InsnSelector/Search.cpp.
func (r *Rule) Decompose(target Expr, gen *NameGenerator) (goals []Expr, ok bool) {
	var rewritten Expr
	var matched bool
	switch {
	case r.Decomposes:
		rewritten, _, matched = r.ForwardApply(target, gen)
	case r.Composes:
		b := make(Bindings)
		if MatchRule(r.RHS, target, b) {
			rewritten = SubstituteLeafs(r.LHS, b, gen)
			matched = true
		}
	default:
		return nil, false
	}
	if !matched {
		return nil, false
	}
	op, isOp := rewritten.(*Operator)
	if !isOp || op.Type.TypeID != OpDecomp {
		return nil, false
	}
	goals = make([]Expr, len(op.Children))
	copy(goals, op.Children)
	return goals, true
}
