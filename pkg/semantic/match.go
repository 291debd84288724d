package semantic

// Bindings maps a pattern's abstract-leaf names to the target subtrees
// they matched. A single Bindings value accumulates across an entire
// MatchRule call; repeated occurrences of the same name in a pattern
// must bind to structurally equal subtrees (Compare), exactly like a
// logic-variable re-occurrence check in unification.
type Bindings map[string]Expr

// Compare performs the CORE's structural equality test between two
// expressions, per spec.md §4.2. When topLevelOnly is true, only the
// root node's shape is checked (operator type and arity, or leaf kind
// and type, with wildcard/size subsumption via OperandType.EqualLoose)
// — children are not inspected. The search engine and the
// TransformationCache call only the deep form (topLevelOnly == false);
// the pruning heuristic (HasCloseSemantic, search.go) compares PrimaryOp
// ids instead of calling Compare.
func Compare(a, b Expr, topLevelOnly bool) bool {
	switch an := a.(type) {
	case *Operand:
		bn, ok := b.(*Operand)
		if !ok {
			return false
		}
		if an.Kind != bn.Kind {
			return false
		}
		if !an.Type.EqualLoose(bn.Type) {
			return false
		}
		if an.Kind == LeafConstant && an.Const != bn.Const {
			return false
		}
		return true
	case *Operator:
		bn, ok := b.(*Operator)
		if !ok {
			return false
		}
		if an.Type.TypeID != bn.Type.TypeID || len(an.Children) != len(bn.Children) {
			return false
		}
		if topLevelOnly {
			return true
		}
		for i := range an.Children {
			if !Compare(an.Children[i], bn.Children[i], false) {
				return false
			}
		}
		return true
	case *AssignOperator:
		bn, ok := b.(*AssignOperator)
		if !ok {
			return false
		}
		if topLevelOnly {
			return true
		}
		if !Compare(an.Dest, bn.Dest, false) || !Compare(an.Src, bn.Src, false) {
			return false
		}
		if (an.Predicate == nil) != (bn.Predicate == nil) {
			return false
		}
		if an.Predicate != nil && !Compare(an.Predicate, bn.Predicate, false) {
			return false
		}
		return true
	default:
		return false
	}
}

// isMemRefWildcard reports whether leaf is an abstract (pattern
// variable) operand whose Type id is OpMemRef — a leaf that
// original_source/InsnSelector/TransformationRules.cpp's
// MatchExpByRule special-cases to match any target node regardless
// of type, because a memory reference's addressing mode is resolved
// later by pkg/isa, not by the structural matcher.
func isMemRefWildcard(leaf *Operand) bool {
	return leaf.Kind == LeafAbstract && leaf.Type.TypeID == OpMemRef
}

// MatchRule attempts to match pattern (a rule's left-hand side, built
// from NewAbstract leaves as pattern variables) against target,
// accumulating variable bindings into b. It returns false, leaving b
// partially populated, on the first mismatch — callers must discard a
// failed match's Bindings rather than reuse them.
//
// This is MatchExpByRule<JustCompare> from
// original_source/InsnSelector/TransformationRules.cpp: an abstract
// leaf binds on first occurrence; a repeated name must Compare equal
// to its existing binding; a non-abstract pattern node must structurally
// match target via the same rules Compare applies, recursing into
// children.
func MatchRule(pattern, target Expr, b Bindings) bool {
	if op, ok := pattern.(*Operand); ok && op.Kind == LeafAbstract {
		if isMemRefWildcard(op) {
			b[op.Name] = target
			return true
		}
		// spec.md §4.2: a wildcard-typed pattern leaf matches any node
		// except a MemRef operator — a memory reference's addressing
		// mode must be matched by a pattern that names it explicitly,
		// never absorbed by an untyped rule variable.
		if op.Type.IsWildcard() {
			if memRefOp, isOp := target.(*Operator); isOp && memRefOp.Type.TypeID == OpMemRef {
				return false
			}
		}
		if existing, bound := b[op.Name]; bound {
			return Compare(existing, target, false)
		}
		switch targetNode := target.(type) {
		case *Operand:
			if !op.Type.EqualLoose(targetNode.Type) {
				return false
			}
		case *Operator:
			// spec.md §4.2: a non-wildcard pattern operand matches an
			// expression operator only when the operator's return type
			// is the same type and a compatible size; otherwise the bind
			// would let a typed variable silently absorb a subtree of an
			// incompatible type.
			if !op.Type.EqualLoose(targetNode.ReturnType) {
				return false
			}
		}
		b[op.Name] = target
		return true
	}

	switch pn := pattern.(type) {
	case *Operand:
		return Compare(pn, target, false)
	case *Operator:
		tn, ok := target.(*Operator)
		if !ok || pn.Type.TypeID != tn.Type.TypeID || len(pn.Children) != len(tn.Children) {
			return false
		}
		for i := range pn.Children {
			if !MatchRule(pn.Children[i], tn.Children[i], b) {
				return false
			}
		}
		return true
	case *AssignOperator:
		tn, ok := target.(*AssignOperator)
		if !ok {
			return false
		}
		if !MatchRule(pn.Dest, tn.Dest, b) || !MatchRule(pn.Src, tn.Src, b) {
			return false
		}
		if pn.Predicate != nil {
			if tn.Predicate == nil || !MatchRule(pn.Predicate, tn.Predicate, b) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
