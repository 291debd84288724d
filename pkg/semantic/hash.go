package semantic

// Hash computes a structural hash of e using the ELF-style mixing
// function described in spec.md §4.1 (ported from
// original_source/InsnSelector/Search.cpp's use of the classic ELF
// hash over a node's type id, arity, and recursively-hashed children;
// a leaf mixes in its kind, type, name bytes and, for a constant, its
// value). Two expressions with the same hash are structural-match
// candidates; collisions are possible and are resolved by Compare, never
// relied on for correctness by themselves. Compare ignores leaf names,
// so two trees that differ only in leaf names Compare equal but usually
// hash differently.
func Hash(e Expr) uint32 {
	var h uint32
	mix := func(v uint32) {
		h = (h << 4) + v
		if g := h & 0xf0000000; g != 0 {
			h ^= g >> 24
			h &^= g
		}
	}
	switch n := e.(type) {
	case *Operand:
		mix(uint32(n.Kind) + 1)
		mix(n.Type.TypeID)
		mix(n.Type.SizeBits)
		for i := 0; i < len(n.Name); i++ {
			mix(uint32(n.Name[i]))
		}
		if n.Kind == LeafConstant {
			mix(uint32(n.Const))
		}
	case *Operator:
		mix(uint32(n.Type.TypeID))
		mix(uint32(len(n.Children)))
		for _, c := range n.Children {
			mix(Hash(c))
		}
	case *AssignOperator:
		mix(uint32(OpAssign))
		mix(2)
		mix(Hash(n.Dest))
		mix(Hash(n.Src))
	}
	return h
}

// PrimaryOp returns the OperatorType used to classify e for the
// search engine's pruning heuristic (HasCloseSemantic). For an
// AssignOperator it looks through to Src's primary
// operator — ignoring Predicate entirely, "for heuristic reasons" per
// the original PrimaryOperatorType (original_source/InsnSelector/
// Search.cpp), recorded as an accepted Open Question in DESIGN.md. For
// an Operand leaf it returns the zero OperatorType (arity 0, TypeID 0),
// which HasCloseSemantic treats as close to any expression.
func PrimaryOp(e Expr) OperatorType {
	switch n := e.(type) {
	case *AssignOperator:
		return PrimaryOp(n.Src)
	case *Operator:
		return n.Type
	default:
		return OperatorType{}
	}
}

// ExtractLeafNames appends, in left-to-right pre-order, the Name of
// every Operand leaf reachable from e (AssignOperator.Predicate
// included) to names and returns the extended slice, skipping Constant
// and Immediate leaves per spec.md §4.1 — they carry no bindable
// operand identity, only a value known at rewrite time. This is the
// counterpart of original_source/InsnSelector/TransformationRules.cpp's
// ExtractLeafsNames; the rule engine and search in this package do not
// call it.
func ExtractLeafNames(e Expr, names []string) []string {
	switch n := e.(type) {
	case *Operand:
		if n.Kind == LeafConstant || n.Kind == LeafImmediate {
			break
		}
		names = append(names, n.Name)
	case *Operator:
		for _, c := range n.Children {
			names = ExtractLeafNames(c, names)
		}
	case *AssignOperator:
		names = ExtractLeafNames(n.Dest, names)
		names = ExtractLeafNames(n.Src, names)
		if n.Predicate != nil {
			names = ExtractLeafNames(n.Predicate, names)
		}
	}
	return names
}
