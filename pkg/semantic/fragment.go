package semantic

// FragmentLibrary holds named operand fragments: reusable sub-trees
// substituted in wherever a LeafFragment operand appears, mirroring
// original_source/InsnSelector/Semantic.h's OperandFragment. A
// fragment's own tree may itself reference further fragments; ExpandAll
// resolves the whole closure before any Expression reaches the search
// engine, so the CORE never has to special-case LeafFragment leaves.
type FragmentLibrary struct {
	fragments map[string]Expr
}

// NewFragmentLibrary creates an empty library.
func NewFragmentLibrary() *FragmentLibrary {
	return &FragmentLibrary{fragments: make(map[string]Expr)}
}

// Define registers name as expanding to tree. Redefining an existing
// name overwrites the previous definition.
func (l *FragmentLibrary) Define(name string, tree Expr) {
	l.fragments[name] = tree
}

// ExpandAll returns a copy of e with every LeafFragment leaf replaced
// by a freshly cloned copy of its registered tree, recursively, until
// no fragment leaves remain. It returns an error if a fragment name is
// undefined or if fragment definitions form a cycle (the original's
// comment on fragments warns these are meant to be acyclic
// abbreviations, not recursive structures).
func (l *FragmentLibrary) ExpandAll(e Expr) (Expr, error) {
	return l.expand(e, nil)
}

func (l *FragmentLibrary) expand(e Expr, stack []string) (Expr, error) {
	switch n := e.(type) {
	case *Operand:
		if n.Kind != LeafFragment {
			return e, nil
		}
		for _, seen := range stack {
			if seen == n.Frag {
				return nil, &FragmentCycleError{Name: n.Frag, Stack: append(append([]string{}, stack...), n.Frag)}
			}
		}
		def, ok := l.fragments[n.Frag]
		if !ok {
			return nil, &UndefinedFragmentError{Name: n.Frag}
		}
		expanded, err := l.expand(def.Clone(), append(stack, n.Frag))
		if err != nil {
			return nil, err
		}
		if len(n.Params) > 0 {
			idx := 0
			expanded = renameParamLeaves(expanded, n.Params, &idx)
		}
		return expanded, nil
	case *Operator:
		children := make([]Expr, len(n.Children))
		for i, c := range n.Children {
			ec, err := l.expand(c, stack)
			if err != nil {
				return nil, err
			}
			children[i] = ec
		}
		return &Operator{Type: n.Type, ReturnType: n.ReturnType, Name: n.Name, Children: children}, nil
	case *AssignOperator:
		dest, err := l.expand(n.Dest, stack)
		if err != nil {
			return nil, err
		}
		src, err := l.expand(n.Src, stack)
		if err != nil {
			return nil, err
		}
		var pred Expr
		if n.Predicate != nil {
			pred, err = l.expand(n.Predicate, stack)
			if err != nil {
				return nil, err
			}
		}
		return &AssignOperator{Dest: dest, Src: src, Predicate: pred}, nil
	default:
		return e, nil
	}
}

// renameParamLeaves walks tree in pre-order, renaming each Register or
// Immediate leaf to the next name in params, until params is exhausted
// (spec.md §3's FragOperand "ordered list of parameter names", §4.1's
// expansion-time renaming of the alternative tree's Register/Immediate
// leaves in pre-order). Leaves encountered once params is exhausted keep
// their original name, matching original_source's fixed-arity parameter
// lists where a fragment declares exactly as many parameters as it has
// substitutable leaves.
func renameParamLeaves(e Expr, params []string, idx *int) Expr {
	switch n := e.(type) {
	case *Operand:
		if (n.Kind == LeafRegister || n.Kind == LeafImmediate) && *idx < len(params) {
			renamed := *n
			renamed.Name = params[*idx]
			*idx++
			return &renamed
		}
		return n
	case *Operator:
		for i, c := range n.Children {
			n.Children[i] = renameParamLeaves(c, params, idx)
		}
		return n
	case *AssignOperator:
		n.Dest = renameParamLeaves(n.Dest, params, idx)
		n.Src = renameParamLeaves(n.Src, params, idx)
		if n.Predicate != nil {
			n.Predicate = renameParamLeaves(n.Predicate, params, idx)
		}
		return n
	default:
		return e
	}
}
