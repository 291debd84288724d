package semantic

import "testing"

func TestFragmentExpandAllResolvesReference(t *testing.T) {
	lib := NewFragmentLibrary()
	lib.Define("wordAddr", NewRegister("base", regType(32)))

	addType := OperatorType{TypeID: OpAdd, Arity: 2}
	tree := NewOperator(addType, OperandType{}, "add", NewFragment("a", "wordAddr", OperandType{}, nil), NewConstant("c", regType(1), 4))

	expanded, err := lib.ExpandAll(tree)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	op := expanded.(*Operator)
	leaf, ok := op.Children[0].(*Operand)
	if !ok || leaf.Kind != LeafRegister || leaf.Name != "base" {
		t.Fatalf("expected fragment expanded to its registered register leaf, got %+v", op.Children[0])
	}
}

func TestFragmentExpandAllRenamesParamsInPreorder(t *testing.T) {
	lib := NewFragmentLibrary()
	addType := OperatorType{TypeID: OpAdd, Arity: 2}
	lib.Define("indexedAddr", NewOperator(addType, OperandType{}, "add",
		NewRegister("base", regType(32)),
		NewImmediate("offset", regType(32)),
	))

	ref := NewFragment("a", "indexedAddr", OperandType{}, []string{"rX", "immY"})
	expanded, err := lib.ExpandAll(ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	op := expanded.(*Operator)
	base, ok := op.Children[0].(*Operand)
	if !ok || base.Kind != LeafRegister || base.Name != "rX" {
		t.Fatalf("expected first leaf renamed to rX, got %+v", op.Children[0])
	}
	offset, ok := op.Children[1].(*Operand)
	if !ok || offset.Kind != LeafImmediate || offset.Name != "immY" {
		t.Fatalf("expected second leaf renamed to immY, got %+v", op.Children[1])
	}
}

func TestFragmentExpandAllUndefinedError(t *testing.T) {
	lib := NewFragmentLibrary()
	_, err := lib.ExpandAll(NewFragment("a", "missing", OperandType{}, nil))
	if _, ok := err.(*UndefinedFragmentError); !ok {
		t.Fatalf("expected UndefinedFragmentError, got %v", err)
	}
}

func TestFragmentExpandAllCycleError(t *testing.T) {
	lib := NewFragmentLibrary()
	lib.Define("a", NewFragment("ref", "b", OperandType{}, nil))
	lib.Define("b", NewFragment("ref", "a", OperandType{}, nil))

	_, err := lib.ExpandAll(NewFragment("start", "a", OperandType{}, nil))
	if _, ok := err.(*FragmentCycleError); !ok {
		t.Fatalf("expected FragmentCycleError, got %v", err)
	}
}
