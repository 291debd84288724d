package semantic

import "testing"

func TestHashStableAcrossClone(t *testing.T) {
	addType := OperatorType{TypeID: OpAdd, Arity: 2}
	tree := NewOperator(addType, OperandType{}, "add", NewRegister("a", regType(1)), NewConstant("c", regType(1), 9))
	if Hash(tree) != Hash(tree.Clone()) {
		t.Fatalf("hash must be stable across Clone")
	}
}

func TestHashDiffersOnConstantValue(t *testing.T) {
	a := NewConstant("c", regType(1), 1)
	b := NewConstant("c", regType(1), 2)
	if Hash(a) == Hash(b) {
		t.Fatalf("expected different hashes for different constant values")
	}
}

func TestPrimaryOpLooksThroughAssignIgnoringPredicate(t *testing.T) {
	addType := OperatorType{TypeID: OpAdd, Arity: 2}
	src := NewOperator(addType, OperandType{}, "add", NewRegister("a", regType(1)), NewRegister("b", regType(1)))
	predicate := NewRegister("flag", regType(1)) // a leaf; PrimaryOp on a leaf returns the zero type
	assign := NewAssign(NewRegister("dst", regType(1)), src, predicate)

	got := PrimaryOp(assign)
	if got.TypeID != OpAdd {
		t.Fatalf("expected PrimaryOp to look through Assign to Src's add, got %+v", got)
	}
}

func TestExtractLeafNamesSkipsConstantsAndImmediates(t *testing.T) {
	tree := NewOperator(OperatorType{TypeID: OpAdd, Arity: 2}, OperandType{},
		"add",
		NewRegister("r1", regType(1)),
		NewConstant("c", regType(1), 7),
	)
	names := ExtractLeafNames(tree, nil)
	if len(names) != 1 || names[0] != "r1" {
		t.Fatalf("expected only the register leaf, got %v", names)
	}

	imm := NewImmediate("imm1", regType(1))
	names2 := ExtractLeafNames(imm, nil)
	if len(names2) != 0 {
		t.Fatalf("expected immediate leaf to be skipped, got %v", names2)
	}
}

func TestExtractLeafNamesIncludesPredicate(t *testing.T) {
	assign := NewAssign(
		NewRegister("dst", regType(1)),
		NewRegister("src", regType(1)),
		NewRegister("pred", regType(1)),
	)
	names := ExtractLeafNames(assign, nil)
	want := map[string]bool{"dst": true, "src": true, "pred": true}
	if len(names) != 3 {
		t.Fatalf("expected 3 leaf names, got %v", names)
	}
	for _, n := range names {
		if !want[n] {
			t.Fatalf("unexpected leaf name %q", n)
		}
	}
}
