package semantic

import "testing"

func regType(id uint32) OperandType { return OperandType{TypeID: id, SizeBits: 32} }

func TestCompareLeafWildcard(t *testing.T) {
	wild := NewRegister("x", OperandType{}) // TypeID 0 == wildcard
	concrete := NewRegister("y", regType(5))
	if !Compare(wild, concrete, false) {
		t.Fatalf("wildcard type should compare equal to any concrete type")
	}
}

func TestCompareConstantsByValue(t *testing.T) {
	a := NewConstant("c1", regType(1), 4)
	b := NewConstant("c2", regType(1), 4)
	c := NewConstant("c3", regType(1), 5)
	if !Compare(a, b, false) {
		t.Fatalf("equal-valued constants should compare equal")
	}
	if Compare(a, c, false) {
		t.Fatalf("different-valued constants should not compare equal")
	}
}

func TestCompareTopLevelOnlySkipsChildren(t *testing.T) {
	addType := OperatorType{TypeID: OpAdd, Arity: 2}
	left := NewOperator(addType, OperandType{}, "add", NewRegister("a", regType(1)), NewRegister("b", regType(1)))
	right := NewOperator(addType, OperandType{}, "add", NewRegister("z", regType(9)), NewRegister("w", regType(9)))
	if !Compare(left, right, true) {
		t.Fatalf("top-level-only compare should ignore differing children")
	}
	if Compare(left, right, false) {
		t.Fatalf("deep compare should notice differing leaf types")
	}
}

func TestMatchRuleBindsAndChecksRepeatedVariable(t *testing.T) {
	addType := OperatorType{TypeID: OpAdd, Arity: 2}
	pattern := NewOperator(addType, OperandType{}, "add", NewAbstract("x", OperandType{}), NewAbstract("x", OperandType{}))
	sameTwice := NewOperator(addType, OperandType{}, "add", NewRegister("r1", regType(1)), NewRegister("r1", regType(1)))
	differing := NewOperator(addType, OperandType{}, "add", NewRegister("r1", regType(1)), NewRegister("r2", regType(2)))

	b := make(Bindings)
	if !MatchRule(pattern, sameTwice, b) {
		t.Fatalf("expected repeated pattern variable to match identical operands")
	}
	if _, ok := b["x"]; !ok {
		t.Fatalf("expected binding for x")
	}

	b2 := make(Bindings)
	if MatchRule(pattern, differing, b2) {
		t.Fatalf("expected repeated pattern variable to reject differing operands")
	}
}

func TestMatchRuleMemRefWildcardAlwaysBinds(t *testing.T) {
	pattern := NewAbstract("m", OperandType{TypeID: OpMemRef})
	target := NewRegister("anything", regType(99))
	b := make(Bindings)
	if !MatchRule(pattern, target, b) {
		t.Fatalf("MemRef-typed abstract leaf should match any target operand")
	}
}

func TestMatchRuleWildcardRefusesMemRefOperator(t *testing.T) {
	memRefType := OperatorType{TypeID: OpMemRef, Arity: 1}
	pattern := NewAbstract("x", OperandType{}) // wildcard: TypeID 0
	memRefTarget := NewOperator(memRefType, OperandType{}, "memref", NewRegister("addr", regType(1)))
	plainTarget := NewRegister("r", regType(1))

	b := make(Bindings)
	if MatchRule(pattern, memRefTarget, b) {
		t.Fatalf("wildcard pattern must not match a MemRef operator node")
	}
	b2 := make(Bindings)
	if !MatchRule(pattern, plainTarget, b2) {
		t.Fatalf("wildcard pattern should still match a non-MemRef node")
	}
}

func TestMatchRuleStructuralMismatch(t *testing.T) {
	addType := OperatorType{TypeID: OpAdd, Arity: 2}
	subType := OperatorType{TypeID: OpSub, Arity: 2}
	pattern := NewOperator(addType, OperandType{}, "add", NewAbstract("x", OperandType{}), NewAbstract("y", OperandType{}))
	target := NewOperator(subType, OperandType{}, "sub", NewRegister("a", regType(1)), NewRegister("b", regType(1)))
	b := make(Bindings)
	if MatchRule(pattern, target, b) {
		t.Fatalf("different operator types must not match")
	}
}
