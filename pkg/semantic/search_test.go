package semantic

import "testing"

// buildAddImmLibrary models a minimal machine with one instruction
// (register + immediate add) and no rewrite rules, the smallest case
// Phase 1 alone must resolve.
func buildAddImmLibrary() *InstructionLibrary {
	addType := OperatorType{TypeID: OpAdd, Arity: 2}
	semantic := NewOperator(addType, OperandType{}, "add",
		NewAbstract("dst", regType(1)),
		NewAbstract("imm", OperandType{TypeID: OpMemRef}),
	)
	insn := &Instruction{Name: "ADDI", Semantic: semantic, Cost: 1}
	return NewInstructionLibrary([]*Instruction{insn}, nil)
}

func TestSearchPhase1DirectMatch(t *testing.T) {
	lib := buildAddImmLibrary()
	addType := OperatorType{TypeID: OpAdd, Arity: 2}
	goal := NewOperator(addType, OperandType{}, "add", NewRegister("r1", regType(1)), NewConstant("five", regType(1), 5))

	res := Search(goal, lib, 4)
	if res.Failed() {
		t.Fatalf("expected a direct Phase 1 match, got failure")
	}
	if len(res.Instructions) != 1 || res.Instructions[0].Instruction.Name != "ADDI" {
		t.Fatalf("expected single ADDI instruction, got %+v", res.Instructions)
	}
	if res.Cost != 1 {
		t.Fatalf("expected cost 1, got %d", res.Cost)
	}
}

func TestSearchPhase2RewriteThenMatch(t *testing.T) {
	lib := buildAddImmLibrary()
	addType := OperatorType{TypeID: OpAdd, Arity: 2}
	subType := OperatorType{TypeID: OpSub, Arity: 2}
	negType := OperatorType{TypeID: OpNeg, Arity: 1}

	// sub(x, y) == add(x, neg(y)): a rewrite rule relating Sub to Add+Neg.
	rule := &Rule{
		Name: "sub-to-add-neg",
		LHS:  NewOperator(subType, OperandType{}, "sub", NewAbstract("x", OperandType{}), NewAbstract("y", OperandType{})),
		RHS:  NewOperator(addType, OperandType{}, "add", NewAbstract("x", OperandType{}), NewOperator(negType, OperandType{}, "neg", NewAbstract("y", OperandType{}))),
		Cost: 1,
	}
	lib = NewInstructionLibrary(lib.Instructions(), []*Rule{rule})

	goal := NewOperator(subType, OperandType{}, "sub", NewRegister("r1", regType(1)), NewConstant("five", regType(1), 5))
	res := Search(goal, lib, 4)
	if res.Failed() {
		t.Fatalf("expected Phase 2 to find a rewrite path, got failure")
	}
	if res.Cost <= 0 {
		t.Fatalf("expected nonzero cost combining rule + instruction, got %d", res.Cost)
	}
}

func TestSearchFailsWithinDepthBound(t *testing.T) {
	lib := buildAddImmLibrary()
	subType := OperatorType{TypeID: OpSub, Arity: 2}
	goal := NewOperator(subType, OperandType{}, "sub", NewRegister("r1", regType(1)), NewConstant("five", regType(1), 5))

	res := Search(goal, lib, 0)
	if !res.Failed() {
		t.Fatalf("expected failure: no rule applicable and no depth remaining")
	}
	if res.Cost != CostInfinite {
		t.Fatalf("expected CostInfinite on failure, got %d", res.Cost)
	}
}

func TestSearchDecomposeMergesSubgoals(t *testing.T) {
	lib := buildAddImmLibrary()
	addType := OperatorType{TypeID: OpAdd, Arity: 2}
	decompType := OperatorType{TypeID: OpDecomp, Arity: 2}
	pairAddType := OperatorType{TypeID: 9001, Arity: 4}

	// A made-up wide instruction a smaller ISA has no direct
	// implementation for; the rule says it equals two independent adds
	// (spec.md §8 scenario 3's Load32 ⇒ Decomp(LoadHi, LoadLo) shape).
	rule := &Rule{
		Name: "pairadd-decompose",
		LHS: NewOperator(pairAddType, OperandType{}, "pairadd",
			NewAbstract("ra", OperandType{}), NewAbstract("ca", OperandType{}),
			NewAbstract("rb", OperandType{}), NewAbstract("cb", OperandType{}),
		),
		RHS: NewOperator(decompType, OperandType{}, "decomp",
			NewOperator(addType, OperandType{}, "add", NewAbstract("ra", OperandType{}), NewAbstract("ca", OperandType{})),
			NewOperator(addType, OperandType{}, "add", NewAbstract("rb", OperandType{}), NewAbstract("cb", OperandType{})),
		),
		Decomposes: true,
	}
	lib = NewInstructionLibrary(lib.Instructions(), []*Rule{rule})

	goal := NewOperator(pairAddType, OperandType{}, "pairadd",
		NewRegister("ra", regType(1)), NewConstant("c1", regType(1), 1),
		NewRegister("rb", regType(1)), NewConstant("c2", regType(1), 2),
	)
	res := Search(goal, lib, 4)
	if res.Failed() {
		t.Fatalf("expected decomposed subgoals to each resolve via Phase 1")
	}
	if len(res.Instructions) != 2 {
		t.Fatalf("expected 2 instructions (one per subgoal), got %d", len(res.Instructions))
	}
}

func TestValidateDecompPlacementRejectsNested(t *testing.T) {
	decompType := OperatorType{TypeID: OpDecomp, Arity: 2}
	addType := OperatorType{TypeID: OpAdd, Arity: 2}

	nested := NewOperator(addType, OperandType{}, "add",
		NewOperator(decompType, OperandType{}, "decomp", NewRegister("a", regType(1)), NewRegister("b", regType(1))),
		NewRegister("c", regType(1)),
	)
	if err := ValidateDecompPlacement(nested); err == nil {
		t.Fatalf("expected nested Decomp below a non-Decomp root to be rejected")
	}

	topLevel := NewOperator(decompType, OperandType{}, "decomp", NewRegister("a", regType(1)), NewRegister("b", regType(1)))
	if err := ValidateDecompPlacement(topLevel); err != nil {
		t.Fatalf("expected top-level Decomp to be accepted, got %v", err)
	}
}

func TestMergeSumsCostAndDedupesOrphans(t *testing.T) {
	a := &SearchResult{
		Cost:        2,
		OperandDefs: []OperandDef{{Name: "t200", Type: regType(1)}},
	}
	b := &SearchResult{
		Cost:        3,
		OperandDefs: []OperandDef{{Name: "t200", Type: regType(1)}, {Name: "t201", Type: regType(1)}},
	}
	merged := Merge(a, b)
	if merged.Cost != 5 {
		t.Fatalf("expected summed cost 5, got %d", merged.Cost)
	}
	if len(merged.OperandDefs) != 2 {
		t.Fatalf("expected orphan t200 deduped against a's producer, got %d defs", len(merged.OperandDefs))
	}
}

func TestMergePropagatesFailure(t *testing.T) {
	ok := &SearchResult{Cost: 1}
	if !Merge(ok, FailedResult()).Failed() {
		t.Fatalf("merging with a failed result must fail")
	}
}
