package semantic

// CostInfinite marks a SearchResult that found no implementation:
// Search never returns an error for this case (spec.md §7), only a
// SearchResult whose Cost is CostInfinite and whose other fields are
// zero-valued.
const CostInfinite = int(^uint(0) >> 1) // max int

// InstructionUse records one instruction chosen by the search engine
// as part of a derivation, together with the operand bindings it was
// emitted with.
type InstructionUse struct {
	Instruction *Instruction
	Bindings    Bindings
}

// OperandDef records an operand introduced by the derivation that the
// caller (pkg/codegen) must still bind to a concrete storage location
// — a register class choice or a stack slot — before the instruction
// sequence is emittable. "Orphan" operands are OperandDefs with no
// producing InstructionUse in the same SearchResult: they originate
// from a decomposed subgoal whose own SearchResult was merged in, and
// Merge is responsible for keeping the orphan list correct as results
// combine (original_source/InsnSelector/Search.cpp's MergeSearchResults
// orphan-splicing behavior).
type OperandDef struct {
	Name    string
	Type    OperandType
	IsInput bool // true if this operand is a goal input rather than a scratch temporary
}

// SearchResult is the CORE's output: an ordered instruction sequence,
// its accumulated cost, the rewrite rules and operator transforms that
// produced it (kept for diagnostics and readable by pkg/codegen's
// templates), and the set of operand definitions the sequence still
// needs bound.
type SearchResult struct {
	Instructions []InstructionUse
	Cost         int
	OperandDefs  []OperandDef
	RulesApplied []*Rule
	OpTransforms []Expr // intermediate trees produced by rule application, kept for tie-break diagnostics
}

// Failed reports whether r represents "no implementation found".
func (r *SearchResult) Failed() bool { return r == nil || r.Cost >= CostInfinite }

// FailedResult returns the canonical failure value.
func FailedResult() *SearchResult {
	return &SearchResult{Cost: CostInfinite}
}

// Merge splices b's instructions, operand defs, rules, and transforms
// onto a, summing their costs, and returns the combined result. Used
// when a Decomp rule severs a goal into independent subgoals that are
// searched separately and then recombined
// (original_source/InsnSelector/Search.cpp's MergeSearchResults): a's
// OperandDefs that match one of b's by Name are treated as resolved
// (no longer orphaned) rather than duplicated, since a's producer
// satisfies b's consumer.
func Merge(a, b *SearchResult) *SearchResult {
	if a.Failed() || b.Failed() {
		return FailedResult()
	}
	out := &SearchResult{
		Cost: a.Cost + b.Cost,
	}
	out.Instructions = append(out.Instructions, a.Instructions...)
	out.Instructions = append(out.Instructions, b.Instructions...)
	out.RulesApplied = append(out.RulesApplied, a.RulesApplied...)
	out.RulesApplied = append(out.RulesApplied, b.RulesApplied...)
	out.OpTransforms = append(out.OpTransforms, a.OpTransforms...)
	out.OpTransforms = append(out.OpTransforms, b.OpTransforms...)

	resolved := make(map[string]bool, len(a.OperandDefs))
	for _, d := range a.OperandDefs {
		resolved[d.Name] = true
	}
	out.OperandDefs = append(out.OperandDefs, a.OperandDefs...)
	for _, d := range b.OperandDefs {
		if resolved[d.Name] {
			continue
		}
		out.OperandDefs = append(out.OperandDefs, d)
	}
	return out
}
