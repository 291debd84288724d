package semantic

// HasCloseSemantic is the search engine's pruning heuristic: before
// paying for a full MatchRule/Compare, it asks whether goal and
// candidate even share a plausible primary operator. Two expressions
// are "close" when their PrimaryOp ids are equal, or either side's
// primary operand is a leaf (arity 0), which this package's PrimaryOp
// represents as the zero OperatorType and which must always be
// allowed to pair with anything since leaves carry no operator shape
// to compare. This is HasCloseSemantic in
// original_source/InsnSelector/Search.cpp.
func HasCloseSemantic(goal, candidate Expr) bool {
	g := PrimaryOp(goal)
	c := PrimaryOp(candidate)
	if g.TypeID == 0 || c.TypeID == 0 {
		return true
	}
	return g.TypeID == c.TypeID
}

// searchState carries the per-call, single-threaded state a Search
// invocation threads through its recursion: the instruction library,
// a cache of known-failed subgoals, and the fresh-name generator
// shared by every rule application in this derivation so two branches
// never mint the same temporary name. Per spec.md §5, one searchState
// belongs to exactly one Search call; concurrent exploration of
// independent goals (pkg/codegen) uses one searchState per goroutine.
type searchState struct {
	lib   *InstructionLibrary
	cache *TransformationCache
	gen   *NameGenerator

	// query is the top-level expression this search was asked to
	// implement, held fixed across the whole recursion; goal is
	// whatever form of it (possibly already rewritten) the current
	// call is trying to match. Together they form the (query, goal)
	// pair the TransformationCache keys on (spec.md §3).
	query Expr
}

// Search finds an instruction sequence implementing goal using lib,
// exploring rule rewrites up to maxDepth deep: the cheapest direct
// match when one exists (rewrites are then not tried), otherwise the
// cheapest of the rule rewrites tried. It never
// errors for "no implementation found" (spec.md §7): that outcome is
// FailedResult(), i.e. a SearchResult with Cost == CostInfinite.
func Search(goal Expr, lib *InstructionLibrary, maxDepth int) *SearchResult {
	st := &searchState{
		lib:   lib,
		cache: NewTransformationCache(),
		gen:   NewNameGenerator(),
		query: goal,
	}
	return st.search(goal, maxDepth)
}

// search is the engine's top-level per-goal entry point: Phase 1
// (direct match against the instruction library) then, if that fails
// and depth remains, Phase 2 (rewrite then re-match). This mirrors
// Search::operator() in original_source/InsnSelector/Search.cpp.
// Phase 1.5's decomposition-as-a-search-move is intentionally not
// implemented here, per DESIGN.md Open Question 3: it is disabled and
// untested in the original, and accgen-go does not invent behavior
// for it.
func (st *searchState) search(goal Expr, maxDepth int) *SearchResult {
	if r := st.phase1(goal); !r.Failed() {
		return r
	}
	if maxDepth <= 0 {
		return FailedResult()
	}
	if st.cache.KnownFailed(st.query, goal, maxDepth) {
		return FailedResult()
	}
	if r := st.phase2(goal, maxDepth); !r.Failed() {
		return r
	}
	st.cache.MarkFailed(st.query, goal, maxDepth)
	return FailedResult()
}

// phase1 tries to match goal directly against every instruction in
// the library, keeping the lowest-cost match. Instruction semantics
// are patterns: their abstract leaves bind to goal's corresponding
// operands via MatchRule exactly like a rule's LHS would.
func (st *searchState) phase1(goal Expr) *SearchResult {
	best := FailedResult()
	for _, insn := range st.lib.Instructions() {
		if !HasCloseSemantic(goal, insn.Semantic) {
			continue
		}
		b := make(Bindings)
		if !MatchRule(insn.Semantic, goal, b) {
			continue
		}
		if best.Failed() || insn.Cost < best.Cost {
			best = &SearchResult{
				Instructions: []InstructionUse{{Instruction: insn, Bindings: b}},
				Cost:         insn.Cost,
			}
		}
	}
	return best
}

// phase2 tries every rewrite rule, forward and backward, recursing
// into the rewritten goal at depth-1. A rule whose LHS decomposes the
// goal is applied via Decompose instead, and the independent subgoals
// are searched and recombined with Merge. This is
// TransformExpressionAux / transform in
// original_source/InsnSelector/Search.cpp.
func (st *searchState) phase2(goal Expr, maxDepth int) *SearchResult {
	best := FailedResult()
	consider := func(candidate *SearchResult) {
		if candidate.Failed() {
			return
		}
		if best.Failed() || candidate.Cost < best.Cost {
			best = candidate
		}
	}

	for _, rule := range st.lib.Rules() {
		if rule.Decomposes {
			if !HasCloseSemantic(goal, rule.LHS) {
				continue
			}
			goals, ok := rule.Decompose(goal, st.gen)
			if !ok {
				continue
			}
			merged := st.searchAll(goals, maxDepth-1)
			if merged == nil {
				continue
			}
			merged.RulesApplied = append([]*Rule{rule}, merged.RulesApplied...)
			merged.Cost += rule.Cost
			consider(merged)
			continue
		}

		if HasCloseSemantic(goal, rule.LHS) {
			if rewritten, _, ok := rule.ForwardApply(goal, st.gen); ok {
				sub := st.search(rewritten, maxDepth-1)
				if !sub.Failed() {
					combined := &SearchResult{
						Instructions: sub.Instructions,
						Cost:         sub.Cost + rule.Cost,
						OperandDefs:  sub.OperandDefs,
						RulesApplied: append([]*Rule{rule}, sub.RulesApplied...),
						OpTransforms: append([]Expr{rewritten}, sub.OpTransforms...),
					}
					consider(combined)
				}
			}
		}
		if HasCloseSemantic(goal, rule.RHS) {
			if rewritten, _, ok := rule.BackwardApply(goal, st.gen); ok {
				sub := st.search(rewritten, maxDepth-1)
				if !sub.Failed() {
					combined := &SearchResult{
						Instructions: sub.Instructions,
						Cost:         sub.Cost + rule.Cost,
						OperandDefs:  sub.OperandDefs,
						RulesApplied: append([]*Rule{rule}, sub.RulesApplied...),
						OpTransforms: append([]Expr{rewritten}, sub.OpTransforms...),
					}
					consider(combined)
				}
			}
		}
	}
	return best
}

// searchAll searches every goal in goals independently and Merges
// their results in order, returning nil (not FailedResult, to let the
// caller skip without a cost comparison) if any subgoal fails.
func (st *searchState) searchAll(goals []Expr, maxDepth int) *SearchResult {
	if len(goals) == 0 {
		return &SearchResult{}
	}
	acc := st.search(goals[0], maxDepth)
	if acc.Failed() {
		return nil
	}
	for _, g := range goals[1:] {
		r := st.search(g, maxDepth)
		if r.Failed() {
			return nil
		}
		acc = Merge(acc, r)
	}
	return acc
}
