package resultcache

import (
	"encoding/gob"

	"github.com/rafaelauler/accgen-go/pkg/semantic"
)

func init() {
	// semantic.Expr is a closed interface over these three concrete
	// types (expr.go); gob needs every concrete type registered once
	// before it can encode or decode a value stored behind the
	// interface, whether directly or inside a Bindings map.
	gob.Register(&semantic.Operand{})
	gob.Register(&semantic.Operator{})
	gob.Register(&semantic.AssignOperator{})
}

// wireResult is the on-disk shape of a cached SearchResult. It stores
// instructions and rules by (name, occurrence) rather than by pointer:
// a SearchResult loaded in a later process must re-link against *that*
// process's InstructionLibrary, whose Instruction/Rule values are
// freshly allocated by pkg/isa and will never pointer-equal anything
// from the run that produced the cache entry. Occurrence disambiguates
// the case where more than one Instruction or Rule shares a Name
// (spec.md §4.5): a bare name-keyed map would silently collapse those
// onto whichever one it saw last.
type wireResult struct {
	Cost         int
	Instructions []wireInstructionUse
	OperandDefs  []semantic.OperandDef
	Rules        []wireRuleUse
	OpTransforms []semantic.Expr
}

type wireInstructionUse struct {
	InstructionName string
	Occurrence      int
	Bindings        semantic.Bindings
}

type wireRuleUse struct {
	RuleName   string
	Occurrence int
}

func toWire(res *semantic.SearchResult, lib *semantic.InstructionLibrary) *wireResult {
	w := &wireResult{
		Cost:         res.Cost,
		OperandDefs:  res.OperandDefs,
		OpTransforms: res.OpTransforms,
	}
	for _, use := range res.Instructions {
		w.Instructions = append(w.Instructions, wireInstructionUse{
			InstructionName: use.Instruction.Name,
			Occurrence:      lib.InstructionOccurrence(use.Instruction),
			Bindings:        use.Bindings,
		})
	}
	for _, r := range res.RulesApplied {
		w.Rules = append(w.Rules, wireRuleUse{
			RuleName:   r.Name,
			Occurrence: lib.RuleOccurrence(r),
		})
	}
	return w
}

// fromWire re-links a wireResult against lib, returning an error if a
// referenced (instruction name, occurrence) or (rule name, occurrence)
// pair no longer exists in lib — the cache entry is then stale and
// must be discarded by the caller.
func fromWire(w *wireResult, lib *semantic.InstructionLibrary) (*semantic.SearchResult, error) {
	res := &semantic.SearchResult{
		Cost:         w.Cost,
		OperandDefs:  w.OperandDefs,
		OpTransforms: w.OpTransforms,
	}
	for _, wu := range w.Instructions {
		insn, ok := lib.InstructionByName(wu.InstructionName, wu.Occurrence)
		if !ok {
			return nil, &StaleEntryError{Name: wu.InstructionName, Kind: "instruction"}
		}
		res.Instructions = append(res.Instructions, semantic.InstructionUse{Instruction: insn, Bindings: wu.Bindings})
	}
	for _, wr := range w.Rules {
		rule, ok := lib.RuleByName(wr.RuleName, wr.Occurrence)
		if !ok {
			return nil, &StaleEntryError{Name: wr.RuleName, Kind: "rule"}
		}
		res.RulesApplied = append(res.RulesApplied, rule)
	}
	return res, nil
}
