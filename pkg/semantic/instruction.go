package semantic

// Instruction is a single machine instruction's semantics as known to
// the search engine: a Name for assembly emission, the Semantic tree
// it directly implements (matched against a goal via Compare/MatchRule
// during Phase 1), and a fixed Cost used to rank alternative
// derivations. This mirrors original_source/Instruction.{h,cpp}
// stripped of everything codegen/emission-specific, which pkg/isa and
// pkg/codegen own instead.
type Instruction struct {
	Name     string
	Semantic Expr
	Cost     int

	// Metadata carries collaborator-owned facts about the instruction
	// that the search engine itself never inspects. pkg/isa fills the
	// "mnemonic" and "format" keys from the ISA description
	// (original_source/Instruction.h's mnemonic_/format_ fields,
	// generalized into a string map so the CORE stays agnostic to any
	// particular ISA's metadata shape).
	Metadata map[string]string
}

// InstructionLibrary is the fixed set of instructions Search matches
// goals against in Phase 1 (direct match) and, after a rule rewrite,
// in Phase 2. It is built once by pkg/isa from an ISA description and
// treated as read-only for the remainder of the process, satisfying
// the single-threaded-CORE / concurrent-collaborator split in
// spec.md §5.
type InstructionLibrary struct {
	insns []*Instruction
	rules []*Rule
}

// NewInstructionLibrary builds a library from the given instructions
// and rewrite rules.
func NewInstructionLibrary(insns []*Instruction, rules []*Rule) *InstructionLibrary {
	return &InstructionLibrary{insns: insns, rules: rules}
}

// Instructions returns the library's instructions in registration
// order.
func (l *InstructionLibrary) Instructions() []*Instruction { return l.insns }

// Rules returns the library's rewrite rules in registration order.
func (l *InstructionLibrary) Rules() []*Rule { return l.rules }

// InstructionByName returns the occurrence-th (0-indexed, in
// registration order) instruction whose Name matches name. An
// instruction may be registered more than once under the same Name
// when it has multiple independent semantic trees (spec.md §4.5);
// occurrence disambiguates them rather than collapsing them under a
// plain name-keyed map.
func (l *InstructionLibrary) InstructionByName(name string, occurrence int) (*Instruction, bool) {
	seen := 0
	for _, insn := range l.insns {
		if insn.Name != name {
			continue
		}
		if seen == occurrence {
			return insn, true
		}
		seen++
	}
	return nil, false
}

// InstructionOccurrence returns insn's 0-indexed occurrence among the
// library's instructions sharing its Name, or -1 if insn is not a
// member of l. It is the inverse of InstructionByName, used to encode
// a *Instruction reference by (name, occurrence) for the on-disk
// result cache.
func (l *InstructionLibrary) InstructionOccurrence(insn *Instruction) int {
	seen := 0
	for _, candidate := range l.insns {
		if candidate == insn {
			return seen
		}
		if candidate.Name == insn.Name {
			seen++
		}
	}
	return -1
}

// RuleByName is RuleOccurrence's inverse: the occurrence-th
// (0-indexed) rule whose Name matches name.
func (l *InstructionLibrary) RuleByName(name string, occurrence int) (*Rule, bool) {
	seen := 0
	for _, r := range l.rules {
		if r.Name != name {
			continue
		}
		if seen == occurrence {
			return r, true
		}
		seen++
	}
	return nil, false
}

// RuleOccurrence returns rule's 0-indexed occurrence among the
// library's rules sharing its Name, or -1 if rule is not a member of
// l.
func (l *InstructionLibrary) RuleOccurrence(rule *Rule) int {
	seen := 0
	for _, candidate := range l.rules {
		if candidate == rule {
			return seen
		}
		if candidate.Name == rule.Name {
			seen++
		}
	}
	return -1
}
