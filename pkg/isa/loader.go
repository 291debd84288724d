package isa

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/rafaelauler/accgen-go/pkg/semantic"
)

// LoadISA parses the ISA description file at path: register classes,
// instruction word formats, and per-instruction metadata.
func LoadISA(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading ISA file %s", path)
	}
	var raw isaFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "parsing ISA file %s", path)
	}
	m := &Model{
		Registers:    make(map[string]RegisterClass, len(raw.Registers)),
		Formats:      make(map[string]InsnFormat, len(raw.Formats)),
		Instructions: raw.Instructions,
		Costs:        raw.Costs,
	}
	for _, r := range raw.Registers {
		m.Registers[r.Name] = r
	}
	for _, f := range raw.Formats {
		m.Formats[f.Name] = f
	}
	for _, insn := range raw.Instructions {
		if insn.Format != "" {
			if _, ok := m.Formats[insn.Format]; !ok {
				return nil, errors.Wrapf(ErrUnknownFormat, "instruction %q references format %q", insn.Name, insn.Format)
			}
		}
	}
	return m, nil
}

// semanticsEntry is the on-disk shape of one instruction's semantic
// assertion; the semantics file is a list of these.
type semanticsEntry struct {
	Instruction string   `yaml:"instruction"`
	Expr        exprNode `yaml:"expr"`
}

// LoadSemantics parses each instruction's semantic assertion from path
// and attaches it, together with the ISA metadata model already
// parsed, into semantic.Instruction values ready for an
// InstructionLibrary. tt interns every operand/operator type name
// encountered so later LoadRules/LoadFragments calls against the same
// tt share identical ids.
func LoadSemantics(path string, tt *semantic.TypeTable, model *Model) ([]*semantic.Instruction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading semantics file %s", path)
	}
	var entries []semanticsEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrapf(err, "parsing semantics file %s", path)
	}

	metaByName := make(map[string]InsnMeta, len(model.Instructions))
	for _, m := range model.Instructions {
		metaByName[m.Name] = m
	}

	b := &exprBuilder{tt: tt}
	out := make([]*semantic.Instruction, 0, len(entries))
	for _, e := range entries {
		meta, ok := metaByName[e.Instruction]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownInstruction, "%q", e.Instruction)
		}
		tree, err := b.build(e.Expr)
		if err != nil {
			return nil, errors.Wrapf(err, "semantics for %q", e.Instruction)
		}
		out = append(out, &semantic.Instruction{
			Name:     e.Instruction,
			Semantic: tree,
			Cost:     model.CostFor(meta),
			Metadata: map[string]string{
				"mnemonic": meta.Mnemonic,
				"format":   meta.Format,
			},
		})
	}
	return out, nil
}

// ruleEntry is the on-disk shape of one rewrite rule.
type ruleEntry struct {
	Name         string             `yaml:"name"`
	Cost         int                `yaml:"cost"`
	Equivalent   bool               `yaml:"equivalent"`
	LHS          exprNode           `yaml:"lhs"`
	RHS          exprNode           `yaml:"rhs"`
	OpTransforms []opTransformEntry `yaml:"op_transforms,omitempty"`
}

// opTransformEntry is the on-disk shape of one semantic.OperandTransformation.
type opTransformEntry struct {
	LHSName string `yaml:"lhs_name"`
	RHSName string `yaml:"rhs_name"`
	Expr    string `yaml:"expr"`
}

// LoadRules parses the rewrite-rule file at path into semantic.Rule
// values, rejecting any rule whose Decomp placement violates
// semantic.ValidateDecompPlacement (DESIGN.md Open Question 1).
func LoadRules(path string, tt *semantic.TypeTable) ([]*semantic.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading rules file %s", path)
	}
	var entries []ruleEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrapf(err, "parsing rules file %s", path)
	}

	b := &exprBuilder{tt: tt}
	out := make([]*semantic.Rule, 0, len(entries))
	for _, e := range entries {
		lhs, err := b.build(e.LHS)
		if err != nil {
			return nil, errors.Wrapf(err, "rule %q lhs", e.Name)
		}
		rhs, err := b.build(e.RHS)
		if err != nil {
			return nil, errors.Wrapf(err, "rule %q rhs", e.Name)
		}
		if err := semantic.ValidateDecompPlacement(lhs); err != nil {
			return nil, errors.Wrapf(err, "rule %q lhs", e.Name)
		}
		if err := semantic.ValidateDecompPlacement(rhs); err != nil {
			return nil, errors.Wrapf(err, "rule %q rhs", e.Name)
		}
		opTransforms := make([]semantic.OperandTransformation, len(e.OpTransforms))
		for i, ot := range e.OpTransforms {
			opTransforms[i] = semantic.OperandTransformation{
				LHSName: ot.LHSName,
				RHSName: ot.RHSName,
				Expr:    ot.Expr,
			}
		}
		out = append(out, &semantic.Rule{
			Name:         e.Name,
			LHS:          lhs,
			RHS:          rhs,
			Cost:         e.Cost,
			Equivalent:   e.Equivalent,
			Decomposes:   semantic.ContainsDecomp(rhs),
			Composes:     semantic.ContainsDecomp(lhs),
			OpTransforms: opTransforms,
		})
	}
	return out, nil
}

// LoadFragments parses the fragment file at path — a map of fragment
// name to its expansion tree — into a semantic.FragmentLibrary.
func LoadFragments(path string, tt *semantic.TypeTable) (*semantic.FragmentLibrary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading fragments file %s", path)
	}
	var raw map[string]exprNode
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "parsing fragments file %s", path)
	}

	b := &exprBuilder{tt: tt}
	lib := semantic.NewFragmentLibrary()
	for name, node := range raw {
		tree, err := b.build(node)
		if err != nil {
			return nil, errors.Wrapf(err, "fragment %q", name)
		}
		lib.Define(name, tree)
	}
	return lib, nil
}
