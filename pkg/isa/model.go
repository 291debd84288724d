package isa

// RegisterClass is a named group of interchangeable physical
// registers sharing a bit width — ground: original_source/Insn.h's
// operand modeling, generalized from a single flat operand list into
// a typed class pkg/semantic.TypeTable can intern.
type RegisterClass struct {
	Name     string `yaml:"name"`
	SizeBits uint32 `yaml:"size_bits"`
	Count    int    `yaml:"count"`
}

// FormatField is one bit-field slot of an instruction word, ground:
// original_source/InsnFormat.h's FormatField.
type FormatField struct {
	Name  string `yaml:"name"`
	Start int    `yaml:"start"`
	Width int    `yaml:"width"`
}

// InsnFormat is a named instruction word layout, ground:
// original_source/InsnFormat.h's InsnFormat.
type InsnFormat struct {
	Name     string        `yaml:"name"`
	SizeBits int           `yaml:"size_bits"`
	Fields   []FormatField `yaml:"fields"`
}

// InsnMeta is the ISA-file-only metadata for one instruction: the
// collaborator-owned facts that end up in semantic.Instruction.Metadata
// rather than in its Semantic tree. Ground: original_source/Instruction.h
// (mnemonic_, operand_vec_, format_).
type InsnMeta struct {
	Name     string   `yaml:"name"`
	Format   string   `yaml:"format"`
	Mnemonic string   `yaml:"mnemonic"`
	Operands []string `yaml:"operands"`
	Cost     int      `yaml:"cost"`
}

// isaFile is the on-disk shape of the ISA description YAML file.
type isaFile struct {
	Registers    []RegisterClass `yaml:"registers"`
	Formats      []InsnFormat    `yaml:"formats"`
	Instructions []InsnMeta      `yaml:"instructions"`
	// Costs is the AsmProfileGen-equivalent cost-profiling override
	// (SPEC_FULL.md §9.1): per-instruction-name cycle counts that take
	// precedence over an InsnMeta's inline Cost field when present.
	Costs map[string]int `yaml:"costs"`
}

// Model is the parsed, queryable result of LoadISA.
type Model struct {
	Registers    map[string]RegisterClass
	Formats      map[string]InsnFormat
	Instructions []InsnMeta
	Costs        map[string]int
}

// CostFor resolves an instruction's final cost: the Costs override
// takes precedence over the instruction's own inline Cost field, per
// SPEC_FULL.md §9.1's AsmProfileGen-equivalent behavior.
func (m *Model) CostFor(meta InsnMeta) int {
	if c, ok := m.Costs[meta.Name]; ok {
		return c
	}
	return meta.Cost
}
