package isa

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/rafaelauler/accgen-go/pkg/codegen"
	"github.com/rafaelauler/accgen-go/pkg/semantic"
)

// patternEntry is the on-disk shape of one IR pattern to implement:
// a name, the goal expression tree in the same encoding used for
// instruction semantics and rewrite rules, and an optional per-pattern
// depth-search override.
type patternEntry struct {
	Name       string   `yaml:"name"`
	StartDepth int      `yaml:"start_depth"`
	MaxDepth   int      `yaml:"max_depth"`
	Goal       exprNode `yaml:"goal"`
}

type patternsFile struct {
	Patterns []patternEntry `yaml:"patterns"`
}

// LoadPatterns parses the generator driver's pattern batch file at
// path into codegen.PatternRequest values, interning every
// operand/operator type name against tt so a pattern's goal tree uses
// the same ids as the instruction/rule library it will be searched
// against.
func LoadPatterns(path string, tt *semantic.TypeTable) ([]*codegen.PatternRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading patterns file %s", path)
	}
	var raw patternsFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "parsing patterns file %s", path)
	}

	b := &exprBuilder{tt: tt}
	out := make([]*codegen.PatternRequest, 0, len(raw.Patterns))
	for _, p := range raw.Patterns {
		goal, err := b.build(p.Goal)
		if err != nil {
			return nil, errors.Wrapf(err, "pattern %q goal", p.Name)
		}
		out = append(out, &codegen.PatternRequest{
			Name:       p.Name,
			Goal:       goal,
			StartDepth: p.StartDepth,
			MaxDepth:   p.MaxDepth,
		})
	}
	return out, nil
}
