// Command accgen is the entry point for the automatic compiler-backend
// generator: it loads an ISA description, builds the pkg/semantic
// instruction/rule library, solves a batch of IR patterns, and renders
// the results into backend source fragments via pkg/codegen.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/sirupsen/logrus"
	"github.com/voxelbrain/goptions"

	"github.com/rafaelauler/accgen-go/internal/parallel"
	"github.com/rafaelauler/accgen-go/pkg/codegen"
	"github.com/rafaelauler/accgen-go/pkg/isa"
	"github.com/rafaelauler/accgen-go/pkg/resultcache"
	"github.com/rafaelauler/accgen-go/pkg/semantic"
)

type options struct {
	ISAFile       string             `goptions:"--isa, obligatory, description='ISA description YAML file'"`
	SemanticsFile string             `goptions:"--semantics, obligatory, description='Instruction semantics YAML file'"`
	RulesFile     string             `goptions:"--rules, obligatory, description='Rewrite rules YAML file'"`
	FragmentsFile string             `goptions:"--fragments, description='Operand fragments YAML file'"`
	PatternsFile  string             `goptions:"--patterns, obligatory, description='IR patterns YAML file to implement'"`
	TemplatesDir  string             `goptions:"--templates-dir, description='Directory of text/template backend-fragment templates'"`
	OutDir        string             `goptions:"--out, obligatory, description='Output directory for rendered backend fragments'"`
	CacheDir      string             `goptions:"--cache, description='On-disk result cache directory (disabled if empty)'"`
	Workers       int                `goptions:"--workers, description='Worker pool size (default: number of CPUs)'"`
	Verbose       bool               `goptions:"--verbose, -v, description='Enable debug logging'"`
	Help          bool               `goptions:"--help, -h"`
}

func main() {
	opts := options{Workers: 0}
	goptions.ParseAndFail(&opts)

	log := logrus.New()
	if opts.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := run(opts, log); err != nil {
		log.WithError(err).Error("accgen failed")
		os.Exit(1)
	}
}

func run(opts options, log *logrus.Logger) error {
	model, err := isa.LoadISA(opts.ISAFile)
	if err != nil {
		return err
	}

	tt := semantic.NewTypeTable()
	insns, err := isa.LoadSemantics(opts.SemanticsFile, tt, model)
	if err != nil {
		return err
	}
	rules, err := isa.LoadRules(opts.RulesFile, tt)
	if err != nil {
		return err
	}

	var fragments *semantic.FragmentLibrary
	if opts.FragmentsFile != "" {
		fragments, err = isa.LoadFragments(opts.FragmentsFile, tt)
		if err != nil {
			return err
		}
		for _, insn := range insns {
			expanded, err := fragments.ExpandAll(insn.Semantic)
			if err != nil {
				return err
			}
			insn.Semantic = expanded
		}
	}

	lib := semantic.NewInstructionLibrary(insns, rules)
	log.WithFields(logrus.Fields{
		"instructions": len(insns),
		"rules":        len(rules),
	}).Info("loaded instruction library")

	templates, err := loadTemplates(opts.TemplatesDir)
	if err != nil {
		return err
	}
	gen := codegen.NewGenerator(lib, templates, log)

	var cache *resultcache.Cache
	if opts.CacheDir != "" {
		cache, err = resultcache.Open(opts.CacheDir)
		if err != nil {
			return err
		}
	}

	patterns, err := loadPatterns(opts.PatternsFile, tt)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return err
	}

	pool := parallel.NewPool(opts.Workers)
	defer pool.Shutdown()

	toSolve := patterns[:0:0]
	results := make([]*codegen.EmitResult, len(patterns))
	indexOf := make(map[string]int, len(patterns))
	for i, p := range patterns {
		indexOf[p.Name] = i
		if cache != nil {
			if cached, ok, err := cache.Load(p.Name, p.Goal, lib); err != nil {
				log.WithError(err).WithField("pattern", p.Name).Warn("discarding unusable cache entry")
			} else if ok {
				sources, rerr := gen.Render(p, cached)
				results[i] = &codegen.EmitResult{Request: p, Result: cached, Sources: sources, Err: rerr}
				continue
			}
		}
		toSolve = append(toSolve, p)
	}

	fresh := gen.RunBatch(context.Background(), pool, toSolve)
	for _, r := range fresh {
		i := indexOf[r.Request.Name]
		results[i] = r
		if cache != nil && r.Err == nil {
			if err := cache.Store(r.Request.Name, r.Request.Goal, r.Result, lib); err != nil {
				log.WithError(err).WithField("pattern", r.Request.Name).Warn("failed to persist result cache entry")
			}
		}
	}

	return writeResults(opts.OutDir, results, log)
}

func loadTemplates(dir string) (map[string]*template.Template, error) {
	out := make(map[string]*template.Template)
	if dir == "" {
		return out, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		tmpl, err := template.ParseFiles(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		out[name] = tmpl
	}
	return out, nil
}

func loadPatterns(path string, tt *semantic.TypeTable) ([]*codegen.PatternRequest, error) {
	return isa.LoadPatterns(path, tt)
}

func writeResults(outDir string, results []*codegen.EmitResult, log *logrus.Logger) error {
	for _, r := range results {
		if r == nil {
			continue
		}
		if r.Err != nil {
			log.WithError(r.Err).WithField("pattern", r.Request.Name).Error("pattern not emitted")
			continue
		}
		for tmplName, source := range r.Sources {
			outPath := filepath.Join(outDir, fmt.Sprintf("%s.%s", r.Request.Name, tmplName))
			if err := os.WriteFile(outPath, []byte(source), 0o644); err != nil {
				return err
			}
		}
	}
	return nil
}
