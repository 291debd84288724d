package codegen

import (
	"bytes"
	"context"
	"sync"
	"text/template"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rafaelauler/accgen-go/internal/parallel"
	"github.com/rafaelauler/accgen-go/pkg/semantic"
)

// Default search-depth bounds, per SPEC_FULL.md §4.6: start shallow and
// widen only as far as MaxDepth before giving up on a pattern.
const (
	DefaultStartDepth = 5
	DefaultMaxDepth   = 10
)

// PatternRequest is one abstract IR pattern of the host compiler to
// implement: a name, the goal expression tree, and the depth schedule
// to search it at.
type PatternRequest struct {
	Name       string
	Goal       semantic.Expr
	StartDepth int
	MaxDepth   int
}

// EmitResult is the outcome of solving and rendering one
// PatternRequest: the SearchResult that was found (a failed result
// with Cost == semantic.CostInfinite when no implementation was found,
// nil when the request could not be submitted to the pool), the
// rendered source fragment for each template, and any rendering or
// search error.
type EmitResult struct {
	Request *PatternRequest
	Result  *semantic.SearchResult
	Sources map[string]string
	Err     error
}

// templateData is what each named template sees when rendering an
// EmitResult: the request and the solved search result.
type templateData struct {
	Request *PatternRequest
	Result  *semantic.SearchResult
}

// Generator drives semantic.Search over a batch of PatternRequests and
// renders each solved result through every registered named template
// — ground: original_source/TemplateManager.cpp's GetTemplate/
// fillTemplate contract (one named template per output family, filled
// from a result struct), reimplemented with text/template since no
// templating library exists anywhere in the retrieved pack
// (DESIGN.md). SPEC_FULL.md §9.1 generalizes the original's single
// template per pattern into one-or-more named templates, so a caller
// can render both a table-fragment and a lowering-function fragment
// from the same SearchResult.
type Generator struct {
	Lib       *semantic.InstructionLibrary
	Templates map[string]*template.Template
	Log       *logrus.Logger
}

// NewGenerator builds a Generator. log may be nil, in which case a
// default logrus.Logger is used.
func NewGenerator(lib *semantic.InstructionLibrary, templates map[string]*template.Template, log *logrus.Logger) *Generator {
	if log == nil {
		log = logrus.New()
	}
	return &Generator{Lib: lib, Templates: templates, Log: log}
}

// Solve runs semantic.Search for req, widening the depth bound from
// req.StartDepth (or DefaultStartDepth) up to req.MaxDepth (or
// DefaultMaxDepth) until a non-failing SearchResult is found or the
// ceiling is reached.
func (g *Generator) Solve(req *PatternRequest) *semantic.SearchResult {
	start := req.StartDepth
	if start <= 0 {
		start = DefaultStartDepth
	}
	max := req.MaxDepth
	if max <= 0 {
		max = DefaultMaxDepth
	}
	var best *semantic.SearchResult
	for depth := start; depth <= max; depth++ {
		res := semantic.Search(req.Goal, g.Lib, depth)
		if !res.Failed() {
			best = res
			break
		}
	}
	if best == nil {
		return semantic.FailedResult()
	}
	return best
}

// Render executes every registered template against res, returning a
// map of template name to rendered source.
func (g *Generator) Render(req *PatternRequest, res *semantic.SearchResult) (map[string]string, error) {
	out := make(map[string]string, len(g.Templates))
	data := templateData{Request: req, Result: res}
	for name, tmpl := range g.Templates {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, errors.Wrapf(err, "rendering template %q for pattern %q", name, req.Name)
		}
		out[name] = buf.String()
	}
	return out, nil
}

// solveAndRender runs Solve then, on success, Render, wrapping both
// into a single EmitResult.
func (g *Generator) solveAndRender(req *PatternRequest) *EmitResult {
	res := g.Solve(req)
	if res.Failed() {
		g.Log.WithField("pattern", req.Name).Warn("no instruction sequence found within depth bound")
		return &EmitResult{Request: req, Result: res, Err: errors.Errorf("pattern %q: no implementation found", req.Name)}
	}
	sources, err := g.Render(req, res)
	if err != nil {
		return &EmitResult{Request: req, Result: res, Err: err}
	}
	return &EmitResult{Request: req, Result: res, Sources: sources}
}

// RunBatch solves and renders every request concurrently across pool,
// returning results in the same order as reqs regardless of
// completion order. Every request is offered to pool.Submit; a request
// whose Submit fails (ctx cancelled or pool shut down) is not run and
// its EmitResult carries that error.
func (g *Generator) RunBatch(ctx context.Context, pool *parallel.Pool, reqs []*PatternRequest) []*EmitResult {
	results := make([]*EmitResult, len(reqs))
	var wg sync.WaitGroup
	for i, req := range reqs {
		i, req := i, req
		wg.Add(1)
		err := pool.Submit(ctx, func() {
			defer wg.Done()
			results[i] = g.solveAndRender(req)
		})
		if err != nil {
			wg.Done()
			results[i] = &EmitResult{Request: req, Err: err}
		}
	}
	wg.Wait()
	return results
}
