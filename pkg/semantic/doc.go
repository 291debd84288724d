// Package semantic implements the pattern-implementation search engine
// described for accgen-go: a typed expression algebra over a
// register/memory/constant machine model, a structural matcher and
// substituter, a rewrite-rule engine, and a depth-bounded search engine
// that derives an instruction sequence implementing a goal expression.
//
// The package is deliberately single-threaded and synchronous: every
// exported operation is a plain function or method call that returns
// once it is done. Callers that want concurrent exploration of
// independent goals (see pkg/codegen) run separate Search calls on
// separate goroutines, each with its own TransformationCache.
//
// Failures are total: Search never panics or returns an error for "no
// implementation found" (that is SearchResult.Cost == CostInfinite).
// Only internal invariant violations (a malformed tree reaching the
// engine) panic, since those indicate a collaborator bug upstream of
// the CORE, not a normal search outcome.
package semantic
