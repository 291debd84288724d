// Package codegen drives pkg/semantic's search engine over a batch of
// pattern requests and renders each solved result into backend source
// fragments via text/template.
//
// Independent requests are fanned out across internal/parallel.Pool,
// a fixed-size worker pool adapted from the TEACHER's
// internal/parallel.StaticWorkerPool: each worker calls semantic.Search,
// which builds its own TransformationCache and name generator per call.
// The instruction library is shared by all workers and only read, so no
// mutable CORE state is shared across goroutines, per pkg/semantic's
// single-threaded-per-call contract.
package codegen
