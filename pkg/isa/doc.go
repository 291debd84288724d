// Package isa loads an ISA description — register classes, instruction
// formats, per-instruction semantics, rewrite rules, and operand
// fragments — from hand-authored YAML files into the typed model
// pkg/semantic's search engine consumes.
//
// Parsing is a normal, recoverable failure mode: a malformed file
// returns a github.com/pkg/errors-wrapped error for the caller (cmd/accgen)
// to log and report, never a panic. This is deliberately different from
// pkg/semantic's own fail-fast invariant violations, which signal a bug
// in already-validated in-memory data, not bad user input.
package isa
