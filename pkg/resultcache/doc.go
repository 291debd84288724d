// Package resultcache persists solved semantic.SearchResults to disk,
// keyed by pattern name, so a later generator run can skip re-deriving
// a pattern it has already solved.
//
// Ground: the TEACHER's pkg/minikanren/tabling.go SubgoalTable is the
// conceptual model (a predicate-name-keyed table remembering prior
// answers), generalized from an in-memory sync.Map into a directory of
// encoding/gob-encoded files, because — unlike a single process's
// tabled search — this cache must outlive the process
// (SPEC_FULL.md §4.6, the SaveAgent-equivalent feature carried over
// from original_source/SaveAgent.{h,cpp}).
package resultcache
