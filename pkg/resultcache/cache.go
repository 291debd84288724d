package resultcache

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/rafaelauler/accgen-go/pkg/semantic"
)

// StaleEntryError reports a cache entry referencing an instruction or
// rule name that no longer exists in the current InstructionLibrary —
// the ISA description changed since the entry was written.
type StaleEntryError struct {
	Name string
	Kind string
}

func (e *StaleEntryError) Error() string {
	return fmt.Sprintf("resultcache: stale entry references unknown %s %q", e.Kind, e.Name)
}

// Cache is an on-disk directory of gob-encoded SearchResults, one file
// per (pattern name, goal hash) pair.
type Cache struct {
	dir string
}

// Open returns a Cache rooted at dir, creating dir if it does not
// exist.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating result cache directory %s", dir)
	}
	return &Cache{dir: dir}, nil
}

// fileName derives a content-addressed file name from the pattern
// name and the goal's structural hash, via uuid.NewSHA1 exactly as
// SPEC_FULL.md §4.6 specifies, so two processes deriving the same
// pattern against the same goal always agree on a cache key without
// needing a shared counter.
func fileName(patternName string, goal semantic.Expr) string {
	seed := fmt.Sprintf("%s:%d", patternName, semantic.Hash(goal))
	id := uuid.NewSHA1(uuid.Nil, []byte(seed))
	return id.String() + ".gob"
}

// Store persists res under patternName/goal's derived key, overwriting
// any existing entry. lib is the InstructionLibrary res was derived
// against, used to encode each referenced Instruction/Rule as a
// (name, occurrence) pair rather than by pointer.
func (c *Cache) Store(patternName string, goal semantic.Expr, res *semantic.SearchResult, lib *semantic.InstructionLibrary) error {
	path := filepath.Join(c.dir, fileName(patternName, goal))
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating cache entry for pattern %q", patternName)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(toWire(res, lib)); err != nil {
		return errors.Wrapf(err, "encoding cache entry for pattern %q", patternName)
	}
	return nil
}

// Load returns the cached SearchResult for patternName/goal, re-linked
// against lib. ok is false if no entry exists. An existing but
// undecodable or stale entry is reported as an error rather than
// silently treated as a miss, so the caller can decide whether to
// delete and re-derive or fail the run.
func (c *Cache) Load(patternName string, goal semantic.Expr, lib *semantic.InstructionLibrary) (res *semantic.SearchResult, ok bool, err error) {
	path := filepath.Join(c.dir, fileName(patternName, goal))
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "opening cache entry for pattern %q", patternName)
	}
	defer f.Close()

	var w wireResult
	if err := gob.NewDecoder(f).Decode(&w); err != nil {
		return nil, false, errors.Wrapf(err, "decoding cache entry for pattern %q (corrupt cache file %s)", patternName, path)
	}
	res, err = fromWire(&w, lib)
	if err != nil {
		return nil, false, errors.Wrapf(err, "re-linking cache entry for pattern %q", patternName)
	}
	return res, true, nil
}

// Delete removes the cache entry for patternName/goal, if any.
func (c *Cache) Delete(patternName string, goal semantic.Expr) error {
	path := filepath.Join(c.dir, fileName(patternName, goal))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing cache entry for pattern %q", patternName)
	}
	return nil
}
