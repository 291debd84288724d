package semantic

// cacheBuckets is the fixed bucket count for TransformationCache,
// matching HASHSIZE in original_source/InsnSelector/Search.cpp.
const cacheBuckets = 1024

// cacheEntry is one chained-table node: a failed search is recorded by
// the combined hash of the (query, goal) pair it failed to transform
// between, independent clones of that pair (spec.md §3's Lifecycle
// invariant: "cached entries own independent clones of their key
// trees"), and the depth bound that failure was established at, so a
// re-exploration with the same or a smaller depth bound can be skipped
// outright.
type cacheEntry struct {
	hash     uint32
	query    Expr
	goal     Expr
	maxDepth int
	next     *cacheEntry
}

// combinedHash folds goal's hash into query's using the same ELF-style
// mixing Hash itself uses internally, mirroring
// original_source/InsnSelector/Search.cpp's Exp->getHash(Target->getHash()).
func combinedHash(query, goal Expr) uint32 {
	h := Hash(query)
	g := Hash(goal)
	h = (h << 4) + g
	if hi := h & 0xf0000000; hi != 0 {
		h ^= hi >> 24
		h &^= hi
	}
	return h
}

// TransformationCache memoizes failed (query, goal) transformation
// attempts by their combined structural hash, exactly as
// original_source/InsnSelector/Search.cpp's TransformationCache: a
// fixed-size chained hash table, not a general-purpose memoization
// map, because the trees involved are transient with no stable
// identity to key a normal map on. Per spec.md §5 this cache belongs
// to a single Search call and is never shared across goroutines; each
// Search call constructs its own cache.
//
// The original guards its cache lookup behind a disabled
// USETRANSCACHE build flag (DESIGN.md Open Question 3's sibling
// observation); accgen-go keeps the cache always-on, since spec.md §3
// lists it as part of the data model without flagging it as disabled,
// unlike the Phase-1.5 decomposition search move.
type TransformationCache struct {
	buckets [cacheBuckets]*cacheEntry
}

// NewTransformationCache returns an empty cache.
func NewTransformationCache() *TransformationCache {
	return &TransformationCache{}
}

// MarkFailed records that transforming query toward goal failed to
// find an implementation within maxDepth.
func (c *TransformationCache) MarkFailed(query, goal Expr, maxDepth int) {
	h := combinedHash(query, goal)
	idx := h % cacheBuckets
	var last *cacheEntry
	for e := c.buckets[idx]; e != nil; e = e.next {
		if e.hash == h && Compare(query, e.query, false) && Compare(goal, e.goal, false) {
			if maxDepth > e.maxDepth {
				e.maxDepth = maxDepth
			}
			return
		}
		last = e
	}
	entry := &cacheEntry{
		hash:     h,
		query:    query.Clone(),
		goal:     goal.Clone(),
		maxDepth: maxDepth,
	}
	// Append at the chain tail so each chain keeps insertion order.
	if last == nil {
		c.buckets[idx] = entry
	} else {
		last.next = entry
	}
}

// KnownFailed reports whether transforming query toward goal is
// already known to fail at maxDepth or shallower: a prior failure
// recorded at depth >= maxDepth means re-exploring at maxDepth cannot
// succeed either, since a shallower or equal bound is strictly more
// restrictive. A hash-bucket hit is re-verified against the stored
// clones with Compare before being trusted, since a 32-bit hash
// collision between two different (query, goal) pairs must never be
// allowed to suppress a reachable solution.
func (c *TransformationCache) KnownFailed(query, goal Expr, maxDepth int) bool {
	h := combinedHash(query, goal)
	idx := h % cacheBuckets
	for e := c.buckets[idx]; e != nil; e = e.next {
		if e.hash != h || e.maxDepth < maxDepth {
			continue
		}
		if Compare(query, e.query, false) && Compare(goal, e.goal, false) {
			return true
		}
	}
	return false
}
