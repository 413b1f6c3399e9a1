package ecs

import (
	"slices"

	"github.com/cespare/xxhash/v2"
)

// queryCache memoizes Scene.Query results per component-name set. Entries
// are keyed by an xxhash over the sorted names and the whole cache is
// discarded whenever the scene's generation moves, i.e. on any mutation
// that can change which entities a query matches.
//
// Purely an internal detail: Query stays read-only and idempotent whether
// or not a lookup hits the cache.
type queryCache struct {
	generation uint64
	entries    map[uint64]queryEntry
}

type queryEntry struct {
	names   []string // sorted; guards against hash collisions
	matches []*Entity
}

func newQueryCache() *queryCache {
	return &queryCache{entries: make(map[uint64]queryEntry)}
}

func (q *queryCache) lookup(s *Scene, names []string) []*Entity {
	if q.generation != s.generation {
		clear(q.entries)
		q.generation = s.generation
	}

	sorted := slices.Clone(names)
	slices.Sort(sorted)
	key := hashNames(sorted)

	if entry, ok := q.entries[key]; ok && slices.Equal(entry.names, sorted) {
		return slices.Clone(entry.matches)
	}

	matches := make([]*Entity, 0, len(s.order))
	for _, e := range s.order {
		if e.Has(names...) {
			matches = append(matches, e)
		}
	}
	q.entries[key] = queryEntry{names: sorted, matches: matches}
	return slices.Clone(matches)
}

func hashNames(sorted []string) uint64 {
	d := xxhash.New()
	for _, name := range sorted {
		_, _ = d.WriteString(name)
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}
