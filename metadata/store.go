// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package metadata

import (
	"hash/fnv"
	"sort"
	"sync"
	"sync/atomic"
)

const storeShardCount = 16

// Store is the concurrent, insertion-ordered collection of ValidatedDeclarations
// for a single compilation. Multiple worker threads may insert concurrently
// during the front-end phase (spec §5); a single global lock would become a
// contention bottleneck, so the store is sharded by a hash of the FQN, each
// shard guarded independently. A monotonically increasing sequence number
// recorded at insertion time lets Snapshot reconstruct a stable overall
// insertion order regardless of which shard (and thread) handled each entry.
type Store struct {
	shards [storeShardCount]shard

	seq atomic.Uint64

	interfaceCacheHits atomic.Int64
	classCacheHits      atomic.Int64

	frozenMu sync.Mutex
	frozen   bool
}

type shard struct {
	mu      sync.RWMutex
	entries map[string]storeEntry
}

type storeEntry struct {
	decl ValidatedDeclaration
	seq  uint64
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	s := &Store{}
	for i := range s.shards {
		s.shards[i].entries = make(map[string]storeEntry)
	}
	return s
}

func (s *Store) shardFor(fqn string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fqn))
	return &s.shards[h.Sum32()%storeShardCount]
}

// Insert adds decl under its FQN. Returns false without modifying the store
// if an entry with the same FQN already exists (the invariant that every
// stored declaration has a unique FQN is enforced here; the validator reports
// DuplicateAnnotatedName when Insert returns false).
func (s *Store) Insert(decl ValidatedDeclaration) bool {
	sh := s.shardFor(decl.FQN)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if _, exists := sh.entries[decl.FQN]; exists {
		return false
	}
	sh.entries[decl.FQN] = storeEntry{decl: decl, seq: s.seq.Add(1)}
	return true
}

// Get returns the declaration stored under fqn, if any.
func (s *Store) Get(fqn string) (ValidatedDeclaration, bool) {
	sh := s.shardFor(fqn)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	e, ok := sh.entries[fqn]
	return e.decl, ok
}

// Len returns the number of declarations currently stored.
func (s *Store) Len() int {
	n := 0
	for i := range s.shards {
		s.shards[i].mu.RLock()
		n += len(s.shards[i].entries)
		s.shards[i].mu.RUnlock()
	}
	return n
}

// Freeze marks the store read-only. Consumers obtain snapshots via Snapshot
// at generation time; freezing documents that the back-end phase no longer
// races with front-end insertions (spec §5: "Reads during the back-end phase
// are safe because the store is frozen at end-of-front-end").
func (s *Store) Freeze() {
	s.frozenMu.Lock()
	defer s.frozenMu.Unlock()
	s.frozen = true
}

// Frozen reports whether Freeze has been called.
func (s *Store) Frozen() bool {
	s.frozenMu.Lock()
	defer s.frozenMu.Unlock()
	return s.frozen
}

// Snapshot returns every declaration currently stored, in stable insertion
// order (spec §5: "store iteration yields insertion order").
func (s *Store) Snapshot() []ValidatedDeclaration {
	type seqDecl struct {
		decl ValidatedDeclaration
		seq  uint64
	}
	all := make([]seqDecl, 0, s.Len())
	for i := range s.shards {
		s.shards[i].mu.RLock()
		for _, e := range s.shards[i].entries {
			all = append(all, seqDecl{decl: e.decl, seq: e.seq})
		}
		s.shards[i].mu.RUnlock()
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seq < all[j].seq })
	out := make([]ValidatedDeclaration, len(all))
	for i, e := range all {
		out[i] = e.decl
	}
	return out
}

// IncInterfaceCacheHit increments the interface cache-hit counter.
func (s *Store) IncInterfaceCacheHit() { s.interfaceCacheHits.Add(1) }

// IncClassCacheHit increments the class cache-hit counter.
func (s *Store) IncClassCacheHit() { s.classCacheHits.Add(1) }

// InterfaceCacheHits returns the current interface cache-hit count.
func (s *Store) InterfaceCacheHits() int64 { return s.interfaceCacheHits.Load() }

// ClassCacheHits returns the current class cache-hit count.
func (s *Store) ClassCacheHits() int64 { return s.classCacheHits.Load() }
