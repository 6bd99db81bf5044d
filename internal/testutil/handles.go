// Package testutil provides deterministic helpers for tests and the
// conformance harness: a fixed-sequence handle generator and a manually
// driven scheduler. Both exist so traces are reproducible byte-for-byte
// across runs.
package testutil

import (
	"fmt"
	"sync"
)

// SequenceHandleGenerator numbers handles per kind: marker-1, marker-2,
// layer-1, ... Deterministic traces require deterministic handles.
//
// Thread-safe via internal mutex.
type SequenceHandleGenerator struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewSequenceHandleGenerator creates a generator starting at 1 per kind.
func NewSequenceHandleGenerator() *SequenceHandleGenerator {
	return &SequenceHandleGenerator{counts: make(map[string]int)}
}

// Next returns the next handle for the kind, e.g. "marker-3".
func (g *SequenceHandleGenerator) Next(kind string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counts[kind]++
	return fmt.Sprintf("%s-%d", kind, g.counts[kind])
}
