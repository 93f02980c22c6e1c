// Package dedup suppresses reprocessing of identical decoded events within a
// run. Signatures live in a bounded FIFO: once capacity is exceeded the
// oldest signature is forgotten and the event would be processed again.
package dedup

import (
	"encoding/json"
	"fmt"

	"github.com/DedPeredoz/rustyloot-scraper/internal/model"
)

// DefaultCapacity bounds the most-recently-seen window.
const DefaultCapacity = 2000

// Signature derives a deterministic string from a decoded event: direction,
// event name and the canonical JSON of its args. encoding/json writes object
// keys in sorted order, so equal content always yields equal signatures.
func Signature(ev model.SocketEvent) string {
	args, err := json.Marshal(ev.Args)
	if err != nil {
		// Decoded args came from JSON, so this should not happen; fall back
		// to the fmt rendering rather than dropping dedup entirely.
		return fmt.Sprintf("%s|%v|%v", ev.Direction, ev.Name, ev.Args)
	}
	return fmt.Sprintf("%s|%v|%s", ev.Direction, ev.Name, args)
}

// Filter is a bounded most-recently-seen set with ring-buffer eviction.
// It is not safe for concurrent use; the run loop is its only caller.
type Filter struct {
	capacity int
	ring     []string
	next     int
	present  map[string]struct{}
}

// NewFilter creates a Filter holding at most capacity signatures.
// Non-positive capacities fall back to DefaultCapacity.
func NewFilter(capacity int) *Filter {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Filter{
		capacity: capacity,
		ring:     make([]string, 0, capacity),
		present:  make(map[string]struct{}, capacity),
	}
}

// Seen reports whether sig was already recorded and records it if not.
// Inserting past capacity silently evicts the oldest signature.
func (f *Filter) Seen(sig string) bool {
	if _, ok := f.present[sig]; ok {
		return true
	}

	if len(f.ring) < f.capacity {
		f.ring = append(f.ring, sig)
	} else {
		delete(f.present, f.ring[f.next])
		f.ring[f.next] = sig
		f.next = (f.next + 1) % f.capacity
	}
	f.present[sig] = struct{}{}
	return false
}

// Len returns the number of signatures currently held.
func (f *Filter) Len() int {
	return len(f.ring)
}
