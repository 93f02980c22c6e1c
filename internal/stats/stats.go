// Package stats keeps run counters for logging and the dashboard.
package stats

import (
	"sync"
	"time"
)

// Snapshot holds a point-in-time view of run metrics.
type Snapshot struct {
	Uptime      string `json:"uptime"`
	Frames      int64  `json:"frames"`
	Events      int64  `json:"events"`
	Duplicates  int64  `json:"duplicates"`
	Merges      int64  `json:"merges"`
	ItemsMerged int64  `json:"items_merged"`
	UniqueItems int    `json:"unique_items"`
}

// Tracker accumulates counters. The run loop writes; the dashboard reads.
type Tracker struct {
	mu          sync.RWMutex
	startTime   time.Time
	frames      int64
	events      int64
	duplicates  int64
	merges      int64
	itemsMerged int64
	uniqueItems int
}

// NewTracker returns a Tracker with the run clock started.
func NewTracker() *Tracker {
	return &Tracker{startTime: time.Now()}
}

// RecordFrames adds extracted WebSocket frames to the tally.
func (t *Tracker) RecordFrames(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frames += int64(n)
}

// RecordEvent counts one decoded, non-duplicate event.
func (t *Tracker) RecordEvent() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events++
}

// RecordDuplicate counts an event suppressed by the dedup filter.
func (t *Tracker) RecordDuplicate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.duplicates++
}

// RecordMerge counts one successful aggregation of merged records, along with
// the current number of unique item names.
func (t *Tracker) RecordMerge(merged, uniqueItems int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.merges++
	t.itemsMerged += int64(merged)
	t.uniqueItems = uniqueItems
}

// Stats returns the current metrics.
func (t *Tracker) Stats() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return Snapshot{
		Uptime:      time.Since(t.startTime).Truncate(time.Second).String(),
		Frames:      t.frames,
		Events:      t.events,
		Duplicates:  t.duplicates,
		Merges:      t.merges,
		ItemsMerged: t.itemsMerged,
		UniqueItems: t.uniqueItems,
	}
}
