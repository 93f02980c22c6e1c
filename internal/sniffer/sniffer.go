// Package sniffer runs the capture loop: drain the browser's network log,
// extract WebSocket frames, decode Socket.IO events, suppress duplicates,
// fold inventory records into the aggregate and persist it.
package sniffer

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/DedPeredoz/rustyloot-scraper/internal/dedup"
	"github.com/DedPeredoz/rustyloot-scraper/internal/frames"
	"github.com/DedPeredoz/rustyloot-scraper/internal/hub"
	"github.com/DedPeredoz/rustyloot-scraper/internal/inventory"
	"github.com/DedPeredoz/rustyloot-scraper/internal/output"
	"github.com/DedPeredoz/rustyloot-scraper/internal/socketio"
	"github.com/DedPeredoz/rustyloot-scraper/internal/stats"
	"github.com/DedPeredoz/rustyloot-scraper/internal/store"
)

// Source yields the raw network log entries accumulated since the last call.
// A failing source returns nothing for that tick; the loop carries on.
type Source interface {
	DrainLog() []string
}

// Config controls one run of the loop.
type Config struct {
	Duration      time.Duration
	PollInterval  time.Duration
	DedupCapacity int
	InventoryFile string
	ReportFile    string
}

// Runner owns the aggregate and the dedup filter for the life of one run.
type Runner struct {
	cfg      Config
	src      Source
	logger   *log.Logger
	renderer output.Renderer
	events   *hub.Hub // nil when the dashboard is off
	tracker  *stats.Tracker
	filter   *dedup.Filter

	mu     sync.RWMutex
	inv    inventory.Aggregate
	sample []any // market samples, carried into the report
}

// New wires a Runner. events may be nil.
func New(cfg Config, src Source, logger *log.Logger, renderer output.Renderer, events *hub.Hub, tracker *stats.Tracker) *Runner {
	return &Runner{
		cfg:      cfg,
		src:      src,
		logger:   logger,
		renderer: renderer,
		events:   events,
		tracker:  tracker,
		filter:   dedup.NewFilter(cfg.DedupCapacity),
		inv:      inventory.NewAggregate(),
		sample:   []any{},
	}
}

// Snapshot returns a copy of the aggregate, safe for concurrent readers.
func (r *Runner) Snapshot() inventory.Aggregate {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.inv.Copy()
}

// Run polls the source until the time budget is spent or ctx is cancelled,
// then writes the final report and the console summary. The aggregate is
// persisted after every tick that merged at least one record.
func (r *Runner) Run(ctx context.Context) error {
	start := time.Now()
	r.logger.Printf("listening for Socket.IO events for %s", r.cfg.Duration)

loop:
	for time.Since(start) < r.cfg.Duration {
		r.tick()

		select {
		case <-ctx.Done():
			r.logger.Printf("run cancelled after %s", time.Since(start).Truncate(time.Millisecond))
			break loop
		case <-time.After(r.cfg.PollInterval):
		}
	}

	report := store.Report{Inventory: r.Snapshot(), MarketSample: r.sample}
	if err := store.SaveJSON(r.cfg.ReportFile, report); err != nil {
		return err
	}
	r.logger.Printf("done, report written to %s", r.cfg.ReportFile)

	return r.renderer.Summary(report.Inventory)
}

// tick processes everything the source buffered since the previous poll.
func (r *Runner) tick() {
	fs := frames.Extract(r.src.DrainLog())
	if len(fs) == 0 {
		return
	}
	r.tracker.RecordFrames(len(fs))

	for _, f := range fs {
		ev, ok := socketio.Decode(f)
		if !ok {
			continue
		}

		if r.filter.Seen(dedup.Signature(ev)) {
			r.tracker.RecordDuplicate()
			continue
		}
		r.tracker.RecordEvent()

		if err := r.renderer.Render(ev); err != nil {
			r.logger.Printf("render error: %v", err)
		}
		if r.events != nil {
			r.events.Publish(ev)
		}

		items := inventory.Locate(ev.Args)
		if len(items) == 0 {
			continue
		}

		r.mu.Lock()
		merged := r.inv.Merge(items)
		unique := len(r.inv)
		r.mu.Unlock()

		if merged > 0 {
			r.tracker.RecordMerge(merged, unique)
			r.saveSnapshot(unique)
		}
	}
}

// saveSnapshot persists the running aggregate. A failed save is logged and
// retried implicitly on the next merge.
func (r *Runner) saveSnapshot(unique int) {
	if err := store.SaveJSON(r.cfg.InventoryFile, r.Snapshot()); err != nil {
		r.logger.Printf("inventory save failed: %v", err)
		return
	}
	r.logger.Printf("inventory saved: %d unique items to %s", unique, r.cfg.InventoryFile)
}
