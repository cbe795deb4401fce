// Package correlate resolves execution events against the process
// registry, synthesizing stable placeholder ids for names no
// definition claims.
package correlate

import (
	"fmt"

	"github.com/atomlens/atomlens/internal/model"
	"github.com/atomlens/atomlens/pkg/registry"
	"github.com/atomlens/atomlens/pkg/scan"
)

// Synthetic-id hash parameters. The scheme has no collision guarantee
// beyond the final modulus: two distinct names can merge. That is a
// known property kept for run-to-run compatibility.
const (
	hashBase  = 33
	hashMod   = 1_000_000_007
	idBuckets = 10_000
)

// SyntheticID derives the deterministic placeholder id for a
// normalized name. The value depends only on the name itself, never on
// what other names a run happens to contain.
func SyntheticID(normalizedName string) string {
	var h int64
	for _, r := range normalizedName {
		h = (h*hashBase + int64(r)) % hashMod
	}
	return fmt.Sprintf("unknown_process_%d", h%idBuckets)
}

// Event is an ExecutionEvent bound to its resolved process id.
type Event struct {
	ID    string
	Event model.ExecutionEvent
}

// Correlator joins events to the registry. It owns the in-run
// synthetic-id table and the deduplication set; neither is global
// state.
type Correlator struct {
	reg       *registry.Registry
	synthetic map[string]string   // normalized name -> synthetic id
	unmatched map[string]string   // synthetic id -> first raw name seen
	seen      map[string]struct{} // resolved id + executionID
}

// New creates a correlator over a fully built registry.
func New(reg *registry.Registry) *Correlator {
	return &Correlator{
		reg:       reg,
		synthetic: make(map[string]string),
		unmatched: make(map[string]string),
		seen:      make(map[string]struct{}),
	}
}

// Resolve maps an event's process name to an id. Registry hits reuse
// the registered id; misses get the synthetic id, computed once per
// normalized name and cached so repeated spellings of the same name
// always land on the same id.
func (c *Correlator) Resolve(ev model.ExecutionEvent) string {
	key := scan.Normalize(ev.ProcessName)
	if id, ok := c.reg.Lookup(key); ok {
		return id
	}
	if id, ok := c.synthetic[key]; ok {
		return id
	}
	id := SyntheticID(key)
	c.synthetic[key] = id
	if _, ok := c.unmatched[id]; !ok {
		c.unmatched[id] = ev.ProcessName
	}
	return id
}

// Correlate resolves and deduplicates a batch of events. An event
// whose (resolved id, executionID) pair was already seen is discarded,
// so an execution scanned twice never double-counts.
func (c *Correlator) Correlate(events []model.ExecutionEvent) []Event {
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		id := c.Resolve(ev)
		dedupKey := id + "\x00" + ev.ExecutionID
		if _, dup := c.seen[dedupKey]; dup {
			continue
		}
		c.seen[dedupKey] = struct{}{}
		out = append(out, Event{ID: id, Event: ev})
	}
	return out
}

// UnmatchedNames returns the synthetic id to first-seen raw name
// mapping for diagnostics.
func (c *Correlator) UnmatchedNames() map[string]string {
	return c.unmatched
}

// UnmatchedCount returns the number of distinct unmatched-name groups.
func (c *Correlator) UnmatchedCount() int {
	return len(c.unmatched)
}
