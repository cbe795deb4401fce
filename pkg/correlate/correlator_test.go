package correlate

import (
	"strconv"
	"strings"
	"testing"

	"github.com/atomlens/atomlens/internal/model"
	"github.com/atomlens/atomlens/pkg/registry"
)

func TestSyntheticIDDeterministic(t *testing.T) {
	a := SyntheticID("order export")
	b := SyntheticID("order export")
	if a != b {
		t.Errorf("same name produced %q and %q", a, b)
	}
	if !strings.HasPrefix(a, "unknown_process_") {
		t.Errorf("id %q missing prefix", a)
	}
	n, err := strconv.Atoi(strings.TrimPrefix(a, "unknown_process_"))
	if err != nil || n < 0 || n >= 10000 {
		t.Errorf("id suffix %q out of range", a)
	}
	if SyntheticID("order export") == SyntheticID("order import") {
		t.Log("distinct names collided; permitted but suspicious for this pair")
	}
}

func TestResolveRegistryHit(t *testing.T) {
	reg := registry.NewRegistry()
	reg.Register(&model.ProcessDefinition{ID: "proc-a", Name: "Invoice Sync"})

	c := New(reg)
	id := c.Resolve(model.ExecutionEvent{ProcessName: "  INVOICE   sync "})
	if id != "proc-a" {
		t.Errorf("Resolve = %q, want proc-a", id)
	}
	if c.UnmatchedCount() != 0 {
		t.Errorf("UnmatchedCount = %d, want 0", c.UnmatchedCount())
	}
}

func TestResolveSyntheticSharedAcrossSpellings(t *testing.T) {
	c := New(registry.NewRegistry())

	a := c.Resolve(model.ExecutionEvent{ProcessName: "Ghost Process"})
	b := c.Resolve(model.ExecutionEvent{ProcessName: "ghost   process"})
	if a != b {
		t.Errorf("spellings of the same name resolved to %q and %q", a, b)
	}
	if c.UnmatchedCount() != 1 {
		t.Errorf("UnmatchedCount = %d, want 1", c.UnmatchedCount())
	}
	if got := c.UnmatchedNames()[a]; got != "Ghost Process" {
		t.Errorf("first raw name = %q, want Ghost Process", got)
	}
}

func TestResolveCopySuffixFoldsIn(t *testing.T) {
	reg := registry.NewRegistry()
	reg.Register(&model.ProcessDefinition{ID: "proc-a", Name: "Invoice Sync"})

	c := New(reg)
	if id := c.Resolve(model.ExecutionEvent{ProcessName: "Invoice Sync - Copy"}); id != "proc-a" {
		t.Errorf("copy-suffixed name resolved to %q, want proc-a", id)
	}
	if id := c.Resolve(model.ExecutionEvent{ProcessName: "Invoice Sync [v2]"}); id != "proc-a" {
		t.Errorf("annotated name resolved to %q, want proc-a", id)
	}
}

func TestCorrelateDeduplicates(t *testing.T) {
	c := New(registry.NewRegistry())

	events := []model.ExecutionEvent{
		{ExecutionID: "execution-1", ProcessName: "Loader", SizeKiB: 10},
		{ExecutionID: "execution-1", ProcessName: "Loader", SizeKiB: 10}, // scanned twice
		{ExecutionID: "execution-2", ProcessName: "Loader", SizeKiB: 20},
	}
	out := c.Correlate(events)
	if len(out) != 2 {
		t.Fatalf("got %d events after dedup, want 2", len(out))
	}
	if out[0].Event.ExecutionID != "execution-1" || out[1].Event.ExecutionID != "execution-2" {
		t.Errorf("dedup changed event order: %+v", out)
	}
	if out[0].ID != out[1].ID {
		t.Errorf("same process name resolved to different ids")
	}
}

func TestCorrelateDedupScopedByID(t *testing.T) {
	reg := registry.NewRegistry()
	reg.Register(&model.ProcessDefinition{ID: "proc-a", Name: "Alpha"})
	reg.Register(&model.ProcessDefinition{ID: "proc-b", Name: "Beta"})

	c := New(reg)
	// Identical executionIDs under different processes are distinct
	// executions, not duplicates.
	out := c.Correlate([]model.ExecutionEvent{
		{ExecutionID: "execution-7", ProcessName: "Alpha"},
		{ExecutionID: "execution-7", ProcessName: "Beta"},
	})
	if len(out) != 2 {
		t.Errorf("got %d events, want 2", len(out))
	}
}
