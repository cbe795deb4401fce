package collect

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeExecution(t *testing.T, root, name, log string, payload int) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if log != "" {
		if err := os.WriteFile(filepath.Join(dir, processLogName), []byte(log), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if payload > 0 {
		if err := os.WriteFile(filepath.Join(dir, "payload.dat"), bytes.Repeat([]byte{'x'}, payload), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

const attributedLog = `<ProcessLog>
  <ProcessId>proc-a</ProcessId>
  <Message>Executing Process Invoice Sync</Message>
</ProcessLog>`

func TestCollect(t *testing.T) {
	root := t.TempDir()

	writeExecution(t, root, "execution-001", attributedLog, 4096)
	writeExecution(t, root, "execution-002", "", 128) // no process log
	writeExecution(t, root, "execution-003", `<ProcessLog><Message>startup complete</Message></ProcessLog>`, 0)
	writeExecution(t, root, "connector-xyz", attributedLog, 0) // not an execution container

	c := &Collector{Dir: root, Workers: 2}
	res, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if res.Scanned != 3 {
		t.Errorf("Scanned = %d, want 3", res.Scanned)
	}
	if res.SkippedNoLog != 1 {
		t.Errorf("SkippedNoLog = %d, want 1", res.SkippedNoLog)
	}
	if res.Unattributed != 1 {
		t.Errorf("Unattributed = %d, want 1", res.Unattributed)
	}
	if len(res.Events) != 1 {
		t.Fatalf("got %d events, want 1", len(res.Events))
	}

	ev := res.Events[0]
	if ev.ExecutionID != "execution-001" {
		t.Errorf("ExecutionID = %q", ev.ExecutionID)
	}
	if ev.ProcessName != "Invoice Sync" {
		t.Errorf("ProcessName = %q, want Invoice Sync", ev.ProcessName)
	}
	if ev.RawProcessID != "proc-a" {
		t.Errorf("RawProcessID = %q, want proc-a", ev.RawProcessID)
	}
	if ev.SizeKiB < 4 {
		t.Errorf("SizeKiB = %d, want >= 4 for a 4 KiB payload", ev.SizeKiB)
	}
}

func TestCollectMissingRootIsFatal(t *testing.T) {
	c := &Collector{Dir: filepath.Join(t.TempDir(), "gone")}
	if _, err := c.Collect(context.Background()); err == nil {
		t.Fatal("expected error for missing execution root")
	}
}

func TestCollectPrefersHistorySubtree(t *testing.T) {
	root := t.TempDir()
	// Containers outside history/ belong to other runtime state and
	// must not be scanned when history/ exists.
	writeExecution(t, root, "execution-stray", attributedLog, 0)
	writeExecution(t, filepath.Join(root, "history"), "execution-010", attributedLog, 0)

	c := &Collector{Dir: root}
	res, err := c.Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Scanned != 1 {
		t.Errorf("Scanned = %d, want 1", res.Scanned)
	}
	if len(res.Events) != 1 || res.Events[0].ExecutionID != "execution-010" {
		t.Errorf("events = %+v, want the history container only", res.Events)
	}
}

func TestCollectNestedContainers(t *testing.T) {
	root := t.TempDir()
	// Containers can sit under intermediate date directories.
	writeExecution(t, filepath.Join(root, "2026", "08"), "execution-a1", attributedLog, 0)
	writeExecution(t, filepath.Join(root, "2026", "09"), "execution-b2", attributedLog, 0)

	c := &Collector{Dir: root}
	res, err := c.Collect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Scanned != 2 || len(res.Events) != 2 {
		t.Errorf("Scanned = %d, events = %d; want 2 and 2", res.Scanned, len(res.Events))
	}
}

func TestCollectProgressHooks(t *testing.T) {
	root := t.TempDir()
	writeExecution(t, root, "execution-1", attributedLog, 0)
	writeExecution(t, root, "execution-2", "", 0)

	var started, ticks int
	c := &Collector{
		Dir:      root,
		OnStart:  func(total int) { started = total },
		Progress: func() { ticks++ },
	}
	if _, err := c.Collect(context.Background()); err != nil {
		t.Fatal(err)
	}
	if started != 2 {
		t.Errorf("OnStart total = %d, want 2", started)
	}
	if ticks != 2 {
		t.Errorf("Progress ticks = %d, want 2", ticks)
	}
}

func TestContainerLogBytes(t *testing.T) {
	logs := t.TempDir()
	if err := os.WriteFile(filepath.Join(logs, "2026_08_24.container.log"), bytes.Repeat([]byte{'l'}, 2048), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(logs, "other.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}

	if got := ContainerLogBytes(logs); got != 2048 {
		t.Errorf("ContainerLogBytes = %d, want 2048", got)
	}
	if got := ContainerLogBytes(filepath.Join(logs, "missing")); got != 0 {
		t.Errorf("ContainerLogBytes for missing dir = %d, want 0", got)
	}
}
