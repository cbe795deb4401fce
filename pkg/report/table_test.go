package report

import (
	"strings"
	"testing"
)

func TestPrintTableTopN(t *testing.T) {
	var buf strings.Builder
	PrintTable(&buf, "TOP PROCESSES BY TOTAL FOOTPRINT", sampleStats(), 1)
	out := buf.String()

	if !strings.Contains(out, "TOP PROCESSES BY TOTAL FOOTPRINT") {
		t.Error("title missing")
	}
	if !strings.Contains(out, "Invoice Sync, Nightly") {
		t.Error("first row missing")
	}
	if strings.Contains(out, "Ghost Process") {
		t.Error("row beyond top-N was printed")
	}
	if !strings.Contains(out, "Showing top 1 of 2 processes") {
		t.Error("footer count wrong")
	}
}

func TestPrintTableTopNLargerThanList(t *testing.T) {
	var buf strings.Builder
	PrintTable(&buf, "RANKING", sampleStats(), 50)
	if !strings.Contains(buf.String(), "Showing top 2 of 2 processes") {
		t.Error("top-N should clamp to list length")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	long := strings.Repeat("n", 60)
	if got := truncate(long, 39); len(got) != 39 {
		t.Errorf("truncate left %d chars, want 39", len(got))
	}
}

func TestPrintSummary(t *testing.T) {
	var buf strings.Builder
	PrintSummary(&buf, Summary{
		Processes:    2,
		Executions:   4,
		CombinedKiB:  2208,
		ExecutionKiB: 2108,
	})
	out := buf.String()
	if !strings.Contains(out, "2.16 MB") {
		t.Errorf("combined size missing: %q", out)
	}
	if strings.Contains(out, "Container logs") {
		t.Error("container-log line printed despite zero size")
	}

	buf.Reset()
	PrintSummary(&buf, Summary{ContainerLogKiB: 1024})
	if !strings.Contains(buf.String(), "Container logs") {
		t.Error("container-log line missing when size is nonzero")
	}
}
