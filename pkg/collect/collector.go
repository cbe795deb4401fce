// Package collect walks the execution-history collection and extracts
// one ExecutionEvent per qualifying execution artifact.
package collect

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/atomlens/atomlens/internal/model"
	aerrors "github.com/atomlens/atomlens/pkg/errors"
	"github.com/atomlens/atomlens/pkg/fsutil"
	"github.com/atomlens/atomlens/pkg/scan"
)

// processLogName is the artifact that attributes an execution to a
// process. Containers lacking it cannot be attributed and are skipped.
const processLogName = "process_log.xml"

// rawIDFields is the best-effort chain for the execution log's own
// process identifier: tag forms, then attribute forms, then key/value
// forms, handled by scan.Field's strategy ordering.
var rawIDFields = []string{"ProcessId", "processId", "Id"}

// Result holds the collected events plus the diagnostic counters the
// operator sees.
type Result struct {
	Events []model.ExecutionEvent

	Scanned      int // execution containers visited
	SkippedNoLog int // containers without a process log
	Unattributed int // logs without an "Executing Process" message
}

// Collector scans an execution-history tree.
type Collector struct {
	// Dir is the execution collection root. If it contains a
	// "history" subdirectory, that subtree is walked, matching the
	// runtime's on-disk layout.
	Dir string

	// Workers bounds the parallel container scans.
	Workers int

	// Logf receives diagnostic notes. Nil disables them.
	Logf func(format string, args ...interface{})

	// OnStart, when non-nil, receives the container count before the
	// scan begins.
	OnStart func(total int)

	// Progress, when non-nil, is called once per scanned container.
	Progress func()
}

// Collect walks the tree and extracts events. A missing collection
// root is fatal; per-container problems are counted and skipped.
func (c *Collector) Collect(ctx context.Context) (*Result, error) {
	root := c.Dir
	if _, err := os.Stat(root); err != nil {
		return nil, aerrors.CollectionMissing("execution", root)
	}
	if fi, err := os.Stat(filepath.Join(root, "history")); err == nil && fi.IsDir() {
		root = filepath.Join(root, "history")
	}

	containers := findContainers(root)
	c.logf("Analyzing %d execution history directories...", len(containers))
	if c.OnStart != nil {
		c.OnStart(len(containers))
	}

	res := &Result{Scanned: len(containers)}
	events := make([]*model.ExecutionEvent, len(containers))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit())
	for i, dir := range containers {
		i, dir := i, dir
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			ev, skip := c.scanOne(dir)
			if skip != skipNone {
				mu.Lock()
				switch skip {
				case skipNoLog:
					res.SkippedNoLog++
				case skipUnattributed:
					res.Unattributed++
				}
				mu.Unlock()
			} else {
				events[i] = ev
			}
			if c.Progress != nil {
				c.Progress()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, aerrors.Wrap(err, aerrors.CodeContextCanceled, "execution scan interrupted")
	}

	// Keep walk order so downstream first-seen behavior stays
	// deterministic.
	for _, ev := range events {
		if ev != nil {
			res.Events = append(res.Events, *ev)
		}
	}
	return res, nil
}

type skipReason int

const (
	skipNone skipReason = iota
	skipNoLog
	skipUnattributed
)

// scanOne extracts a single event from one execution container.
func (c *Collector) scanOne(dir string) (*model.ExecutionEvent, skipReason) {
	logPath := filepath.Join(dir, processLogName)
	data, err := os.ReadFile(logPath)
	if err != nil {
		return nil, skipNoLog
	}
	text := string(data)

	name := scan.ExecutingProcess(text)
	if name == "" {
		// No attribution message: the event cannot be assigned to any
		// process.
		return nil, skipUnattributed
	}

	return &model.ExecutionEvent{
		ExecutionID:  filepath.Base(dir),
		RawProcessID: scan.Field(text, rawIDFields...),
		ProcessName:  name,
		SizeKiB:      fsutil.DirSizeKiB(dir),
	}, skipNone
}

// findContainers returns all execution-* directories under root in
// walk order, without descending into the containers themselves.
func findContainers(root string) []string {
	var dirs []string
	filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && strings.HasPrefix(d.Name(), "execution-") {
			dirs = append(dirs, p)
			return filepath.SkipDir
		}
		return nil
	})
	return dirs
}

// ContainerLogBytes returns the total size of the shared container
// logs. The figure is informational only; container logs are not
// process-specific and are never attributed to any id.
func ContainerLogBytes(logsDir string) int64 {
	return fsutil.GlobSizeBytes(filepath.Join(logsDir, "*.container.log"))
}

func (c *Collector) limit() int {
	if c.Workers < 1 {
		return 1
	}
	return c.Workers
}

func (c *Collector) logf(format string, args ...interface{}) {
	if c.Logf != nil {
		c.Logf(format, args...)
	}
}
