// Package stats folds correlated events into per-process footprint
// statistics and produces the report orderings.
package stats

import (
	"sort"

	"github.com/atomlens/atomlens/internal/model"
	"github.com/atomlens/atomlens/pkg/correlate"
	"github.com/atomlens/atomlens/pkg/registry"
)

// Aggregate folds deduplicated events into one ProcessStats per
// resolved id and applies the combination formulas. Iteration is
// event-driven, so only ids with at least one execution are emitted:
// the report targets active log generators, not dormant definitions.
func Aggregate(events []correlate.Event, reg *registry.Registry) []*model.ProcessStats {
	byID := make(map[string]*model.ProcessStats)
	var order []string

	for _, ce := range events {
		s, ok := byID[ce.ID]
		if !ok {
			s = newStats(ce, reg)
			byID[ce.ID] = s
			order = append(order, ce.ID)
		}

		s.ExecutionCount++
		s.ExecutionSizeSumKiB += ce.Event.SizeKiB
		if ce.Event.SizeKiB > s.MaxExecutionSizeKiB {
			s.MaxExecutionSizeKiB = ce.Event.SizeKiB
		}
	}

	// Emission keeps first-event order; the rankings below are stable
	// sorts over it, so ties preserve this input order.
	out := make([]*model.ProcessStats, 0, len(order))
	for _, id := range order {
		s := byID[id]
		s.Finalize()
		out = append(out, s)
	}
	return out
}

// newStats seeds a stats row from the definition when one backs the
// id, or from the event itself for synthetic ids.
func newStats(ce correlate.Event, reg *registry.Registry) *model.ProcessStats {
	if def, ok := reg.Definition(ce.ID); ok {
		return &model.ProcessStats{
			ID:                def.ID,
			Name:              def.Name,
			Type:              def.Type,
			Folder:            def.Folder,
			DefinitionSizeKiB: def.DefinitionSizeKiB,
		}
	}
	return &model.ProcessStats{
		ID:   ce.ID,
		Name: ce.Event.ProcessName,
		Type: registry.UnknownType,
	}
}

// ByTotal returns a copy sorted descending by total footprint.
func ByTotal(list []*model.ProcessStats) []*model.ProcessStats {
	out := make([]*model.ProcessStats, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalSizeKiB > out[j].TotalSizeKiB
	})
	return out
}

// ByAverage returns a copy sorted descending by average footprint.
func ByAverage(list []*model.ProcessStats) []*model.ProcessStats {
	out := make([]*model.ProcessStats, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AverageSizeKiB > out[j].AverageSizeKiB
	})
	return out
}
