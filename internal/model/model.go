// Package model defines the core data structures for atomlens.
package model

// ProcessDefinition describes one known process loaded from the
// definitions collection. Instances are immutable after the registry
// pass completes.
type ProcessDefinition struct {
	// ID is the canonical process identifier, unique within a run.
	ID string

	// Name is the display name as extracted from the descriptor.
	// "UNKNOWN_NAME" when no name field could be found.
	Name string

	// Type is a free-form classification string, "unknown" if absent.
	Type string

	// Folder is a human-readable folder label, may be empty.
	Folder string

	// DefinitionSizeKiB is the recursive size of the definition's
	// storage container.
	DefinitionSizeKiB int64
}

// ExecutionEvent is one qualifying execution artifact from the
// execution-history collection.
type ExecutionEvent struct {
	// ExecutionID is derived from the artifact's container name.
	ExecutionID string

	// RawProcessID is a best-effort identifier parsed from the
	// execution log. May be empty.
	RawProcessID string

	// ProcessName is parsed from the first "Executing Process <name>"
	// log message. Events without one are never created.
	ProcessName string

	// SizeKiB is the recursive size of the execution container.
	SizeKiB int64
}

// ProcessStats is the aggregation target, one per resolved id.
type ProcessStats struct {
	ID     string
	Name   string
	Type   string
	Folder string

	// ExecutionCount is the number of distinct (id, executionID)
	// pairs folded in.
	ExecutionCount int64

	// ExecutionSizeSumKiB and MaxExecutionSizeKiB are the running sum
	// and max over event sizes for this id.
	ExecutionSizeSumKiB int64
	MaxExecutionSizeKiB int64

	// DefinitionSizeKiB is copied from the matched definition,
	// 0 for synthetic ids.
	DefinitionSizeKiB int64

	// Derived figures, filled in by Finalize.
	TotalSizeKiB   int64
	AverageSizeKiB float64
	MaxSizeKiB     int64
}

// Finalize computes the derived footprint figures.
func (s *ProcessStats) Finalize() {
	s.TotalSizeKiB = s.ExecutionSizeSumKiB + s.DefinitionSizeKiB
	if s.ExecutionCount > 0 {
		s.AverageSizeKiB = float64(s.TotalSizeKiB) / float64(s.ExecutionCount)
	} else {
		s.AverageSizeKiB = 0
	}
	s.MaxSizeKiB = s.MaxExecutionSizeKiB
	if s.DefinitionSizeKiB > s.MaxSizeKiB {
		s.MaxSizeKiB = s.DefinitionSizeKiB
	}
}

// TotalSizeBytes returns the total footprint in bytes for export.
func (s *ProcessStats) TotalSizeBytes() int64 {
	return s.TotalSizeKiB * 1024
}

// TotalSizeMB converts the total footprint to megabytes.
func (s *ProcessStats) TotalSizeMB() float64 {
	return float64(s.TotalSizeKiB) / 1024
}

// AverageSizeMB converts the average footprint to megabytes.
func (s *ProcessStats) AverageSizeMB() float64 {
	return s.AverageSizeKiB / 1024
}

// MaxSizeMB converts the max footprint to megabytes.
func (s *ProcessStats) MaxSizeMB() float64 {
	return float64(s.MaxSizeKiB) / 1024
}

// DefinitionSizeMB converts the definition size to megabytes.
func (s *ProcessStats) DefinitionSizeMB() float64 {
	return float64(s.DefinitionSizeKiB) / 1024
}

// ExecutionSizeMB converts the execution-log sum to megabytes.
func (s *ProcessStats) ExecutionSizeMB() float64 {
	return float64(s.ExecutionSizeSumKiB) / 1024
}
