// Package registry builds the canonical name-to-id registry of known
// processes from the definitions collection.
package registry

import (
	"sync"

	"github.com/atomlens/atomlens/internal/model"
	"github.com/atomlens/atomlens/pkg/scan"
)

// Registry maps normalized display names to process ids and holds the
// loaded definitions. It is populated by a Builder before any
// correlation happens and is read-only afterwards.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]*model.ProcessDefinition
	byName map[string]string // normalized name -> id, first-seen-wins

	// Diagnostics
	Loaded       int // definitions loaded
	SkippedNoDoc int // containers without their primary descriptor
	NameDupes    int // loaded definitions whose name was already mapped
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[string]*model.ProcessDefinition),
		byName: make(map[string]string),
	}
}

// Register adds a definition. The name mapping is first-seen-wins: a
// later definition whose normalized name collides is still loaded and
// addressable by id, but never overrides the existing mapping.
func (r *Registry) Register(def *model.ProcessDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[def.ID]; !exists {
		r.byID[def.ID] = def
	}
	r.Loaded++

	key := scan.Normalize(def.Name)
	if key == "" {
		return
	}
	if _, exists := r.byName[key]; exists {
		r.NameDupes++
		return
	}
	r.byName[key] = def.ID
}

// Lookup resolves a normalized name to a registered id.
func (r *Registry) Lookup(normalizedName string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[normalizedName]
	return id, ok
}

// Definition returns the definition for an id, if one exists.
func (r *Registry) Definition(id string) (*model.ProcessDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.byID[id]
	return def, ok
}

// Len returns the number of loaded definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
