package registry

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/atomlens/atomlens/internal/model"
	aerrors "github.com/atomlens/atomlens/pkg/errors"
	"github.com/atomlens/atomlens/pkg/fsutil"
	"github.com/atomlens/atomlens/pkg/scan"
)

// Field-name variant chains, most specific first. The component-scoped
// id and name are preferred; the generic aliases catch descriptors
// written by other tooling.
var (
	idFields     = []string{"ComponentId", "Id", "id", "componentId"}
	nameFields   = []string{"Name", "name", "DisplayName", "displayName", "processName"}
	typeFields   = []string{"Type", "type", "componentType"}
	folderFields = []string{"folderFullPath", "FolderName", "folderName", "folder"}
)

// Defaults used when the fallback chains exhaust.
const (
	UnknownName = "UNKNOWN_NAME"
	UnknownType = "unknown"
)

// Builder scans the definitions collection and produces a Registry.
type Builder struct {
	// Dir is the root of the definitions collection.
	Dir string

	// Workers bounds the parallel descriptor scans. Values below 1
	// mean sequential.
	Workers int

	// Logf receives diagnostic notes. Nil disables them.
	Logf func(format string, args ...interface{})
}

// Build walks the definitions collection and returns the populated
// registry. A missing collection root is fatal; individual malformed
// containers are skipped with a diagnostic note.
func (b *Builder) Build(ctx context.Context) (*Registry, error) {
	entries, err := os.ReadDir(b.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, aerrors.CollectionMissing("processes", b.Dir)
		}
		return nil, aerrors.Wrap(err, aerrors.CodeFilePermission, "cannot read processes directory")
	}

	// Only containers whose key has the 36-char identifier shape are
	// definitions; everything else in the tree is silently skipped.
	var keys []string
	for _, e := range entries {
		if e.IsDir() && isDefinitionKey(e.Name()) {
			keys = append(keys, e.Name())
		}
	}
	b.logf("Loading %d process directories...", len(keys))

	defs := make([]*model.ProcessDefinition, len(keys))
	var mu sync.Mutex
	var skipped int

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.limit())
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			def, err := b.loadOne(key)
			if err != nil {
				mu.Lock()
				skipped++
				mu.Unlock()
				b.logf("Warning: %v", err)
				return nil
			}
			defs[i] = def
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, aerrors.Wrap(err, aerrors.CodeContextCanceled, "definition scan interrupted")
	}

	// Registration happens sequentially in directory order so the
	// first-seen-wins mapping is deterministic regardless of worker
	// scheduling.
	reg := NewRegistry()
	for _, def := range defs {
		if def != nil {
			reg.Register(def)
		}
	}
	reg.SkippedNoDoc = skipped

	b.logf("Loaded %d process definitions", reg.Len())
	return reg, nil
}

// loadOne extracts one definition from its container.
func (b *Builder) loadOne(key string) (*model.ProcessDefinition, error) {
	container := filepath.Join(b.Dir, key)
	descriptor := filepath.Join(container, key+".xml")

	data, err := os.ReadFile(descriptor)
	if err != nil {
		return nil, aerrors.DescriptorMissing(key)
	}
	text := string(data)

	// Id: the embedded component-scoped id, then the generic chain,
	// then the container key itself.
	id, idEnd, hasEmbeddedID := scan.TagEnd(text, idFields[0])
	if id == "" {
		id = scan.Field(text, idFields[1:]...)
	}
	if id == "" {
		id = key
	}

	// Name: prefer the name appearing after the close of the embedded
	// id field, which guards against picking up an unrelated name
	// earlier in the document.
	var name string
	if hasEmbeddedID {
		name = scan.Field(text[idEnd:], nameFields...)
	}
	if name == "" {
		name = scan.Field(text, nameFields...)
	}
	if name == "" {
		name = scan.AttrIn(text, "FolderId", "name") // folder label as last resort
	}
	if name == "" {
		name = UnknownName
	}

	typ := scan.Field(text, typeFields...)
	if typ == "" {
		typ = UnknownType
	}

	folder := scan.AttrIn(text, "FolderId", "name")
	if folder == "" {
		folder = scan.Field(text, folderFields...)
	}

	return &model.ProcessDefinition{
		ID:                id,
		Name:              name,
		Type:              typ,
		Folder:            folder,
		DefinitionSizeKiB: fsutil.DirSizeKiB(container),
	}, nil
}

// isDefinitionKey reports whether a container key has the identifier
// shape: 36 characters with separators, i.e. a canonical UUID.
func isDefinitionKey(key string) bool {
	if len(key) != 36 {
		return false
	}
	_, err := uuid.Parse(key)
	return err == nil
}

func (b *Builder) limit() int {
	if b.Workers < 1 {
		return 1
	}
	return b.Workers
}

func (b *Builder) logf(format string, args ...interface{}) {
	if b.Logf != nil {
		b.Logf(format, args...)
	}
}
