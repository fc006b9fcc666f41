// internal/storage/memory/memory.go
package memory

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/drillboard/tactics/internal/config"
	"github.com/drillboard/tactics/pkg/core"
)

// Backend keeps published scenes and recorded timelines in memory and writes
// them out as JSON on Flush and Close.
type Backend struct {
	cfg config.MemoryConfig

	scenes       map[string]core.TacticalScene
	catalogDirty bool
	pending      []*core.Timeline
	exported     []string

	now func() time.Time
	mu  sync.Mutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg:    cfg,
		scenes: make(map[string]core.TacticalScene),
		now:    time.Now,
	}
}

// Init creates the output directory.
func (b *Backend) Init() error {
	if b.cfg.OutputDir == "" {
		return nil
	}
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// Close writes out everything still held.
func (b *Backend) Close() error {
	return b.Flush()
}

// PublishScene stores a copy of scene under name.
func (b *Backend) PublishScene(name string, scene *core.TacticalScene) error {
	if scene == nil {
		return fmt.Errorf("scene %q is nil", name)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	cp := *scene
	cp.Elements = append([]core.FieldElement(nil), scene.Elements...)
	b.scenes[name] = cp
	b.catalogDirty = true
	return nil
}

// RecordTimeline holds tl until the next Flush.
func (b *Backend) RecordTimeline(tl *core.Timeline) error {
	if tl == nil {
		return fmt.Errorf("timeline is nil")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, tl)
	return nil
}

// Scene returns the published scene with the given name.
func (b *Backend) Scene(name string) (core.TacticalScene, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.scenes[name]
	return s, ok
}

// SceneNames returns the published scene names in order.
func (b *Backend) SceneNames() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, 0, len(b.scenes))
	for name := range b.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pending returns how many timelines wait for the next Flush.
func (b *Backend) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Flush writes each pending timeline to its own file and rewrites the scene
// catalog when scenes changed. Timelines that fail to write stay pending.
func (b *Backend) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.catalogDirty {
		path, err := b.exportCatalog()
		if err != nil {
			return err
		}
		b.catalogDirty = false
		b.exported = append(b.exported, path)
	}

	for len(b.pending) > 0 {
		path, err := b.exportTimeline(b.pending[0])
		if err != nil {
			return err
		}
		b.pending = b.pending[1:]
		b.exported = append(b.exported, path)
	}
	b.pending = nil
	return nil
}

// ExportedFiles returns every file written so far, oldest first.
func (b *Backend) ExportedFiles() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.exported...)
}
