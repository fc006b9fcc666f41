// internal/storage/storage.go
package storage

import "github.com/drillboard/tactics/pkg/core"

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// PublishScene stores a scene definition under its exercise name,
	// replacing any earlier definition with the same name.
	PublishScene(name string, scene *core.TacticalScene) error

	// RecordTimeline stores a sampled timeline.
	RecordTimeline(tl *core.Timeline) error
}

// Flusher is an optional interface for backends that buffer writes.
type Flusher interface {
	Flush() error
}

// Exporter is an optional interface for backends that produce files.
type Exporter interface {
	ExportedFiles() []string
}
