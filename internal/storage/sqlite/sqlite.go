// Package sqlitestorage implements the storage backend using an in-memory
// SQLite database with periodic disk dumps via VACUUM INTO.
// It wraps the GORM backend via composition. The only SQLite-specific concerns
// are creating the in-memory DB and the periodic disk dump.
package sqlitestorage

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/drillboard/tactics/internal/database"
	"github.com/drillboard/tactics/internal/geo"
	"github.com/drillboard/tactics/internal/logging"
	gormstorage "github.com/drillboard/tactics/internal/storage/gorm"
)

// DefaultName names the in-memory database when Config.Name is empty.
const DefaultName = "drillboard"

// Config holds configuration for the SQLite storage backend.
type Config struct {
	Name         string
	DumpInterval time.Duration
	DumpPath     string // Path for periodic VACUUM INTO dumps
}

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstorage.Backend
	manager  *database.Manager
	cfg      Config
	pitch    geo.Pitch
	log      zerolog.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	loopDone chan struct{}
}

// New creates a new SQLite storage backend. The database is opened by Init.
func New(cfg Config, pitch geo.Pitch, log zerolog.Logger) *Backend {
	if cfg.Name == "" {
		cfg.Name = DefaultName
	}
	return &Backend{
		manager:  database.NewManager(log),
		cfg:      cfg,
		pitch:    pitch,
		log:      log,
		stopChan: make(chan struct{}),
	}
}

// Init opens the in-memory DB, initializes the embedded GORM backend and
// starts the dump goroutine.
func (b *Backend) Init() error {
	if err := b.manager.ConnectSQLite(database.MemoryDSN(b.cfg.Name)); err != nil {
		return fmt.Errorf("failed to create in-memory SQLite DB: %w", err)
	}
	b.manager.SqliteFilePath = b.cfg.DumpPath

	b.Backend = gormstorage.New(gormstorage.Dependencies{
		DB:     b.manager.DB,
		Pitch:  b.pitch,
		Logger: logging.NewZerologAdapter(b.log),
	})
	if err := b.Backend.Init(); err != nil {
		return err
	}

	if b.cfg.DumpPath != "" && b.cfg.DumpInterval > 0 {
		b.loopDone = make(chan struct{})
		go b.dumpLoop()
	}

	return nil
}

// Close stops the dump goroutine, writes queued rows, takes a last dump and
// releases the database.
func (b *Backend) Close() error {
	closed := false
	b.stopOnce.Do(func() {
		close(b.stopChan)
		closed = true
	})
	if !closed || b.Backend == nil {
		return nil
	}
	if b.loopDone != nil {
		<-b.loopDone
	}
	if err := b.Backend.Close(); err != nil {
		return err
	}
	if b.cfg.DumpPath != "" {
		if err := b.manager.DumpMemoryToDisk(); err != nil {
			return err
		}
	}
	return b.manager.Close()
}

// Dump flushes queued rows and writes a snapshot to the dump path.
func (b *Backend) Dump() error {
	if err := b.Flush(); err != nil {
		return err
	}
	return b.manager.DumpMemoryToDisk()
}

// ExportedFiles returns the dump path once a dump exists.
func (b *Backend) ExportedFiles() []string {
	if b.cfg.DumpPath == "" {
		return nil
	}
	return []string{b.cfg.DumpPath}
}

// dumpLoop periodically dumps the in-memory SQLite database to disk via VACUUM INTO.
// VACUUM INTO creates a point-in-time snapshot, so no pause mechanism is needed.
func (b *Backend) dumpLoop() {
	defer close(b.loopDone)
	ticker := time.NewTicker(b.cfg.DumpInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			if err := b.Dump(); err != nil {
				b.log.Error().Err(err).Msg("Error dumping to disk")
			}
		}
	}
}
