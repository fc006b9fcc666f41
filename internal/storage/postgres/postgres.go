// Package postgres implements the storage backend on PostgreSQL through the
// GORM backend, with a background writer draining its queues.
package postgres

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/drillboard/tactics/internal/config"
	"github.com/drillboard/tactics/internal/database"
	"github.com/drillboard/tactics/internal/geo"
	"github.com/drillboard/tactics/internal/logging"
	gormstorage "github.com/drillboard/tactics/internal/storage/gorm"
)

// DefaultFlushInterval is how often queued rows are written.
const DefaultFlushInterval = 2 * time.Second

// Backend wraps the GORM backend with a Postgres connection.
type Backend struct {
	*gormstorage.Backend
	FlushInterval time.Duration

	cfg     config.DBConfig
	db      *gorm.DB
	manager *database.Manager
	pitch   geo.Pitch
	log     zerolog.Logger
}

// New creates a Postgres backend. The connection is opened by Init.
func New(cfg config.DBConfig, pitch geo.Pitch, log zerolog.Logger) *Backend {
	return &Backend{
		FlushInterval: DefaultFlushInterval,
		cfg:           cfg,
		manager:       database.NewManager(log),
		pitch:         pitch,
		log:           log,
	}
}

// NewWithDB creates a backend on an already open connection, which Close
// leaves open.
func NewWithDB(db *gorm.DB, pitch geo.Pitch, log zerolog.Logger) *Backend {
	b := New(config.DBConfig{}, pitch, log)
	b.db = db
	return b
}

// Init connects when no DB was injected, then initializes the GORM backend.
func (b *Backend) Init() error {
	db := b.db
	if db == nil {
		if err := b.manager.ConnectPostgres(b.cfg); err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		b.manager.SqlDB.SetMaxOpenConns(10)
		db = b.manager.DB
	}

	b.Backend = gormstorage.New(gormstorage.Dependencies{
		DB:            db,
		Pitch:         b.pitch,
		Logger:        logging.NewZerologAdapter(b.log),
		FlushInterval: b.FlushInterval,
	})
	return b.Backend.Init()
}

// Close writes queued rows and releases a connection opened by Init.
func (b *Backend) Close() error {
	if b.Backend == nil {
		return nil
	}
	if err := b.Backend.Close(); err != nil {
		return err
	}
	return b.manager.Close()
}
