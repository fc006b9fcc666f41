// internal/storage/factory.go
package storage

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rs/zerolog"

	"github.com/drillboard/tactics/internal/config"
	"github.com/drillboard/tactics/internal/geo"
	"github.com/drillboard/tactics/internal/storage/influx"
	"github.com/drillboard/tactics/internal/storage/memory"
	"github.com/drillboard/tactics/internal/storage/postgres"
	sqlitestorage "github.com/drillboard/tactics/internal/storage/sqlite"
	"github.com/drillboard/tactics/internal/storage/websocket"
)

// ErrUnknownBackend is returned for a storage type NewBackend does not know.
var ErrUnknownBackend = errors.New("unknown storage type")

// Types lists the storage types NewBackend accepts.
var Types = []string{"memory", "sqlite", "postgres", "influx", "websocket"}

// Dependencies carries what the concrete backends need besides their own
// storage config section.
type Dependencies struct {
	Logger       zerolog.Logger
	Pitch        geo.Pitch
	DB           config.DBConfig
	Influx       config.InfluxConfig
	WebsocketURL string
	Slog         *slog.Logger
}

// NewBackend creates a storage backend based on configuration
func NewBackend(cfg config.StorageConfig, deps Dependencies) (Backend, error) {
	switch cfg.Type {
	case "memory":
		return memory.New(cfg.Memory), nil
	case "sqlite":
		return sqlitestorage.New(sqlitestorage.Config{
			DumpInterval: cfg.SQLite.DumpInterval,
			DumpPath:     cfg.SQLite.DumpPath,
		}, deps.Pitch, deps.Logger), nil
	case "postgres":
		return postgres.New(deps.DB, deps.Pitch, deps.Logger), nil
	case "influx":
		return influx.New(deps.Influx, deps.Pitch, deps.Logger), nil
	case "websocket":
		log := deps.Slog
		if log == nil {
			log = slog.Default()
		}
		return websocket.New(websocket.Config{URL: deps.WebsocketURL}, log), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Type)
	}
}
