package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/drillboard/tactics/internal/config"
	"github.com/drillboard/tactics/internal/database"
	"github.com/drillboard/tactics/internal/geo"
	"github.com/drillboard/tactics/internal/model"
	"github.com/drillboard/tactics/pkg/core"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.GetSqliteDB(database.MemoryDSN(strings.ReplaceAll(t.Name(), "/", "_")))
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return db
}

func TestNew(t *testing.T) {
	b := New(config.DBConfig{Host: "localhost"}, geo.DefaultPitch, zerolog.Nop())
	require.NotNil(t, b)
	assert.Equal(t, DefaultFlushInterval, b.FlushInterval)
}

func TestInit_ConnectionRefused(t *testing.T) {
	b := New(config.DBConfig{
		Host:     "127.0.0.1",
		Port:     "1",
		Username: "postgres",
		Password: "postgres",
		Database: "drillboard",
	}, geo.DefaultPitch, zerolog.Nop())

	err := b.Init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to postgres")
	assert.NoError(t, b.Close())
}

func TestInitClose_InjectedDB(t *testing.T) {
	db := newTestDB(t)
	b := NewWithDB(db, geo.DefaultPitch, zerolog.Nop())

	require.NoError(t, b.Init())
	assert.True(t, db.Migrator().HasTable(&model.Timeline{}))
	require.NoError(t, b.Close())

	// the injected connection stays usable
	require.NoError(t, db.Exec("SELECT 1").Error)
}

func TestBackgroundWriter_DrainsQueues(t *testing.T) {
	db := newTestDB(t)
	b := NewWithDB(db, geo.DefaultPitch, zerolog.Nop())
	b.FlushInterval = 20 * time.Millisecond
	require.NoError(t, b.Init())
	defer b.Close()

	tl := &core.Timeline{
		Scene: "Sprint Intervals",
		Speed: core.SpeedFast,
		FPS:   1,
		Frames: []core.Frame{{
			Number:   0,
			Elements: []core.AnimatedElement{{Kind: core.Player(core.RolePrimary), Position: core.Center, DrawOrder: 4}},
		}},
	}
	require.NoError(t, b.RecordTimeline(tl))

	assert.Eventually(t, func() bool {
		var count int64
		db.Model(&model.Pose{}).Count(&count)
		return count == 1
	}, 2*time.Second, 10*time.Millisecond)
}
