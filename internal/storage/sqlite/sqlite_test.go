package sqlitestorage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drillboard/tactics/internal/database"
	"github.com/drillboard/tactics/internal/geo"
	"github.com/drillboard/tactics/internal/model"
	"github.com/drillboard/tactics/pkg/core"
)

func testConfig(t *testing.T, interval time.Duration) Config {
	return Config{
		Name:         strings.ReplaceAll(t.Name(), "/", "_"),
		DumpInterval: interval,
		DumpPath:     filepath.Join(t.TempDir(), "dump.db"),
	}
}

func scene() *core.TacticalScene {
	return &core.TacticalScene{
		Elements: []core.FieldElement{
			core.Moving(core.Ball(), core.NewPath(1, core.Pos(0.3, 0.3), core.Pos(0.7, 0.7))),
		},
		LoopDuration: 1,
	}
}

func TestInitClose_WritesFinalDump(t *testing.T) {
	cfg := testConfig(t, 0)
	b := New(cfg, geo.DefaultPitch, zerolog.Nop())
	require.NoError(t, b.Init())

	require.NoError(t, b.PublishScene("Juggling", scene()))
	require.NoError(t, b.Close())

	_, err := os.Stat(cfg.DumpPath)
	require.NoError(t, err)
	assert.Equal(t, []string{cfg.DumpPath}, b.ExportedFiles())

	db, err := database.GetSqliteDB(cfg.DumpPath)
	require.NoError(t, err)
	var count int64
	require.NoError(t, db.Model(&model.Scene{}).Where("name = ?", "Juggling").Count(&count).Error)
	assert.Equal(t, int64(1), count)
	sqlDB, _ := db.DB()
	_ = sqlDB.Close()
}

func TestDumpLoop(t *testing.T) {
	cfg := testConfig(t, 20*time.Millisecond)
	b := New(cfg, geo.DefaultPitch, zerolog.Nop())
	require.NoError(t, b.Init())
	defer b.Close()

	require.NoError(t, b.PublishScene("Juggling", scene()))
	assert.Eventually(t, func() bool {
		_, err := os.Stat(cfg.DumpPath)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestClose_WithoutInit(t *testing.T) {
	b := New(Config{}, geo.DefaultPitch, zerolog.Nop())
	assert.NoError(t, b.Close())
	assert.Nil(t, b.ExportedFiles())
	assert.Equal(t, DefaultName, b.cfg.Name)
}
