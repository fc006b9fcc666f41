// internal/storage/memory/memory_test.go
package memory

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drillboard/tactics/internal/config"
	"github.com/drillboard/tactics/pkg/core"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestBackend(t *testing.T, compress bool) *Backend {
	t.Helper()
	b := New(config.MemoryConfig{OutputDir: t.TempDir(), CompressOutput: compress})
	b.now = func() time.Time { return fixedNow }
	require.NoError(t, b.Init())
	return b
}

func sampleTimeline(scene string) *core.Timeline {
	return &core.Timeline{
		Scene:    scene,
		Speed:    core.SpeedNormal,
		FPS:      2,
		Duration: 1,
		Frames: []core.Frame{
			{Number: 0, Time: 0, Elements: []core.AnimatedElement{{Index: 0, Kind: core.Ball(), Position: core.Center, DrawOrder: 5, Scale: 1}}},
			{Number: 1, Time: 0.5, Elements: []core.AnimatedElement{{Index: 0, Kind: core.Ball(), Position: core.Pos(0.5, 0.6), DrawOrder: 5, Scale: 1}}},
		},
	}
}

func TestNew(t *testing.T) {
	b := New(config.MemoryConfig{OutputDir: "/tmp/test", CompressOutput: true})

	if b == nil {
		t.Fatal("New returned nil")
	}
	if b.cfg.OutputDir != "/tmp/test" {
		t.Errorf("expected OutputDir=/tmp/test, got %s", b.cfg.OutputDir)
	}
	if b.scenes == nil {
		t.Error("scenes map not initialized")
	}
}

func TestInitCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	b := New(config.MemoryConfig{OutputDir: dir})

	require.NoError(t, b.Init())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPublishScene(t *testing.T) {
	b := newTestBackend(t, false)
	scene := &core.TacticalScene{
		Elements:     []core.FieldElement{core.Element(core.Cone(), core.Center)},
		LoopDuration: 4,
	}

	require.NoError(t, b.PublishScene("Cones", scene))
	scene.Elements[0].Position = core.Pos(0, 0)

	got, ok := b.Scene("Cones")
	require.True(t, ok)
	assert.Equal(t, core.Center, got.Elements[0].Position, "stored scene must not alias the caller's slice")
	assert.Equal(t, []string{"Cones"}, b.SceneNames())

	assert.Error(t, b.PublishScene("Nil", nil))
}

func TestPublishScene_ReplacesByName(t *testing.T) {
	b := newTestBackend(t, false)
	require.NoError(t, b.PublishScene("A", &core.TacticalScene{LoopDuration: 1}))
	require.NoError(t, b.PublishScene("A", &core.TacticalScene{LoopDuration: 2}))

	got, _ := b.Scene("A")
	assert.Equal(t, 2.0, got.LoopDuration)
	assert.Len(t, b.SceneNames(), 1)
}

func TestRecordTimeline_HeldUntilFlush(t *testing.T) {
	b := newTestBackend(t, false)
	require.NoError(t, b.RecordTimeline(sampleTimeline("Juggling")))
	assert.Equal(t, 1, b.Pending())
	assert.Empty(t, b.ExportedFiles())

	require.NoError(t, b.Flush())
	assert.Zero(t, b.Pending())
	require.Len(t, b.ExportedFiles(), 1)

	assert.Error(t, b.RecordTimeline(nil))
}

func TestCloseFlushes(t *testing.T) {
	b := newTestBackend(t, false)
	require.NoError(t, b.PublishScene("Juggling", &core.TacticalScene{LoopDuration: 1.2}))
	require.NoError(t, b.RecordTimeline(sampleTimeline("Juggling")))

	require.NoError(t, b.Close())
	files := b.ExportedFiles()
	require.Len(t, files, 2)
	assert.Equal(t, CatalogFile, filepath.Base(files[0]))
}

func TestConcurrentAccess(t *testing.T) {
	b := newTestBackend(t, false)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = b.PublishScene("Scene", &core.TacticalScene{LoopDuration: float64(i + 1)})
			_ = b.RecordTimeline(sampleTimeline("Scene"))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, b.Pending())
	assert.Len(t, b.SceneNames(), 1)
}
