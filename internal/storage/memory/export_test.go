// internal/storage/memory/export_test.go
package memory

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drillboard/tactics/pkg/core"
)

func TestExportJSON(t *testing.T) {
	b := newTestBackend(t, false)
	require.NoError(t, b.RecordTimeline(sampleTimeline("Give and Go")))
	require.NoError(t, b.Flush())

	files := b.ExportedFiles()
	require.Len(t, files, 1)
	assert.Equal(t, "Give_and_Go_normal_20260314_093000.json", filepath.Base(files[0]))

	export, err := ReadTimeline(files[0])
	require.NoError(t, err)
	assert.Equal(t, FormatVersion, export.FormatVersion)
	assert.Equal(t, "Give and Go", export.Scene)
	require.Len(t, export.Frames, 2)
	assert.Equal(t, 0.6, export.Frames[1].Elements[0].Position.Y)
}

func TestExportGzipJSON(t *testing.T) {
	b := newTestBackend(t, true)
	require.NoError(t, b.RecordTimeline(sampleTimeline("Juggling")))
	require.NoError(t, b.Flush())

	files := b.ExportedFiles()
	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0], ".json.gz"))

	export, err := ReadTimeline(files[0])
	require.NoError(t, err)
	assert.Equal(t, 2, export.FPS)
	assert.Equal(t, core.SpeedNormal, export.Speed)
}

func TestExport_SameSecondGetsSuffix(t *testing.T) {
	b := newTestBackend(t, false)
	require.NoError(t, b.RecordTimeline(sampleTimeline("Juggling")))
	require.NoError(t, b.RecordTimeline(sampleTimeline("Juggling")))
	require.NoError(t, b.Flush())

	files := b.ExportedFiles()
	require.Len(t, files, 2)
	assert.NotEqual(t, files[0], files[1])
	assert.Equal(t, "Juggling_normal_20260314_093000_2.json", filepath.Base(files[1]))
}

func TestExportCatalog(t *testing.T) {
	b := newTestBackend(t, true)
	moving := core.Moving(core.Player(core.RolePrimary), core.NewPath(2, core.Pos(0.2, 0.5), core.Pos(0.8, 0.5)))
	require.NoError(t, b.PublishScene("B", &core.TacticalScene{Elements: []core.FieldElement{moving}, LoopDuration: 2}))
	require.NoError(t, b.PublishScene("A", &core.TacticalScene{LoopDuration: 3}))
	require.NoError(t, b.Flush())

	// the catalog is always plain JSON
	raw, err := os.ReadFile(filepath.Join(b.cfg.OutputDir, CatalogFile))
	require.NoError(t, err)

	var catalog CatalogExport
	require.NoError(t, json.Unmarshal(raw, &catalog))
	require.Len(t, catalog.Scenes, 2)
	assert.Equal(t, "A", catalog.Scenes[0].Name)
	assert.Equal(t, "B", catalog.Scenes[1].Name)
	assert.Equal(t, 1, catalog.Scenes[1].MovingCount)
	assert.Equal(t, 2.0, catalog.Scenes[1].LoopDuration)

	// unchanged scenes do not rewrite the catalog
	require.NoError(t, b.Flush())
	assert.Len(t, b.ExportedFiles(), 1)
}

func TestReadTimeline_Errors(t *testing.T) {
	_, err := ReadTimeline(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json.gz")
	require.NoError(t, os.WriteFile(bad, []byte("not gzip"), 0644))
	_, err = ReadTimeline(bad)
	assert.Error(t, err)
}
