// internal/storage/memory/export.go
package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/drillboard/tactics/pkg/core"
)

// FormatVersion is written into every exported file.
const FormatVersion = 1

// CatalogFile is the name of the scene catalog inside the output directory.
const CatalogFile = "catalog.json"

// TimelineExport is the root JSON structure of a timeline file.
type TimelineExport struct {
	FormatVersion int       `json:"formatVersion"`
	ExportedAt    time.Time `json:"exportedAt"`
	core.Timeline
}

// CatalogExport lists every published scene.
type CatalogExport struct {
	FormatVersion int           `json:"formatVersion"`
	ExportedAt    time.Time     `json:"exportedAt"`
	Scenes        []SceneExport `json:"scenes"`
}

// SceneExport is one published scene.
type SceneExport struct {
	Name        string `json:"name"`
	MovingCount int    `json:"movingCount"`
	core.TacticalScene
}

var fileNameReplacer = strings.NewReplacer(" ", "_", ":", "_", "/", "_", "\\", "_")

// exportTimeline writes tl to <scene>_<speed>_<timestamp>.json[.gz].
func (b *Backend) exportTimeline(tl *core.Timeline) (string, error) {
	now := b.now()
	base := fmt.Sprintf("%s_%s_%s",
		fileNameReplacer.Replace(tl.Scene),
		tl.Speed,
		now.Format("20060102_150405"),
	)
	path := b.uniquePath(base)

	export := TimelineExport{
		FormatVersion: FormatVersion,
		ExportedAt:    now.UTC(),
		Timeline:      *tl,
	}
	if err := b.write(path, export); err != nil {
		return "", err
	}
	return path, nil
}

func (b *Backend) exportCatalog() (string, error) {
	names := make([]string, 0, len(b.scenes))
	for name := range b.scenes {
		names = append(names, name)
	}
	sort.Strings(names)

	export := CatalogExport{
		FormatVersion: FormatVersion,
		ExportedAt:    b.now().UTC(),
		Scenes:        make([]SceneExport, 0, len(names)),
	}
	for _, name := range names {
		scene := b.scenes[name]
		export.Scenes = append(export.Scenes, SceneExport{
			Name:          name,
			MovingCount:   scene.MovingElements(),
			TacticalScene: scene,
		})
	}

	if err := os.MkdirAll(b.outputDir(), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(b.outputDir(), CatalogFile)
	if err := writeJSON(path, export); err != nil {
		return "", err
	}
	return path, nil
}

func (b *Backend) outputDir() string {
	if b.cfg.OutputDir == "" {
		return "."
	}
	return b.cfg.OutputDir
}

// uniquePath appends a counter when two timelines of the same scene and speed
// land within one second.
func (b *Backend) uniquePath(base string) string {
	ext := ".json"
	if b.cfg.CompressOutput {
		ext = ".json.gz"
	}
	path := filepath.Join(b.outputDir(), base+ext)
	for i := 2; ; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(b.outputDir(), fmt.Sprintf("%s_%d%s", base, i, ext))
	}
}

func (b *Backend) write(path string, data any) error {
	if err := os.MkdirAll(b.outputDir(), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if b.cfg.CompressOutput {
		return writeGzipJSON(path, data)
	}
	return writeJSON(path, data)
}

func writeJSON(path string, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	return encoder.Encode(data)
}

func writeGzipJSON(path string, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	gzWriter := gzip.NewWriter(f)
	defer gzWriter.Close()

	encoder := json.NewEncoder(gzWriter)
	return encoder.Encode(data)
}

// ReadTimeline loads a timeline file written by the backend, compressed or not.
func ReadTimeline(path string) (*TimelineExport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read gzip %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	var export TimelineExport
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &export, nil
}
