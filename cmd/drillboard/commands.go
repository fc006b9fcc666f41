package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/drillboard/tactics/internal/animation"
	"github.com/drillboard/tactics/internal/api"
	"github.com/drillboard/tactics/internal/catalog"
	"github.com/drillboard/tactics/internal/config"
	"github.com/drillboard/tactics/internal/logging"
	"github.com/drillboard/tactics/internal/storage"
	"github.com/drillboard/tactics/internal/storage/memory"
	"github.com/drillboard/tactics/internal/worker"
)

func (a *app) list() error {
	for _, name := range catalog.Names() {
		fmt.Fprintln(a.stdout, name)
	}
	return nil
}

// scene prints the named scene as a tactics board, so yaml output can be fed
// back into the board command.
func (a *app) scene(name string) error {
	a.warnFallback(name)
	board := catalog.NewBoard(name, catalog.BuildScene(name))

	var (
		data []byte
		err  error
	)
	switch a.format {
	case "json":
		data, err = json.MarshalIndent(board, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case "yaml", "yml":
		data, err = yaml.Marshal(board)
	default:
		return fmt.Errorf("%w: unknown format %q", errUsage, a.format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}
	_, err = a.stdout.Write(data)
	return err
}

// pose prints every element of the named scene at --time, in draw order.
func (a *app) pose(name string) error {
	a.warnFallback(name)
	speed := config.GetRenderConfig().Speed
	elements := animation.AnimatedElements(catalog.BuildScene(name), a.at, speed)
	animation.SortByDrawOrder(elements)

	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tX\tY\tDIRECTION\tDRAW")
	for _, el := range elements {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%d\n",
			el.Kind, el.Position.X, el.Position.Y, el.Direction, el.DrawOrder)
	}
	return w.Flush()
}

func (a *app) export(ctx context.Context, names []string) error {
	if a.all {
		names = append(catalog.Names(), names...)
	}
	if len(names) == 0 {
		return fmt.Errorf("%w: export needs NAME or --all", errUsage)
	}
	return a.withWorker(ctx, func(m *worker.Manager) error {
		results, err := m.Export(ctx, names, config.GetRenderConfig().Speed)
		if err != nil {
			return err
		}
		a.printResults(results)
		return nil
	})
}

func (a *app) publish(ctx context.Context) error {
	names := catalog.Names()
	return a.withWorker(ctx, func(m *worker.Manager) error {
		if err := m.Publish(ctx, names); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "published %d scenes\n", len(names))
		return nil
	})
}

// board exports the timeline of a coach-authored YAML board.
func (a *app) board(ctx context.Context, path string) error {
	board, err := catalog.LoadBoard(path)
	if err != nil {
		return err
	}
	scene, err := board.Scene()
	if err != nil {
		return err
	}
	name := board.Name
	if name == "" {
		name = path
	}
	job := worker.Job{Name: name, Scene: scene, Speed: config.GetRenderConfig().Speed}

	return a.withWorker(ctx, func(m *worker.Manager) error {
		results, err := m.Run(ctx, []worker.Job{job})
		if err != nil {
			return err
		}
		a.printResults(results)
		return nil
	})
}

func (a *app) saveBoard(name, path string) error {
	a.warnFallback(name)
	if err := catalog.WriteBoard(catalog.NewBoard(name, catalog.BuildScene(name)), path); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "wrote %s\n", path)
	return nil
}

// withWorker opens the configured backend, runs fn against a worker manager
// and closes the backend again, listing any files it wrote. With --upload
// the written timelines go to the web frontend afterwards.
func (a *app) withWorker(ctx context.Context, fn func(*worker.Manager) error) error {
	cfg := config.GetStorageConfig()
	backend, err := storage.NewBackend(cfg, storage.Dependencies{
		Logger:       a.zlog,
		Pitch:        config.GetPitch(),
		DB:           config.GetDBConfig(),
		Influx:       config.GetInfluxConfig(),
		WebsocketURL: viper.GetString("websocket.url"),
		Slog:         a.log,
	})
	if err != nil {
		return err
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("failed to initialize %s storage: %w", cfg.Type, err)
	}
	a.log.Info("Storage initialized", "type", cfg.Type)

	render := config.GetRenderConfig()
	manager, err := worker.NewManager(worker.Dependencies{
		Logger:  a.log,
		Meter:   a.otel.Meter(worker.MeterName),
		Workers: config.GetWorkers(),
		FPS:     render.FPS,
		Loops:   render.Loops,
	}, backend)
	if err != nil {
		_ = backend.Close()
		return err
	}

	if err := fn(manager); err != nil {
		if closeErr := backend.Close(); closeErr != nil {
			a.log.Error("Failed to close storage", "error", closeErr)
		}
		return err
	}
	if err := backend.Close(); err != nil {
		return fmt.Errorf("failed to close %s storage: %w", cfg.Type, err)
	}
	var files []string
	if exp, ok := backend.(storage.Exporter); ok {
		files = exp.ExportedFiles()
		for _, f := range files {
			fmt.Fprintln(a.stdout, f)
		}
	}
	if a.upload {
		return a.uploadTimelines(ctx, files)
	}
	return nil
}

// uploadTimelines sends every exported timeline file to the web frontend.
// Other files, such as scene catalogs and database dumps, stay local.
func (a *app) uploadTimelines(ctx context.Context, files []string) error {
	cfg := config.GetAPIConfig()
	client := api.New(cfg.ServerURL, cfg.APIKey)
	if err := client.Healthcheck(ctx); err != nil {
		return fmt.Errorf("web frontend unavailable: %w", err)
	}

	uploaded := 0
	for _, f := range files {
		if !isTimelineFile(f) {
			continue
		}
		exp, err := memory.ReadTimeline(f)
		if err != nil {
			return err
		}
		if err := client.Upload(ctx, f, api.MetadataFor(&exp.Timeline, cfg.Tag)); err != nil {
			return fmt.Errorf("failed to upload %s: %w", f, err)
		}
		a.log.InfoContext(logging.WithScene(ctx, exp.Scene), "Uploaded timeline", "file", f, "server", cfg.ServerURL)
		fmt.Fprintf(a.stdout, "uploaded %s\n", filepath.Base(f))
		uploaded++
	}
	if uploaded == 0 {
		a.log.Warn("Nothing to upload", "storage", config.GetStorageConfig().Type)
	}
	return nil
}

func isTimelineFile(path string) bool {
	base := filepath.Base(path)
	if base == memory.CatalogFile {
		return false
	}
	return strings.HasSuffix(base, ".json") || strings.HasSuffix(base, ".json.gz")
}

func (a *app) printResults(results []worker.Result) {
	for _, r := range results {
		fmt.Fprintf(a.stdout, "%s\t%s\t%d frames\t%.2fs\n", r.Name, r.Speed, r.Frames, r.Duration)
	}
}

func (a *app) warnFallback(name string) {
	if !catalog.Has(name) {
		a.log.Warn("No scene for exercise, using fallback", "name", name)
	}
}
