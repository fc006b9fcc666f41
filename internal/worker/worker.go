package worker

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"golang.org/x/sync/errgroup"

	"github.com/drillboard/tactics/internal/catalog"
	"github.com/drillboard/tactics/internal/logging"
	"github.com/drillboard/tactics/internal/storage"
	"github.com/drillboard/tactics/internal/timeline"
	"github.com/drillboard/tactics/pkg/core"
)

// MeterName scopes the worker's instruments.
const MeterName = "github.com/drillboard/tactics/internal/worker"

// Dependencies holds all dependencies for the worker manager
type Dependencies struct {
	Logger  logging.Logger
	Meter   metric.Meter
	Workers int // concurrent jobs, NumCPU when <= 0
	FPS     int
	Loops   int
}

// Job is one scene to sample at one speed.
type Job struct {
	Name  string
	Scene core.TacticalScene
	Speed core.AnimationSpeed
}

// Result summarizes a recorded timeline.
type Result struct {
	Name     string
	Speed    core.AnimationSpeed
	Frames   int
	Duration float64
}

// Manager renders scenes into timelines on a bounded pool and hands them to
// the storage backend.
type Manager struct {
	deps    Dependencies
	backend storage.Backend

	scenesExported metric.Int64Counter
	framesRendered metric.Int64Counter
}

// NewManager creates a new worker manager
func NewManager(deps Dependencies, backend storage.Backend) (*Manager, error) {
	if deps.Logger == nil {
		deps.Logger = logging.Nop{}
	}
	if deps.Meter == nil {
		deps.Meter = noop.Meter{}
	}
	if deps.Workers <= 0 {
		deps.Workers = runtime.NumCPU()
	}

	scenes, err := deps.Meter.Int64Counter("drillboard.scenes.exported",
		metric.WithDescription("Timelines recorded on the storage backend"))
	if err != nil {
		return nil, fmt.Errorf("failed to create scenes counter: %w", err)
	}
	frames, err := deps.Meter.Int64Counter("drillboard.frames.rendered",
		metric.WithDescription("Frames sampled from scenes"),
		metric.WithUnit("{frame}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create frames counter: %w", err)
	}

	return &Manager{
		deps:           deps,
		backend:        backend,
		scenesExported: scenes,
		framesRendered: frames,
	}, nil
}

// JobsFor builds catalog jobs for names at speed. Names the catalog does not
// know get the fallback scene.
func (m *Manager) JobsFor(names []string, speed core.AnimationSpeed) []Job {
	jobs := make([]Job, 0, len(names))
	for _, name := range names {
		if !catalog.Has(name) {
			m.deps.Logger.Info("No scene for exercise, using fallback", "name", name)
		}
		jobs = append(jobs, Job{Name: name, Scene: catalog.BuildScene(name), Speed: speed})
	}
	return jobs
}

// Export samples the named catalog scenes at speed and records them.
func (m *Manager) Export(ctx context.Context, names []string, speed core.AnimationSpeed) ([]Result, error) {
	return m.Run(ctx, m.JobsFor(names, speed))
}

// Run samples every job concurrently and records each timeline. The first
// failure cancels jobs not yet started and is returned. Results keep job order.
func (m *Manager) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	start := time.Now()
	results := make([]Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.deps.Workers)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tl := timeline.Build(job.Name, job.Scene, job.Speed, m.deps.FPS, m.deps.Loops)
			attrs := metric.WithAttributes(
				attribute.String("scene", job.Name),
				attribute.String("speed", string(job.Speed)),
			)
			m.framesRendered.Add(ctx, int64(len(tl.Frames)), attrs)

			if err := m.backend.RecordTimeline(tl); err != nil {
				return fmt.Errorf("failed to record %s: %w", job.Name, err)
			}
			m.scenesExported.Add(ctx, 1, attrs)

			results[i] = Result{Name: job.Name, Speed: job.Speed, Frames: len(tl.Frames), Duration: tl.Duration}
			m.deps.Logger.Debug("Recorded timeline", "name", job.Name, "frames", len(tl.Frames))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		m.deps.Logger.Error("Export failed", "error", err)
		return nil, err
	}

	if err := m.flush(); err != nil {
		return nil, err
	}
	summary := []any{"timelines", len(jobs), "duration", time.Since(start).String()}
	if d := m.LastWriteDuration(); d > 0 {
		summary = append(summary, "lastWrite", d.String())
	}
	m.deps.Logger.Info("Export complete", summary...)
	return results, nil
}

// Publish stores the scene definitions of every name in order.
func (m *Manager) Publish(ctx context.Context, names []string) error {
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		scene := catalog.BuildScene(name)
		if err := m.backend.PublishScene(name, &scene); err != nil {
			return fmt.Errorf("failed to publish %s: %w", name, err)
		}
	}
	if err := m.flush(); err != nil {
		return err
	}
	m.deps.Logger.Info("Published scenes", "count", len(names))
	return nil
}

func (m *Manager) flush() error {
	if f, ok := m.backend.(storage.Flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("failed to flush backend: %w", err)
		}
	}
	return nil
}

// WriteDurationProvider is an optional interface that backends can implement
// to expose their last write duration for monitoring.
type WriteDurationProvider interface {
	LastWriteDuration() time.Duration
}

// LastWriteDuration returns the duration of the backend's last write cycle.
// Returns 0 if the backend doesn't support this metric.
func (m *Manager) LastWriteDuration() time.Duration {
	if p, ok := m.backend.(WriteDurationProvider); ok {
		return p.LastWriteDuration()
	}
	return 0
}
