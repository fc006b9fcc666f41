// Package gormstorage implements the storage backend on top of GORM with
// internal queues. Rows are written on Flush, on Close, and optionally by a
// background writer.
package gormstorage

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"gorm.io/gorm"

	"github.com/drillboard/tactics/internal/geo"
	"github.com/drillboard/tactics/internal/logging"
	"github.com/drillboard/tactics/internal/model"
	"github.com/drillboard/tactics/internal/queue"
	"github.com/drillboard/tactics/pkg/core"
)

// DefaultPoseBatchSize is how many pose rows go into one INSERT.
const DefaultPoseBatchSize = 1000

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB            *gorm.DB
	Pitch         geo.Pitch
	Logger        logging.Logger
	PoseBatchSize int
	FlushInterval time.Duration // 0 disables the background writer
}

// pendingTimeline is a timeline header waiting for its ID, plus its frames.
type pendingTimeline struct {
	header model.Timeline
	frames []core.Frame
}

// Backend implements the storage backend using GORM with queue-based batch writes.
type Backend struct {
	deps      Dependencies
	scenes    *queue.Queue[model.Scene]
	timelines *queue.Queue[pendingTimeline]

	flushMu        sync.Mutex
	lastWriteNanos atomic.Int64
	stopChan       chan struct{}
	stopOnce       sync.Once
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	if deps.Logger == nil {
		deps.Logger = logging.Nop{}
	}
	if deps.PoseBatchSize <= 0 {
		deps.PoseBatchSize = DefaultPoseBatchSize
	}
	if deps.Pitch.Length == 0 || deps.Pitch.Width == 0 {
		deps.Pitch = geo.DefaultPitch
	}
	return &Backend{deps: deps}
}

// Init creates the queues, migrates the schema and starts the background
// writer. Without a DB the backend only queues.
func (b *Backend) Init() error {
	b.scenes = queue.New[model.Scene]()
	b.timelines = queue.New[pendingTimeline]()
	b.stopChan = make(chan struct{})

	if b.deps.DB == nil {
		b.deps.Logger.Info("No database configured, rows stay queued")
		return nil
	}

	b.deps.Logger.Info("Migrating schema")
	if err := b.deps.DB.AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	if b.deps.FlushInterval > 0 {
		go b.writerLoop()
	}
	return nil
}

// Close stops the background writer and writes what is still queued.
func (b *Backend) Close() error {
	b.stopOnce.Do(func() {
		if b.stopChan != nil {
			close(b.stopChan)
		}
	})
	return b.Flush()
}

// DB returns the underlying connection, nil in queue-only mode.
func (b *Backend) DB() *gorm.DB {
	return b.deps.DB
}

// PublishScene converts the scene and queues it.
func (b *Backend) PublishScene(name string, scene *core.TacticalScene) error {
	if scene == nil {
		return fmt.Errorf("scene %q is nil", name)
	}
	row, err := model.SceneFromCore(name, scene, b.deps.Pitch)
	if err != nil {
		return err
	}
	b.scenes.Push(row)
	return nil
}

// RecordTimeline queues the timeline header and its frames. Pose rows are
// built when the header has been assigned an ID.
func (b *Backend) RecordTimeline(tl *core.Timeline) error {
	if tl == nil {
		return errors.New("timeline is nil")
	}
	b.timelines.Push(pendingTimeline{
		header: model.TimelineFromCore(tl),
		frames: tl.Frames,
	})
	return nil
}

// Queued reports how many scenes and timelines wait to be written.
func (b *Backend) Queued() (scenes, timelines int) {
	return b.scenes.Len(), b.timelines.Len()
}

// LastWriteDuration is how long the last non-empty Flush took.
func (b *Backend) LastWriteDuration() time.Duration {
	return time.Duration(b.lastWriteNanos.Load())
}

// Flush drains both queues into the database. A failed item and everything
// behind it is pushed back for the next attempt.
func (b *Backend) Flush() error {
	if b.deps.DB == nil || b.scenes == nil {
		return nil
	}
	b.flushMu.Lock()
	defer b.flushMu.Unlock()

	scenes := b.scenes.GetAndEmpty()
	timelines := b.timelines.GetAndEmpty()
	if len(scenes) == 0 && len(timelines) == 0 {
		return nil
	}
	start := time.Now()

	for i := range scenes {
		if err := b.writeScene(&scenes[i]); err != nil {
			b.scenes.Push(scenes[i:]...)
			b.timelines.Push(timelines...)
			return fmt.Errorf("failed to write scene %s: %w", scenes[i].Name, err)
		}
	}
	for i := range timelines {
		if err := b.writeTimeline(&timelines[i]); err != nil {
			b.timelines.Push(timelines[i:]...)
			return fmt.Errorf("failed to write timeline of %s: %w", timelines[i].header.SceneName, err)
		}
	}

	elapsed := time.Since(start)
	b.lastWriteNanos.Store(int64(elapsed))
	b.deps.Logger.Debug("Flushed queues",
		"scenes", len(scenes), "timelines", len(timelines), "duration", elapsed.String())
	return nil
}

// writeScene replaces any scene with the same name, elements included.
func (b *Backend) writeScene(row *model.Scene) error {
	return b.deps.DB.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Unscoped().Model(&model.Scene{}).Where("name = ?", row.Name).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) > 0 {
			if err := tx.Where("scene_id IN ?", ids).Delete(&model.Element{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("id IN ?", ids).Delete(&model.Scene{}).Error; err != nil {
				return err
			}
		}
		return tx.Create(row).Error
	})
}

func (b *Backend) writeTimeline(p *pendingTimeline) error {
	return b.deps.DB.Transaction(func(tx *gorm.DB) error {
		header := p.header
		if err := tx.Create(&header).Error; err != nil {
			return err
		}

		batch := make([]model.Pose, 0, b.deps.PoseBatchSize)
		for _, frame := range p.frames {
			batch = append(batch, model.PosesFromFrame(header.ID, frame, b.deps.Pitch)...)
			if len(batch) >= b.deps.PoseBatchSize {
				if err := tx.CreateInBatches(batch, b.deps.PoseBatchSize).Error; err != nil {
					return err
				}
				batch = batch[:0]
			}
		}
		if len(batch) > 0 {
			return tx.CreateInBatches(batch, b.deps.PoseBatchSize).Error
		}
		return nil
	})
}

// writerLoop periodically drains the queues until Close.
func (b *Backend) writerLoop() {
	ticker := time.NewTicker(b.deps.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			if err := b.Flush(); err != nil {
				b.deps.Logger.Error("Background flush failed", "error", err)
			}
		}
	}
}
