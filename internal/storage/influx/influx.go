// Package influx implements the storage backend on InfluxDB. Timeline poses
// become points in one bucket. When the server cannot be reached the points
// go to a gzipped line protocol backup file instead.
package influx

import (
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"
	"github.com/rs/zerolog"

	"github.com/drillboard/tactics/internal/config"
	"github.com/drillboard/tactics/internal/geo"
	"github.com/drillboard/tactics/pkg/core"
)

const (
	// PoseMeasurement holds one point per element per frame.
	PoseMeasurement = "element_pose"
	// SceneMeasurement holds one point per element of a published scene.
	SceneMeasurement = "scene_element"

	pingTimeout      = 5 * time.Second
	retentionSeconds = 60 * 60 * 24 * 90 // 90 days
)

// Backend writes scenes and timelines to InfluxDB or its backup file.
type Backend struct {
	cfg   config.InfluxConfig
	pitch geo.Pitch
	log   zerolog.Logger

	client       influxdb2.Client
	writer       influxdb2_api.WriteAPI
	isValid      bool
	backupFile   *os.File
	backupWriter *gzip.Writer
	backupPath   string

	now func() time.Time
	mu  sync.Mutex
}

// New creates an InfluxDB backend. Init connects.
func New(cfg config.InfluxConfig, pitch geo.Pitch, log zerolog.Logger) *Backend {
	return &Backend{
		cfg:   cfg,
		pitch: pitch,
		log:   log,
		now:   time.Now,
	}
}

// ServerURL is the address the client connects to.
func (b *Backend) ServerURL() string {
	return fmt.Sprintf("%s://%s:%s", b.cfg.Protocol, b.cfg.Host, b.cfg.Port)
}

// Init connects to InfluxDB and makes sure the org and bucket exist. An
// unreachable server switches the backend to its backup file.
func (b *Backend) Init() error {
	b.client = influxdb2.NewClientWithOptions(
		b.ServerURL(),
		b.cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(2500).
			SetFlushInterval(1000),
	)

	// validate client connection health
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	running, err := b.client.Ping(ctx)
	cancel()

	if err != nil || !running {
		b.isValid = false
		b.log.Info().Str("url", b.ServerURL()).
			Msg("Failed to reach InfluxDB, writing to backup file")
		return b.openBackup()
	}

	b.isValid = true
	if err := b.setupOrganizationAndBucket(); err != nil {
		return err
	}
	b.createWriter()
	b.log.Info().Str("bucket", b.cfg.Bucket).Msg("InfluxDB client initialized")
	return nil
}

func (b *Backend) openBackup() error {
	dir := b.cfg.BackupDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating backup directory: %w", err)
	}
	b.backupPath = filepath.Join(dir, fmt.Sprintf("%s_%s.lp.gz", b.cfg.Bucket, b.now().Format("20060102_150405")))
	file, err := os.OpenFile(b.backupPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error creating backup file: %w", err)
	}
	b.backupFile = file
	b.backupWriter = gzip.NewWriter(file)
	return nil
}

func (b *Backend) setupOrganizationAndBucket() error {
	ctx := context.Background()
	orgName := b.cfg.Org

	// ensure org exists
	org, err := b.client.OrganizationsAPI().FindOrganizationByName(ctx, orgName)
	if err != nil {
		b.log.Info().Str("org", orgName).Msg("Organization not found, creating")
		org, err = b.client.OrganizationsAPI().CreateOrganizationWithName(ctx, orgName)
		if err != nil {
			b.log.Error().Err(err).Str("org", orgName).Msg("Error creating organization")
			return err
		}
	}

	// ensure bucket exists with 90 day retention
	if _, err = b.client.BucketsAPI().FindBucketByName(ctx, b.cfg.Bucket); err != nil {
		b.log.Info().Str("bucket", b.cfg.Bucket).Msg("Bucket not found, creating")

		rule := domain.RetentionRuleTypeExpire
		_, err = b.client.BucketsAPI().CreateBucketWithName(ctx, org, b.cfg.Bucket, domain.RetentionRule{
			Type:         &rule,
			EverySeconds: retentionSeconds,
		})
		if err != nil {
			b.log.Error().Err(err).Str("bucket", b.cfg.Bucket).Msg("Error creating bucket")
			return err
		}
	}
	return nil
}

func (b *Backend) createWriter() {
	b.writer = b.client.WriteAPI(b.cfg.Org, b.cfg.Bucket)

	errorsCh := b.writer.Errors()
	go func() {
		for writeErr := range errorsCh {
			b.log.Error().Err(writeErr).Str("bucket", b.cfg.Bucket).
				Msg("Error sending data to InfluxDB")
		}
	}()
}

// Valid reports whether points go to the server rather than the backup file.
func (b *Backend) Valid() bool {
	return b.isValid
}

// PublishScene writes one point per element of the scene.
func (b *Backend) PublishScene(name string, scene *core.TacticalScene) error {
	if scene == nil {
		return fmt.Errorf("scene %q is nil", name)
	}
	ts := b.now()
	for i, el := range scene.Elements {
		if err := b.writePoint(ScenePoint(name, i, el, b.pitch, ts)); err != nil {
			return err
		}
	}
	return nil
}

// RecordTimeline writes one point per element per frame. Frame times are
// offsets from the moment the timeline is recorded.
func (b *Backend) RecordTimeline(tl *core.Timeline) error {
	if tl == nil {
		return fmt.Errorf("timeline is nil")
	}
	base := b.now()
	for _, frame := range tl.Frames {
		ts := base.Add(time.Duration(frame.Time * float64(time.Second)))
		for _, el := range frame.Elements {
			if err := b.writePoint(PosePoint(tl, frame, el, b.pitch, ts)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Backend) writePoint(point *influxdb2_write.Point) error {
	if b.isValid {
		b.writer.WritePoint(point)
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.backupWriter == nil {
		return fmt.Errorf("influxDB client not initialized and backup writer not available")
	}
	lineProtocol := influxdb2_write.PointToLineProtocol(point, time.Nanosecond)
	lineProtocol = strings.TrimSuffix(lineProtocol, "\n") + "\n"
	if _, err := b.backupWriter.Write([]byte(lineProtocol)); err != nil {
		return fmt.Errorf("error writing to InfluxDB backup file: %w", err)
	}
	return nil
}

// Flush pushes buffered points to the server or the backup file.
func (b *Backend) Flush() error {
	if b.isValid {
		b.writer.Flush()
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.backupWriter == nil {
		return nil
	}
	return b.backupWriter.Flush()
}

// Close flushes and releases the client and backup file.
func (b *Backend) Close() error {
	if err := b.Flush(); err != nil {
		return err
	}
	if b.client != nil {
		b.client.Close()
		b.client = nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.backupWriter != nil {
		if err := b.backupWriter.Close(); err != nil {
			return err
		}
		b.backupWriter = nil
	}
	if b.backupFile != nil {
		err := b.backupFile.Close()
		b.backupFile = nil
		return err
	}
	return nil
}

// ExportedFiles returns the backup file when one is in use.
func (b *Backend) ExportedFiles() []string {
	if b.backupPath == "" {
		return nil
	}
	return []string{b.backupPath}
}

// PosePoint builds the point for one element of one frame.
func PosePoint(tl *core.Timeline, frame core.Frame, el core.AnimatedElement, pitch geo.Pitch, ts time.Time) *influxdb2_write.Point {
	mx, my := pitch.ToMeters(el.Position)
	tags := elementTags(tl.Scene, el.Index, el.Kind)
	tags["speed"] = string(tl.Speed)
	return influxdb2_write.NewPoint(
		PoseMeasurement,
		tags,
		map[string]interface{}{
			"frame":      frame.Number,
			"x":          el.Position.X,
			"y":          el.Position.Y,
			"meters_x":   mx,
			"meters_y":   my,
			"direction":  el.Direction,
			"draw_order": el.DrawOrder,
		},
		ts,
	)
}

// ScenePoint builds the point for the element at index i of a scene.
func ScenePoint(name string, i int, el core.FieldElement, pitch geo.Pitch, ts time.Time) *influxdb2_write.Point {
	fields := map[string]interface{}{
		"x":        el.Position.X,
		"y":        el.Position.Y,
		"rotation": el.Rotation,
		"scale":    el.Scale,
		"moving":   !el.Path.IsStatic(),
	}
	if !el.Path.IsStatic() {
		fields["duration"] = el.Path.Duration
		fields["path_meters"] = pitch.PathMeters(el.Path)
	}
	return influxdb2_write.NewPoint(SceneMeasurement, elementTags(name, i, el.Kind), fields, ts)
}

// elementTags leaves out empty values, which line protocol cannot carry.
func elementTags(scene string, index int, kind core.ElementKind) map[string]string {
	tags := map[string]string{
		"scene":   scene,
		"type":    string(kind.Type),
		"element": strconv.Itoa(index),
	}
	if kind.Role != "" {
		tags["role"] = string(kind.Role)
	}
	if kind.GoalSize != "" {
		tags["goal_size"] = string(kind.GoalSize)
	}
	return tags
}
