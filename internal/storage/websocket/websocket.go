package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/drillboard/tactics/pkg/core"
	"github.com/drillboard/tactics/pkg/streaming"
)

// Config holds WebSocket backend configuration.
type Config struct {
	URL    string
	Secret string
}

// Backend streams scenes and timelines over WebSocket to a live viewer.
// Scene and timeline boundaries are acknowledged by the server; frames are
// fire-and-forget.
type Backend struct {
	conn *connection
	cfg  Config
}

// New creates a new WebSocket storage backend.
func New(cfg Config, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{
		conn: newConnection(logger),
		cfg:  cfg,
	}
}

// Init connects to the WebSocket server.
func (b *Backend) Init() error {
	return b.conn.dial(b.cfg.URL, b.cfg.Secret)
}

// Flush waits until queued frames have been handed to the socket.
func (b *Backend) Flush() error {
	return b.conn.drain(writeWait)
}

// Close drains queued frames and disconnects from the WebSocket server.
func (b *Backend) Close() error {
	drainErr := b.conn.drain(writeWait)
	if err := b.conn.close(); err != nil {
		return err
	}
	return drainErr
}

// marshalEnvelope builds a JSON-encoded Envelope from a message type and payload.
func marshalEnvelope(msgType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", msgType, err)
	}
	env := streaming.Envelope{Type: msgType, Payload: raw}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal %s envelope: %w", msgType, err)
	}
	return data, nil
}

// sendEnvelope marshals the payload into an Envelope and pushes it
// to the write loop (fire-and-forget).
func (b *Backend) sendEnvelope(msgType string, payload any) error {
	data, err := marshalEnvelope(msgType, payload)
	if err != nil {
		return err
	}
	return b.conn.send(data)
}

// sendEnvelopeAndWait marshals the payload and waits for a server ack.
func (b *Backend) sendEnvelopeAndWait(msgType string, payload any) error {
	data, err := marshalEnvelope(msgType, payload)
	if err != nil {
		return err
	}
	return b.conn.sendAndWait(data, msgType, ackTimeout)
}

// PublishScene sends the scene and waits for the server ack. The message is
// kept for replay after a reconnect.
func (b *Backend) PublishScene(name string, scene *core.TacticalScene) error {
	if scene == nil {
		return fmt.Errorf("scene %q is nil", name)
	}
	data, err := marshalEnvelope(streaming.TypeScene, streaming.ScenePayload{Name: name, Scene: scene})
	if err != nil {
		return err
	}
	b.conn.remember(name, data)
	return b.conn.sendAndWait(data, streaming.TypeScene, ackTimeout)
}

// RecordTimeline streams timeline_start, every frame and timeline_end.
func (b *Backend) RecordTimeline(tl *core.Timeline) error {
	if tl == nil {
		return fmt.Errorf("timeline is nil")
	}
	if err := b.sendEnvelopeAndWait(streaming.TypeTimelineStart, streaming.StartFor(tl)); err != nil {
		return err
	}
	for _, frame := range tl.Frames {
		if err := b.sendEnvelope(streaming.TypeFrame, streaming.FramePayload{Scene: tl.Scene, Frame: frame}); err != nil {
			return fmt.Errorf("frame %d of %s: %w", frame.Number, tl.Scene, err)
		}
	}
	return b.sendEnvelopeAndWait(streaming.TypeTimelineEnd, streaming.TimelineEndPayload{
		Scene:  tl.Scene,
		Frames: len(tl.Frames),
	})
}
