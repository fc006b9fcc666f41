package streaming

import (
	"encoding/json"

	"github.com/drillboard/tactics/pkg/core"
)

// Message type constants matching the streaming protocol.
const (
	TypeScene         = "scene"
	TypeTimelineStart = "timeline_start"
	TypeFrame         = "frame"
	TypeTimelineEnd   = "timeline_end"
)

// Envelope wraps all messages sent over the WebSocket.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// AckMessage is the server's acknowledgement response.
type AckMessage struct {
	Type string `json:"type"` // always "ack"
	For  string `json:"for"`  // the message type being acknowledged
}

// ScenePayload publishes a full scene definition under its exercise name.
type ScenePayload struct {
	Name  string              `json:"name"`
	Scene *core.TacticalScene `json:"scene"`
}

// TimelineStartPayload announces a timeline before its frames are streamed.
type TimelineStartPayload struct {
	Scene         string              `json:"scene"`
	Speed         core.AnimationSpeed `json:"speed"`
	FPS           int                 `json:"fps"`
	Duration      float64             `json:"duration"`
	ShowHalfField bool                `json:"showHalfField"`
	FrameCount    int                 `json:"frameCount"`
}

// FramePayload is one frame of a streamed timeline.
type FramePayload struct {
	Scene string `json:"scene"`
	core.Frame
}

// TimelineEndPayload closes a streamed timeline.
type TimelineEndPayload struct {
	Scene  string `json:"scene"`
	Frames int    `json:"frames"`
}

// StartFor builds the announcement for tl.
func StartFor(tl *core.Timeline) TimelineStartPayload {
	return TimelineStartPayload{
		Scene:         tl.Scene,
		Speed:         tl.Speed,
		FPS:           tl.FPS,
		Duration:      tl.Duration,
		ShowHalfField: tl.ShowHalfField,
		FrameCount:    len(tl.Frames),
	}
}
