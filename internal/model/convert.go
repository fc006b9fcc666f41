package model

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/drillboard/tactics/internal/geo"
	"github.com/drillboard/tactics/pkg/core"
)

// SceneFromCore converts a scene into rows ready for insertion. Geometry is
// projected through pitch.
func SceneFromCore(name string, scene *core.TacticalScene, pitch geo.Pitch) (Scene, error) {
	def, err := json.Marshal(scene)
	if err != nil {
		return Scene{}, fmt.Errorf("failed to encode scene %s: %w", name, err)
	}

	row := Scene{
		Name:          name,
		LoopDuration:  scene.LoopDuration,
		ShowHalfField: scene.ShowHalfField,
		MovingCount:   scene.MovingElements(),
		Definition:    datatypes.JSON(def),
		Elements:      make([]Element, 0, len(scene.Elements)),
	}
	for i, el := range scene.Elements {
		e, err := ElementFromCore(i, el, pitch)
		if err != nil {
			return Scene{}, fmt.Errorf("scene %s: %w", name, err)
		}
		row.Elements = append(row.Elements, e)
	}
	return row, nil
}

// ElementFromCore converts the element at index i.
func ElementFromCore(i int, el core.FieldElement, pitch geo.Pitch) (Element, error) {
	row := Element{
		Index:    i,
		Type:     string(el.Kind.Type),
		Role:     string(el.Kind.Role),
		GoalSize: string(el.Kind.GoalSize),
		X:        el.Position.X,
		Y:        el.Position.Y,
		Position: pitch.ToMercator(el.Position),
		Rotation: el.Rotation,
		Scale:    el.Scale,
	}
	if el.Kind.IsPlayer() {
		row.Color = el.Kind.Role.Color()
	}
	if el.Path == nil {
		return row, nil
	}

	waypoints, err := json.Marshal(el.Path.Waypoints)
	if err != nil {
		return Element{}, fmt.Errorf("failed to encode waypoints of element %d: %w", i, err)
	}
	row.Duration = el.Path.Duration
	row.Repeat = string(el.Path.Repeat)
	row.Interpolation = string(el.Path.Interpolation)
	row.Waypoints = datatypes.JSON(waypoints)
	row.Path = pitch.MercatorPath(el.Path)
	row.PathMeters = pitch.PathMeters(el.Path)
	return row, nil
}

// TimelineFromCore converts a timeline header. Poses are produced separately
// by PosesFromFrame once the header has an ID.
func TimelineFromCore(tl *core.Timeline) Timeline {
	return Timeline{
		SceneName:     tl.Scene,
		Speed:         string(tl.Speed),
		FPS:           tl.FPS,
		Duration:      tl.Duration,
		FrameCount:    len(tl.Frames),
		ShowHalfField: tl.ShowHalfField,
	}
}

// PosesFromFrame converts every element of a frame into pose rows.
func PosesFromFrame(timelineID uint, frame core.Frame, pitch geo.Pitch) []Pose {
	poses := make([]Pose, len(frame.Elements))
	for i, el := range frame.Elements {
		poses[i] = Pose{
			TimelineID:   timelineID,
			Frame:        frame.Number,
			Time:         frame.Time,
			ElementIndex: el.Index,
			Type:         string(el.Kind.Type),
			Role:         string(el.Kind.Role),
			X:            el.Position.X,
			Y:            el.Position.Y,
			Position:     pitch.ToMercator(el.Position),
			Direction:    el.Direction,
			DrawOrder:    el.DrawOrder,
		}
	}
	return poses
}
