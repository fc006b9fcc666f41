package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/drillboard/tactics/pkg/core"
)

// BoardVersion is the tactics board file format written by WriteBoard.
const BoardVersion = 1

// ErrInvalidBoard is returned for boards that parse but cannot become a scene.
var ErrInvalidBoard = errors.New("invalid tactics board")

// Board is a coach-authored scene stored as YAML.
type Board struct {
	Version       int            `json:"version" yaml:"version"`
	Name          string         `json:"name" yaml:"name"`
	LoopDuration  float64        `json:"loopDuration,omitempty" yaml:"loopDuration,omitempty"`
	ShowHalfField bool           `json:"showHalfField" yaml:"showHalfField"`
	Elements      []BoardElement `json:"elements" yaml:"elements"`
}

// BoardElement is one piece on a tactics board. Zero values are filled in by
// Scene: scale 1, primary role for players, full-size goals, looping linear paths.
type BoardElement struct {
	Kind     core.ElementType   `json:"kind" yaml:"kind"`
	Role     core.PlayerRole    `json:"role,omitempty" yaml:"role,omitempty"`
	GoalSize core.GoalSize      `json:"goalSize,omitempty" yaml:"goalSize,omitempty"`
	Position core.FieldPosition `json:"position" yaml:"position"`
	Rotation float64            `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	Scale    float64            `json:"scale,omitempty" yaml:"scale,omitempty"`
	Path     *core.MovementPath `json:"path,omitempty" yaml:"path,omitempty"`
}

// NewBoard captures scene as a board named name.
func NewBoard(name string, scene core.TacticalScene) *Board {
	b := &Board{
		Version:       BoardVersion,
		Name:          name,
		LoopDuration:  scene.LoopDuration,
		ShowHalfField: scene.ShowHalfField,
		Elements:      make([]BoardElement, len(scene.Elements)),
	}
	for i, e := range scene.Elements {
		b.Elements[i] = BoardElement{
			Kind:     e.Kind.Type,
			Role:     e.Kind.Role,
			GoalSize: e.Kind.GoalSize,
			Position: e.Position,
			Rotation: e.Rotation,
			Scale:    e.Scale,
			Path:     e.Path,
		}
	}
	return b
}

// Scene converts the board into a scene, validating every element.
func (b *Board) Scene() (core.TacticalScene, error) {
	if b.Version > BoardVersion {
		return core.TacticalScene{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidBoard, b.Version)
	}
	if len(b.Elements) == 0 {
		return core.TacticalScene{}, fmt.Errorf("%w: board %q has no elements", ErrInvalidBoard, b.Name)
	}

	scene := core.TacticalScene{
		Elements:      make([]core.FieldElement, 0, len(b.Elements)),
		LoopDuration:  b.LoopDuration,
		ShowHalfField: b.ShowHalfField,
	}
	for i, be := range b.Elements {
		el, err := be.element()
		if err != nil {
			return core.TacticalScene{}, fmt.Errorf("%w: element %d: %v", ErrInvalidBoard, i, err)
		}
		scene.Elements = append(scene.Elements, el)
	}

	if scene.LoopDuration <= 0 {
		scene.LoopDuration = scene.LongestPathDuration()
	}
	if scene.LoopDuration <= 0 {
		scene.LoopDuration = FallbackLoopDuration
	}
	return scene, nil
}

func (be BoardElement) element() (core.FieldElement, error) {
	if !be.Kind.Valid() {
		return core.FieldElement{}, fmt.Errorf("unknown kind %q", be.Kind)
	}

	kind := core.ElementKind{Type: be.Kind}
	switch be.Kind {
	case core.TypePlayer:
		kind.Role = be.Role
		if kind.Role == "" {
			kind.Role = core.RolePrimary
		}
	case core.TypeGoal:
		kind.GoalSize = be.GoalSize
		if kind.GoalSize == "" {
			kind.GoalSize = core.GoalFull
		}
	}

	el := core.Element(kind, be.Position).Rotated(be.Rotation)
	if be.Scale > 0 {
		el.Scale = be.Scale
	}

	if be.Path != nil {
		path := *be.Path
		if len(path.Waypoints) >= 2 && path.Duration <= 0 {
			return core.FieldElement{}, fmt.Errorf("path duration must be positive, got %v", path.Duration)
		}
		if path.Repeat == "" {
			path.Repeat = core.RepeatLoop
		}
		if path.Interpolation == "" {
			path.Interpolation = core.InterpolationLinear
		}
		el.Path = &path
		if len(path.Waypoints) > 0 {
			el.Position = path.Start()
		}
	}
	return el, nil
}

// LoadBoard reads a tactics board from a YAML file.
func LoadBoard(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read board: %w", err)
	}

	var board Board
	if err := yaml.Unmarshal(data, &board); err != nil {
		return nil, fmt.Errorf("failed to parse board %s: %w", path, err)
	}
	if board.Version == 0 {
		board.Version = BoardVersion
	}
	return &board, nil
}

// WriteBoard writes a tactics board to a YAML file.
func WriteBoard(board *Board, path string) error {
	data, err := yaml.Marshal(board)
	if err != nil {
		return fmt.Errorf("failed to encode board: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
