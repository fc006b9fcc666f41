package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drillboard/tactics/internal/geo"
	"github.com/drillboard/tactics/pkg/core"
)

func TestTableNames(t *testing.T) {
	assert.Equal(t, "scenes", (&Scene{}).TableName())
	assert.Equal(t, "elements", (&Element{}).TableName())
	assert.Equal(t, "timelines", (&Timeline{}).TableName())
	assert.Equal(t, "poses", (&Pose{}).TableName())
	assert.Len(t, DatabaseModels, 4)
}

func testScene() *core.TacticalScene {
	run := core.NewPath(4, core.Pos(0, 0), core.Pos(1, 0)).WithInterpolation(core.InterpolationEased)
	return &core.TacticalScene{
		Elements: []core.FieldElement{
			core.Element(core.Cone(), core.Center).Rotated(0.5),
			core.Moving(core.Player(core.RoleDefender), run),
		},
		LoopDuration:  4,
		ShowHalfField: true,
	}
}

func TestSceneFromCore(t *testing.T) {
	row, err := SceneFromCore("Overlap", testScene(), geo.DefaultPitch)
	require.NoError(t, err)

	assert.Equal(t, "Overlap", row.Name)
	assert.Equal(t, 4.0, row.LoopDuration)
	assert.True(t, row.ShowHalfField)
	assert.Equal(t, 1, row.MovingCount)
	require.Len(t, row.Elements, 2)

	var def core.TacticalScene
	require.NoError(t, json.Unmarshal(row.Definition, &def))
	assert.Equal(t, *testScene(), def)

	cone := row.Elements[0]
	assert.Equal(t, "cone", cone.Type)
	assert.Empty(t, cone.Color)
	assert.Equal(t, 0.5, cone.Rotation)
	assert.True(t, cone.Path.IsEmpty())
	assert.Nil(t, cone.Waypoints)

	runner := row.Elements[1]
	assert.Equal(t, 1, runner.Index)
	assert.Equal(t, "player", runner.Type)
	assert.Equal(t, "defender", runner.Role)
	assert.Equal(t, core.RoleDefender.Color(), runner.Color)
	assert.Equal(t, "loop", runner.Repeat)
	assert.Equal(t, "eased", runner.Interpolation)
	assert.InDelta(t, 68.0, runner.PathMeters, 1e-9)
	assert.Equal(t, 2, runner.Path.Coordinates().Length())

	var waypoints []core.FieldPosition
	require.NoError(t, json.Unmarshal(runner.Waypoints, &waypoints))
	assert.Equal(t, []core.FieldPosition{core.Pos(0, 0), core.Pos(1, 0)}, waypoints)
}

func TestTimelineAndPoses(t *testing.T) {
	tl := &core.Timeline{
		Scene: "Overlap",
		Speed: core.SpeedFast,
		FPS:   10,
		Frames: []core.Frame{{
			Number: 3,
			Time:   0.3,
			Elements: []core.AnimatedElement{
				{Index: 1, Kind: core.Player(core.RolePrimary), Position: core.Pos(0.2, 0.4), Direction: 1.5, DrawOrder: 4},
				{Index: 0, Kind: core.Ball(), Position: core.Pos(0.2, 0.43), DrawOrder: 5},
			},
		}},
	}

	header := TimelineFromCore(tl)
	assert.Equal(t, "Overlap", header.SceneName)
	assert.Equal(t, "fast", header.Speed)
	assert.Equal(t, 1, header.FrameCount)

	poses := PosesFromFrame(9, tl.Frames[0], geo.DefaultPitch)
	require.Len(t, poses, 2)
	assert.Equal(t, uint(9), poses[0].TimelineID)
	assert.Equal(t, 3, poses[0].Frame)
	assert.Equal(t, "primary", poses[0].Role)
	assert.Equal(t, 1.5, poses[0].Direction)
	assert.Equal(t, "ball", poses[1].Type)
	assert.Equal(t, 5, poses[1].DrawOrder)
}
