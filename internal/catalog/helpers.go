package catalog

import (
	"github.com/drillboard/tactics/internal/animation"
	"github.com/drillboard/tactics/pkg/core"
)

// ballOffset keeps a dribbled ball at the player's feet.
const ballOffset = animation.DefaultBallOffset

func p(x, y float64) core.FieldPosition { return core.Pos(x, y) }

func path(duration float64, repeat core.RepeatBehavior, mode core.InterpolationMode, waypoints ...core.FieldPosition) *core.MovementPath {
	return &core.MovementPath{
		Waypoints:     waypoints,
		Duration:      duration,
		Repeat:        repeat,
		Interpolation: mode,
	}
}

func loop(duration float64, mode core.InterpolationMode, waypoints ...core.FieldPosition) *core.MovementPath {
	return path(duration, core.RepeatLoop, mode, waypoints...)
}

func pingPong(duration float64, mode core.InterpolationMode, waypoints ...core.FieldPosition) *core.MovementPath {
	return path(duration, core.RepeatPingPong, mode, waypoints...)
}

func player(role core.PlayerRole, route *core.MovementPath) core.FieldElement {
	return core.Moving(core.Player(role), route)
}

func standing(role core.PlayerRole, at core.FieldPosition) core.FieldElement {
	return core.Element(core.Player(role), at)
}

// dribbled is a ball that stays at the feet of whoever runs route.
func dribbled(route *core.MovementPath) core.FieldElement {
	return core.Moving(core.Ball(), route.Offset(0, ballOffset))
}

func ball(route *core.MovementPath) core.FieldElement {
	return core.Moving(core.Ball(), route)
}

func placed(kind core.ElementKind, at ...core.FieldPosition) []core.FieldElement {
	out := make([]core.FieldElement, len(at))
	for i, pos := range at {
		out[i] = core.Element(kind, pos)
	}
	return out
}

func cones(at ...core.FieldPosition) []core.FieldElement { return placed(core.Cone(), at...) }

// goalTop is the full-size goal used by every half-field scene.
func goalTop() core.FieldElement {
	return core.Element(core.Goal(core.GoalFull), p(0.5, 0.04))
}

const (
	linear = core.InterpolationLinear
	eased  = core.InterpolationEased
	sharp  = core.InterpolationSharp
)
