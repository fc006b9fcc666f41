package animation

import (
	"math"

	"github.com/drillboard/tactics/pkg/core"
)

const (
	// DefaultBallOffset keeps the ball just below the player's feet.
	DefaultBallOffset = 0.03
	// DefaultPassArc is the apex height of a lofted pass.
	DefaultPassArc = 0.02
)

// BallFollowing places the ball offset below the player.
func BallFollowing(player core.FieldPosition, offset float64) core.FieldPosition {
	return core.FieldPosition{X: player.X, Y: player.Y + offset}
}

// BallPassPosition returns the ball position along a pass from start to end.
// The ball decelerates towards the receiver and rises by at most arcHeight
// halfway through.
func BallPassPosition(start, end core.FieldPosition, progress, arcHeight float64) core.FieldPosition {
	eased := Ease(core.InterpolationSharp, progress)
	p := start.Lerp(end, eased)
	p.Y -= math.Sin(progress*math.Pi) * arcHeight
	return p
}
