// pkg/core/position.go
package core

import (
	"fmt"
	"math"
)

// FieldPosition is a location on the field in normalized coordinates.
// (0,0) is the top-left corner and (1,1) the bottom-right. Values slightly
// outside [0,1] are legal; nothing clamps them.
type FieldPosition struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Center is the middle of the field. Degenerate paths without waypoints sit here.
var Center = FieldPosition{X: 0.5, Y: 0.5}

// Pos is shorthand for building a FieldPosition.
func Pos(x, y float64) FieldPosition {
	return FieldPosition{X: x, Y: y}
}

// Lerp returns p + (to - p) * t componentwise. t is not clamped, values outside
// [0,1] extrapolate along the line.
func (p FieldPosition) Lerp(to FieldPosition, t float64) FieldPosition {
	return FieldPosition{
		X: p.X + (to.X-p.X)*t,
		Y: p.Y + (to.Y-p.Y)*t,
	}
}

// DistanceTo returns the Euclidean distance between p and to.
func (p FieldPosition) DistanceTo(to FieldPosition) float64 {
	return math.Hypot(to.X-p.X, to.Y-p.Y)
}

// AngleTo returns the angle in radians from p to to, atan2(dy, dx).
func (p FieldPosition) AngleTo(to FieldPosition) float64 {
	return math.Atan2(to.Y-p.Y, to.X-p.X)
}

// Offset returns p shifted by (dx, dy).
func (p FieldPosition) Offset(dx, dy float64) FieldPosition {
	return FieldPosition{X: p.X + dx, Y: p.Y + dy}
}

func (p FieldPosition) String() string {
	return fmt.Sprintf("(%.3f,%.3f)", p.X, p.Y)
}
