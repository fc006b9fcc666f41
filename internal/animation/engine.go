// Package animation evaluates tactical scenes over time. Every function is a
// pure function of its arguments: no state survives between calls, so the
// render loop may call them from any goroutine.
package animation

import (
	"math"

	"github.com/drillboard/tactics/pkg/core"
)

// DirectionProbe is the forward-difference step used to derive facing.
const DirectionProbe = 0.05

// CurrentPosition returns where element is after elapsed seconds at the given speed.
func CurrentPosition(element core.FieldElement, elapsed float64, speed core.AnimationSpeed) core.FieldPosition {
	if element.Path == nil {
		return element.Position
	}
	return PositionOnPath(*element.Path, elapsed, element.Path.Duration*speed.Multiplier())
}

// PositionOnPath evaluates path at elapsed seconds when one traversal takes
// effectiveDuration seconds.
func PositionOnPath(path core.MovementPath, elapsed, effectiveDuration float64) core.FieldPosition {
	if len(path.Waypoints) < 2 {
		return path.Start()
	}
	if effectiveDuration <= 0 || math.IsNaN(effectiveDuration) {
		return path.Waypoints[0]
	}

	progress := Progress(path.Repeat, elapsed, effectiveDuration)

	segments := len(path.Waypoints) - 1
	scaled := progress * float64(segments)
	index := int(math.Floor(scaled))
	if index > segments-1 {
		// progress == 1 lands on the end of the final segment
		index = segments - 1
	}
	if index < 0 {
		index = 0
	}
	segmentProgress := scaled - float64(index)

	from := path.Waypoints[index]
	to := path.Waypoints[index+1]
	return from.Lerp(to, Ease(path.Interpolation, segmentProgress))
}

// Direction returns the facing angle of element in radians. Static elements,
// and paths whose effective duration is not positive, keep their rotation.
// Moving elements face from their position now to their
// position DirectionProbe seconds later; the estimate is unstable where the
// path reverses.
func Direction(element core.FieldElement, elapsed float64, speed core.AnimationSpeed) float64 {
	if element.Path.IsStatic() {
		return element.Rotation
	}
	duration := element.Path.Duration * speed.Multiplier()
	if duration <= 0 || math.IsNaN(duration) {
		return element.Rotation
	}
	now := PositionOnPath(*element.Path, elapsed, duration)
	next := PositionOnPath(*element.Path, elapsed+DirectionProbe, duration)
	return now.AngleTo(next)
}

// SceneTime wraps elapsed onto the scene's loop period at the given speed.
func SceneTime(scene core.TacticalScene, elapsed float64, speed core.AnimationSpeed) float64 {
	period := scene.LoopDuration * speed.Multiplier()
	if period <= 0 || math.IsNaN(period) {
		return elapsed
	}
	return math.Mod(elapsed, period)
}

// AnimatedElements poses every element of scene after elapsed seconds. All
// elements share the scene's loop-relative time so that paths of different
// lengths reset together. The result keeps scene order; see SortByDrawOrder.
func AnimatedElements(scene core.TacticalScene, elapsed float64, speed core.AnimationSpeed) []core.AnimatedElement {
	t := SceneTime(scene, elapsed, speed)
	out := make([]core.AnimatedElement, len(scene.Elements))
	for i, el := range scene.Elements {
		out[i] = core.AnimatedElement{
			Index:     i,
			Kind:      el.Kind,
			Position:  CurrentPosition(el, t, speed),
			Direction: Direction(el, t, speed),
			DrawOrder: DrawOrder(el.Kind),
			Scale:     el.Scale,
		}
	}
	return out
}
