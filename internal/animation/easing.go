package animation

import (
	"math"

	"github.com/drillboard/tactics/pkg/core"
)

// Progress maps elapsed time onto [0,1] according to the repeat behavior.
// duration must be positive; callers guard that.
func Progress(behavior core.RepeatBehavior, elapsed, duration float64) float64 {
	switch behavior {
	case core.RepeatOnce:
		return math.Min(elapsed/duration, 1.0)
	case core.RepeatPingPong:
		// triangle wave 0 -> 1 -> 0 with period 2*duration
		fullCycle := math.Mod(elapsed, 2*duration)
		if fullCycle > duration {
			return 1 - (fullCycle-duration)/duration
		}
		return fullCycle / duration
	default:
		return math.Mod(elapsed, duration) / duration
	}
}

// Ease applies the in-segment curve to t.
func Ease(mode core.InterpolationMode, t float64) float64 {
	switch mode {
	case core.InterpolationEased:
		return easeInOutSine(t)
	case core.InterpolationSharp:
		return easeOutQuad(t)
	default:
		return t
	}
}

// easeInOutSine has zero velocity at both segment ends.
func easeInOutSine(t float64) float64 {
	return (1 - math.Cos(math.Pi*t)) / 2
}

// easeOutQuad starts fast and decelerates into the waypoint.
func easeOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}
