// Package timeline samples tactical scenes at a fixed frame rate.
package timeline

import (
	"math"

	"github.com/drillboard/tactics/internal/animation"
	"github.com/drillboard/tactics/pkg/core"
)

const (
	DefaultFPS   = 30
	DefaultLoops = 1
)

// Duration is how many seconds loops passes of scene last at speed. Scenes
// without a loop duration fall back to their longest path.
func Duration(scene core.TacticalScene, speed core.AnimationSpeed, loops int) float64 {
	if loops <= 0 {
		loops = DefaultLoops
	}
	period := scene.LoopDuration
	if period <= 0 {
		period = scene.LongestPathDuration()
	}
	return float64(loops) * period * speed.Multiplier()
}

// Build samples scene from t=0 through the end of the last loop, both ends
// included. Every frame lists its elements in draw order.
func Build(name string, scene core.TacticalScene, speed core.AnimationSpeed, fps, loops int) *core.Timeline {
	if fps <= 0 {
		fps = DefaultFPS
	}
	duration := Duration(scene, speed, loops)
	frames := int(math.Round(duration*float64(fps))) + 1

	tl := &core.Timeline{
		Scene:         name,
		Speed:         speed,
		FPS:           fps,
		Duration:      duration,
		ShowHalfField: scene.ShowHalfField,
		Frames:        make([]core.Frame, 0, frames),
	}
	for i := 0; i < frames; i++ {
		at := float64(i) / float64(fps)
		tl.Frames = append(tl.Frames, Sample(scene, at, speed, i))
	}
	return tl
}

// Sample evaluates a single frame at elapsed seconds.
func Sample(scene core.TacticalScene, elapsed float64, speed core.AnimationSpeed, number int) core.Frame {
	els := animation.AnimatedElements(scene, elapsed, speed)
	animation.SortByDrawOrder(els)
	return core.Frame{Number: number, Time: elapsed, Elements: els}
}
