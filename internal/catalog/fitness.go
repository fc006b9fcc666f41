package catalog

import (
	"math"

	"github.com/drillboard/tactics/pkg/core"
)

func ladderFootwork() core.TacticalScene {
	steps := loop(4, linear, p(0.5, 0.8), p(0.5, 0.2))
	return core.TacticalScene{
		Elements: []core.FieldElement{
			core.Element(core.Ladder(), core.Center).Rotated(math.Pi / 2).Scaled(1.5),
			player(core.RolePrimary, steps),
		},
		LoopDuration: 4,
	}
}

func hurdleJumps() core.TacticalScene {
	run := loop(3.5, linear, p(0.5, 0.85), p(0.5, 0.15))
	els := placed(core.Hurdle(), p(0.5, 0.7), p(0.5, 0.55), p(0.5, 0.4), p(0.5, 0.25))
	els = append(els, player(core.RolePrimary, run))
	return core.TacticalScene{Elements: els, LoopDuration: 3.5}
}

func sprintIntervals() core.TacticalScene {
	sprint := pingPong(2.5, sharp, p(0.15, 0.5), p(0.85, 0.5))
	els := cones(p(0.15, 0.45), p(0.85, 0.45))
	els = append(els, player(core.RolePrimary, sprint))
	return core.TacticalScene{Elements: els, LoopDuration: 5}
}

func shuttleRuns() core.TacticalScene {
	home := p(0.2, 0.5)
	run := loop(8, linear,
		home, p(0.4, 0.5), home, p(0.6, 0.5), home, p(0.8, 0.5), home,
	)
	els := cones(home.Offset(0, -0.04), p(0.4, 0.46), p(0.6, 0.46), p(0.8, 0.46))
	els = append(els, player(core.RolePrimary, run))
	return core.TacticalScene{Elements: els, LoopDuration: 8}
}
