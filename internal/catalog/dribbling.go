package catalog

import (
	"math"

	"github.com/drillboard/tactics/pkg/core"
)

func coneDribbling() core.TacticalScene {
	route := loop(8, eased,
		p(0.5, 0.9), p(0.42, 0.8), p(0.58, 0.65), p(0.42, 0.5),
		p(0.58, 0.35), p(0.42, 0.2), p(0.5, 0.1), p(0.65, 0.5), p(0.5, 0.9),
	)
	els := cones(p(0.5, 0.8), p(0.5, 0.65), p(0.5, 0.5), p(0.5, 0.35), p(0.5, 0.2))
	els = append(els, player(core.RolePrimary, route), dribbled(route))
	return core.TacticalScene{Elements: els, LoopDuration: 8}
}

func zigzagDribbling() core.TacticalScene {
	route := pingPong(6, sharp,
		p(0.3, 0.85), p(0.3, 0.8), p(0.7, 0.65), p(0.3, 0.5), p(0.7, 0.35), p(0.3, 0.2),
	)
	els := cones(p(0.3, 0.8), p(0.7, 0.65), p(0.3, 0.5), p(0.7, 0.35), p(0.3, 0.2))
	els = append(els, player(core.RolePrimary, route), dribbled(route))
	return core.TacticalScene{Elements: els, LoopDuration: 12}
}

func slalomDribbling() core.TacticalScene {
	route := loop(8, eased,
		p(0.5, 0.85), p(0.43, 0.75), p(0.57, 0.625), p(0.43, 0.5),
		p(0.57, 0.375), p(0.43, 0.25), p(0.5, 0.15), p(0.7, 0.5), p(0.5, 0.85),
	)
	els := placed(core.Pole(), p(0.5, 0.75), p(0.5, 0.625), p(0.5, 0.5), p(0.5, 0.375), p(0.5, 0.25))
	els = append(els, player(core.RolePrimary, route), dribbled(route))
	return core.TacticalScene{Elements: els, LoopDuration: 8}
}

func juggling() core.TacticalScene {
	bob := pingPong(0.6, eased, p(0.5, 0.55), p(0.5, 0.53))
	touches := pingPong(0.6, eased, p(0.5, 0.52), p(0.5, 0.32))
	return core.TacticalScene{
		Elements: []core.FieldElement{
			player(core.RolePrimary, bob),
			ball(touches),
		},
		LoopDuration: 1.2,
	}
}

func oneVOneAttacking() core.TacticalScene {
	route := loop(4, sharp, p(0.5, 0.8), p(0.62, 0.58), p(0.4, 0.42), p(0.5, 0.2))
	jockey := pingPong(2, eased, p(0.5, 0.42), p(0.44, 0.45))
	return core.TacticalScene{
		Elements: []core.FieldElement{
			goalTop(),
			player(core.RoleDefender, jockey),
			player(core.RolePrimary, route),
			dribbled(route),
		},
		LoopDuration:  4,
		ShowHalfField: true,
	}
}

func rebounderFirstTouch() core.TacticalScene {
	shuffle := pingPong(1, eased, p(0.47, 0.72), p(0.53, 0.72))
	strikes := loop(2, sharp, p(0.5, 0.69), p(0.5, 0.27), p(0.5, 0.69))
	return core.TacticalScene{
		Elements: []core.FieldElement{
			core.Element(core.Rebounder(), p(0.5, 0.25)).Rotated(math.Pi),
			player(core.RolePrimary, shuffle),
			ball(strikes),
		},
		LoopDuration: 2,
	}
}
