package catalog

import "github.com/drillboard/tactics/pkg/core"

func oneVOneDefending() core.TacticalScene {
	attack := loop(4, eased, p(0.5, 0.8), p(0.35, 0.5), p(0.55, 0.3))
	track := loop(4, eased, p(0.5, 0.55), p(0.4, 0.4), p(0.52, 0.25))
	return core.TacticalScene{
		Elements: []core.FieldElement{
			goalTop(),
			player(core.RolePartner, attack),
			player(core.RolePrimary, track),
			dribbled(attack),
		},
		LoopDuration:  4,
		ShowHalfField: true,
	}
}

func defensiveShuffle() core.TacticalScene {
	shuffle := pingPong(2, eased, p(0.3, 0.5), p(0.7, 0.5))
	els := cones(p(0.3, 0.45), p(0.7, 0.45), p(0.3, 0.55), p(0.7, 0.55))
	els = append(els, player(core.RolePrimary, shuffle))
	return core.TacticalScene{Elements: els, LoopDuration: 4}
}
