package catalog

import "github.com/drillboard/tactics/pkg/core"

func goalkeeperDiving() core.TacticalScene {
	dive := pingPong(1.5, eased, p(0.38, 0.1), p(0.62, 0.1))
	shots := loop(3, sharp, p(0.5, 0.5), p(0.36, 0.09), p(0.5, 0.5), p(0.64, 0.09))
	return core.TacticalScene{
		Elements: []core.FieldElement{
			goalTop(),
			player(core.RoleGoalkeeper, dive),
			standing(core.RolePartner, p(0.5, 0.53)),
			ball(shots),
		},
		LoopDuration:  3,
		ShowHalfField: true,
	}
}

func goalkeeperDistribution() core.TacticalScene {
	throw := pingPong(2, sharp, p(0.5, 0.13), p(0.3, 0.6))
	return core.TacticalScene{
		Elements: []core.FieldElement{
			goalTop(),
			standing(core.RoleGoalkeeper, p(0.5, 0.1)),
			standing(core.RolePartner, p(0.3, 0.62)),
			ball(throw),
		},
		LoopDuration:  4,
		ShowHalfField: true,
	}
}
