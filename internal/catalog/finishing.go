package catalog

import "github.com/drillboard/tactics/pkg/core"

// keeper shuffles across the goal line in every finishing drill.
func keeper(width, duration float64) core.FieldElement {
	return player(core.RoleGoalkeeper, pingPong(duration, eased, p(0.5-width, 0.1), p(0.5+width, 0.1)))
}

func shootingPractice() core.TacticalScene {
	approach := loop(3, eased, p(0.5, 0.85), p(0.5, 0.6), p(0.45, 0.4))
	shot := loop(3, sharp, p(0.5, 0.88), p(0.5, 0.63), p(0.45, 0.43), p(0.41, 0.07))

	els := cones(p(0.5, 0.6))
	els = append(els,
		goalTop(),
		keeper(0.05, 1.5),
		player(core.RolePrimary, approach),
		ball(shot),
	)
	return core.TacticalScene{Elements: els, LoopDuration: 3, ShowHalfField: true}
}

func penaltyKicks() core.TacticalScene {
	runUp := loop(2, eased, p(0.45, 0.5), p(0.5, 0.33))
	kick := loop(2, sharp, p(0.5, 0.3), p(0.5, 0.3), p(0.38, 0.07))
	dive := pingPong(1, sharp, p(0.5, 0.1), p(0.38, 0.1))
	return core.TacticalScene{
		Elements: []core.FieldElement{
			goalTop(),
			player(core.RoleGoalkeeper, dive),
			player(core.RolePrimary, runUp),
			ball(kick),
		},
		LoopDuration:  2,
		ShowHalfField: true,
	}
}

func volleyFinishing() core.TacticalScene {
	toss := loop(2.5, sharp, p(0.78, 0.38), p(0.55, 0.3), p(0.5, 0.07))
	step := pingPong(1.25, eased, p(0.5, 0.45), p(0.53, 0.32))
	return core.TacticalScene{
		Elements: []core.FieldElement{
			goalTop(),
			keeper(0.04, 1.25),
			standing(core.RolePartner, p(0.8, 0.4)),
			player(core.RolePrimary, step),
			ball(toss),
		},
		LoopDuration:  2.5,
		ShowHalfField: true,
	}
}

func crossingAndFinishing() core.TacticalScene {
	wing := loop(4, eased, p(0.88, 0.75), p(0.88, 0.3))
	cross := loop(4, sharp, p(0.88, 0.78), p(0.88, 0.33), p(0.5, 0.2), p(0.47, 0.07))
	striker := loop(4, eased, p(0.4, 0.5), p(0.48, 0.22))
	return core.TacticalScene{
		Elements: []core.FieldElement{
			goalTop(),
			keeper(0.06, 2),
			player(core.RolePrimary, wing),
			player(core.RoleTeammate, striker),
			ball(cross),
		},
		LoopDuration:  4,
		ShowHalfField: true,
	}
}

func freeKickPractice() core.TacticalScene {
	curl := loop(2.5, eased, p(0.5, 0.55), p(0.58, 0.25), p(0.6, 0.08))
	runUp := loop(2.5, eased, p(0.45, 0.65), p(0.49, 0.57))

	els := placed(core.Mannequin(), p(0.44, 0.3), p(0.5, 0.3), p(0.56, 0.3))
	els = append(els,
		goalTop(),
		keeper(0.05, 1.25),
		player(core.RolePrimary, runUp),
		ball(curl),
	)
	return core.TacticalScene{Elements: els, LoopDuration: 2.5, ShowHalfField: true}
}

func headingPractice() core.TacticalScene {
	jump := pingPong(1, eased, p(0.5, 0.7), p(0.5, 0.66))
	lob := pingPong(1, eased, p(0.5, 0.23), p(0.5, 0.63))
	return core.TacticalScene{
		Elements: []core.FieldElement{
			standing(core.RolePartner, p(0.5, 0.2)),
			player(core.RolePrimary, jump),
			ball(lob),
		},
		LoopDuration: 2,
	}
}
