package catalog

import "github.com/drillboard/tactics/pkg/core"

func wallPasses() core.TacticalScene {
	lateral := pingPong(4, eased, p(0.35, 0.6), p(0.65, 0.6))
	volleys := loop(2, sharp, p(0.38, 0.57), p(0.5, 0.13), p(0.62, 0.57))
	return core.TacticalScene{
		Elements: []core.FieldElement{
			core.Element(core.Wall(), p(0.5, 0.1)).Scaled(1.5),
			player(core.RolePrimary, lateral),
			ball(volleys),
		},
		LoopDuration: 4,
	}
}

func passingTriangle() core.TacticalScene {
	corners := []core.FieldPosition{p(0.5, 0.2), p(0.25, 0.7), p(0.75, 0.7)}
	circulation := loop(3, sharp, p(0.5, 0.23), p(0.28, 0.68), p(0.72, 0.68), p(0.5, 0.23))

	els := cones(corners...)
	els = append(els,
		standing(core.RolePrimary, corners[0].Offset(0, -0.03)),
		standing(core.RolePartner, corners[1].Offset(-0.03, 0)),
		standing(core.RoleTeammate, corners[2].Offset(0.03, 0)),
		ball(circulation),
	)
	return core.TacticalScene{Elements: els, LoopDuration: 3}
}

func giveAndGo() core.TacticalScene {
	run := loop(5, eased, p(0.3, 0.85), p(0.3, 0.58), p(0.55, 0.3), p(0.55, 0.15))
	exchange := loop(5, sharp, p(0.3, 0.88), p(0.3, 0.61), p(0.67, 0.5), p(0.55, 0.18))
	return core.TacticalScene{
		Elements: []core.FieldElement{
			core.Element(core.Mannequin(), p(0.45, 0.45)),
			standing(core.RolePartner, p(0.7, 0.5)),
			player(core.RolePrimary, run),
			ball(exchange),
		},
		LoopDuration: 5,
	}
}

func longPassing() core.TacticalScene {
	flight := pingPong(2.5, eased, p(0.22, 0.78), p(0.78, 0.22))
	return core.TacticalScene{
		Elements: []core.FieldElement{
			standing(core.RolePrimary, p(0.2, 0.8)),
			standing(core.RolePartner, p(0.8, 0.2)),
			ball(flight),
		},
		LoopDuration: 5,
	}
}

func rondo() core.TacticalScene {
	circle := []core.FieldPosition{p(0.5, 0.25), p(0.75, 0.5), p(0.5, 0.75), p(0.25, 0.5)}
	chase := loop(4, eased, p(0.45, 0.45), p(0.56, 0.5), p(0.5, 0.58), p(0.45, 0.45))
	cover := loop(4, eased, p(0.55, 0.55), p(0.44, 0.5), p(0.5, 0.42), p(0.55, 0.55))
	circulation := loop(4, sharp, p(0.5, 0.28), p(0.72, 0.5), p(0.28, 0.5), p(0.5, 0.72), p(0.5, 0.28))

	els := []core.FieldElement{standing(core.RolePrimary, circle[0])}
	for _, at := range circle[1:] {
		els = append(els, standing(core.RoleTeammate, at))
	}
	els = append(els,
		player(core.RoleDefender, chase),
		player(core.RoleDefender, cover),
		ball(circulation),
	)
	return core.TacticalScene{Elements: els, LoopDuration: 4}
}
