package animation

import (
	"sort"

	"github.com/drillboard/tactics/pkg/core"
)

// DrawOrder returns the paint layer for kind. Lower layers are painted first:
// goals, then walls and rebounders, floor equipment, cones and mannequins,
// players, and the ball on top.
func DrawOrder(kind core.ElementKind) int {
	switch kind.Type {
	case core.TypeGoal:
		return 0
	case core.TypeWall, core.TypeRebounder:
		return 1
	case core.TypeLadder, core.TypeHurdle, core.TypePole:
		return 2
	case core.TypeCone, core.TypeMannequin:
		return 3
	case core.TypePlayer:
		return 4
	case core.TypeBall:
		return 5
	default:
		return 3
	}
}

// SortByDrawOrder orders elements for painting. Elements on the same layer
// keep their scene order.
func SortByDrawOrder(elements []core.AnimatedElement) {
	sort.SliceStable(elements, func(i, j int) bool {
		return elements[i].DrawOrder < elements[j].DrawOrder
	})
}
