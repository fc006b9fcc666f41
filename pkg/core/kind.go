// pkg/core/kind.go
package core

// ElementType is the closed set of things that can be placed on the field.
type ElementType string

const (
	TypePlayer    ElementType = "player"
	TypeBall      ElementType = "ball"
	TypeCone      ElementType = "cone"
	TypeGoal      ElementType = "goal"
	TypeLadder    ElementType = "ladder"
	TypeHurdle    ElementType = "hurdle"
	TypeMannequin ElementType = "mannequin"
	TypePole      ElementType = "pole"
	TypeRebounder ElementType = "rebounder"
	TypeWall      ElementType = "wall"
)

// ElementTypes lists every element type in declaration order.
var ElementTypes = []ElementType{
	TypePlayer, TypeBall, TypeCone, TypeGoal, TypeLadder,
	TypeHurdle, TypeMannequin, TypePole, TypeRebounder, TypeWall,
}

// Valid reports whether t is a known element type.
func (t ElementType) Valid() bool {
	for _, known := range ElementTypes {
		if t == known {
			return true
		}
	}
	return false
}

// PlayerRole distinguishes players in a scene.
type PlayerRole string

const (
	RolePrimary    PlayerRole = "primary"
	RolePartner    PlayerRole = "partner"
	RoleTeammate   PlayerRole = "teammate"
	RoleDefender   PlayerRole = "defender"
	RoleGoalkeeper PlayerRole = "goalkeeper"
)

var roleColors = map[PlayerRole]string{
	RolePrimary:    "#1E88E5",
	RolePartner:    "#43A047",
	RoleTeammate:   "#00ACC1",
	RoleDefender:   "#E53935",
	RoleGoalkeeper: "#FDD835",
}

// Color returns the fixed display color for the role as a hex string.
// Unknown roles use the primary color.
func (r PlayerRole) Color() string {
	if c, ok := roleColors[r]; ok {
		return c
	}
	return roleColors[RolePrimary]
}

// GoalSize selects between a mini goal and a full-size goal.
type GoalSize string

const (
	GoalSmall GoalSize = "small"
	GoalFull  GoalSize = "full"
)

// ElementKind identifies what an element is. Role is only set for players and
// GoalSize only for goals.
type ElementKind struct {
	Type     ElementType `json:"type" yaml:"type"`
	Role     PlayerRole  `json:"role,omitempty" yaml:"role,omitempty"`
	GoalSize GoalSize    `json:"goalSize,omitempty" yaml:"goalSize,omitempty"`
}

func Player(role PlayerRole) ElementKind { return ElementKind{Type: TypePlayer, Role: role} }
func Ball() ElementKind                  { return ElementKind{Type: TypeBall} }
func Cone() ElementKind                  { return ElementKind{Type: TypeCone} }
func Goal(size GoalSize) ElementKind     { return ElementKind{Type: TypeGoal, GoalSize: size} }
func Ladder() ElementKind                { return ElementKind{Type: TypeLadder} }
func Hurdle() ElementKind                { return ElementKind{Type: TypeHurdle} }
func Mannequin() ElementKind             { return ElementKind{Type: TypeMannequin} }
func Pole() ElementKind                  { return ElementKind{Type: TypePole} }
func Rebounder() ElementKind             { return ElementKind{Type: TypeRebounder} }
func Wall() ElementKind                  { return ElementKind{Type: TypeWall} }

// IsPlayer reports whether the kind is a player of any role.
func (k ElementKind) IsPlayer() bool { return k.Type == TypePlayer }

func (k ElementKind) String() string {
	switch {
	case k.Type == TypePlayer && k.Role != "":
		return string(k.Type) + ":" + string(k.Role)
	case k.Type == TypeGoal && k.GoalSize != "":
		return string(k.Type) + ":" + string(k.GoalSize)
	default:
		return string(k.Type)
	}
}
