// pkg/core/speed.go
package core

// AnimationSpeed scales scene and path durations. A larger multiplier
// stretches time, so "slow" has the largest value.
type AnimationSpeed string

const (
	SpeedSlow   AnimationSpeed = "slow"
	SpeedNormal AnimationSpeed = "normal"
	SpeedFast   AnimationSpeed = "fast"
)

// Multiplier returns the duration multiplier. Unknown speeds use 1.0.
func (s AnimationSpeed) Multiplier() float64 {
	switch s {
	case SpeedSlow:
		return 1.5
	case SpeedFast:
		return 0.7
	default:
		return 1.0
	}
}

// ParseSpeed converts a name into an AnimationSpeed. ok is false for unknown names.
func ParseSpeed(name string) (speed AnimationSpeed, ok bool) {
	switch AnimationSpeed(name) {
	case SpeedSlow, SpeedNormal, SpeedFast:
		return AnimationSpeed(name), true
	default:
		return SpeedNormal, false
	}
}

// SkillLevel is the difficulty of an exercise.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// SpeedForSkill maps a skill level to its default animation speed.
func SpeedForSkill(level SkillLevel) AnimationSpeed {
	switch level {
	case SkillBeginner:
		return SpeedSlow
	case SkillAdvanced:
		return SpeedFast
	default:
		return SpeedNormal
	}
}
