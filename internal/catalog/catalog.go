// Package catalog maps exercise names to hand-authored tactical scenes.
//
// Every lookup builds a fresh scene, so callers may keep or modify what they
// get back without affecting later lookups.
package catalog

import (
	"sort"

	"github.com/drillboard/tactics/pkg/core"
)

// FallbackLoopDuration is the loop period of the scene returned for unknown exercises.
const FallbackLoopDuration = 3.0

type sceneFunc func() core.TacticalScene

var scenes = map[string]sceneFunc{
	// dribbling
	"Cone Dribbling":        coneDribbling,
	"Zigzag Dribbling":      zigzagDribbling,
	"Slalom Dribbling":      slalomDribbling,
	"Juggling":              juggling,
	"1v1 Attacking":         oneVOneAttacking,
	"Rebounder First Touch": rebounderFirstTouch,

	// passing
	"Wall Passes":      wallPasses,
	"Passing Triangle": passingTriangle,
	"Give and Go":      giveAndGo,
	"Long Passing":     longPassing,
	"Rondo":            rondo,

	// finishing
	"Shooting Practice":      shootingPractice,
	"Penalty Kicks":          penaltyKicks,
	"Volley Finishing":       volleyFinishing,
	"Crossing and Finishing": crossingAndFinishing,
	"Free Kick Practice":     freeKickPractice,
	"Heading Practice":       headingPractice,

	// defending
	"1v1 Defending":     oneVOneDefending,
	"Defensive Shuffle": defensiveShuffle,

	// fitness and footwork
	"Ladder Footwork":  ladderFootwork,
	"Hurdle Jumps":     hurdleJumps,
	"Sprint Intervals": sprintIntervals,
	"Shuttle Runs":     shuttleRuns,

	// goalkeeping
	"Goalkeeper Diving":       goalkeeperDiving,
	"Goalkeeper Distribution": goalkeeperDistribution,
}

// BuildScene returns the scene for the exercise with exactly this name. Unknown
// names get the fallback scene.
func BuildScene(name string) core.TacticalScene {
	if build, ok := scenes[name]; ok {
		return build()
	}
	return Fallback()
}

// Has reports whether name has a hand-authored scene.
func Has(name string) bool {
	_, ok := scenes[name]
	return ok
}

// Names returns every exercise with a hand-authored scene, sorted.
func Names() []string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForExercise returns the scene for ex and the speed its skill level plays at.
func ForExercise(ex core.Exercise) (core.TacticalScene, core.AnimationSpeed) {
	return BuildScene(ex.Name), core.SpeedForSkill(ex.SkillLevel)
}

// Fallback is a generic player and a ball, both at the center of the field.
// Nothing moves.
func Fallback() core.TacticalScene {
	return core.TacticalScene{
		Elements: []core.FieldElement{
			core.Element(core.Player(core.RolePrimary), core.Center),
			core.Element(core.Ball(), core.Center),
		},
		LoopDuration: FallbackLoopDuration,
	}
}
