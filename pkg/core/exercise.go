// pkg/core/exercise.go
package core

// Exercise is the slice of the exercise record the animation layer needs.
type Exercise struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	SkillLevel SkillLevel `json:"skillLevel"`
}
