// pkg/core/timeline.go
package core

// AnimatedElement is the pose of one scene element at a point in time, in the
// shape a renderer paints.
type AnimatedElement struct {
	Index     int           `json:"index"`
	Kind      ElementKind   `json:"kind"`
	Position  FieldPosition `json:"position"`
	Direction float64       `json:"direction"`
	DrawOrder int           `json:"drawOrder"`
	Scale     float64       `json:"scale"`
}

// Frame holds every element pose at Time seconds, sorted by draw order.
type Frame struct {
	Number   int               `json:"number"`
	Time     float64           `json:"time"`
	Elements []AnimatedElement `json:"elements"`
}

// Timeline is a scene sampled at a fixed frame rate.
type Timeline struct {
	Scene         string         `json:"scene"`
	Speed         AnimationSpeed `json:"speed"`
	FPS           int            `json:"fps"`
	Duration      float64        `json:"duration"`
	ShowHalfField bool           `json:"showHalfField"`
	Frames        []Frame        `json:"frames"`
}
