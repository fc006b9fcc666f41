// pkg/core/scene.go
package core

// FieldElement is one thing drawn on the field. Without a path it stays at
// Position. Rotation is in radians and only orients static equipment; moving
// elements derive their facing from the path.
type FieldElement struct {
	Kind     ElementKind   `json:"kind" yaml:"kind"`
	Position FieldPosition `json:"position" yaml:"position"`
	Path     *MovementPath `json:"path,omitempty" yaml:"path,omitempty"`
	Rotation float64       `json:"rotation" yaml:"rotation"`
	Scale    float64       `json:"scale" yaml:"scale"`
}

// Element builds a static element with unit scale.
func Element(kind ElementKind, at FieldPosition) FieldElement {
	return FieldElement{Kind: kind, Position: at, Scale: 1}
}

// Moving builds an element that follows path. Its base position is the path start.
func Moving(kind ElementKind, path *MovementPath) FieldElement {
	return FieldElement{Kind: kind, Position: path.Start(), Path: path, Scale: 1}
}

// Rotated returns a copy of e with the given static rotation.
func (e FieldElement) Rotated(radians float64) FieldElement {
	e.Rotation = radians
	return e
}

// Scaled returns a copy of e with the given scale multiplier.
func (e FieldElement) Scaled(scale float64) FieldElement {
	e.Scale = scale
	return e
}

// TacticalScene is one exercise's choreography. LoopDuration is the period
// after which the whole scene's time axis wraps, independent of individual
// path durations.
type TacticalScene struct {
	Elements      []FieldElement `json:"elements" yaml:"elements"`
	LoopDuration  float64        `json:"loopDuration" yaml:"loopDuration"`
	ShowHalfField bool           `json:"showHalfField" yaml:"showHalfField"`
}

// MovingElements returns how many elements own a path with at least two waypoints.
func (s TacticalScene) MovingElements() int {
	n := 0
	for _, e := range s.Elements {
		if !e.Path.IsStatic() {
			n++
		}
	}
	return n
}

// LongestPathDuration returns the largest path duration in the scene, 0 when
// nothing moves.
func (s TacticalScene) LongestPathDuration() float64 {
	longest := 0.0
	for _, e := range s.Elements {
		if !e.Path.IsStatic() && e.Path.Duration > longest {
			longest = e.Path.Duration
		}
	}
	return longest
}
