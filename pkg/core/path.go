// pkg/core/path.go
package core

// RepeatBehavior maps unbounded elapsed time onto [0,1] progress.
type RepeatBehavior string

const (
	RepeatOnce     RepeatBehavior = "once"
	RepeatLoop     RepeatBehavior = "loop"
	RepeatPingPong RepeatBehavior = "pingPong"
)

// InterpolationMode is the easing curve applied inside a single path segment.
type InterpolationMode string

const (
	InterpolationLinear InterpolationMode = "linear"
	InterpolationEased  InterpolationMode = "eased"
	InterpolationSharp  InterpolationMode = "sharp"
)

// MovementPath is an ordered polyline traversed once every Duration seconds.
// Fewer than two waypoints degenerates to a static point.
type MovementPath struct {
	Waypoints     []FieldPosition   `json:"waypoints" yaml:"waypoints"`
	Duration      float64           `json:"duration" yaml:"duration"`
	Repeat        RepeatBehavior    `json:"repeat" yaml:"repeat"`
	Interpolation InterpolationMode `json:"interpolation" yaml:"interpolation"`
}

// NewPath builds a looping, linearly interpolated path.
func NewPath(duration float64, waypoints ...FieldPosition) *MovementPath {
	return &MovementPath{
		Waypoints:     waypoints,
		Duration:      duration,
		Repeat:        RepeatLoop,
		Interpolation: InterpolationLinear,
	}
}

// WithRepeat returns a copy of the path using the given repeat behavior.
func (p MovementPath) WithRepeat(r RepeatBehavior) *MovementPath {
	p.Waypoints = append([]FieldPosition(nil), p.Waypoints...)
	p.Repeat = r
	return &p
}

// WithInterpolation returns a copy of the path using the given easing curve.
func (p MovementPath) WithInterpolation(m InterpolationMode) *MovementPath {
	p.Waypoints = append([]FieldPosition(nil), p.Waypoints...)
	p.Interpolation = m
	return &p
}

// Offset returns a copy of the path with every waypoint shifted by (dx, dy).
func (p MovementPath) Offset(dx, dy float64) *MovementPath {
	shifted := make([]FieldPosition, len(p.Waypoints))
	for i, w := range p.Waypoints {
		shifted[i] = w.Offset(dx, dy)
	}
	p.Waypoints = shifted
	return &p
}

// IsStatic reports whether the path cannot move anything.
func (p *MovementPath) IsStatic() bool {
	return p == nil || len(p.Waypoints) < 2
}

// Start returns the first waypoint, or Center for an empty path.
func (p *MovementPath) Start() FieldPosition {
	if p == nil || len(p.Waypoints) == 0 {
		return Center
	}
	return p.Waypoints[0]
}
