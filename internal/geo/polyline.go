package geo

import (
	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/drillboard/tactics/pkg/core"
)

// PathLineString converts a path's waypoints into a line string in normalized
// units. Static paths give an empty line string.
func PathLineString(path *core.MovementPath) geom.LineString {
	if path.IsStatic() {
		return geom.LineString{}
	}
	flat := make([]float64, 0, len(path.Waypoints)*2)
	for _, w := range path.Waypoints {
		flat = append(flat, w.X, w.Y)
	}
	return geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
}

// MercatorPath projects a path onto EPSG:3857 through the pitch.
func (p Pitch) MercatorPath(path *core.MovementPath) geom.LineString {
	if path.IsStatic() {
		return geom.LineString{}
	}
	flat := make([]float64, 0, len(path.Waypoints)*2)
	for _, w := range path.Waypoints {
		xy, _ := p.ToMercator(w).XY()
		flat = append(flat, xy.X, xy.Y)
	}
	return geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
}

// PathLength is the total length of a path in normalized units.
func PathLength(path *core.MovementPath) float64 {
	if path.IsStatic() {
		return 0
	}
	total := 0.0
	for i := 1; i < len(path.Waypoints); i++ {
		total += path.Waypoints[i-1].DistanceTo(path.Waypoints[i])
	}
	return total
}

// PathMeters is the total length of a path on the pitch in meters.
func (p Pitch) PathMeters(path *core.MovementPath) float64 {
	if path.IsStatic() {
		return 0
	}
	total := 0.0
	for i := 1; i < len(path.Waypoints); i++ {
		x0, y0 := p.ToMeters(path.Waypoints[i-1])
		x1, y1 := p.ToMeters(path.Waypoints[i])
		total += core.Pos(x0, y0).DistanceTo(core.Pos(x1, y1))
	}
	return total
}
