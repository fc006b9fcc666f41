package geo

import (
	"math"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"

	"github.com/drillboard/tactics/pkg/core"
)

// Scene coordinates are normalized with (0,0) at the top-left corner and the
// goal at the top, so X runs across the pitch width and Y along its length.
// Points leaving this package for storage are projected to EPSG:3857, which
// lets SQLite keep them as plain WKB with no spatial extension.

const earthRadius = 6378137.0

// Pitch places the normalized field on a real pitch. Origin is the top-left
// corner and Bearing the clockwise rotation, in degrees, of the pitch's long
// axis away from grid north.
type Pitch struct {
	Length    float64
	Width     float64
	OriginLon float64
	OriginLat float64
	Bearing   float64
}

// DefaultPitch is a 105 x 68 m pitch anchored at 0,0.
var DefaultPitch = Pitch{Length: 105, Width: 68}

// ToMeters converts a normalized position into meters from the top-left corner.
func (p Pitch) ToMeters(pos core.FieldPosition) (x, y float64) {
	return pos.X * p.Width, pos.Y * p.Length
}

// HalfField maps a position from a half-field scene into full-pitch normalized
// coordinates. Half-field scenes show the attacking half, which is the top.
func HalfField(pos core.FieldPosition) core.FieldPosition {
	return core.Pos(pos.X, pos.Y/2)
}

// ToMercator projects a normalized position onto EPSG:3857 through the
// pitch's anchor.
func (p Pitch) ToMercator(pos core.FieldPosition) geom.Point {
	x, y := p.ToMeters(pos)
	east, north := rotate(x, -y, p.Bearing)

	lat0 := p.OriginLat * math.Pi / 180
	lon := p.OriginLon + east/(earthRadius*math.Cos(lat0))*180/math.Pi
	lat := p.OriginLat + north/earthRadius*180/math.Pi

	point, _ := Coords3857From4326(lon, lat)
	return point
}

// rotate turns (east, north) clockwise by degrees.
func rotate(east, north, degrees float64) (float64, float64) {
	if degrees == 0 {
		return east, north
	}
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	return east*cos + north*sin, -east*sin + north*cos
}

// Coords3857From4326 creates a web mercator point from a longitude and latitude
func Coords3857From4326(
	longitude float64,
	latitude float64,
) (
	point geom.Point,
	err error,
) {
	f := wgs84.EPSG().Transform(4326, 3857)
	x, y, _ := f(longitude, latitude, 0)
	point = geom.NewPoint(
		geom.Coordinates{
			XY:   geom.XY{X: x, Y: y},
			Type: geom.DimXY,
		},
	)
	return point, nil
}
