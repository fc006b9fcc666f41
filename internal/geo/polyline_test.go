package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drillboard/tactics/pkg/core"
)

func TestPathLineString(t *testing.T) {
	path := core.NewPath(2, core.Pos(0, 0), core.Pos(0.3, 0.4), core.Pos(0.3, 1))
	ls := PathLineString(path)

	require.False(t, ls.IsEmpty())
	seq := ls.Coordinates()
	require.Equal(t, 3, seq.Length())
	assert.Equal(t, 0.3, seq.GetXY(1).X)
	assert.Equal(t, 0.4, seq.GetXY(1).Y)
	assert.InDelta(t, 1.1, ls.Length(), 1e-9)
}

func TestPathLineString_Static(t *testing.T) {
	assert.True(t, PathLineString(nil).IsEmpty())
	assert.True(t, PathLineString(core.NewPath(1, core.Center)).IsEmpty())
	assert.True(t, DefaultPitch.MercatorPath(nil).IsEmpty())
}

func TestPathLength(t *testing.T) {
	path := core.NewPath(2, core.Pos(0, 0), core.Pos(0.3, 0.4), core.Pos(0.3, 1))
	assert.InDelta(t, 1.1, PathLength(path), 1e-9)
	assert.Zero(t, PathLength(nil))
}

func TestPitch_PathMeters(t *testing.T) {
	path := core.NewPath(2, core.Pos(0, 0), core.Pos(1, 0), core.Pos(1, 1))
	assert.InDelta(t, 68.0+105.0, DefaultPitch.PathMeters(path), 1e-9)
}

func TestPitch_MercatorPath(t *testing.T) {
	path := core.NewPath(2, core.Pos(0, 0), core.Pos(1, 0))
	ls := DefaultPitch.MercatorPath(path)
	require.Equal(t, 2, ls.Coordinates().Length())
	assert.InDelta(t, 68.0, ls.Length(), 1e-3)
}
