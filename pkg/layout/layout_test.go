package layout

import (
	"fmt"
	"testing"

	"github.com/ChicagoDave/softwarecity/pkg/geo"
	"github.com/ChicagoDave/softwarecity/pkg/palette"
	"github.com/ChicagoDave/softwarecity/pkg/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams(unit float64) Params {
	return Params{Unit: unit, PlaneOffset: 0.01, BuildingColor: palette.Building}
}

func TestUnitSize(t *testing.T) {
	comps := []spec.Component{
		{Name: "a", Width: 5, Length: 3},
		{Name: "b", Width: 2, Length: 7},
	}
	assert.Equal(t, 17.0, UnitSize(comps, 10))
	assert.Equal(t, 10.0, UnitSize(nil, 10))
}

func TestUnitSizeGrowsWithLargestFootprint(t *testing.T) {
	comps := []spec.Component{
		{Name: "a", Width: 5, Length: 5},
		{Name: "b", Width: 4, Length: 4},
	}
	before := GridCoordinates(len(comps), UnitSize(comps, 5))

	comps[1].Length = 12
	after := GridCoordinates(len(comps), UnitSize(comps, 5))

	assert.Equal(t, 17.0, UnitSize(comps, 5))
	// Spacing between all buildings widens, not just around the changed one.
	assert.Greater(t, after[0].Distance(after[1]), before[0].Distance(before[1]))
}

func TestGridSide(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 2: 2, 4: 2, 5: 3, 9: 3, 10: 4, 100: 10, 101: 11}
	for n, want := range cases {
		assert.Equal(t, want, GridSide(n), "GridSide(%d)", n)
	}
}

func TestGridCoordinatesTwoComponents(t *testing.T) {
	coords := GridCoordinates(2, 10)
	require.Len(t, coords, 2)
	assert.Equal(t, geo.Pt(-5, 0), coords[0])
	assert.Equal(t, geo.Pt(5, 0), coords[1])
}

func TestGridCoordinatesRowMajor(t *testing.T) {
	coords := GridCoordinates(5, 10)
	// side 3: cells (0,0) (1,0) (2,0) (0,1) (1,1); max raw x=20, z=10.
	want := []geo.Point2D{
		geo.Pt(-10, -5), geo.Pt(0, -5), geo.Pt(10, -5),
		geo.Pt(-10, 5), geo.Pt(0, 5),
	}
	assert.Equal(t, want, coords)
}

func TestGridCoordinatesBijectionAndCentered(t *testing.T) {
	for n := 1; n <= 60; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			coords := GridCoordinates(n, 7.5)
			require.Len(t, coords, n)

			seen := make(map[geo.Point2D]bool, n)
			for _, c := range coords {
				require.False(t, seen[c], "duplicate coordinate %+v", c)
				seen[c] = true
			}

			b := geo.Bounds(coords)
			assert.InDelta(t, 0, b.Min.X+b.Max.X, 1e-9)
			assert.InDelta(t, 0, b.Min.Z+b.Max.Z, 1e-9)
		})
	}
}

func TestGridCoordinatesDeterministic(t *testing.T) {
	assert.Equal(t, GridCoordinates(37, 12), GridCoordinates(37, 12))
	assert.Nil(t, GridCoordinates(0, 12))
}

func TestSynthesizeBuilding(t *testing.T) {
	c := &spec.Component{Name: "X", UsageArea: "A", Width: 5, Height: 2, Length: 4}
	colors := map[string]palette.RGB{"A": 0x123456}
	p := testParams(10)

	b := SynthesizeBuilding(c, geo.Pt(-5, 3), p, colors)

	assert.Same(t, c, b.Component)
	assert.Equal(t, "X", b.Name())
	assert.Equal(t, [3]float64{5, 2, 4}, b.Volume.Size)
	assert.Equal(t, [3]float64{-5, p.VolumeY(), 3}, b.Volume.Position)
	assert.Equal(t, palette.Building, b.Volume.Color)
	assert.Greater(t, b.Volume.Position[1], b.Plot.Position[1], "building base must sit above its plot")
	assert.InDelta(t, p.VolumeY()+2, b.Volume.Top(), 1e-9)

	assert.Equal(t, 10.0, b.Plot.Side)
	assert.Equal(t, [3]float64{-5, p.PlotY(), 3}, b.Plot.Position)
	assert.Equal(t, palette.RGB(0x123456), b.Plot.Color)

	fp := b.Footprint()
	assert.Equal(t, geo.Pt(-10, -2), fp.Min)
	assert.Equal(t, geo.Pt(0, 8), fp.Max)

	// The component is left untouched.
	assert.Equal(t, spec.Component{Name: "X", UsageArea: "A", Width: 5, Height: 2, Length: 4}, *c)
}

func TestPlaceBuildingsOnePerComponent(t *testing.T) {
	comps := make([]spec.Component, 11)
	for i := range comps {
		comps[i] = spec.Component{Name: fmt.Sprintf("c%d", i), UsageArea: "A", Width: 2, Height: 3, Length: 2}
	}
	buildings := PlaceBuildings(comps, testParams(12), nil)

	require.Len(t, buildings, len(comps))
	for i, b := range buildings {
		assert.Same(t, &comps[i], b.Component)
	}
}

func TestLayersStackUpward(t *testing.T) {
	p := testParams(10)
	assert.Less(t, p.GrassY(), p.FoundationY())
	assert.Less(t, p.FoundationY(), p.PlotY())
	assert.Less(t, p.PlotY(), p.VolumeY())
}

func TestLayGround(t *testing.T) {
	g := LayGround(5, testParams(10), GroundParams{
		GrassMargin:     500,
		CityMargin:      10,
		GrassColor:      palette.Ground,
		FoundationColor: palette.Foundation,
	})

	// side 3 * unit 10 = 30
	assert.Equal(t, 280.0, g.Grass.Side)
	assert.Equal(t, 35.0, g.Foundation.Side)
	assert.Equal(t, palette.Ground, g.Grass.Color)
	assert.Equal(t, palette.Foundation, g.Foundation.Color)
	assert.Less(t, g.Grass.Position[1], g.Foundation.Position[1])
}
