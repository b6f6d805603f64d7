package layout

import (
	"math"

	"github.com/ChicagoDave/softwarecity/pkg/geo"
	"github.com/ChicagoDave/softwarecity/pkg/spec"
)

// UnitSize returns the global cell size: margin plus the longest width or
// length across all components. It is the grid step, the plot side and the
// ground-plate scale. With no components it is just the margin.
func UnitSize(components []spec.Component, margin float64) float64 {
	longest := 0.0
	for _, c := range components {
		longest = math.Max(longest, c.Footprint())
	}
	return margin + longest
}

// GridSide returns the number of cells per side of the smallest square grid
// holding n components.
func GridSide(n int) int {
	if n <= 0 {
		return 0
	}
	side := int(math.Ceil(math.Sqrt(float64(n))))
	// Guard against sqrt rounding just below an exact square.
	for side*side < n {
		side++
	}
	return side
}

// GridCoordinates assigns component i the cell (i mod side, i div side)
// scaled by unit, then shifts every coordinate by half the maximum raw x and
// z so the layout straddles the origin. Trailing cells of the last row stay
// empty when n is not a perfect square.
func GridCoordinates(n int, unit float64) []geo.Point2D {
	if n <= 0 {
		return nil
	}
	side := GridSide(n)

	coords := make([]geo.Point2D, n)
	maxX, maxZ := 0.0, 0.0
	for i := range coords {
		coords[i] = geo.Pt(float64(i%side)*unit, float64(i/side)*unit)
		maxX = math.Max(maxX, coords[i].X)
		maxZ = math.Max(maxZ, coords[i].Z)
	}

	shift := geo.Pt(maxX/2, maxZ/2)
	for i := range coords {
		coords[i] = coords[i].Sub(shift)
	}
	return coords
}
