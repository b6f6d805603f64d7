package analytics

import (
	"math"

	"github.com/ChicagoDave/softwarecity/pkg/layout"
	"github.com/ChicagoDave/softwarecity/pkg/spec"
	"github.com/ChicagoDave/softwarecity/pkg/validation"
)

// ResolvedParameters holds the global values every later stage depends on.
type ResolvedParameters struct {
	ComponentCount   int      `json:"component_count"`
	UsageAreaCount   int      `json:"usage_area_count"`
	EdgeCount        int      `json:"edge_count"`
	UsageAreas       []string `json:"usage_areas"`
	UnitSize         float64  `json:"unit_size"`
	GridSide         int      `json:"grid_side"`
	GridRows         int      `json:"grid_rows"`
	EmptyCells       int      `json:"empty_cells"`
	GrassSide        float64  `json:"grass_side"`
	FoundationSide   float64  `json:"foundation_side"`
	LargestComponent string   `json:"largest_component,omitempty"`
	MaxHeight        float64  `json:"max_height"`
	TotalVolume      float64  `json:"total_volume"`
}

// Resolve computes the global layout parameters of a city document:
// counts, the unit size, grid dimensions and ground plate sizes.
// Returns resolved parameters and a validation report.
func Resolve(d *spec.CityData, m Margins) (*ResolvedParameters, *validation.Report) {
	report := validation.NewReport()
	components := d.Flatten()
	n := len(components)

	unit := layout.UnitSize(components, m.Unit)
	side := layout.GridSide(n)
	rows := 0
	if side > 0 {
		rows = (n + side - 1) / side
	}
	span := float64(side) * unit

	params := &ResolvedParameters{
		ComponentCount: n,
		EdgeCount:      d.EdgeCount(),
		UsageAreas:     spec.AreaOrder(components),
		UnitSize:       unit,
		GridSide:       side,
		GridRows:       rows,
		EmptyCells:     side*side - n,
		GrassSide:      span + m.Grass/2,
		FoundationSide: span + m.City/2,
	}
	params.UsageAreaCount = len(params.UsageAreas)

	longest := 0.0
	for _, c := range components {
		if c.Footprint() > longest {
			longest = c.Footprint()
			params.LargestComponent = c.Name
		}
		params.MaxHeight = math.Max(params.MaxHeight, c.Height)
		params.TotalVolume += c.Volume()
	}

	validateLayout(components, params, report)

	return params, report
}
