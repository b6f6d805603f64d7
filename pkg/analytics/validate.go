package analytics

import (
	"fmt"
	"sort"

	"github.com/ChicagoDave/softwarecity/pkg/spec"
	"github.com/ChicagoDave/softwarecity/pkg/validation"
)

// outlierFactor is how many times the median footprint the largest
// component may be before its size dominates the spacing of the city.
const outlierFactor = 4.0

// validateLayout runs layout-level checks on resolved parameters.
func validateLayout(components []spec.Component, p *ResolvedParameters, report *validation.Report) {
	validateFootprintOutlier(components, p, report)
	validateEmptyCells(p, report)
}

func validateFootprintOutlier(components []spec.Component, p *ResolvedParameters, report *validation.Report) {
	if len(components) < 3 {
		return
	}
	footprints := make([]float64, len(components))
	for i, c := range components {
		footprints[i] = c.Footprint()
	}
	sort.Float64s(footprints)
	median := footprints[len(footprints)/2]
	largest := footprints[len(footprints)-1]

	if median > 0 && largest > outlierFactor*median {
		report.AddWarning(validation.Result{
			Level:       validation.LevelSpatial,
			Message:     fmt.Sprintf("component %q (footprint %.1f) is %.1fx the median footprint; it sets the spacing of every building", p.LargestComponent, largest, largest/median),
			Path:        fmt.Sprintf("components.%s", p.LargestComponent),
			ActualValue: largest,
			Expected:    fmt.Sprintf("<= %.1f", outlierFactor*median),
			Suggestions: []string{"Rescale size metrics so one component does not stretch the whole grid"},
		})
	}
}

func validateEmptyCells(p *ResolvedParameters, report *validation.Report) {
	if p.EmptyCells == 0 {
		return
	}
	report.AddInfo(validation.Result{
		Level:   validation.LevelSpatial,
		Message: fmt.Sprintf("%d of %d grid cells stay empty", p.EmptyCells, p.GridSide*p.GridSide),
	})
}
