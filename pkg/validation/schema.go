package validation

import (
	"fmt"

	"github.com/ChicagoDave/softwarecity/pkg/spec"
)

// ValidateSchema performs structural validation on a parsed city document.
// Errors reject the document; reference problems (unknown, self or duplicate
// requires entries) are reported as warnings or info because the city can
// still be built without the affected streets.
func ValidateSchema(d *spec.CityData) *Report {
	r := NewReport()

	if d == nil {
		r.AddError(Result{Level: LevelSchema, Message: "city document is nil"})
		return r
	}

	validateAreas(d, r)
	validateComponents(d, r)
	validateReferences(d, r)

	return r
}

func validateAreas(d *spec.CityData, r *Report) {
	if d.ComponentCount() == 0 {
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     "document contains no components; the city will be empty",
			Path:        "usageAreas",
			Suggestions: []string{"Add at least one component to a usage area"},
		})
	}

	seen := make(map[string]int, len(d.UsageAreas))
	for i, area := range d.UsageAreas {
		path := fmt.Sprintf("usageAreas[%d].name", i)
		if area.Name == "" {
			r.AddError(Result{
				Level:    LevelSchema,
				Message:  fmt.Sprintf("usage area at index %d has an empty name", i),
				Path:     path,
				Expected: "non-empty string",
			})
			continue
		}
		if prev, ok := seen[area.Name]; ok {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("duplicate usage area %q at indices %d and %d", area.Name, prev, i),
				Path:        path,
				ActualValue: area.Name,
			})
			continue
		}
		seen[area.Name] = i
		if len(area.Components) == 0 {
			r.AddInfo(Result{
				Level:   LevelSchema,
				Message: fmt.Sprintf("usage area %q has no components and will not appear in the city", area.Name),
				Path:    fmt.Sprintf("usageAreas[%d].components", i),
			})
		}
	}

	if len(seen) == 1 {
		r.AddInfo(Result{
			Level:   LevelSchema,
			Message: "single usage area; its plots use the gradient start color",
			Path:    "usageAreas",
		})
	}
}

func validateComponents(d *spec.CityData, r *Report) {
	seen := make(map[string]string)
	for i, area := range d.UsageAreas {
		for j, c := range area.Components {
			base := fmt.Sprintf("usageAreas[%d].components[%d]", i, j)

			if c.Name == "" {
				r.AddError(Result{
					Level:    LevelSchema,
					Message:  fmt.Sprintf("component at %s has an empty name", base),
					Path:     base + ".name",
					Expected: "non-empty string",
				})
			} else if prev, ok := seen[c.Name]; ok {
				r.AddError(Result{
					Level:       LevelSchema,
					Message:     fmt.Sprintf("duplicate component name %q (first defined at %s)", c.Name, prev),
					Path:        base + ".name",
					ActualValue: c.Name,
					Expected:    "name unique across the document",
				})
			} else {
				seen[c.Name] = base
			}

			dims := []struct {
				field string
				value float64
			}{
				{"height", c.Height},
				{"width", c.Width},
				{"length", c.Length},
			}
			for _, dim := range dims {
				if dim.value <= 0 {
					r.AddError(Result{
						Level:       LevelSchema,
						Message:     fmt.Sprintf("component %q: %s must be greater than 0", c.Name, dim.field),
						Path:        fmt.Sprintf("%s.%s", base, dim.field),
						ActualValue: dim.value,
						Expected:    "> 0",
					})
				}
			}
		}
	}
}

func validateReferences(d *spec.CityData, r *Report) {
	names := make(map[string]bool)
	for _, c := range d.Flatten() {
		names[c.Name] = true
	}

	for i, area := range d.UsageAreas {
		for j, c := range area.Components {
			counts := make(map[string]int, len(c.Requires))
			for k, target := range c.Requires {
				path := fmt.Sprintf("usageAreas[%d].components[%d].requires[%d]", i, j, k)
				counts[target]++

				switch {
				case !names[target]:
					r.AddWarning(Result{
						Level:       LevelReference,
						Message:     fmt.Sprintf("component %q requires unknown component %q; no street will be built", c.Name, target),
						Path:        path,
						ActualValue: target,
						Expected:    "name of an existing component",
					})
				case target == c.Name:
					r.AddWarning(Result{
						Level:       LevelReference,
						Message:     fmt.Sprintf("component %q requires itself; self-edges are skipped", c.Name),
						Path:        path,
						ActualValue: target,
					})
				case counts[target] == 2:
					r.AddInfo(Result{
						Level:   LevelReference,
						Message: fmt.Sprintf("component %q requires %q more than once; each entry builds its own street", c.Name, target),
						Path:    path,
					})
				}
			}
		}
	}
}
