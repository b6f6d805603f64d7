package scene

import (
	"fmt"

	"github.com/ChicagoDave/softwarecity/pkg/validation"
)

// ValidateGraph performs structural validation on a scene graph output.
// It checks entity integrity, group index consistency, bounds enclosure and
// primitive dimensions.
func ValidateGraph(g *Graph) *validation.Report {
	r := validation.NewReport()

	if g == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelSpatial,
			Message: "scene graph is nil",
		})
		return r
	}

	validateEntityIDs(g, r)
	validateGroupIndices(g, r)
	validateGroupMembership(g, r)
	validateBoundsEnclosure(g, r)
	validateEntityDimensions(g, r)

	return r
}

func validateEntityIDs(g *Graph, r *validation.Report) {
	seen := make(map[string]int, len(g.Entities))

	for i, e := range g.Entities {
		if e.ID == "" {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entity at index %d has empty ID", i),
				Path:        fmt.Sprintf("entities[%d].id", i),
				ActualValue: "",
				Expected:    "non-empty string",
			})
			continue
		}
		if prev, exists := seen[e.ID]; exists {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("duplicate entity ID %q at indices %d and %d", e.ID, prev, i),
				Path:        fmt.Sprintf("entities[%d].id", i),
				ActualValue: e.ID,
			})
		}
		seen[e.ID] = i
	}
}

func validateGroupIndices(g *Graph, r *validation.Report) {
	entityIDs := make(map[string]bool, len(g.Entities))
	for _, e := range g.Entities {
		entityIDs[e.ID] = true
	}

	checkGroup := func(groupType, groupName string, ids []string) {
		for _, id := range ids {
			if !entityIDs[id] {
				r.AddError(validation.Result{
					Level:       validation.LevelSpatial,
					Message:     fmt.Sprintf("group %s.%s references non-existent entity %q", groupType, groupName, id),
					Path:        fmt.Sprintf("groups.%s.%s", groupType, groupName),
					ActualValue: id,
					Expected:    "existing entity ID",
				})
			}
		}
	}

	for name, ids := range g.Groups.UsageAreas {
		checkGroup("usage_areas", name, ids)
	}
	for name, ids := range g.Groups.Components {
		checkGroup("components", name, ids)
	}
	for name, ids := range g.Groups.Layers {
		checkGroup("layers", string(name), ids)
	}
	for name, ids := range g.Groups.EntityTypes {
		checkGroup("entity_types", string(name), ids)
	}
}

func memberSets[K ~string](groups map[K][]string) map[string]map[string]bool {
	sets := make(map[string]map[string]bool, len(groups))
	for name, ids := range groups {
		m := make(map[string]bool, len(ids))
		for _, id := range ids {
			m[id] = true
		}
		sets[string(name)] = m
	}
	return sets
}

func validateGroupMembership(g *Graph, r *validation.Report) {
	indexes := []struct {
		group   string
		members map[string]map[string]bool
		key     func(Entity) string
	}{
		{"layers", memberSets(g.Groups.Layers), func(e Entity) string { return string(e.Layer) }},
		{"entity_types", memberSets(g.Groups.EntityTypes), func(e Entity) string { return string(e.Type) }},
		{"usage_areas", memberSets(g.Groups.UsageAreas), func(e Entity) string { return e.UsageArea }},
		{"components", memberSets(g.Groups.Components), func(e Entity) string { return e.Component }},
	}

	for _, e := range g.Entities {
		if e.ID == "" {
			continue
		}
		for _, idx := range indexes {
			key := idx.key(e)
			if key == "" {
				continue
			}
			m, ok := idx.members[key]
			switch {
			case !ok:
				r.AddError(validation.Result{
					Level:       validation.LevelSpatial,
					Message:     fmt.Sprintf("entity %q belongs to %q but no such %s group exists", e.ID, key, idx.group),
					Path:        "groups." + idx.group,
					ActualValue: key,
				})
			case !m[e.ID]:
				r.AddError(validation.Result{
					Level:       validation.LevelSpatial,
					Message:     fmt.Sprintf("entity %q belongs to %q but is not in the %s group", e.ID, key, idx.group),
					Path:        fmt.Sprintf("groups.%s.%s", idx.group, key),
					ActualValue: e.ID,
				})
			}
		}
	}
}

func validateBoundsEnclosure(g *Graph, r *validation.Report) {
	bounds := g.Metadata.CityBounds
	tolerance := 1.0

	for _, e := range g.Entities {
		halfX := e.Dimensions.X / 2
		halfZ := e.Dimensions.Z / 2

		if e.Position.X-halfX < bounds.Min.X-tolerance || e.Position.X+halfX > bounds.Max.X+tolerance {
			r.AddWarning(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entity %q X extent [%.1f, %.1f] outside city bounds [%.1f, %.1f]", e.ID, e.Position.X-halfX, e.Position.X+halfX, bounds.Min.X, bounds.Max.X),
				Path:        "metadata.city_bounds",
				ActualValue: e.Position.X,
			})
			break
		}
		if e.Position.Z-halfZ < bounds.Min.Z-tolerance || e.Position.Z+halfZ > bounds.Max.Z+tolerance {
			r.AddWarning(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("entity %q Z extent [%.1f, %.1f] outside city bounds [%.1f, %.1f]", e.ID, e.Position.Z-halfZ, e.Position.Z+halfZ, bounds.Min.Z, bounds.Max.Z),
				Path:        "metadata.city_bounds",
				ActualValue: e.Position.Z,
			})
			break
		}
	}
}

func validateEntityDimensions(g *Graph, r *validation.Report) {
	for _, e := range g.Entities {
		d := e.Dimensions
		bad, expected := false, ""
		switch e.Shape {
		case ShapePlane:
			bad = d.X <= 0 || d.Z <= 0 || d.Y != 0
			expected = "x, z > 0 and y = 0"
		default:
			bad = d.X <= 0 || d.Y <= 0 || d.Z <= 0
			expected = "all dimensions > 0"
		}
		if !bad {
			continue
		}
		r.AddWarning(validation.Result{
			Level:       validation.LevelSpatial,
			Message:     fmt.Sprintf("%s %q has invalid dimensions (%.2f, %.2f, %.2f)", e.Shape, e.ID, d.X, d.Y, d.Z),
			Path:        fmt.Sprintf("entities.%s.dimensions", e.ID),
			ActualValue: fmt.Sprintf("%.2f x %.2f x %.2f", d.X, d.Y, d.Z),
			Expected:    expected,
		})
	}
}
