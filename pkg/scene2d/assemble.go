package scene2d

import (
	"sort"

	"github.com/ChicagoDave/softwarecity/pkg/palette"
	"github.com/ChicagoDave/softwarecity/pkg/scene"
)

// Assemble2D projects a scene graph onto the ground plane. Heights are
// dropped except as building attributes; colors become hex strings. Entity
// order from the graph is preserved within each collection.
func Assemble2D(g *scene.Graph) *Plan {
	p := &Plan{
		Metadata:  assembleMetadata(g),
		Ground:    []Rect2D{},
		Plots:     []Plot2D{},
		Buildings: []Rect2D{},
		Streets:   []Street2D{},
	}
	if g == nil {
		p.Areas = []Area2D{}
		return p
	}

	plots := make(map[string]int)
	streets := make(map[string]int)
	for _, e := range g.Entities {
		switch e.Type {
		case scene.EntityGrass, scene.EntityFoundation:
			p.Ground = append(p.Ground, toRect(e))
		case scene.EntityPlot:
			plots[e.Component] = len(p.Plots)
			p.Plots = append(p.Plots, Plot2D{
				Rect2D:    toRect(e),
				Component: e.Component,
				UsageArea: e.UsageArea,
			})
		case scene.EntityBuilding:
			p.Buildings = append(p.Buildings, toRect(e))
			if i, ok := plots[e.Component]; ok {
				p.Plots[i].Height = e.Dimensions.Y
			}
		case scene.EntityStreet:
			id, _ := e.Metadata["street"].(string)
			idx, ok := streets[id]
			if !ok {
				from, _ := e.Metadata["from"].(string)
				to, _ := e.Metadata["to"].(string)
				idx = len(p.Streets)
				streets[id] = idx
				p.Streets = append(p.Streets, Street2D{ID: id, From: from, To: to})
			}
			p.Streets[idx].Segments = append(p.Streets[idx].Segments, toRect(e))
		}
	}

	p.Areas = assembleAreas(g, p.Plots)
	return p
}

func assembleMetadata(g *scene.Graph) Metadata {
	if g == nil {
		return Metadata{}
	}
	b := g.Metadata.CityBounds
	return Metadata{
		BuildID:     g.Metadata.BuildID,
		UnitSize:    g.Metadata.UnitSize,
		GridSide:    g.Metadata.GridSide,
		Extent:      [2]float64{b.Max.X - b.Min.X, b.Max.Z - b.Min.Z},
		Background:  g.Environment.Background.Hex(),
		GeneratedAt: g.Metadata.GeneratedAt,
	}
}

// assembleAreas lists usage areas in the order their first plot appears,
// falling back to name order for areas without plots.
func assembleAreas(g *scene.Graph, plots []Plot2D) []Area2D {
	order := make(map[string]int)
	areas := []Area2D{}
	for _, pl := range plots {
		idx, ok := order[pl.UsageArea]
		if !ok {
			idx = len(areas)
			order[pl.UsageArea] = idx
			areas = append(areas, Area2D{
				Name: pl.UsageArea,
				Fill: areaFill(g.Metadata.AreaColors, pl.UsageArea),
			})
		}
		areas[idx].Components = append(areas[idx].Components, pl.Component)
	}

	var rest []string
	for name := range g.Metadata.AreaColors {
		if _, ok := order[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		areas = append(areas, Area2D{
			Name:       name,
			Fill:       areaFill(g.Metadata.AreaColors, name),
			Components: []string{},
		})
	}
	return areas
}

func areaFill(colors map[string]palette.RGB, area string) string {
	return colors[area].Hex()
}

func toRect(e scene.Entity) Rect2D {
	return Rect2D{
		ID:     e.ID,
		Center: [2]float64{e.Position.X, e.Position.Z},
		Size:   [2]float64{e.Dimensions.X, e.Dimensions.Z},
		Fill:   e.Color.Hex(),
	}
}
