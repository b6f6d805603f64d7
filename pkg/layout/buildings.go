package layout

import (
	"github.com/ChicagoDave/softwarecity/pkg/geo"
	"github.com/ChicagoDave/softwarecity/pkg/palette"
	"github.com/ChicagoDave/softwarecity/pkg/spec"
)

// Params holds the scale and styling shared by every building.
type Params struct {
	Unit          float64     // global cell size, see UnitSize
	PlaneOffset   float64     // vertical gap between stacked flat layers
	BuildingColor palette.RGB
}

// Elevations of the stacked layers, in multiples of the plane offset.
const (
	grassLevel = iota
	foundationLevel
	plotLevel
	volumeLevel
)

// GrassY returns the elevation of the grass plate.
func (p Params) GrassY() float64 { return grassLevel * p.PlaneOffset }

// FoundationY returns the elevation of the city foundation plate.
func (p Params) FoundationY() float64 { return foundationLevel * p.PlaneOffset }

// PlotY returns the elevation of the usage-area plots.
func (p Params) PlotY() float64 { return plotLevel * p.PlaneOffset }

// VolumeY returns the base elevation of buildings and streets, just above
// the plots.
func (p Params) VolumeY() float64 { return volumeLevel * p.PlaneOffset }

// Building is the geometric realization of one component.
type Building struct {
	Component  *spec.Component `json:"-"`
	Coordinate geo.Point2D     `json:"coordinate"`
	Volume     Box             `json:"volume"`
	Plot       Plane           `json:"plot"`
}

// Name returns the name of the originating component.
func (b *Building) Name() string {
	return b.Component.Name
}

// Footprint returns the ground rectangle of the building's plot.
func (b *Building) Footprint() geo.Rect {
	return geo.RectAround(b.Coordinate, b.Plot.Side, b.Plot.Side)
}

// SynthesizeBuilding converts one component and its coordinate into a
// building volume and the plot beneath it. The plot takes the color of the
// component's usage area from areaColors; c is not modified.
func SynthesizeBuilding(c *spec.Component, at geo.Point2D, p Params, areaColors map[string]palette.RGB) Building {
	return Building{
		Component:  c,
		Coordinate: at,
		Volume: Box{
			Position: [3]float64{at.X, p.VolumeY(), at.Z},
			Size:     [3]float64{c.Width, c.Height, c.Length},
			Color:    p.BuildingColor,
		},
		Plot: Plane{
			Position: [3]float64{at.X, p.PlotY(), at.Z},
			Side:     p.Unit,
			Color:    areaColors[c.UsageArea],
		},
	}
}

// PlaceBuildings lays out every component on the grid and synthesizes its
// building. The result is in the same order as components.
func PlaceBuildings(components []spec.Component, p Params, areaColors map[string]palette.RGB) []Building {
	coords := GridCoordinates(len(components), p.Unit)
	buildings := make([]Building, len(components))
	for i := range components {
		buildings[i] = SynthesizeBuilding(&components[i], coords[i], p, areaColors)
	}
	return buildings
}
