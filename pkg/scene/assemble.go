package scene

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ChicagoDave/softwarecity/pkg/analytics"
	"github.com/ChicagoDave/softwarecity/pkg/layout"
	"github.com/ChicagoDave/softwarecity/pkg/palette"
	"github.com/ChicagoDave/softwarecity/pkg/routing"
	"github.com/ChicagoDave/softwarecity/pkg/spec"
	"github.com/ChicagoDave/softwarecity/pkg/validation"
)

// ErrInvalidDocument is returned when the city document fails schema
// validation. The accompanying report lists the problems.
var ErrInvalidDocument = errors.New("invalid city document")

// Assemble builds the complete city for d in one synchronous pass:
// tag and flatten components, resolve the unit size, lay the ground, set up
// lights and sky, color the usage areas, place every building on its plot and
// route one street per resolvable dependency edge. Unresolved references are
// logged and reported but never fail the build.
func Assemble(d *spec.CityData, opts Options) (*Graph, *validation.Report, error) {
	report := validation.ValidateSchema(d)
	if !report.Valid {
		return nil, report, fmt.Errorf("%w: %s", ErrInvalidDocument, report.Summary)
	}
	log := opts.logger()

	params, analyticsReport := analytics.Resolve(d, opts.Margins)
	report.Merge(analyticsReport)

	components := d.Flatten()
	lp := layout.Params{
		Unit:          params.UnitSize,
		PlaneOffset:   opts.PlaneOffset,
		BuildingColor: opts.Colors.Building,
	}

	g := NewGraph()
	g.Environment = assembleEnvironment(opts)

	if len(components) == 0 {
		log.Warn("city document has no components; emitting an empty city")
		g.Metadata = metadataFor(g, params, 0, 0)
		return g, report, nil
	}

	ground := layout.LayGround(len(components), lp, layout.GroundParams{
		GrassMargin:     opts.Margins.Grass,
		CityMargin:      opts.Margins.City,
		GrassColor:      opts.Colors.Grass,
		FoundationColor: opts.Colors.Foundation,
	})
	assembleGround(ground, g)

	areaColors := palette.AreaColors(params.UsageAreas, opts.Gradient)
	for area, c := range areaColors {
		g.Metadata.AreaColors[area] = c
	}

	buildings := layout.PlaceBuildings(components, lp, areaColors)

	net, routeReport := routing.RouteStreets(buildings, routing.Params{
		Unit:   params.UnitSize,
		Width:  opts.StreetWidth,
		Height: opts.StreetHeight,
		BaseY:  lp.VolumeY(),
		Color:  opts.Colors.Street,
	}, log)
	// Unresolved and self references were already reported by the schema pass.
	for _, res := range routeReport.Info {
		report.AddInfo(res)
	}

	assembleBuildings(buildings, routing.BuildConnectivity(net.Streets), g)
	assembleStreets(net.Streets, g)

	g.Metadata = metadataFor(g, params, len(net.Streets), len(net.Unresolved))

	log.Info("city assembled",
		"components", params.ComponentCount,
		"usage_areas", params.UsageAreaCount,
		"streets", len(net.Streets),
		"unresolved", len(net.Unresolved),
		"unit_size", params.UnitSize,
	)
	return g, report, nil
}

func metadataFor(g *Graph, p *analytics.ResolvedParameters, streets, unresolved int) Metadata {
	return Metadata{
		BuildID:         uuid.NewString(),
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
		CityBounds:      computeBounds(g.Entities),
		UnitSize:        p.UnitSize,
		GridSide:        p.GridSide,
		ComponentCount:  p.ComponentCount,
		UsageAreaCount:  p.UsageAreaCount,
		StreetCount:     streets,
		UnresolvedCount: unresolved,
		AreaColors:      g.Metadata.AreaColors,
	}
}

func assembleEnvironment(opts Options) Environment {
	pos := opts.PointLightPos
	return Environment{
		Background: opts.Colors.Sky,
		Lights: []Light{
			{Type: LightPoint, Color: opts.Colors.Light, Intensity: 1, Position: &pos},
			{Type: LightAmbient, Color: opts.Colors.Light, Intensity: 1},
		},
	}
}

func assembleGround(ground layout.Ground, g *Graph) {
	addEntity(g, planeEntity("grass", EntityGrass, LayerGround, ground.Grass))
	addEntity(g, planeEntity("foundation", EntityFoundation, LayerFoundation, ground.Foundation))
}

func assembleBuildings(buildings []layout.Building, neighbors map[string][]string, g *Graph) {
	for i := range buildings {
		b := &buildings[i]
		c := b.Component

		plot := planeEntity("plot/"+c.Name, EntityPlot, LayerPlot, b.Plot)
		plot.UsageArea = c.UsageArea
		plot.Component = c.Name
		addEntity(g, plot)

		bldg := boxEntity("building/"+c.Name, EntityBuilding, b.Volume)
		bldg.UsageArea = c.UsageArea
		bldg.Component = c.Name
		bldg.Metadata = map[string]any{
			"height":   c.Height,
			"width":    c.Width,
			"length":   c.Length,
			"volume":   c.Volume(),
			"requires": c.Requires,
		}
		if n := neighbors[c.Name]; len(n) > 0 {
			bldg.Metadata["connected_to"] = n
		}
		addEntity(g, bldg)
	}
}

var streetParts = [3]string{"source", "connector", "target"}

func assembleStreets(streets []routing.Street, g *Graph) {
	for _, s := range streets {
		for i, seg := range s.Segments {
			e := boxEntity(fmt.Sprintf("%s/%s", s.ID, streetParts[i]), EntityStreet, seg)
			e.Component = s.From
			e.Metadata = map[string]any{
				"street": s.ID,
				"from":   s.From,
				"to":     s.To,
				"part":   streetParts[i],
			}
			addEntity(g, e)
		}
	}
}

func boxEntity(id string, t EntityType, b layout.Box) Entity {
	return Entity{
		ID:         id,
		Type:       t,
		Shape:      ShapeBox,
		Position:   Vec3{X: b.Position[0], Y: b.Position[1], Z: b.Position[2]},
		Dimensions: Vec3{X: b.Size[0], Y: b.Size[1], Z: b.Size[2]},
		Rotation:   identityQuat(),
		Color:      b.Color,
		Layer:      LayerSurface,
	}
}

func planeEntity(id string, t EntityType, layer LayerType, p layout.Plane) Entity {
	return Entity{
		ID:         id,
		Type:       t,
		Shape:      ShapePlane,
		Position:   Vec3{X: p.Position[0], Y: p.Position[1], Z: p.Position[2]},
		Dimensions: Vec3{X: p.Side, Y: 0, Z: p.Side},
		Rotation:   flatQuat(),
		Color:      p.Color,
		Layer:      layer,
	}
}

// addEntity appends an entity and updates all group indices.
func addEntity(g *Graph, e Entity) {
	g.Entities = append(g.Entities, e)
	id := e.ID

	if e.UsageArea != "" {
		g.Groups.UsageAreas[e.UsageArea] = append(g.Groups.UsageAreas[e.UsageArea], id)
	}
	if e.Component != "" {
		g.Groups.Components[e.Component] = append(g.Groups.Components[e.Component], id)
	}
	g.Groups.Layers[e.Layer] = append(g.Groups.Layers[e.Layer], id)
	g.Groups.EntityTypes[e.Type] = append(g.Groups.EntityTypes[e.Type], id)
}

// computeBounds calculates the AABB of all entities.
func computeBounds(entities []Entity) BoundingBox {
	if len(entities) == 0 {
		return BoundingBox{}
	}
	minV := Vec3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64}
	maxV := Vec3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64}

	for _, e := range entities {
		halfX := e.Dimensions.X / 2
		halfZ := e.Dimensions.Z / 2

		minV.X = math.Min(minV.X, e.Position.X-halfX)
		maxV.X = math.Max(maxV.X, e.Position.X+halfX)
		minV.Y = math.Min(minV.Y, e.Position.Y)
		maxV.Y = math.Max(maxV.Y, e.Position.Y+e.Dimensions.Y)
		minV.Z = math.Min(minV.Z, e.Position.Z-halfZ)
		maxV.Z = math.Max(maxV.Z, e.Position.Z+halfZ)
	}
	return BoundingBox{Min: minV, Max: maxV}
}

func identityQuat() [4]float64 {
	return [4]float64{0, 0, 0, 1}
}

// flatQuat rotates -90 degrees about X, laying an XY plane onto XZ.
func flatQuat() [4]float64 {
	half := -math.Pi / 4
	return [4]float64{math.Sin(half), 0, 0, math.Cos(half)}
}
