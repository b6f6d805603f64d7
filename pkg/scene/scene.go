package scene

import "github.com/ChicagoDave/softwarecity/pkg/palette"

// LayerType identifies a stacked elevation layer. Flat layers are offset
// from each other so coplanar plates never z-fight.
type LayerType string

const (
	LayerGround     LayerType = "ground"
	LayerFoundation LayerType = "foundation"
	LayerPlot       LayerType = "plot"
	LayerSurface    LayerType = "surface"
)

// EntityType identifies the kind of entity.
type EntityType string

const (
	EntityGrass      EntityType = "grass"
	EntityFoundation EntityType = "foundation"
	EntityPlot       EntityType = "plot"
	EntityBuilding   EntityType = "building"
	EntityStreet     EntityType = "street"
)

// Shape tells the renderer which primitive to build.
type Shape string

const (
	ShapeBox   Shape = "box"
	ShapePlane Shape = "plane"
)

// Vec3 is a 3D vector.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// BoundingBox defines an axis-aligned bounding box.
type BoundingBox struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// Entity is a single renderable primitive. Position is the center of the
// footprint at the entity's base elevation; a box's center is therefore
// Position.Y + Dimensions.Y/2. Planes have zero Y extent and carry the
// rotation that lays an XY plane geometry flat on the ground.
type Entity struct {
	ID         string         `json:"id"`
	Type       EntityType     `json:"type"`
	Shape      Shape          `json:"shape"`
	Position   Vec3           `json:"position"`
	Dimensions Vec3           `json:"dimensions"`
	Rotation   [4]float64     `json:"rotation"` // quaternion [x, y, z, w]
	Color      palette.RGB    `json:"color"`
	Layer      LayerType      `json:"layer"`
	UsageArea  string         `json:"usage_area,omitempty"`
	Component  string         `json:"component,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// LightType identifies a light source.
type LightType string

const (
	LightAmbient LightType = "ambient"
	LightPoint   LightType = "point"
)

// Light is a light source handed to the renderer.
type Light struct {
	Type      LightType   `json:"type"`
	Color     palette.RGB `json:"color"`
	Intensity float64     `json:"intensity"`
	Position  *Vec3       `json:"position,omitempty"`
}

// Environment holds the scene-wide background and lights.
type Environment struct {
	Background palette.RGB `json:"background"`
	Lights     []Light     `json:"lights"`
}

// Graph is the complete scene graph output of the assembler.
type Graph struct {
	Metadata    Metadata    `json:"metadata"`
	Environment Environment `json:"environment"`
	Entities    []Entity    `json:"entities"`
	Groups      Groups      `json:"groups"`
}

// Metadata holds scene-level information.
type Metadata struct {
	BuildID         string                 `json:"build_id"`
	GeneratedAt     string                 `json:"generated_at"`
	CityBounds      BoundingBox            `json:"city_bounds"`
	UnitSize        float64                `json:"unit_size"`
	GridSide        int                    `json:"grid_side"`
	ComponentCount  int                    `json:"component_count"`
	UsageAreaCount  int                    `json:"usage_area_count"`
	StreetCount     int                    `json:"street_count"`
	UnresolvedCount int                    `json:"unresolved_count"`
	AreaColors      map[string]palette.RGB `json:"area_colors"`
}

// Groups organizes entity IDs by various axes for fast filtering.
type Groups struct {
	UsageAreas  map[string][]string     `json:"usage_areas"`
	Components  map[string][]string     `json:"components"`
	Layers      map[LayerType][]string  `json:"layers"`
	EntityTypes map[EntityType][]string `json:"entity_types"`
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	return &Graph{
		Entities: []Entity{},
		Environment: Environment{
			Lights: []Light{},
		},
		Metadata: Metadata{
			AreaColors: make(map[string]palette.RGB),
		},
		Groups: Groups{
			UsageAreas:  make(map[string][]string),
			Components:  make(map[string][]string),
			Layers:      make(map[LayerType][]string),
			EntityTypes: make(map[EntityType][]string),
		},
	}
}

// EntitiesOfType returns every entity of type t in emission order.
func (g *Graph) EntitiesOfType(t EntityType) []Entity {
	var out []Entity
	for _, e := range g.Entities {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// FindEntity returns the entity with the given ID.
func (g *Graph) FindEntity(id string) (Entity, bool) {
	for _, e := range g.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}
