package scene2d

// Plan is the top-down 2D view of a city for an SVG renderer. All
// coordinates are [x, z] in the ground plane.
type Plan struct {
	Metadata  Metadata   `json:"metadata"`
	Ground    []Rect2D   `json:"ground"`
	Areas     []Area2D   `json:"areas"`
	Plots     []Plot2D   `json:"plots"`
	Buildings []Rect2D   `json:"buildings"`
	Streets   []Street2D `json:"streets"`
}

// Metadata holds city-level summary data.
type Metadata struct {
	BuildID     string     `json:"build_id"`
	UnitSize    float64    `json:"unit_size"`
	GridSide    int        `json:"grid_side"`
	Extent      [2]float64 `json:"extent"`
	Background  string     `json:"background"`
	GeneratedAt string     `json:"generated_at"`
}

// Rect2D is an axis-aligned rectangle given by its center and size.
type Rect2D struct {
	ID     string     `json:"id"`
	Center [2]float64 `json:"center"`
	Size   [2]float64 `json:"size"`
	Fill   string     `json:"fill"`
}

// Area2D is the legend entry of one usage area.
type Area2D struct {
	Name       string   `json:"name"`
	Fill       string   `json:"fill"`
	Components []string `json:"components"`
}

// Plot2D is one component's cell with its building footprint.
type Plot2D struct {
	Rect2D
	Component string  `json:"component"`
	UsageArea string  `json:"usage_area"`
	Height    float64 `json:"height"`
}

// Street2D is one dependency street drawn as three rectangles.
type Street2D struct {
	ID       string   `json:"id"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	Segments []Rect2D `json:"segments"`
}
