package analytics

// Margins are the fixed paddings that scale with the unit size.
type Margins struct {
	Unit  float64 `json:"unit_margin"`  // added to the largest footprint
	Grass float64 `json:"grass_margin"` // half of it pads the grass plate
	City  float64 `json:"city_margin"`  // half of it pads the foundation plate
}

// DefaultMargins match the reference city proportions.
var DefaultMargins = Margins{Unit: 10, Grass: 500, City: 10}

// AreaSummary holds computed data for one usage area.
type AreaSummary struct {
	Name         string  `json:"name"`
	Ordinal      int     `json:"ordinal"`
	Components   int     `json:"components"`
	TotalVolume  float64 `json:"total_volume"`
	MaxHeight    float64 `json:"max_height"`
	OutgoingDeps int     `json:"outgoing_deps"`
}

// ComponentStats holds per-component dependency data.
type ComponentStats struct {
	Name      string  `json:"name"`
	UsageArea string  `json:"usage_area"`
	Volume    float64 `json:"volume"`
	FanOut    int     `json:"fan_out"`
	FanIn     int     `json:"fan_in"`
}

// Summary is the statistical view of a city document.
type Summary struct {
	Areas      []AreaSummary    `json:"areas"`
	Components []ComponentStats `json:"components"`
	Cycles     [][]string       `json:"cycles,omitempty"`
}
