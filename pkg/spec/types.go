package spec

// CityData is the input document describing a software system.
type CityData struct {
	UsageAreas []UsageArea `yaml:"usageAreas" json:"usageAreas"`
}

// UsageArea groups the components that share a usage context.
type UsageArea struct {
	Name       string      `yaml:"name" json:"name"`
	Components []Component `yaml:"components" json:"components"`
}

// Component is one unit of the visualized system. UsageArea is stamped
// during flattening and is never read from the document.
type Component struct {
	Name      string   `yaml:"name" json:"name"`
	UsageArea string   `yaml:"-" json:"usageArea,omitempty"`
	Height    float64  `yaml:"height" json:"height"`
	Width     float64  `yaml:"width" json:"width"`
	Length    float64  `yaml:"length" json:"length"`
	Requires  []string `yaml:"requires" json:"requires"`
}

// Footprint returns the larger of the component's two ground-plane sides.
func (c Component) Footprint() float64 {
	if c.Width > c.Length {
		return c.Width
	}
	return c.Length
}

// Volume returns width * height * length.
func (c Component) Volume() float64 {
	return c.Width * c.Height * c.Length
}

// Flatten returns every component in document order with its UsageArea
// stamped. The returned slice is a copy; d is not modified.
func (d *CityData) Flatten() []Component {
	var out []Component
	for _, area := range d.UsageAreas {
		for _, c := range area.Components {
			c.UsageArea = area.Name
			c.Requires = append([]string(nil), c.Requires...)
			out = append(out, c)
		}
	}
	return out
}

// AreaOrder returns the distinct usage areas of components in first-seen order.
func AreaOrder(components []Component) []string {
	seen := make(map[string]bool)
	var areas []string
	for _, c := range components {
		if seen[c.UsageArea] {
			continue
		}
		seen[c.UsageArea] = true
		areas = append(areas, c.UsageArea)
	}
	return areas
}

// ComponentCount returns the number of components across all usage areas.
func (d *CityData) ComponentCount() int {
	n := 0
	for _, area := range d.UsageAreas {
		n += len(area.Components)
	}
	return n
}

// EdgeCount returns the total number of requires entries.
func (d *CityData) EdgeCount() int {
	n := 0
	for _, area := range d.UsageAreas {
		for _, c := range area.Components {
			n += len(c.Requires)
		}
	}
	return n
}
