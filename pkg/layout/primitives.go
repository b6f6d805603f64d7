package layout

import "github.com/ChicagoDave/softwarecity/pkg/palette"

// Box is an axis-aligned volume. Position is the center of its footprint
// at its base elevation: [x, y, z] with y the bottom face.
type Box struct {
	Position [3]float64  `json:"position"`
	Size     [3]float64  `json:"size"` // [x, y, z] extents
	Color    palette.RGB `json:"color"`
}

// Top returns the elevation of the box's upper face.
func (b Box) Top() float64 {
	return b.Position[1] + b.Size[1]
}

// Plane is a flat square plate lying in the ground plane.
type Plane struct {
	Position [3]float64  `json:"position"`
	Side     float64     `json:"side"`
	Color    palette.RGB `json:"color"`
}
