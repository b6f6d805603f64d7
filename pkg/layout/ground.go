package layout

import "github.com/ChicagoDave/softwarecity/pkg/palette"

// GroundParams sizes and colors the two base plates under the city.
type GroundParams struct {
	GrassMargin     float64
	CityMargin      float64
	GrassColor      palette.RGB
	FoundationColor palette.RGB
}

// Ground is the grass plate and the city foundation laid on top of it.
type Ground struct {
	Grass      Plane `json:"grass"`
	Foundation Plane `json:"foundation"`
}

// LayGround sizes both plates from the component count: each side is
// GridSide(n) * unit plus half of its margin.
func LayGround(n int, p Params, g GroundParams) Ground {
	span := float64(GridSide(n)) * p.Unit
	return Ground{
		Grass: Plane{
			Position: [3]float64{0, p.GrassY(), 0},
			Side:     span + g.GrassMargin/2,
			Color:    g.GrassColor,
		},
		Foundation: Plane{
			Position: [3]float64{0, p.FoundationY(), 0},
			Side:     span + g.CityMargin/2,
			Color:    g.FoundationColor,
		},
	}
}
