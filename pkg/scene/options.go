package scene

import (
	"io"
	"log/slog"

	"github.com/ChicagoDave/softwarecity/pkg/analytics"
	"github.com/ChicagoDave/softwarecity/pkg/palette"
)

// Colors are the fixed colors of everything that is not a usage-area plot.
type Colors struct {
	Sky        palette.RGB
	Grass      palette.RGB
	Foundation palette.RGB
	Building   palette.RGB
	Street     palette.RGB
	Light      palette.RGB
}

// Options controls the proportions and styling of an assembled city.
type Options struct {
	Margins       analytics.Margins
	PlaneOffset   float64
	StreetWidth   float64
	StreetHeight  float64
	Gradient      palette.Gradient
	Colors        Colors
	PointLightPos Vec3
	Logger        *slog.Logger
}

// DefaultOptions returns the reference proportions and palette.
func DefaultOptions() Options {
	return Options{
		Margins:      analytics.DefaultMargins,
		PlaneOffset:  0.01,
		StreetWidth:  3,
		StreetHeight: 1,
		Gradient:     palette.DefaultGradient,
		Colors: Colors{
			Sky:        palette.Sky,
			Grass:      palette.Ground,
			Foundation: palette.Foundation,
			Building:   palette.Building,
			Street:     palette.Street,
			Light:      palette.White,
		},
		PointLightPos: Vec3{X: 5, Y: 5, Z: 5},
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
