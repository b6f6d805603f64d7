package routing

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/ChicagoDave/softwarecity/pkg/layout"
	"github.com/ChicagoDave/softwarecity/pkg/palette"
	"github.com/ChicagoDave/softwarecity/pkg/validation"
)

var (
	// ErrUnresolvedTarget is returned when a requires entry names no building.
	ErrUnresolvedTarget = errors.New("name reference could not be found")
	// ErrSelfEdge is returned when a building would be connected to itself.
	ErrSelfEdge = errors.New("component requires itself")
)

// Params holds the fixed street dimensions.
type Params struct {
	Unit   float64 // global cell size shared with the buildings
	Width  float64
	Height float64
	BaseY  float64 // elevation of the street bottoms, above the plots
	Color  palette.RGB
}

// Street is the three-part connector realizing one dependency edge.
// Segments are ordered: source stub, connector, target stub.
type Street struct {
	ID       string        `json:"id"`
	From     string        `json:"from"`
	To       string        `json:"to"`
	Segments [3]layout.Box `json:"segments"`
}

// Edge is a requires entry from one component to another.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Network is the outcome of routing every dependency edge.
type Network struct {
	Streets    []Street `json:"streets"`
	Unresolved []Edge   `json:"unresolved,omitempty"`
	SelfEdges  []Edge   `json:"self_edges,omitempty"`
}

// RouteStreet synthesizes the L-shaped street from src to dst. The source
// stub runs in +z from the source center to the far edge of its plot, half a
// cell long. The connector runs along x at that edge, |dx| + Width long so it
// covers both stub columns. The target stub runs from the target center to
// the connector band, so its length follows from the two rows; within one
// row it mirrors the source stub. A nil dst yields ErrUnresolvedTarget.
func RouteStreet(src, dst *layout.Building, p Params) (Street, error) {
	if dst == nil {
		return Street{}, ErrUnresolvedTarget
	}
	if src == dst || src.Name() == dst.Name() {
		return Street{}, ErrSelfEdge
	}

	half := p.Unit / 2
	a, b := src.Coordinate, dst.Coordinate
	connHi := a.Z + half
	connLo := connHi - p.Width

	source := zSpan(a.X, a.Z, connHi, p)
	target := zSpan(b.X, math.Min(b.Z, connLo), math.Max(b.Z, connHi), p)

	connector := layout.Box{
		Position: [3]float64{(a.X + b.X) / 2, p.BaseY, connHi - p.Width/2},
		Size:     [3]float64{math.Abs(a.X-b.X) + p.Width, p.Height, p.Width},
		Color:    p.Color,
	}

	return Street{
		From:     src.Name(),
		To:       dst.Name(),
		Segments: [3]layout.Box{source, connector, target},
	}, nil
}

// zSpan is a street segment at column x covering [z0, z1].
func zSpan(x, z0, z1 float64, p Params) layout.Box {
	return layout.Box{
		Position: [3]float64{x, p.BaseY, (z0 + z1) / 2},
		Size:     [3]float64{p.Width, p.Height, z1 - z0},
		Color:    p.Color,
	}
}

// RouteStreets routes every requires entry of every building. Targets are
// resolved through a name index built once. Unresolved and self-referencing
// entries are logged, reported as warnings and skipped; duplicate entries
// each produce their own street. A nil logger discards diagnostics.
func RouteStreets(buildings []layout.Building, p Params, logger *slog.Logger) (*Network, *validation.Report) {
	report := validation.NewReport()
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	index := make(map[string]*layout.Building, len(buildings))
	for i := range buildings {
		index[buildings[i].Name()] = &buildings[i]
	}

	net := &Network{Streets: []Street{}}
	for i := range buildings {
		src := &buildings[i]
		for _, target := range src.Component.Requires {
			street, err := RouteStreet(src, index[target], p)
			edge := Edge{From: src.Name(), To: target}

			switch {
			case errors.Is(err, ErrUnresolvedTarget):
				logger.Warn("name reference could not be found", "component", edge.From, "requires", edge.To)
				net.Unresolved = append(net.Unresolved, edge)
				report.AddWarning(validation.Result{
					Level:       validation.LevelReference,
					Message:     fmt.Sprintf("%s requires unknown component %q; street skipped", edge.From, edge.To),
					Path:        fmt.Sprintf("components.%s.requires", edge.From),
					ActualValue: edge.To,
				})
				continue
			case errors.Is(err, ErrSelfEdge):
				logger.Warn("skipping self-referencing dependency", "component", edge.From)
				net.SelfEdges = append(net.SelfEdges, edge)
				report.AddWarning(validation.Result{
					Level:   validation.LevelReference,
					Message: fmt.Sprintf("%s requires itself; street skipped", edge.From),
					Path:    fmt.Sprintf("components.%s.requires", edge.From),
				})
				continue
			}

			street.ID = fmt.Sprintf("street_%d", len(net.Streets))
			net.Streets = append(net.Streets, street)
		}
	}

	report.AddInfo(validation.Result{
		Level: validation.LevelReference,
		Message: fmt.Sprintf("%d streets routed, %d unresolved, %d self-edges skipped",
			len(net.Streets), len(net.Unresolved), len(net.SelfEdges)),
	})
	return net, report
}
