package routing

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/ChicagoDave/softwarecity/pkg/geo"
	"github.com/ChicagoDave/softwarecity/pkg/layout"
	"github.com/ChicagoDave/softwarecity/pkg/palette"
	"github.com/ChicagoDave/softwarecity/pkg/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func streetParams() Params {
	return Params{Unit: 10, Width: 3, Height: 1, BaseY: 0.03, Color: palette.Street}
}

func testBuildings(comps []spec.Component) []layout.Building {
	p := layout.Params{Unit: 10, PlaneOffset: 0.01, BuildingColor: palette.Building}
	return layout.PlaceBuildings(comps, p, nil)
}

func TestRouteStreetSameRow(t *testing.T) {
	src := &layout.Building{Component: &spec.Component{Name: "X"}, Coordinate: geo.Pt(-5, 0)}
	dst := &layout.Building{Component: &spec.Component{Name: "Y"}, Coordinate: geo.Pt(5, 0)}

	s, err := RouteStreet(src, dst, streetParams())
	require.NoError(t, err)
	assert.Equal(t, "X", s.From)
	assert.Equal(t, "Y", s.To)

	stubA, conn, stubB := s.Segments[0], s.Segments[1], s.Segments[2]

	// Stubs: half a cell long, running from the center to the plot edge.
	assert.Equal(t, [3]float64{3, 1, 5}, stubA.Size)
	assert.Equal(t, [3]float64{-5, 0.03, 2.5}, stubA.Position)
	assert.Equal(t, [3]float64{5, 0.03, 2.5}, stubB.Position)
	assert.Equal(t, stubA.Size, stubB.Size)

	// Connector spans both stubs along x at the far edge.
	assert.Equal(t, [3]float64{13, 1, 3}, conn.Size)
	assert.Equal(t, [3]float64{0, 0.03, 3.5}, conn.Position)

	for _, seg := range s.Segments {
		assert.Equal(t, palette.Street, seg.Color)
		assert.Equal(t, 0.03, seg.Position[1])
	}
}

func TestRouteStreetConnectorTouchesStubEnds(t *testing.T) {
	src := &layout.Building{Component: &spec.Component{Name: "A"}, Coordinate: geo.Pt(20, -10)}
	dst := &layout.Building{Component: &spec.Component{Name: "B"}, Coordinate: geo.Pt(-20, -10)}
	p := streetParams()

	s, err := RouteStreet(src, dst, p)
	require.NoError(t, err)

	conn := s.Segments[1]
	lo := conn.Position[0] - conn.Size[0]/2
	hi := conn.Position[0] + conn.Size[0]/2
	assert.InDelta(t, -20-p.Width/2, lo, 1e-9)
	assert.InDelta(t, 20+p.Width/2, hi, 1e-9)

	stubEnd := s.Segments[0].Position[2] + s.Segments[0].Size[2]/2
	connFar := conn.Position[2] + conn.Size[2]/2
	assert.InDelta(t, stubEnd, connFar, 1e-9)
}

// assertConnected checks that both stubs overlap the connector on both axes.
func assertConnected(t *testing.T, s Street) {
	t.Helper()
	span := func(b layout.Box, axis int) (float64, float64) {
		return b.Position[axis] - b.Size[axis]/2, b.Position[axis] + b.Size[axis]/2
	}
	conn := s.Segments[1]
	for _, i := range []int{0, 2} {
		stub := s.Segments[i]
		for _, axis := range []int{0, 2} {
			lo, hi := span(stub, axis)
			clo, chi := span(conn, axis)
			assert.True(t, lo <= chi && clo <= hi,
				"segment %d axis %d [%.2f,%.2f] misses connector [%.2f,%.2f]", i, axis, lo, hi, clo, chi)
		}
	}
}

func TestRouteStreetAcrossRows(t *testing.T) {
	p := streetParams()
	lower := &layout.Building{Component: &spec.Component{Name: "A"}, Coordinate: geo.Pt(-5, -5)}
	upper := &layout.Building{Component: &spec.Component{Name: "B"}, Coordinate: geo.Pt(5, 5)}

	s, err := RouteStreet(lower, upper, p)
	require.NoError(t, err)
	assertConnected(t, s)

	source, conn, target := s.Segments[0], s.Segments[1], s.Segments[2]
	assert.Equal(t, [3]float64{-5, 0.03, -2.5}, source.Position)
	assert.Equal(t, 5.0, source.Size[2])
	assert.Equal(t, [3]float64{0, 0.03, -1.5}, conn.Position)
	assert.Equal(t, [3]float64{13, 1, 3}, conn.Size)
	// Target stub reaches from the connector band [-3, 0] up to B's center.
	assert.Equal(t, [3]float64{5, 0.03, 1}, target.Position)
	assert.Equal(t, 8.0, target.Size[2])

	back, err := RouteStreet(upper, lower, p)
	require.NoError(t, err)
	assertConnected(t, back)
	// Connector sits at B's far edge [7, 10]; A's stub climbs from -5.
	assert.Equal(t, 8.5, back.Segments[1].Position[2])
	assert.Equal(t, 15.0, back.Segments[2].Size[2])
}

func TestRouteStreetSameColumn(t *testing.T) {
	p := streetParams()
	src := &layout.Building{Component: &spec.Component{Name: "A"}, Coordinate: geo.Pt(5, -5)}
	dst := &layout.Building{Component: &spec.Component{Name: "B"}, Coordinate: geo.Pt(5, 5)}

	s, err := RouteStreet(src, dst, p)
	require.NoError(t, err)
	assertConnected(t, s)

	conn := s.Segments[1]
	assert.Equal(t, [3]float64{p.Width, p.Height, p.Width}, conn.Size)
	assert.Equal(t, 5.0, conn.Position[0])
}

func TestRouteStreetsGridIsConnected(t *testing.T) {
	comps := make([]spec.Component, 9)
	for i := range comps {
		comps[i] = spec.Component{Name: string(rune('a' + i)), Width: 1, Height: 1, Length: 1}
	}
	for i := range comps {
		for j := range comps {
			if i != j {
				comps[i].Requires = append(comps[i].Requires, comps[j].Name)
			}
		}
	}

	net, _ := RouteStreets(testBuildings(comps), streetParams(), nil)
	require.Len(t, net.Streets, 72)
	for _, s := range net.Streets {
		assertConnected(t, s)
	}
}

func TestRouteStreetUnresolved(t *testing.T) {
	src := &layout.Building{Component: &spec.Component{Name: "X"}}
	_, err := RouteStreet(src, nil, streetParams())
	assert.ErrorIs(t, err, ErrUnresolvedTarget)
}

func TestRouteStreetSelfEdge(t *testing.T) {
	b := &layout.Building{Component: &spec.Component{Name: "X"}}
	_, err := RouteStreet(b, b, streetParams())
	assert.ErrorIs(t, err, ErrSelfEdge)
}

func TestRouteStreetsScenario(t *testing.T) {
	buildings := testBuildings([]spec.Component{
		{Name: "X", UsageArea: "A", Width: 5, Height: 2, Length: 5, Requires: []string{"Y"}},
		{Name: "Y", UsageArea: "A", Width: 5, Height: 3, Length: 5},
	})

	net, report := RouteStreets(buildings, streetParams(), nil)
	require.Len(t, net.Streets, 1)
	assert.Empty(t, net.Unresolved)
	assert.Equal(t, "street_0", net.Streets[0].ID)
	assert.Equal(t, "X", net.Streets[0].From)
	assert.Equal(t, "Y", net.Streets[0].To)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Warnings)
}

func TestRouteStreetsUnresolvedIsReported(t *testing.T) {
	buildings := testBuildings([]spec.Component{
		{Name: "X", Width: 1, Height: 1, Length: 1, Requires: []string{"Z"}},
	})

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	net, report := RouteStreets(buildings, streetParams(), logger)
	assert.Empty(t, net.Streets)
	assert.Equal(t, []Edge{{From: "X", To: "Z"}}, net.Unresolved)
	assert.True(t, report.Valid, "unresolved references are not fatal")
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, logs.String(), "name reference could not be found")
	assert.Contains(t, logs.String(), "requires=Z")
}

func TestRouteStreetsDuplicatesAndSelfEdges(t *testing.T) {
	buildings := testBuildings([]spec.Component{
		{Name: "a", Width: 1, Height: 1, Length: 1, Requires: []string{"b", "b", "a"}},
		{Name: "b", Width: 1, Height: 1, Length: 1, Requires: []string{"a"}},
	})

	net, _ := RouteStreets(buildings, streetParams(), nil)
	assert.Len(t, net.Streets, 3, "duplicates each build a street")
	assert.Equal(t, []Edge{{From: "a", To: "a"}}, net.SelfEdges)

	ids := map[string]bool{}
	for _, s := range net.Streets {
		assert.False(t, ids[s.ID], "duplicate street id %s", s.ID)
		ids[s.ID] = true
	}
}

func TestBuildConnectivity(t *testing.T) {
	streets := []Street{
		{From: "a", To: "b"},
		{From: "a", To: "b"},
		{From: "c", To: "a"},
	}
	conn := BuildConnectivity(streets)
	assert.Equal(t, []string{"b", "c"}, conn["a"])
	assert.Equal(t, []string{"a"}, conn["b"])
	assert.Equal(t, []string{"a"}, conn["c"])

	out, in := Degrees(streets)
	assert.Equal(t, 2, out["a"])
	assert.Equal(t, 2, in["b"])
	assert.Equal(t, 1, in["a"])
}
