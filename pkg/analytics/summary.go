package analytics

import (
	"sort"

	"github.com/ChicagoDave/softwarecity/pkg/layout"
	"github.com/ChicagoDave/softwarecity/pkg/routing"
	"github.com/ChicagoDave/softwarecity/pkg/spec"
	"github.com/ChicagoDave/softwarecity/pkg/validation"
)

// Summarize computes per-area and per-component statistics. Fan-in and
// fan-out count routed streets, so unresolved and self references are
// excluded. A nil network yields zero degrees.
func Summarize(d *spec.CityData, net *routing.Network) *Summary {
	components := d.Flatten()
	var streets []routing.Street
	if net != nil {
		streets = net.Streets
	}
	out, in := routing.Degrees(streets)

	s := &Summary{
		Areas:      []AreaSummary{},
		Components: make([]ComponentStats, 0, len(components)),
	}

	byArea := make(map[string]int)
	for _, c := range components {
		idx, ok := byArea[c.UsageArea]
		if !ok {
			idx = len(s.Areas)
			byArea[c.UsageArea] = idx
			s.Areas = append(s.Areas, AreaSummary{Name: c.UsageArea, Ordinal: idx})
		}
		a := &s.Areas[idx]
		a.Components++
		a.TotalVolume += c.Volume()
		if c.Height > a.MaxHeight {
			a.MaxHeight = c.Height
		}
		a.OutgoingDeps += out[c.Name]

		s.Components = append(s.Components, ComponentStats{
			Name:      c.Name,
			UsageArea: c.UsageArea,
			Volume:    c.Volume(),
			FanOut:    out[c.Name],
			FanIn:     in[c.Name],
		})
	}

	s.Cycles = findCycles(components)
	return s
}

// findCycles returns the strongly connected components of the requires
// graph that contain more than one component (Tarjan). Each cycle is
// sorted, and cycles are ordered by their first name.
func findCycles(components []spec.Component) [][]string {
	known := make(map[string]bool, len(components))
	for _, c := range components {
		known[c.Name] = true
	}
	edges := make(map[string][]string, len(components))
	for _, c := range components {
		for _, r := range c.Requires {
			if known[r] && r != c.Name {
				edges[c.Name] = append(edges[c.Name], r)
			}
		}
	}

	var (
		index   = 0
		indices = make(map[string]int)
		low     = make(map[string]int)
		onStack = make(map[string]bool)
		stack   []string
		cycles  [][]string
	)

	var strongConnect func(v string)
	strongConnect = func(v string) {
		indices[v] = index
		low[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range edges[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				low[v] = min(low[v], low[w])
			} else if onStack[w] {
				low[v] = min(low[v], indices[w])
			}
		}

		if low[v] != indices[v] {
			return
		}
		var scc []string
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		if len(scc) > 1 {
			sort.Strings(scc)
			cycles = append(cycles, scc)
		}
	}

	for _, c := range components {
		if _, visited := indices[c.Name]; !visited {
			strongConnect(c.Name)
		}
	}

	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles
}

// Analyze resolves d, routes its streets on the resolved grid and
// summarizes the result. Routing diagnostics are left to the caller's own
// validation pass; only the resolve report is returned.
func Analyze(d *spec.CityData, m Margins) (*ResolvedParameters, *Summary, *validation.Report) {
	params, report := Resolve(d, m)
	buildings := layout.PlaceBuildings(d.Flatten(), layout.Params{Unit: params.UnitSize}, nil)
	net, _ := routing.RouteStreets(buildings, routing.Params{Unit: params.UnitSize}, nil)
	return params, Summarize(d, net), report
}
