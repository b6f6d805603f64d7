package routing

import "sort"

// BuildConnectivity returns, for every component touched by a street, the
// sorted names of the components it is connected to in either direction.
// Duplicate streets collapse to one neighbor entry.
func BuildConnectivity(streets []Street) map[string][]string {
	conn := make(map[string]map[string]bool)
	link := func(a, b string) {
		if conn[a] == nil {
			conn[a] = make(map[string]bool)
		}
		conn[a][b] = true
	}
	for _, s := range streets {
		link(s.From, s.To)
		link(s.To, s.From)
	}

	// Convert sets to sorted slices for deterministic output.
	result := make(map[string][]string, len(conn))
	for name, neighbors := range conn {
		names := make([]string, 0, len(neighbors))
		for n := range neighbors {
			names = append(names, n)
		}
		sort.Strings(names)
		result[name] = names
	}
	return result
}

// Degrees counts outgoing (requires) and incoming (required-by) streets
// per component.
func Degrees(streets []Street) (out, in map[string]int) {
	out = make(map[string]int)
	in = make(map[string]int)
	for _, s := range streets {
		out[s.From]++
		in[s.To]++
	}
	return out, in
}
