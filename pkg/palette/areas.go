package palette

import "math"

// AreaColors assigns every usage area a color from g based on its ordinal
// position among the distinct names in areas. Area i of n gets
// g.At(floor(i/(n-1)*100)), so the first area is the gradient start and the
// last is the gradient end. A lone area gets the gradient start. Repeated
// names keep the position of their first occurrence.
func AreaColors(areas []string, g Gradient) map[string]RGB {
	distinct := make([]string, 0, len(areas))
	seen := make(map[string]bool, len(areas))
	for _, name := range areas {
		if !seen[name] {
			seen[name] = true
			distinct = append(distinct, name)
		}
	}

	colors := make(map[string]RGB, len(distinct))
	for i, name := range distinct {
		colors[name] = g.At(areaPercentage(i, len(distinct)))
	}
	return colors
}

func areaPercentage(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return math.Floor(float64(i) / float64(n-1) * 100)
}
