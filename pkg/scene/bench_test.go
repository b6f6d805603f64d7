package scene

import (
	"fmt"
	"testing"

	"github.com/ChicagoDave/softwarecity/pkg/spec"
)

// cityOfSize generates a document with n components spread over a handful
// of usage areas, each requiring its two predecessors.
func cityOfSize(n int) *spec.CityData {
	const areas = 5
	d := &spec.CityData{UsageAreas: make([]spec.UsageArea, areas)}
	for a := range d.UsageAreas {
		d.UsageAreas[a].Name = fmt.Sprintf("area-%d", a)
	}
	for i := range n {
		c := spec.Component{
			Name:   fmt.Sprintf("svc-%d", i),
			Height: float64(1 + i%20),
			Width:  float64(2 + i%7),
			Length: float64(2 + i%5),
		}
		for _, dep := range []int{i - 1, i - 2} {
			if dep >= 0 {
				c.Requires = append(c.Requires, fmt.Sprintf("svc-%d", dep))
			}
		}
		a := &d.UsageAreas[i%areas]
		a.Components = append(a.Components, c)
	}
	return d
}

func TestCityOfSizeAssembles(t *testing.T) {
	g, report, err := Assemble(cityOfSize(100), DefaultOptions())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if !report.Valid {
		t.Fatalf("report invalid: %v", report.Errors)
	}
	if got := len(g.EntitiesOfType(EntityBuilding)); got != 100 {
		t.Errorf("buildings = %d, want 100", got)
	}
	if got := g.Metadata.StreetCount; got != 197 {
		t.Errorf("streets = %d, want 197", got)
	}
	if r := ValidateGraph(g); !r.Valid {
		t.Errorf("graph invalid: %v", r.Errors)
	}
}

func BenchmarkAssemble(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		d := cityOfSize(n)
		b.Run(fmt.Sprintf("components=%d", n), func(b *testing.B) {
			opts := DefaultOptions()
			for b.Loop() {
				if _, _, err := Assemble(d, opts); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkValidateGraph(b *testing.B) {
	g, _, err := Assemble(cityOfSize(1000), DefaultOptions())
	if err != nil {
		b.Fatal(err)
	}
	for b.Loop() {
		ValidateGraph(g)
	}
}
