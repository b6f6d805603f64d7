package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"

	"github.com/ChicagoDave/softwarecity/pkg/analytics"
	"github.com/ChicagoDave/softwarecity/pkg/validation"
)

// newOutput picks the color profile of w; non-terminals get plain text.
func newOutput(w io.Writer) *termenv.Output {
	return termenv.NewOutput(w)
}

func printValidationReport(w io.Writer, r *validation.Report) {
	out := newOutput(w)
	red, yellow, cyan := out.Color("#e06c75"), out.Color("#e5c07b"), out.Color("#56b6c2")

	printResults := func(title string, c termenv.Color, results []validation.Result, details bool) {
		if len(results) == 0 {
			return
		}
		fmt.Fprintln(w, out.String(fmt.Sprintf("%s (%d):", title, len(results))).Foreground(c).Bold())
		for _, res := range results {
			fmt.Fprintf(w, "  [%s] %s\n", res.Level, res.Message)
			if !details {
				continue
			}
			if res.Path != "" {
				if res.ActualValue != nil {
					fmt.Fprintf(w, "    -> %s = %v\n", res.Path, res.ActualValue)
				} else {
					fmt.Fprintf(w, "    -> %s\n", res.Path)
				}
			}
			if res.Expected != "" {
				fmt.Fprintf(w, "    expected: %s\n", res.Expected)
			}
			for _, s := range res.Suggestions {
				fmt.Fprintf(w, "    * %s\n", s)
			}
		}
		fmt.Fprintln(w)
	}

	printResults("ERRORS", red, r.Errors, true)
	printResults("WARNINGS", yellow, r.Warnings, true)
	printResults("INFO", cyan, r.Info, false)

	if r.Valid {
		fmt.Fprintf(w, "Result: %s (%s)\n", out.String("VALID").Bold(), r.Summary)
	} else {
		fmt.Fprintf(w, "Result: %s (%s)\n", out.String("INVALID").Foreground(red).Bold(), r.Summary)
	}
}

func printStats(w io.Writer, p *analytics.ResolvedParameters, s *analytics.Summary) {
	out := newOutput(w)
	heading := func(title string) {
		fmt.Fprintln(w, out.String(title).Bold())
		fmt.Fprintln(w, strings.Repeat("-", len(title)))
	}

	heading("City")
	fmt.Fprintf(w, "  Components:        %s\n", humanize.Comma(int64(p.ComponentCount)))
	fmt.Fprintf(w, "  Usage areas:       %s\n", humanize.Comma(int64(p.UsageAreaCount)))
	fmt.Fprintf(w, "  Dependencies:      %s\n", humanize.Comma(int64(p.EdgeCount)))
	fmt.Fprintf(w, "  Unit size:         %s\n", humanize.Ftoa(p.UnitSize))
	fmt.Fprintf(w, "  Grid:              %d x %d (%d empty)\n", p.GridSide, p.GridSide, p.EmptyCells)
	fmt.Fprintf(w, "  Ground plate:      %s\n", humanize.Ftoa(p.GrassSide))
	fmt.Fprintf(w, "  Foundation plate:  %s\n", humanize.Ftoa(p.FoundationSide))
	fmt.Fprintf(w, "  Total volume:      %s\n", humanize.Commaf(p.TotalVolume))
	if p.LargestComponent != "" {
		fmt.Fprintf(w, "  Largest component: %s\n", p.LargestComponent)
	}
	fmt.Fprintln(w)

	heading("Usage areas")
	fmt.Fprintf(w, "  %-20s %10s %14s %10s %8s\n", "Area", "Components", "Volume", "Max height", "Deps")
	for _, a := range s.Areas {
		fmt.Fprintf(w, "  %-20s %10d %14s %10s %8d\n",
			a.Name, a.Components, humanize.Commaf(a.TotalVolume), humanize.Ftoa(a.MaxHeight), a.OutgoingDeps)
	}
	fmt.Fprintln(w)

	heading("Components")
	fmt.Fprintf(w, "  %-24s %-20s %14s %8s %8s\n", "Component", "Area", "Volume", "Fan-out", "Fan-in")
	for _, c := range s.Components {
		fmt.Fprintf(w, "  %-24s %-20s %14s %8d %8d\n",
			c.Name, c.UsageArea, humanize.Commaf(c.Volume), c.FanOut, c.FanIn)
	}

	if len(s.Cycles) > 0 {
		fmt.Fprintln(w)
		heading("Dependency cycles")
		for _, cyc := range s.Cycles {
			fmt.Fprintf(w, "  %s\n", strings.Join(cyc, " <-> "))
		}
	}
}
