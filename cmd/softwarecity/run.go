package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/ChicagoDave/softwarecity/pkg/analytics"
	"github.com/ChicagoDave/softwarecity/pkg/scene"
	"github.com/ChicagoDave/softwarecity/pkg/scene2d"
	"github.com/ChicagoDave/softwarecity/pkg/spec"
	"github.com/ChicagoDave/softwarecity/pkg/validation"
)

// loadAndValidate loads the document and runs schema and structural
// validation. An invalid report is printed to stderr and turned into
// errInvalid.
func loadAndValidate(projectPath string) (*spec.CityData, *validation.Report, error) {
	d, report, err := validation.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading city document: %w", err)
	}
	if !report.Valid {
		printValidationReport(os.Stderr, report)
		return nil, report, errInvalid
	}
	return d, report, nil
}

func (a *app) assemble(projectPath string) (*scene.Graph, *validation.Report, error) {
	d, _, err := loadAndValidate(projectPath)
	if err != nil {
		return nil, nil, err
	}
	opts, err := a.cfg.SceneOptions(a.log)
	if err != nil {
		return nil, nil, err
	}
	g, report, err := scene.Assemble(d, opts)
	if err != nil {
		return nil, report, fmt.Errorf("assembling city: %w", err)
	}
	report.Merge(scene.ValidateGraph(g))
	return g, report, nil
}

func (a *app) runValidate(projectPath string, w io.Writer) error {
	d, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}

	_, analyticsReport := analytics.Resolve(d, a.margins())
	report.Merge(analyticsReport)

	printValidationReport(w, report)
	if !report.Valid {
		return errInvalid
	}
	return nil
}

func (a *app) runBuild(projectPath, output string, stdout io.Writer) error {
	g, report, err := a.assemble(projectPath)
	if err != nil {
		return err
	}

	out := map[string]any{
		"validation":  report,
		"scene_graph": g,
	}
	if output == "" {
		return writeJSON(stdout, out)
	}
	if err := writeJSONFile(output, out); err != nil {
		return err
	}
	a.log.Info("scene graph written", "path", output, "entities", len(g.Entities), "summary", report.Summary)
	return nil
}

func (a *app) runStats(projectPath string, w io.Writer) error {
	d, _, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	params, summary, report := analytics.Analyze(d, a.margins())
	printStats(w, params, summary)
	if len(report.Warnings) > 0 {
		fmt.Fprintln(w)
		printValidationReport(w, report)
	}
	return nil
}

func (a *app) runPlan(projectPath string, w io.Writer) error {
	g, _, err := a.assemble(projectPath)
	if err != nil {
		return err
	}
	return writeJSON(w, scene2d.Assemble2D(g))
}

func (a *app) margins() analytics.Margins {
	return analytics.Margins{
		Unit:  a.cfg.Layout.UnitMargin,
		Grass: a.cfg.Layout.GrassMargin,
		City:  a.cfg.Layout.CityMargin,
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeJSONFile writes v to path, zstd-compressed when path ends in ".zst".
func writeJSONFile(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if !strings.HasSuffix(path, ".zst") {
		return writeJSON(f, v)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("creating zstd encoder: %w", err)
	}
	if err := json.NewEncoder(enc).Encode(v); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}
