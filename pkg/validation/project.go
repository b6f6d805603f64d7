package validation

import (
	"fmt"
	"os"

	"github.com/ChicagoDave/softwarecity/pkg/spec"
)

// LoadProject reads the city document at path (a project directory or the
// document itself), checks it against the document schema and then runs the
// structural checks. I/O and decode failures are returned as errors; a
// document that loads but fails validation is returned with an invalid
// report. The data is nil when the schema pass fails.
func LoadProject(path string) (*spec.CityData, *Report, error) {
	docPath, err := spec.ResolvePath(path)
	if err != nil {
		return nil, nil, err
	}
	raw, err := os.ReadFile(docPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading city document: %w", err)
	}

	report := ValidateDocument(raw)
	if !report.Valid {
		return nil, report, nil
	}

	d, err := spec.Parse(raw)
	if err != nil {
		return nil, report, err
	}
	report.Merge(ValidateSchema(d))
	return d, report, nil
}
