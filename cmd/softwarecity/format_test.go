package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ChicagoDave/softwarecity/pkg/analytics"
	"github.com/ChicagoDave/softwarecity/pkg/validation"
)

func TestPrintValidationReportInvalid(t *testing.T) {
	r := validation.NewReport()
	r.AddError(validation.Result{
		Level:       validation.LevelSchema,
		Message:     "width must be > 0",
		Path:        "usageAreas[0].components[0].width",
		ActualValue: 0,
		Expected:    "> 0",
		Suggestions: []string{"Give the component a positive width"},
	})
	r.AddInfo(validation.Result{Level: validation.LevelReference, Message: "0 streets routed", Path: "hidden.path"})

	var buf bytes.Buffer
	printValidationReport(&buf, r)
	s := buf.String()

	assert.Contains(t, s, "ERRORS (1):")
	assert.Contains(t, s, "-> usageAreas[0].components[0].width = 0")
	assert.Contains(t, s, "expected: > 0")
	assert.Contains(t, s, "* Give the component a positive width")
	assert.Contains(t, s, "INFO (1):")
	assert.NotContains(t, s, "hidden.path")
	assert.Contains(t, s, "INVALID")
}

func TestPrintStatsCycles(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, &analytics.ResolvedParameters{ComponentCount: 12345}, &analytics.Summary{
		Cycles: [][]string{{"a", "b"}},
	})
	assert.Contains(t, buf.String(), "12,345")
	assert.Contains(t, buf.String(), "a <-> b")
}
