package validation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const documentSchemaURL = "https://softwarecity.local/schemas/software-city.schema.json"

//go:embed schemas/software-city.schema.json
var documentSchemaSource string

var documentSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString(documentSchemaURL, documentSchemaSource)
})

// ValidateDocument checks a raw JSON or YAML city document against the
// embedded JSON schema. Every violated constraint becomes one schema error.
func ValidateDocument(raw []byte) *Report {
	r := NewReport()

	schema, err := documentSchema()
	if err != nil {
		r.AddError(Result{Level: LevelSchema, Message: fmt.Sprintf("compiling document schema: %v", err)})
		return r
	}

	doc, err := decodeDocument(raw)
	if err != nil {
		r.AddError(Result{Level: LevelSchema, Message: err.Error()})
		return r
	}

	err = schema.Validate(doc)
	if err == nil {
		return r
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		r.AddError(Result{Level: LevelSchema, Message: err.Error()})
		return r
	}
	for _, leaf := range leafCauses(ve) {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  leaf.Message,
			Path:     pointerPath(leaf.InstanceLocation),
			Expected: leaf.KeywordLocation,
		})
	}
	return r
}

func decodeDocument(raw []byte) (any, error) {
	var doc any
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("decoding JSON document: %w", err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding YAML document: %w", err)
	}
	return doc, nil
}

func leafCauses(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var out []*jsonschema.ValidationError
	for _, c := range ve.Causes {
		out = append(out, leafCauses(c)...)
	}
	return out
}

// pointerPath turns a JSON pointer such as "/usageAreas/0/components/1/width"
// into "usageAreas[0].components[1].width".
func pointerPath(ptr string) string {
	if ptr == "" || ptr == "/" {
		return ""
	}
	var b bytes.Buffer
	start := 1
	for i := 1; i <= len(ptr); i++ {
		if i < len(ptr) && ptr[i] != '/' {
			continue
		}
		tok := ptr[start:i]
		start = i + 1
		if isIndex(tok) {
			b.WriteString("[" + tok + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(tok)
	}
	return b.String()
}

func isIndex(tok string) bool {
	if tok == "" {
		return false
	}
	for _, ch := range tok {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
