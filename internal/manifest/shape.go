package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/resource.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// getSchema compiles the embedded document schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("resource.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("resource.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// checkShape validates a decoded document against the common resource shape
// (apiVersion, kind, metadata.name). Shape violations come back as a single
// human-readable reason string; the empty string means the shape is fine.
// The error return is reserved for schema compilation failures.
func checkShape(raw interface{}) (string, error) {
	schema, err := getSchema()
	if err != nil {
		return "", fmt.Errorf("loading schema: %w", err)
	}

	// Round-trip through JSON so the validator sees json.Number values
	// rather than YAML-decoded ints and floats.
	jsonData, err := json.Marshal(normalizeYAML(raw))
	if err != nil {
		return "", fmt.Errorf("converting document to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("preparing document for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return "", nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return "", fmt.Errorf("unexpected validation error type: %w", err)
	}

	var parts []string
	collectShapeIssues(ve, &parts)
	if len(parts) == 0 {
		return ve.Error(), nil
	}
	return strings.Join(parts, "; "), nil
}

// collectShapeIssues walks the validation error tree and renders leaf errors
// as "path: message" strings.
func collectShapeIssues(ve *jsonschema.ValidationError, parts *[]string) {
	if len(ve.Causes) == 0 {
		keyword := ""
		if ve.ErrorKind != nil {
			kwPath := ve.ErrorKind.KeywordPath()
			if len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
		}
		// Container keywords carry no useful detail on their own.
		if keyword == "" || keyword == "allOf" || keyword == "$ref" {
			return
		}

		msg := ve.ErrorKind.LocalizedString(printer)
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			*parts = append(*parts, msg)
		} else {
			*parts = append(*parts, path+": "+msg)
		}
		return
	}
	for _, cause := range ve.Causes {
		collectShapeIssues(cause, parts)
	}
}

// normalizeYAML recursively converts YAML-decoded values into JSON-compatible
// types. YAML decoding may produce map[interface{}]interface{} for non-string
// keys, which json.Marshal rejects.
func normalizeYAML(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, item := range val {
			m[k] = normalizeYAML(item)
		}
		return m
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, item := range val {
			m[fmt.Sprintf("%v", k)] = normalizeYAML(item)
		}
		return m
	case []interface{}:
		a := make([]interface{}, len(val))
		for i, item := range val {
			a[i] = normalizeYAML(item)
		}
		return a
	default:
		return val
	}
}
