package client

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const daySchema = `{
  "type": "object",
  "properties": {
    "day":          {"type": ["string", "null"]},
    "time_in":      {"type": ["string", "null"]},
    "time_out":     {"type": ["string", "null"]},
    "hours_worked": {"type": ["string", "null"]}
  }
}`

const uploadSchema = `{
  "$defs": {"day": ` + daySchema + `},
  "type": "array",
  "items": {
    "type": "object",
    "required": ["days"],
    "properties": {
      "name":               {"type": ["string", "null"]},
      "days":               {"type": "array", "items": {"$ref": "#/$defs/day"}},
      "total_hours_worked": {"type": ["string", "null"]}
    }
  }
}`

const editResultSchema = `{
  "$defs": {"day": ` + daySchema + `},
  "type": "object",
  "required": ["entries", "total_hours_worked"],
  "properties": {
    "entries":            {"type": "array", "items": {"$ref": "#/$defs/day"}},
    "total_hours_worked": {"type": "string"}
  }
}`

type schemas struct {
	upload     *jsonschema.Schema
	editResult *jsonschema.Schema
}

func compileSchemas() (*schemas, error) {
	upload, err := compileSchema("upload.json", uploadSchema)
	if err != nil {
		return nil, err
	}
	edit, err := compileSchema("edit_result.json", editResultSchema)
	if err != nil {
		return nil, err
	}
	return &schemas{upload: upload, editResult: edit}, nil
}

func compileSchema(name, src string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(src)); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", name, err)
	}
	s, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return s, nil
}

// validate checks data against schema before it is decoded into models.
func validate(schema *jsonschema.Schema, data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
