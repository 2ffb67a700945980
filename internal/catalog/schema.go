package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://riskscore/catalog.json"

// catalogSchema describes the on-disk catalog document.
const catalogSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["questions"],
  "properties": {
    "name": {"type": "string"},
    "version": {"type": "string"},
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "question", "type", "options"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "section": {"type": "string"},
          "question": {"type": "string", "minLength": 1},
          "type": {"enum": ["single", "multi"]},
          "options": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["id", "label", "score"],
              "properties": {
                "id": {"type": "string", "minLength": 1},
                "label": {"type": "string"},
                "score": {"type": "integer"}
              },
              "additionalProperties": false
            }
          }
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validateDocument checks a decoded JSON value against the catalog schema.
func validateDocument(doc any) error {
	compiledOnce.Do(func() {
		compiledSchema, compileErr = compileSchema()
	})
	if compileErr != nil {
		return fmt.Errorf("compile catalog schema: %w", compileErr)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("catalog schema validation failed: %w", err)
	}
	return nil
}

func compileSchema() (*jsonschema.Schema, error) {
	// The jsonschema library expects a parsed JSON value (any), not raw bytes.
	var def any
	if err := json.Unmarshal([]byte(catalogSchema), &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
}
