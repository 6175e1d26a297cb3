package checkclient

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const responseSchemaJSON = `{
  "type": "object",
  "required": ["eligible_schemes", "not_eligible_schemes"],
  "properties": {
    "eligible_schemes":     {"type": "array", "items": {"$ref": "#/definitions/eligible"}},
    "not_eligible_schemes": {"type": "array", "items": {"$ref": "#/definitions/notEligible"}}
  },
  "definitions": {
    "base": {
      "type": "object",
      "required": ["name", "description", "type", "apply_link"],
      "properties": {
        "name":        {"type": "string"},
        "description": {"type": "string"},
        "type":        {"type": "string"},
        "apply_link":  {"type": "string"}
      }
    },
    "eligible": {
      "allOf": [
        {"$ref": "#/definitions/base"},
        {"required": ["why_eligible"], "properties": {"why_eligible": {"type": "array", "items": {"type": "string"}}}}
      ]
    },
    "notEligible": {
      "allOf": [
        {"$ref": "#/definitions/base"},
        {"required": ["why_not"], "properties": {"why_not": {"type": "array", "items": {"type": "string"}}}}
      ]
    }
  }
}`

var responseSchema = mustSchema(responseSchemaJSON)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("checkclient: invalid response schema: %v", err))
	}
	return s
}

// validateBody checks a raw /check body against the response schema.
func validateBody(body []byte) error {
	result, err := responseSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("response does not match schema: %s", strings.Join(msgs, "; "))
	}
	return nil
}
