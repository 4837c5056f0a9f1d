package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema is a JSON schema document expressed as Go values.
type Schema map[string]interface{}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Error joins every failure into a single line.
func (r *ValidationResult) Error() string {
	parts := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		parts[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return strings.Join(parts, "; ")
}

// Validate checks doc (any JSON-marshalable value) against schema.
func Validate(schema Schema, doc interface{}) (*ValidationResult, error) {
	schemaLoader := gojsonschema.NewGoLoader(map[string]interface{}(schema))
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		field := desc.Field()
		// required errors are reported against the parent object
		if desc.Type() == "required" {
			if prop, ok := desc.Details()["property"].(string); ok {
				field = prop
				if parent := desc.Field(); parent != gojsonschema.STRING_CONTEXT_ROOT && parent != "" {
					field = parent + "." + prop
				}
			}
		}
		out.Errors = append(out.Errors, ValidationError{
			Field:   field,
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out, nil
}

// String, Integer and the other helpers keep schema literals short.

func String(minLength int) map[string]interface{} {
	p := map[string]interface{}{"type": "string"}
	if minLength > 0 {
		p["minLength"] = minLength
	}
	return p
}

func Pattern(pattern string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "pattern": pattern}
}

func Enum(values ...string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "enum": values}
}

func Integer(minimum int) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "minimum": minimum}
}

func Boolean() map[string]interface{} {
	return map[string]interface{}{"type": "boolean"}
}

func Format(format string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "format": format}
}
