package llm

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Structured is implemented by types that can be produced as validated,
// schema-constrained model output.
type Structured interface {
	// Validate validates the structured output
	Validate() error
	// JSONSchema returns the JSON schema for this type
	JSONSchema() map[string]interface{}
}

// StructuredRequest wraps a chat request with structured output requirements.
type StructuredRequest[T Structured] struct {
	Messages     []Message              `json:"messages"`
	SystemPrompt string                 `json:"system_prompt,omitempty"`
	Model        string                 `json:"model"`
	Temperature  float64                `json:"temperature,omitempty"`
	MaxTokens    int                    `json:"max_tokens,omitempty"`
	Schema       map[string]interface{} `json:"schema,omitempty"`
	OutputType   T                      `json:"-"` // template for the output type
}

// StructuredResponse holds the parsed and validated structured output.
type StructuredResponse[T Structured] struct {
	Data        T                 `json:"data"`
	RawResponse *Response         `json:"raw_response"`
	Usage       *Usage            `json:"usage,omitempty"`
	Validation  *ValidationResult `json:"validation,omitempty"`
}

// ValidationResult records validation details.
type ValidationResult struct {
	Valid   bool     `json:"valid"`
	Errors  []string `json:"errors,omitempty"`
	RawJSON string   `json:"raw_json,omitempty"`
}

// Usage holds token accounting for a response.
type Usage struct {
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	TotalTokens  int     `json:"total_tokens"`
	Cost         float64 `json:"cost,omitempty"`
}

// BaseStructured supplies default Structured behavior for embedding.
type BaseStructured struct{}

// Validate implements basic validation (override in specific types).
func (b BaseStructured) Validate() error { return nil }

// JSONSchema generates a basic JSON schema from struct tags.
func (b BaseStructured) JSONSchema() map[string]interface{} {
	return GenerateJSONSchema(b)
}

// GenerateJSONSchema derives a JSON schema from a struct's json and
// description tags.
func GenerateJSONSchema(v interface{}) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": make(map[string]interface{}),
		"required":   []string{},
	}

	val := reflect.ValueOf(v)
	typ := reflect.TypeOf(v)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
		typ = typ.Elem()
	}
	if val.Kind() != reflect.Struct {
		return schema
	}

	properties := schema["properties"].(map[string]interface{})
	var required []string

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() || field.Name == "BaseStructured" {
			continue
		}
		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		jsonName := field.Name
		omitEmpty := false
		if jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" {
				jsonName = parts[0]
			}
			for _, part := range parts[1:] {
				if part == "omitempty" {
					omitEmpty = true
				}
			}
		}

		properties[jsonName] = fieldSchema(val.Field(i).Type(), field.Tag.Get("description"))
		if !omitEmpty {
			required = append(required, jsonName)
		}
	}

	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func fieldSchema(t reflect.Type, description string) map[string]interface{} {
	schema := make(map[string]interface{})
	if description != "" {
		schema["description"] = description
	}

	switch t.Kind() {
	case reflect.String:
		schema["type"] = "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		schema["type"] = "integer"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		schema["type"] = "integer"
		schema["minimum"] = 0
	case reflect.Float32, reflect.Float64:
		schema["type"] = "number"
	case reflect.Bool:
		schema["type"] = "boolean"
	case reflect.Slice, reflect.Array:
		schema["type"] = "array"
		schema["items"] = fieldSchema(t.Elem(), "")
	case reflect.Map, reflect.Struct:
		schema["type"] = "object"
	case reflect.Ptr:
		return fieldSchema(t.Elem(), description)
	default:
		schema["type"] = "string"
	}
	return schema
}

// ParseStructured parses model output as JSON into a structured type and
// validates it. Markdown code fences around the JSON are tolerated since
// instruction-tuned models often add them despite json_object mode.
func ParseStructured[T Structured](raw string, template T) (*StructuredResponse[T], error) {
	jsonStr := stripCodeFences(raw)

	var result T
	templateType := reflect.TypeOf(template)
	wantPtr := templateType.Kind() == reflect.Ptr
	if wantPtr {
		templateType = templateType.Elem()
	}

	ptrValue := reflect.New(templateType)
	if err := json.Unmarshal([]byte(jsonStr), ptrValue.Interface()); err != nil {
		return nil, NewLLMErrorWithCause("", ErrorTypeJSONParsingError, "structured output is not valid JSON", err)
	}

	if wantPtr {
		result = ptrValue.Interface().(T)
	} else {
		result = ptrValue.Elem().Interface().(T)
	}

	validation := &ValidationResult{RawJSON: jsonStr}
	if err := result.Validate(); err != nil {
		validation.Valid = false
		validation.Errors = []string{err.Error()}
		return &StructuredResponse[T]{Data: result, Validation: validation},
			fmt.Errorf("validation failed: %w", err)
	}
	validation.Valid = true

	return &StructuredResponse[T]{Data: result, Validation: validation}, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
