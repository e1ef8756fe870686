package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// JSONSchema defines the structure for request schemas.
type JSONSchema struct {
	Schema               string              `json:"$schema,omitempty"`
	Type                 interface{}         `json:"type"`
	Properties           map[string]Property `json:"properties,omitempty"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties interface{}         `json:"additionalProperties,omitempty"`
}

// Property describes one field. Type is either a single JSON type name or a list of them.
type Property struct {
	Type                 interface{}         `json:"type,omitempty"`
	Description          string              `json:"description,omitempty"`
	Minimum              *float64            `json:"minimum,omitempty"`
	MaxLength            *int                `json:"maxLength,omitempty"`
	Items                *Property           `json:"items,omitempty"`
	Properties           map[string]Property `json:"properties,omitempty"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties interface{}         `json:"additionalProperties,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Validator checks raw JSON documents against a compiled schema.
type Validator struct {
	schema *gojsonschema.Schema
}

// NewValidator compiles schema once so it can be reused across requests.
func NewValidator(schema JSONSchema) (*Validator, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// MustValidator is NewValidator for schemas defined in code.
func MustValidator(schema JSONSchema) *Validator {
	v, err := NewValidator(schema)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate returns an error when document is not JSON at all; schema violations are
// reported through the result.
func (v *Validator) Validate(document []byte) (*ValidationResult, error) {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })

	return &ValidationResult{
		Valid:  result.Valid(),
		Errors: errs,
	}, nil
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// GetErrorsForField returns errors for a specific field and its children.
func (vr *ValidationResult) GetErrorsForField(field string) []ValidationError {
	var fieldErrors []ValidationError
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}

// Types is shorthand for a multi-type property.
func Types(names ...string) []string {
	return names
}

func IntPtr(i int) *int { return &i }
