package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() JSONSchema {
	return JSONSchema{
		Type:     "object",
		Required: []string{"html"},
		Properties: map[string]Property{
			"html": {Type: "string", MaxLength: IntPtr(64)},
			"rows": {
				Type: "array",
				Items: &Property{
					Type: "object",
					Properties: map[string]Property{
						"qty": {Type: Types("number", "string", "null")},
					},
				},
			},
		},
	}
}

func TestValidator_Valid(t *testing.T) {
	v, err := NewValidator(testSchema())
	require.NoError(t, err)

	result, err := v.Validate([]byte(`{"html": "<table></table>", "rows": [{"qty": 1}, {"qty": "2"}, {"qty": null}]}`))
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidator_Violations(t *testing.T) {
	v := MustValidator(testSchema())

	result, err := v.Validate([]byte(`{"rows": [{"qty": true}]}`))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 2)

	assert.True(t, result.HasErrors("rows.0.qty"))
	assert.Len(t, result.GetErrorsForField("rows"), 1)

	messages := result.GetErrorMessages()
	assert.Len(t, messages, 2)
	assert.Contains(t, messages[0], "html")
	assert.Contains(t, messages[1], "rows.0.qty")
}

func TestValidator_NotJSON(t *testing.T) {
	v := MustValidator(testSchema())

	_, err := v.Validate([]byte(`{"html": `))
	assert.Error(t, err)
}
