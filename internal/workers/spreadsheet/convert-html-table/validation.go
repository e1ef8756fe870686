// internal/workers/spreadsheet/convert-html-table/validation.go
package converthtmltable

import "sheetsmith/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"html"},
		Properties: map[string]validation.Property{
			"html": {
				Type:        "string",
				Description: "HTML document or fragment; the first table is converted",
			},
		},
	}
}
