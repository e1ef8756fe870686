// internal/workers/spreadsheet/build-invoice-xlsx/validation.go
package buildinvoicexlsx

import "sheetsmith/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	optionalString := validation.Property{Type: validation.Types("string", "null")}
	cellValue := validation.Types("number", "string", "null")

	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"invoice_number": {
				Type:        "string",
				Description: "Invoice number, also used as the file name",
			},
			"issue_date": {
				Type:        "string",
				Description: "Issue date rendered verbatim",
			},
			"quote_invoice": {
				Type:        "string",
				Description: "Document label shown in A1",
			},
			"purchase_number": optionalString,
			"client_contact":  optionalString,
			"project_name":    optionalString,
			"customer": {
				Type:                 "object",
				Description:          "name, address and email of the customer",
				AdditionalProperties: optionalString,
			},
			"meta": {
				Type:                 "object",
				Description:          "po and currency",
				AdditionalProperties: optionalString,
			},
			"items": {
				Type: "array",
				Items: &validation.Property{
					Type: "object",
					Properties: map[string]validation.Property{
						"sku":   optionalString,
						"desc":  optionalString,
						"qty":   {Type: cellValue},
						"price": {Type: cellValue},
					},
				},
			},
		},
	}
}
