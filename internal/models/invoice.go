package models

import (
	"bytes"
	"encoding/json"
)

const (
	DefaultInvoiceNumber = "Invoice"
	DefaultDocumentLabel = "Quote"
)

// LineItem is one row of the invoice table. Rows without a numeric quantity and
// price are treated as free text (subtotal or note rows).
type LineItem struct {
	SKU         string `json:"sku"`
	Description string `json:"desc"`
	Quantity    Value  `json:"qty"`
	UnitPrice   Value  `json:"price"`
}

// InvoicePayload is the body of POST /invoice.xlsx.
type InvoicePayload struct {
	InvoiceNumber       string            `json:"invoice_number"`
	IssueDate           string            `json:"issue_date"`
	DocumentLabel       string            `json:"quote_invoice"`
	PurchaseOrderNumber string            `json:"purchase_number"`
	Customer            map[string]string `json:"customer"`
	ClientContact       string            `json:"client_contact"`
	ProjectName         string            `json:"project_name"`
	Meta                map[string]string `json:"meta"`
	Items               []LineItem        `json:"items"`
}

// NewInvoicePayload returns a payload carrying the field defaults.
func NewInvoicePayload() InvoicePayload {
	return InvoicePayload{
		InvoiceNumber: DefaultInvoiceNumber,
		DocumentLabel: DefaultDocumentLabel,
	}
}

// DecodeInvoicePayload decodes data over the defaults, so absent fields keep them.
func DecodeInvoicePayload(data []byte) (InvoicePayload, error) {
	p := NewInvoicePayload()
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&p); err != nil {
		return InvoicePayload{}, err
	}
	return p, nil
}

// CustomerField returns customer[key] or "" when absent.
func (p InvoicePayload) CustomerField(key string) string {
	return p.Customer[key]
}

// MetaField returns meta[key] or "" when absent.
func (p InvoicePayload) MetaField(key string) string {
	return p.Meta[key]
}

// HTMLPayload is the body of POST /html-to-excel.xlsx.
type HTMLPayload struct {
	HTML string `json:"html"`
}
