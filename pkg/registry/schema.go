// pkg/registry/schema.go
package registry

import (
	"net/http"

	"sheetsmith/internal/common/validation"
)

// Catalog is the published list of rendering endpoints, served at /registry.
type Catalog struct {
	Service   string     `json:"service"`
	Version   string     `json:"version"`
	Endpoints []Endpoint `json:"endpoints"`
}

// Endpoint describes one POST route that turns a JSON payload into a spreadsheet.
type Endpoint struct {
	TaskType    string                `json:"taskType"`
	DisplayName string                `json:"displayName"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	Method      string                `json:"method"`
	Path        string                `json:"path"`
	ContentType string                `json:"contentType"`
	Filename    string                `json:"filename"`
	Enabled     bool                  `json:"enabled"`
	Timeout     string                `json:"timeout"`
	InputSchema validation.JSONSchema `json:"inputSchema"`
	ErrorCodes  []string              `json:"errorCodes"`
	Tags        []string              `json:"tags,omitempty"`
	Handler     http.HandlerFunc      `json:"-"`
}
