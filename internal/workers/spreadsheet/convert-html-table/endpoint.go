// internal/workers/spreadsheet/convert-html-table/endpoint.go
package converthtmltable

import (
	"net/http"

	apperrors "sheetsmith/internal/common/errors"
	apihttp "sheetsmith/internal/common/http"
	"sheetsmith/pkg/registry"
)

// Endpoint describes the route served by h.
func (h *Handler) Endpoint() registry.Endpoint {
	return registry.Endpoint{
		TaskType:    TaskType,
		DisplayName: "Convert HTML Table",
		Description: "Copies the first table of an HTML document into a plain sheet",
		Category:    "spreadsheet",
		Method:      http.MethodPost,
		Path:        Route,
		ContentType: apihttp.XLSXContentType,
		Filename:    Filename,
		Enabled:     h.config.Enabled,
		Timeout:     h.config.Timeout.String(),
		InputSchema: GetInputSchema(),
		ErrorCodes: []string{
			string(apperrors.ErrCodeInvalidPayload),
			string(apperrors.ErrCodePayloadTooLarge),
			string(apperrors.ErrCodeSchemaValidationFailed),
			string(apperrors.ErrCodeUnsupportedMediaType),
			string(apperrors.ErrCodeRenderFailed),
			string(apperrors.ErrCodeRendererDisabled),
		},
		Tags:    []string{"html", "xlsx"},
		Handler: h.Handle,
	}
}
