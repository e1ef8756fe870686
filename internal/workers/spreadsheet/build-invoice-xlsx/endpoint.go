// internal/workers/spreadsheet/build-invoice-xlsx/endpoint.go
package buildinvoicexlsx

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
		DisplayName: "Build Invoice Spreadsheet",
		Description: "Lays out an invoice or quote payload on a fixed bordered sheet",
		Category:    "spreadsheet",
		Method:      http.MethodPost,
		Path:        Route,
		ContentType: apihttp.XLSXContentType,
		Filename:    "<invoice_number>.xlsx",
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
		Tags:    []string{"invoice", "xlsx"},
		Handler: h.Handle,
	}
}
