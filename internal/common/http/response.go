// internal/common/http/response.go
package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "sheetsmith/internal/common/errors"
	"sheetsmith/internal/common/logger"
)

// XLSXContentType is the media type of every rendered workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ContentDisposition builds an attachment header for filename. Non-ASCII names also
// get an RFC 5987 filename* parameter.
func ContentDisposition(filename string) string {
	quoted := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r", "", "\n", "").Replace(filename)
	header := fmt.Sprintf(`attachment; filename="%s"`, quoted)
	for _, r := range filename {
		if r > 0x7e || r < 0x20 {
			header += "; filename*=UTF-8''" + url.PathEscape(filename)
			break
		}
	}
	return header
}

// WriteAttachment writes content as a downloadable workbook.
func WriteAttachment(w http.ResponseWriter, filename string, content []byte) error {
	w.Header().Set("Content-Type", XLSXContentType)
	w.Header().Set("Content-Disposition", ContentDisposition(filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(content)
	return err
}

// WriteJSON encodes v as the response body.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Error     *apperrors.StandardError `json:"error"`
	RequestID string                   `json:"requestId,omitempty"`
}

// WriteError normalizes err, logs it and writes it with the mapped status.
// It returns the normalized error so callers can label metrics with its code.
func WriteError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) *apperrors.StandardError {
	stdErr := apperrors.Normalize(err)
	status := apperrors.HTTPStatus(stdErr.Code)

	fields := map[string]interface{}{
		"errorCode": stdErr.Code,
		"status":    status,
		"details":   stdErr.Details,
		"category":  apperrors.GetErrorCategory(stdErr.Code),
	}
	if status >= http.StatusInternalServerError {
		log.Error("request failed", fields)
	} else {
		log.Warn("request rejected", fields)
	}

	WriteJSON(w, status, ErrorResponse{Error: stdErr, RequestID: RequestIDFromContext(r.Context())})
	return stdErr
}
