// internal/common/http/request.go
package http

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	apperrors "sheetsmith/internal/common/errors"
	"sheetsmith/internal/common/validation"
)

// ReadJSONBody reads the request body and checks it against validator. The body is
// returned unchanged for decoding into the payload type. Errors are *StandardError.
func ReadJSONBody(r *http.Request, validator *validation.Validator) ([]byte, error) {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || !isJSONMediaType(mediaType) {
			return nil, apperrors.NewUnsupportedMediaTypeError(ct)
		}
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, apperrors.NewPayloadTooLargeError(maxErr.Limit)
		}
		return nil, apperrors.NewInvalidPayloadError(err)
	}

	if validator == nil {
		return body, nil
	}

	result, err := validator.Validate(body)
	if err != nil {
		return nil, apperrors.NewInvalidPayloadError(err)
	}
	if !result.Valid {
		return nil, apperrors.NewSchemaValidationFailedError(result.GetErrorMessages())
	}
	return body, nil
}

func isJSONMediaType(mediaType string) bool {
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
