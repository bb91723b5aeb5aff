package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/versionforge/pkg/errors"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// WriteJSON writes data as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes err as an [ErrorResponse] with the status from
// [StatusFor] and returns that status.
func WriteError(w http.ResponseWriter, err error) int {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := StatusFor(code)
	_ = WriteJSON(w, status, ErrorResponse{Code: code, Message: errors.UserMessage(err)})
	return status
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidVersion, errors.ErrCodeInvalidManifest,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidName, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeComponentNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeCircularDependency, errors.ErrCodeIncompatible:
		return http.StatusConflict
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
