package httputil

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/matzehuels/versionforge/pkg/errors"
)

// MaxBodyBytes bounds request bodies read by [DecodeJSON].
const MaxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into dest. Unknown fields, an empty
// body, a body over [MaxBodyBytes] and trailing data are INVALID_INPUT
// errors.
func DecodeJSON(r *http.Request, dest any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes+1))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		if err == io.EOF {
			return errors.New(errors.ErrCodeInvalidInput, "request body is empty")
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body")
	}
	if dec.More() {
		return errors.New(errors.ErrCodeInvalidInput, "unexpected data after JSON body")
	}
	if dec.InputOffset() > MaxBodyBytes {
		return errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", MaxBodyBytes)
	}
	return nil
}
