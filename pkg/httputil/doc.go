// Package httputil provides JSON helpers for the versionforge HTTP API.
//
// # Responses
//
// [WriteJSON] writes a value with a status code. [WriteError] maps the
// code of a [errors.Error] to an HTTP status with [StatusFor] and writes
// the standard error body:
//
//	{"code": "COMPONENT_NOT_FOUND", "message": "unknown component \"api\""}
//
// Errors without a code are reported as INTERNAL_ERROR with status 500.
//
// # Requests
//
// [DecodeJSON] reads a size-limited JSON body and rejects unknown fields,
// trailing data and empty bodies with an INVALID_INPUT error, so handlers
// can pass its error straight to [WriteError].
//
// [errors.Error]: github.com/matzehuels/versionforge/pkg/errors#Error
package httputil
