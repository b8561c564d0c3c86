package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/placement/internal/domain/fault"
)

// Sentinel kinds for request decoding errors.
var (
	ErrBadRequest   = fmt.Errorf("bad request: %w", fault.ErrValidation)
	ErrUnauthorized = errors.New("missing or invalid bearer token")
)

// genericFailure is shown for any error without a known kind.
const genericFailure = "operation failed, please try again"

// Error codes carried in error responses.
const (
	codeNotFound      = "not_found"
	codeInvalid       = "invalid_request"
	codeConflict      = "in_flight"
	codeUnimplemented = "not_implemented"
	codeUnauthorized  = "unauthorized"
	codeInternal      = "operation_failed"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusOf maps an error kind to its HTTP status and code.
func statusOf(err error) (int, string) {
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized, codeUnauthorized
	}
	switch fault.KindOf(err) {
	case fault.ErrNotFound:
		return http.StatusNotFound, codeNotFound
	case fault.ErrValidation:
		return http.StatusBadRequest, codeInvalid
	case fault.ErrInFlight:
		return http.StatusConflict, codeConflict
	case fault.ErrUnimplemented:
		return http.StatusNotImplemented, codeUnimplemented
	}
	return http.StatusInternalServerError, codeInternal
}

func writeError(w http.ResponseWriter, err error) {
	status, code := statusOf(err)
	msg := err.Error()
	switch status {
	case http.StatusInternalServerError:
		msg = genericFailure
	case http.StatusConflict:
		msg = "another change to this record is in progress, please try again"
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
