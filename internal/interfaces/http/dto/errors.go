package dto

import (
	"net/http"

	"github.com/tradelink/backend/internal/domain/shared"
)

// HTTP-layer error codes for failures that never reach the domain
const (
	ErrCodeInternal    = "INTERNAL_ERROR"
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeInvalidJSON = "INVALID_JSON"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Business rule violations (bad transitions, terminal orders, stock
// shortfalls) are 422; optimistic-lock losers and duplicates are 409.
var errorCodeHTTPStatus = map[string]int{
	shared.CodeValidation: http.StatusBadRequest,
	ErrCodeBadRequest:     http.StatusBadRequest,
	ErrCodeInvalidJSON:    http.StatusBadRequest,

	shared.CodeUnauthorized: http.StatusUnauthorized,
	shared.CodeForbidden:    http.StatusForbidden,
	shared.CodeNotFound:     http.StatusNotFound,

	shared.CodeConflict:            http.StatusConflict,
	shared.CodeAlreadyExists:       http.StatusConflict,
	shared.CodeConcurrencyConflict: http.StatusConflict,

	shared.CodeInsufficientStock: http.StatusUnprocessableEntity,
	shared.CodeInvalidTransition: http.StatusUnprocessableEntity,
	shared.CodeTerminalState:     http.StatusUnprocessableEntity,

	shared.CodeIOError:               http.StatusInternalServerError,
	shared.CodeDependencyUnavailable: http.StatusServiceUnavailable,
	ErrCodeInternal:                  http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting
// to 500 for unknown codes.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
