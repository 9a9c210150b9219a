package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tradelink/backend/internal/domain/shared"
)

func TestGetHTTPStatus(t *testing.T) {
	cases := map[string]int{
		shared.CodeValidation:            http.StatusBadRequest,
		shared.CodeUnauthorized:          http.StatusUnauthorized,
		shared.CodeForbidden:             http.StatusForbidden,
		shared.CodeNotFound:              http.StatusNotFound,
		shared.CodeConcurrencyConflict:   http.StatusConflict,
		shared.CodeAlreadyExists:         http.StatusConflict,
		shared.CodeInsufficientStock:     http.StatusUnprocessableEntity,
		shared.CodeInvalidTransition:     http.StatusUnprocessableEntity,
		shared.CodeTerminalState:         http.StatusUnprocessableEntity,
		shared.CodeDependencyUnavailable: http.StatusServiceUnavailable,
		"SOMETHING_NEW":                  http.StatusInternalServerError,
	}

	for code, want := range cases {
		assert.Equal(t, want, GetHTTPStatus(code), "code %s", code)
	}
}

func TestResponseMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2, 3}, 45, 2, 20)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
