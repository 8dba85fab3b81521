package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrorMessage(t *testing.T) {
	err := NewDomainError(ErrorCodeMissingField, "required field missing")
	assert.Equal(t, "BUILD_MISSING_FIELD: required field missing", err.Error())

	wrapped := WrapError(ErrorCodeGatewayError, "payment gateway error", errors.New("connection refused"))
	assert.Equal(t, "GATEWAY_ERROR: payment gateway error: connection refused", wrapped.Error())
}

func TestDomainErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := WrapError(ErrorCodeGatewayError, "payment gateway error", inner)

	assert.ErrorIs(t, err, inner)

	var domainErr *DomainError
	require.True(t, errors.As(fmt.Errorf("submit: %w", err), &domainErr))
	assert.Equal(t, ErrorCodeGatewayError, domainErr.Code)
}

func TestWithDetailDoesNotMutateReceiver(t *testing.T) {
	detailed := ErrUnsupportedAction.WithDetail("action", "Bogus")

	assert.Equal(t, "Bogus", detailed.Details["action"])
	assert.Empty(t, ErrUnsupportedAction.Details, "shared instance must stay untouched")
	assert.Equal(t, ErrUnsupportedAction.Code, detailed.Code)
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		err       error
		isBuild   bool
		isGateway bool
	}{
		{ErrUnsupportedAction, true, false},
		{ErrMissingField, true, false},
		{ErrInvalidAmount, true, false},
		{WrapError(ErrorCodeGatewayError, "invalid gateway response", errors.New("bad xml")), false, true},
		{WrapError(ErrorCodeGatewayTimeout, "gateway request timed out", errors.New("deadline exceeded")), false, true},
		{WrapError(ErrorCodeGatewayNoResponse, "no response from gateway", errors.New("connection refused")), false, true},
		{NewDomainError(ErrorCodeConfigMissing, "required configuration missing"), false, false},
		{errors.New("plain error"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.isBuild, IsBuildError(tt.err))
			assert.Equal(t, tt.isGateway, IsGatewayError(tt.err))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	configErr := NewDomainError(ErrorCodeConfigMissing, "required configuration missing")
	assert.Equal(t, ErrorCodeConfigMissing, GetErrorCode(configErr))
	assert.Equal(t, ErrorCode(""), GetErrorCode(errors.New("plain")))
	assert.True(t, IsDomainError(configErr, ErrorCodeConfigMissing))
	assert.False(t, IsDomainError(configErr, ErrorCodeGatewayError))
}
