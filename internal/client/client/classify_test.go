package client

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorClass
	}{
		{"nil", nil, ClassNone},
		{"409", &APIError{Status: 409, Message: "conflict"}, ClassDuplicate},
		{"exists marker on other status", &APIError{Status: 400, Message: "Post already EXISTS"}, ClassDuplicate},
		{"duplicate marker", &APIError{Status: 500, Message: "Duplicate idempotency_key"}, ClassDuplicate},
		{"401", &APIError{Status: 401, Message: "no key"}, ClassUnauthorized},
		{"403", &APIError{Status: 403, Message: "forbidden"}, ClassUnauthorized},
		{"400", &APIError{Status: 400, Message: "bad"}, ClassValidation},
		{"422", &APIError{Status: 422, Message: "field required"}, ClassValidation},
		{"transport", transportError(errors.New("dial tcp: refused")), ClassTransient},
		{"500", &APIError{Status: 500, Message: "boom"}, ClassUnknown},
		{"404", &APIError{Status: 404, Message: "thread not found"}, ClassUnknown},
		{"wrapped", fmt.Errorf("submit: %w", &APIError{Status: 409}), ClassDuplicate},
		{"foreign error", errors.New("plain"), ClassUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestAPIError_IsSentinels(t *testing.T) {
	require.ErrorIs(t, &APIError{Status: 401}, ErrUnauthorized)
	require.ErrorIs(t, &APIError{Status: 409}, ErrDuplicate)
	require.ErrorIs(t, &APIError{Status: 422}, ErrValidation)
	require.ErrorIs(t, transportError(errors.New("x")), ErrUnavailable)
	require.NotErrorIs(t, &APIError{Status: 500}, ErrUnavailable)
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "http 404: thread not found", (&APIError{Status: 404, Message: "thread not found"}).Error())
	assert.Equal(t, transportFailureMessage, transportError(errors.New("x")).Error())
}

func TestErrorClass_String(t *testing.T) {
	assert.Equal(t, "duplicate", ClassDuplicate.String())
	assert.Equal(t, "unauthorized", ClassUnauthorized.String())
	assert.Equal(t, "validation", ClassValidation.String())
	assert.Equal(t, "transient", ClassTransient.String())
	assert.Equal(t, "unknown", ClassUnknown.String())
	assert.Equal(t, "none", ClassNone.String())
}
