package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	e := New("VAL_002", "Payment ID is required", http.StatusBadRequest)
	assert.Equal(t, "[VAL_002] Payment ID is required", e.Error())

	wrapped := Wrap("GW_001", "Something Bad Happened", http.StatusBadGateway, errors.New("dial tcp: refused"))
	assert.Equal(t, "[GW_001] Something Bad Happened: dial tcp: refused", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	e := ErrGatewayUnavailable(cause)

	assert.ErrorIs(t, e, cause)

	var appErr *AppError
	assert.True(t, errors.As(fmt.Errorf("op: %w", e), &appErr))
	assert.Equal(t, CodeGatewayTransport, appErr.Code)
}

func TestGatewayError_MessageFormat(t *testing.T) {
	e := GatewayError("BAD_REQUEST_ERROR", "amount must be at least INR 1.00")
	assert.Equal(t, "BAD_REQUEST_ERROR- amount must be at least INR 1.00", e.Message)
	assert.Equal(t, http.StatusBadRequest, e.HTTPStatus)
}

func TestErrGatewayUnavailable_GenericMessage(t *testing.T) {
	e := ErrGatewayUnavailable(errors.New("tls handshake timeout"))
	// The caller-facing message stays generic; detail lives in the wrapped cause.
	assert.Equal(t, "Something Bad Happened", e.Message)
	assert.NotContains(t, e.Message, "tls")
}

func TestValidation_DistinctCode(t *testing.T) {
	e := Validation("invalid query parameters")
	assert.Equal(t, CodeInvalidInput, e.Code)
	assert.NotEqual(t, CodeMissingAmount, e.Code)
	assert.Equal(t, http.StatusBadRequest, e.HTTPStatus)
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(ErrMissingAmount()))
	assert.True(t, IsValidation(ErrMissingPaymentID()))
	assert.True(t, IsValidation(Validation("malformed body")))
	assert.False(t, IsValidation(ErrSignatureMismatch()))
	assert.False(t, IsValidation(errors.New("plain")))
}

func TestIsSignatureMismatch(t *testing.T) {
	assert.True(t, IsSignatureMismatch(ErrSignatureMismatch()))
	assert.False(t, IsSignatureMismatch(ErrCallbackReplayed()))
	assert.False(t, IsSignatureMismatch(nil))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeAuthentication, CodeOf(ErrAuthenticationFailed(errors.New("401"))))
	assert.Empty(t, CodeOf(errors.New("not an app error")))
}
