package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Error codes. VAL errors are raised before any network call, GW errors come
// back from the gateway through the normalizer, SEC errors cover callback
// verification.
const (
	CodeInvalidInput      = "VAL_000"
	CodeMissingAmount     = "VAL_001"
	CodeMissingPaymentID  = "VAL_002"
	CodeGatewayTransport  = "GW_001"
	CodeGatewayReported   = "GW_002"
	CodeAuthentication    = "GW_003"
	CodeSignatureMismatch = "SEC_001"
	CodeCallbackReplayed  = "SEC_002"
	CodeNotFound          = "RES_001"
	CodeInternal          = "SYS_001"
)

// ---- Local validation (VAL) ----

func ErrMissingAmount() *AppError {
	return New(CodeMissingAmount, "Amount (INT) is required for creating a payment link", http.StatusBadRequest)
}

func ErrMissingPaymentID() *AppError {
	return New(CodeMissingPaymentID, "Payment ID is required", http.StatusBadRequest)
}

// ---- Gateway (GW) ----

// ErrGatewayUnavailable covers transport and SDK failures. The cause carries
// full detail for the operator log; callers only see the generic message.
func ErrGatewayUnavailable(err error) *AppError {
	return Wrap(CodeGatewayTransport, "Something Bad Happened", http.StatusBadGateway, err)
}

// GatewayError surfaces an error object reported by the gateway itself.
// The message is the gateway's code and description joined verbatim.
func GatewayError(code, description string) *AppError {
	return New(CodeGatewayReported, code+"- "+description, http.StatusBadRequest)
}

func ErrAuthenticationFailed(err error) *AppError {
	return Wrap(CodeAuthentication, "Razorpay credential validation failed", http.StatusUnauthorized, err)
}

// ---- Callback verification (SEC) ----

func ErrSignatureMismatch() *AppError {
	return New(CodeSignatureMismatch, "Razorpay payment signature verification failed", http.StatusUnauthorized)
}

func ErrCallbackReplayed() *AppError {
	return New(CodeCallbackReplayed, "Callback already processed", http.StatusConflict)
}

// ---- Resources (RES) ----

// ErrNotFound reports that a named resource does not exist.
func ErrNotFound(resource string) *AppError {
	return New(CodeNotFound, resource+" not found", http.StatusNotFound)
}

// IsNotFound reports whether err is a missing-resource error.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

// ---- System (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns an AppError for a caller-supplied input failure that is
// not one of the named preconditions, such as a request that fails binding.
func Validation(message string) *AppError {
	return New(CodeInvalidInput, message, http.StatusBadRequest)
}

// CodeOf returns the AppError code of err, or "" if err is not an AppError.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsValidation reports whether err is a local input failure, raised before
// any network call.
func IsValidation(err error) bool {
	code := CodeOf(err)
	return code == CodeInvalidInput || code == CodeMissingAmount || code == CodeMissingPaymentID
}

// IsSignatureMismatch reports whether err is a strict-mode verification failure.
func IsSignatureMismatch(err error) bool {
	return CodeOf(err) == CodeSignatureMismatch
}
