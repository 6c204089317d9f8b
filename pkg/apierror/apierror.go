// Package apierror defines the two error conventions of the CampusRate
// API client.
//
// Authentication operations (sign-up, sign-in token exchange, one-time
// code verification) return a Go error, typically an *AuthError carrying
// the server-supplied message; callers must handle it with the usual
// error checks.
//
// Every other resource operation returns a *ResourceFault value next to
// its data and never a Go error. A nil fault means success; a non-nil
// fault carries the HTTP status and a message, and callers fall back to
// a safe default (empty list, nil record) instead of failing.
//
// The split mirrors how call sites recover and is deliberate; do not
// unify the two conventions.
package apierror

import "fmt"

// Error codes shared by both conventions.
const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeOTPInvalid         = "OTP_INVALID"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeNetworkError       = "NETWORK_ERROR"
)

// AuthError is the thrown-style failure of an authentication operation.
// Message is the server-supplied text when one was parseable.
type AuthError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewAuthError creates a new authentication error.
func NewAuthError(code, message string, status int) *AuthError {
	return &AuthError{Code: code, Message: message, Status: status}
}

// ResourceFault is the returned-style failure of a resource operation:
// a normalized {status, error} value. Status is 0 when the request never
// reached the server (network or decode failure).
type ResourceFault struct {
	Status  int    `json:"status"`
	Message string `json:"error"`
}

// Error implements the error interface so faults can be logged uniformly,
// but resource operations still return the fault as a value, not as error.
func (f *ResourceFault) Error() string {
	return fmt.Sprintf("status %d: %s", f.Status, f.Message)
}

// NewResourceFault creates a normalized resource fault.
func NewResourceFault(status int, message string) *ResourceFault {
	return &ResourceFault{Status: status, Message: message}
}
