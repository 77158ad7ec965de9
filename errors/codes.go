package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Availability errors (retryable)
const (
	// ErrCodeServiceUnavailable indicates a backing service is temporarily unavailable.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeRateLimited indicates the client has made too many attempts.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
)

// Resource errors
const (
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeConflict ErrorCode = "CONFLICT"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the request body or parameters are invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Authentication errors. MalformedToken and SignatureMismatch never leave the
// process; they label rejection reasons for logs and metrics only.
const (
	// ErrCodeUnauthorized is the single outcome of a failed session check.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeInvalidCredentials covers both an unknown username and a wrong password.
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	// ErrCodeDuplicateUsername indicates a registration conflict.
	ErrCodeDuplicateUsername ErrorCode = "DUPLICATE_USERNAME"
	ErrCodeMalformedToken    ErrorCode = "MALFORMED_TOKEN"
	ErrCodeSignatureMismatch ErrorCode = "SIGNATURE_MISMATCH"
	// ErrCodeMissingSecret is a fatal startup misconfiguration.
	ErrCodeMissingSecret ErrorCode = "MISSING_SECRET"
)

// Internal errors
const (
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable: true,
	ErrCodeRateLimited:        true,
	ErrCodeDatabaseError:      true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
