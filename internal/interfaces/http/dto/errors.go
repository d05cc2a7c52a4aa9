package dto

import "net/http"

// Transport-level error codes. Business codes are produced by the domain and
// application layers and pass through unchanged.
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
//
// Business codes follow a simple scheme: missing resources are 404, rights
// violations are 403, state conflicts that a retry at another moment could
// resolve are 409, act-content problems the caller must fix are 422, and
// dependent-subsystem failures are 503.
var ErrorCodeHTTPStatus = map[string]int{
	// Transport errors
	ErrCodeUnknown:         http.StatusInternalServerError,
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeTokenExpired:    http.StatusUnauthorized,
	ErrCodeTokenInvalid:    http.StatusUnauthorized,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// Missing resources
	"NOT_FOUND":            http.StatusNotFound,
	"ACT_NOT_FOUND":        http.StatusNotFound,
	"ACT_SIGNED_NOT_FOUND": http.StatusNotFound,
	"ACTOR_NOT_FOUND":      http.StatusNotFound,

	// Rights
	"FORBIDDEN":         http.StatusForbidden,
	"PERMISSION_DENIED": http.StatusForbidden,

	// State conflicts
	"ALREADY_EXISTS":              http.StatusConflict,
	"CONCURRENCY_CONFLICT":        http.StatusConflict,
	"SIGNING_WINDOW_CLOSED":       http.StatusConflict,
	"INCOHERENT_ACT_STATUS":       http.StatusConflict,
	"MULTIPLE_NON_VALID_ANALYSES": http.StatusConflict,
	"NO_UNSIGNED_DOCUMENT":        http.StatusConflict,

	// Act content the caller must correct
	"INVALID_INPUT":           http.StatusBadRequest,
	"INVALID_MENTION_TYPE":    http.StatusUnprocessableEntity,
	"INVALID_STATE":           http.StatusUnprocessableEntity,
	"ACT_EMPTY":               http.StatusUnprocessableEntity,
	"ACT_NOT_ELECTRONIC":      http.StatusUnprocessableEntity,
	"NO_MENTION_TO_SIGN":      http.StatusUnprocessableEntity,
	"INVALID_TIME_ZONE":       http.StatusUnprocessableEntity,
	"SERVICE_ADDRESS_MISSING": http.StatusUnprocessableEntity,

	// Dependent subsystems
	"SIGNATURE_UNAVAILABLE":         http.StatusServiceUnavailable,
	"TIMESTAMP_AUGMENTATION_FAILED": http.StatusServiceUnavailable,
	"TIMESTAMP_VALIDATION_FAILED":   http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
