package shared

// DomainError represents a business-rule violation. It is caller-correctable:
// the caller sees the code and the offending identifiers and is never expected
// to retry automatically.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// TechnicalError represents an infrastructure failure (timestamp service
// outage, storage failure). It requires operator intervention rather than a
// user correction, and must never be converted into a DomainError.
type TechnicalError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *TechnicalError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *TechnicalError) Unwrap() error {
	return e.Cause
}

// NewTechnicalError creates a new technical error
func NewTechnicalError(code, message string, cause error) *TechnicalError {
	return &TechnicalError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)
