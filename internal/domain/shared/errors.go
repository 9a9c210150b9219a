package shared

// DomainError represents a domain-level error
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

// Error codes shared across the domain
const (
	CodeValidation            = "VALIDATION_ERROR"
	CodeNotFound              = "NOT_FOUND"
	CodeForbidden             = "FORBIDDEN"
	CodeConflict              = "CONFLICT"
	CodeInsufficientStock     = "INSUFFICIENT_STOCK"
	CodeInvalidTransition     = "INVALID_TRANSITION"
	CodeTerminalState         = "TERMINAL_STATE"
	CodeConcurrencyConflict   = "CONCURRENT_MODIFICATION"
	CodeAlreadyExists         = "ALREADY_EXISTS"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeIOError               = "IO_ERROR"
	CodeDependencyUnavailable = "DEPENDENCY_UNAVAILABLE"
)

// Common domain errors
var (
	ErrNotFound              = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists         = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrForbidden             = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrUnauthorized          = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrConcurrencyConflict   = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
	ErrInsufficientStock     = NewDomainError(CodeInsufficientStock, "Insufficient stock available")
	ErrDependencyUnavailable = NewDomainError(CodeDependencyUnavailable, "Downstream dependency unavailable")
)

// NewValidationError creates a validation error with a specific message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewIOError creates an I/O error with a specific message
func NewIOError(message string) *DomainError {
	return NewDomainError(CodeIOError, message)
}
