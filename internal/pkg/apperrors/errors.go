package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrAccountSuspended   = errors.New("account is suspended")
	ErrGoogleTokenInvalid = errors.New("invalid google id token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// User and admin errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrRoleNotSelectable  = errors.New("role cannot be self-assigned")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminAlreadyExists = errors.New("user is already an admin")
)

// Directory errors
var (
	ErrLocationNotFound = errors.New("location not found")
	ErrLocationInUse    = errors.New("cannot delete location that is being used by academies")
	ErrSkillNotFound    = errors.New("skill not found")
	ErrSkillInUse       = errors.New("cannot delete skill that is being used by academies")
)

// Academy errors
var (
	ErrAcademyNotFound       = errors.New("academy not found")
	ErrAcademySkillNotFound  = errors.New("academy skill request not found")
	ErrSkillAlreadyRequested = errors.New("skill already requested for this academy")
)

// Photo errors
var (
	ErrPhotoNotFound       = errors.New("photo not found")
	ErrPhotoQuotaExceeded  = errors.New("maximum 4 photos allowed per academy")
	ErrPhotoTooLarge       = errors.New("file size must be less than 5MB")
	ErrPhotoTypeNotAllowed = errors.New("only JPEG, PNG, and WebP images are allowed")
	ErrStorageUnavailable  = errors.New("photo storage unavailable")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
