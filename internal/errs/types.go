package errs

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

// AuthError signals a token issuance or refresh failure. Fatal for the
// current call; no retry is attempted anywhere in this client.
type AuthError struct {
	ErrorMessage
}

type NotFoundError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// InvalidFilterError signals a malformed filter spec (bad key shape or
// unknown operator). Raised before any store access.
type InvalidFilterError struct {
	ErrorMessage
}

// InvalidFieldError signals a projection field outside the allowed set.
type InvalidFieldError struct {
	ErrorMessage
}

// StoreError wraps an I/O failure from Firestore. Surfaced verbatim,
// never retried or masked.
type StoreError struct {
	ErrorMessage
	Operation string
}

func NewAuthError(message string) *AuthError {
	return &AuthError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewInvalidFilterError(message string) *InvalidFilterError {
	return &InvalidFilterError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewInvalidFieldError(message string) *InvalidFieldError {
	return &InvalidFieldError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewStoreError(operation, message string) *StoreError {
	return &StoreError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
	}
}
