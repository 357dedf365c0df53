package errs

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type AlreadyExistsError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// InsufficientFundsError rejects a goal withdrawal that exceeds the goal's
// accumulated balance. It is raised before any state changes.
type InsufficientFundsError struct {
	ErrorMessage
}

// ProtectedResourceError rejects deletion of resources the application
// depends on, such as the "Metas" category.
type ProtectedResourceError struct {
	ErrorMessage
}

// DatabaseError wraps a Firestore failure with the originating operation
// name for diagnostics. The underlying error is logged, never shown.
type DatabaseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *DatabaseError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewAlreadyExistsError(message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewInsufficientFundsError(message string) *InsufficientFundsError {
	return &InsufficientFundsError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewProtectedResourceError(message string) *ProtectedResourceError {
	return &ProtectedResourceError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Err:          err,
	}
}
