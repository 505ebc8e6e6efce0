package apperrors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the category of an application error.
type ErrorCode string

const (
	// Caller-supplied arguments violate a precondition.
	CodeValidation ErrorCode = "VALIDATION_ERROR"

	// Store errors
	CodeStore      ErrorCode = "STORE_ERROR"
	CodeDuplicate  ErrorCode = "DB_DUPLICATE"
	CodeForeignKey ErrorCode = "DB_FOREIGN_KEY"
)

// AppError is the error type returned by services.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
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

// IsStore reports whether the error came from the backing store.
func (e *AppError) IsStore() bool {
	switch e.Code {
	case CodeStore, CodeDuplicate, CodeForeignKey:
		return true
	}
	return false
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Validation builds a VALIDATION_ERROR with a formatted message.
func Validation(format string, args ...any) *AppError {
	return New(CodeValidation, fmt.Sprintf(format, args...))
}

// Get returns the first AppError in err's chain, or nil.
func Get(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func IsValidation(err error) bool {
	appErr := Get(err)
	return appErr != nil && appErr.Code == CodeValidation
}

func IsStore(err error) bool {
	appErr := Get(err)
	return appErr != nil && appErr.IsStore()
}
