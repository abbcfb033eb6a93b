// Package domain defines core types, interfaces, and errors for the ingestion pipeline.
package domain

import "fmt"

// ConnectionError indicates the document store could not be reached.
type ConnectionError struct {
	Message string
	Cause   error
}

func (e *ConnectionError) Error() string { return e.Message }
func (e *ConnectionError) Unwrap() error { return e.Cause }

// ExtractionError indicates a failure while reading documents from the store.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string { return e.Message }
func (e *ExtractionError) Unwrap() error { return e.Cause }

// ValidationError indicates invalid input or a violated pipeline precondition.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// PersistenceError indicates a failure while writing an artifact file.
type PersistenceError struct {
	Message string
	Cause   error
}

func (e *PersistenceError) Error() string { return e.Message }
func (e *PersistenceError) Unwrap() error { return e.Cause }

// ErrConnection creates a ConnectionError wrapping cause with a formatted message.
func ErrConnection(cause error, format string, args ...interface{}) *ConnectionError {
	return &ConnectionError{Message: fmt.Sprintf(format, args...) + ": " + cause.Error(), Cause: cause}
}

// ErrExtraction creates an ExtractionError wrapping cause with a formatted message.
func ErrExtraction(cause error, format string, args ...interface{}) *ExtractionError {
	return &ExtractionError{Message: fmt.Sprintf(format, args...) + ": " + cause.Error(), Cause: cause}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrPersistence creates a PersistenceError wrapping cause with a formatted message.
func ErrPersistence(cause error, format string, args ...interface{}) *PersistenceError {
	return &PersistenceError{Message: fmt.Sprintf(format, args...) + ": " + cause.Error(), Cause: cause}
}
