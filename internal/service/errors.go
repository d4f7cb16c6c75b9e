package service

import "errors"

// ErrUserNotFound means a userId did not resolve to a stored user.
var ErrUserNotFound = errors.New("unknown userId")

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
