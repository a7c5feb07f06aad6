package services

import (
	"errors"
	"net/http"
)

// ServiceError carries the HTTP status a handler should answer with. Err keeps
// the underlying cause for logging; it is never sent to clients.
type ServiceError struct {
	Status  int
	Message string
	Err     error
}

func (e ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e ServiceError) Unwrap() error {
	return e.Err
}

func ErrNotFound(msg string) error {
	return ServiceError{Status: http.StatusNotFound, Message: msg}
}

func ErrBadRequest(msg string) error {
	return ServiceError{Status: http.StatusBadRequest, Message: msg}
}

func ErrUnauthorized(msg string) error {
	return ServiceError{Status: http.StatusUnauthorized, Message: msg}
}

func ErrRateLimited(msg string, cause error) error {
	return ServiceError{Status: http.StatusTooManyRequests, Message: msg, Err: cause}
}

func ErrUpstream(msg string, cause error) error {
	return ServiceError{Status: http.StatusInternalServerError, Message: msg, Err: cause}
}

func ErrPersistence(msg string, cause error) error {
	return ServiceError{Status: http.StatusInternalServerError, Message: msg, Err: cause}
}

// StatusOf returns the HTTP status carried by err, or 500 for anything that is
// not a ServiceError.
func StatusOf(err error) int {
	var serr ServiceError
	if errors.As(err, &serr) {
		return serr.Status
	}
	return http.StatusInternalServerError
}

