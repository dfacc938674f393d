package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrDuplicate    = errors.New("already exists")
	ErrValidation   = errors.New("validation error")
)

const transportFailureMessage = "network error: could not reach the server"

// APIError is returned for every unsuccessful call. Status is 0 when no
// response was received at all.
type APIError struct {
	Status  int
	Message string
	// Detail holds the structured error body when the server sent one
	// (e.g. a list of field errors on 422).
	Detail any
	Err    error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Is lets callers match an APIError against the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return classifyAPIError(e) == ClassTransient
	case ErrUnauthorized:
		return classifyAPIError(e) == ClassUnauthorized
	case ErrDuplicate:
		return classifyAPIError(e) == ClassDuplicate
	case ErrValidation:
		return classifyAPIError(e) == ClassValidation
	}
	return false
}

// DecodeError is returned when the server answered 2xx but the body could not
// be decoded. The request itself succeeded; for writes, the write landed.
type DecodeError struct {
	Method string
	Path   string
	Status int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s %s response (http %d): %v", e.Method, e.Path, e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func transportError(err error) *APIError {
	return &APIError{Message: transportFailureMessage, Err: err}
}
