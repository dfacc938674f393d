package client

import (
	"errors"
	"net/http"
	"strings"
)

type ErrorClass int

const (
	ClassNone ErrorClass = iota
	ClassDuplicate
	ClassValidation
	ClassUnauthorized
	ClassTransient
	ClassUnknown
)

func (c ErrorClass) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassDuplicate:
		return "duplicate"
	case ClassValidation:
		return "validation"
	case ClassUnauthorized:
		return "unauthorized"
	case ClassTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Classify maps err to an ErrorClass. Only *APIError values (possibly
// wrapped) get a specific class; any other non-nil error is ClassUnknown.
//
// A duplicate means the write already took effect, so callers should report
// it as success.
func Classify(err error) ErrorClass {
	if err == nil {
		return ClassNone
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return ClassUnknown
	}
	return classifyAPIError(apiErr)
}

func classifyAPIError(e *APIError) ErrorClass {
	msg := strings.ToLower(e.Message)
	switch {
	case e.Status == http.StatusConflict,
		strings.Contains(msg, "exists"),
		strings.Contains(msg, "duplicate"):
		return ClassDuplicate
	case e.Status == http.StatusUnauthorized, e.Status == http.StatusForbidden:
		return ClassUnauthorized
	case e.Status == http.StatusBadRequest, e.Status == http.StatusUnprocessableEntity:
		return ClassValidation
	case e.Status == 0:
		return ClassTransient
	default:
		return ClassUnknown
	}
}
