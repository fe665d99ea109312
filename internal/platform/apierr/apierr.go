package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Stable error codes returned in the API error envelope.
const (
	CodeValidation      = "validation_error"
	CodeNotFound        = "not_found"
	CodePersistence     = "persistence_error"
	CodeResolution      = "resolution_error"
	CodeUpstreamTimeout = "upstream_timeout"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(err error) *Error {
	return New(http.StatusBadRequest, CodeValidation, err)
}

func NotFound(err error) *Error {
	return New(http.StatusNotFound, CodeNotFound, err)
}

func Persistence(err error) *Error {
	return New(http.StatusInternalServerError, CodePersistence, err)
}

func Resolution(err error) *Error {
	return New(http.StatusInternalServerError, CodeResolution, err)
}

func UpstreamTimeout(err error) *Error {
	return New(http.StatusGatewayTimeout, CodeUpstreamTimeout, err)
}

// StatusOf maps any error to an HTTP status and code, defaulting to 500.
func StatusOf(err error) (int, string) {
	var ae *Error
	if errors.As(err, &ae) {
		status := ae.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return status, ae.Code
	}
	return http.StatusInternalServerError, ""
}

func IsCode(err error, code string) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}
