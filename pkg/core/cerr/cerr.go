// Package cerr provides error wrapper types which communicate the
// error category, as required for selection of an HTTP status code,
// from the use cases layer to the outer adapters. The wrapped error
// keeps the actual failure description and may chain to a domain
// sentinel error, such as model.ErrOutOfStock, so callers can match
// it using errors.Is regardless of the HTTP mapping.
package cerr

import (
	"fmt"
	"net/http"
)

type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

// BadRequest categorizes err as a caller fault, like passing an
// invalid argument where a work or patron is required.
func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

func Authentication(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusUnauthorized}
}

func Authorization(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusForbidden}
}

// NotFound categorizes err as a reference to a missing entity. It is
// used by operations which require existence, like lending by ID;
// optional lookups report absence with a nil value instead.
func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

// Conflict categorizes err as a clash with the current state, like
// lending an out-of-stock work or returning a closed loan.
func Conflict(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusConflict}
}
