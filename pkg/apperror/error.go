package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
)

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
)

type Kind int

var kindDescriptions = map[Kind]struct {
	statusCode int
	code       string
}{
	KindUnknown:        {http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	KindValidation:     {http.StatusBadRequest, "VALIDATION_ERROR"},
	KindAuthentication: {http.StatusUnauthorized, "AUTHENTICATION_ERROR"},
	KindAuthorization:  {http.StatusForbidden, "AUTHORIZATION_ERROR"},
	KindNotFound:       {http.StatusNotFound, "NOT_FOUND_ERROR"},
}

func (k Kind) StatusCode() int {
	return kindDescriptions[k].statusCode
}

func (k Kind) Code() string {
	desc, ok := kindDescriptions[k]
	if !ok {
		return kindDescriptions[KindUnknown].code
	}

	return desc.code
}

// Operational kinds are expected failures caused by the caller.
func (k Kind) Operational() bool {
	return k != KindUnknown
}

type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
	Stack      []byte
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}

	return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Code() string {
	return e.Kind.Code()
}

func (e *Error) Operational() bool {
	return e.Kind.Operational()
}

// Status returns the explicitly set status code or the kind default.
func (e *Error) Status() int {
	if e.StatusCode != 0 {
		return e.StatusCode
	}

	return e.Kind.StatusCode()
}

func (e *Error) WithStatusCode(statusCode int) *Error {
	e.StatusCode = statusCode
	return e
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Authentication(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

func Authorization(msg string) *Error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Unknown(err error) *Error {
	return &Error{Kind: KindUnknown, Err: err, Stack: debug.Stack()}
}

// As finds the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}

	return nil, false
}

// From classifies any error, errors without a classification become KindUnknown.
func From(err error) *Error {
	if appErr, ok := As(err); ok {
		return appErr
	}

	return &Error{Kind: KindUnknown, Err: err}
}
