package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an Error for the error pipeline.
type Kind uint8

const (
	KindStore Kind = iota
	KindNotFound
	KindValidation
	KindInvalidRequest
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindInvalidRequest:
		return "invalid_request"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "store"
	}
}

// Error is the typed error returned by the model and repository layers.
// Status is the HTTP status the error pipeline responds with.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// MsgArticleNotFound is the message of every id problem.
const MsgArticleNotFound = "Article does not exist"

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: message}
}

func Validation(message string, err error) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: message, Err: err}
}

func InvalidRequest(err error) *Error {
	return &Error{Kind: KindInvalidRequest, Status: http.StatusBadRequest, Message: "Invalid request.", Err: err}
}

func Unauthorized(message string, err error) *Error {
	return &Error{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: message, Err: err}
}

func Store(err error) *Error {
	return &Error{Kind: KindStore, Status: http.StatusInternalServerError, Message: "store failure", Err: err}
}

// As returns the *Error in err's chain, or nil.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// Is reports whether err carries an *Error of the given kind.
func Is(err error, kind Kind) bool {
	e := As(err)

	return e != nil && e.Kind == kind
}
