package main

import "errors"

var (
	ErrMalformedInput  = errors.New("malformed input")
	ErrInvalidMove     = errors.New("invalid move")
	ErrNoMoveAvailable = errors.New("no move available")
	ErrUnknownCommand  = errors.New("unknown command")
)

// RequestError carries the exact message reported to the client and
// unwraps to one of the error kinds above.
type RequestError struct {
	Kind    error
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Kind
}

func newRequestError(kind error, message string) *RequestError {
	return &RequestError{Kind: kind, Message: message}
}
