package domain

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindUnclassified ErrorKind = iota
	KindNotFound
	KindNotPermitted
	KindMalformedInput
	KindConflict
)

const (
	MsgOperationNotPermitted = "Operation not permitted."
	MsgInsufficientFunds     = "Operation failed. Insufficient funds."
)

// Error carries a kind discriminant so the HTTP boundary can map
// business failures to status codes in one place.
type Error struct {
	Kind    ErrorKind
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

func NewNotFound(iban string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("Account %s not found", iban)}
}

func NewNotPermitted(message string) *Error {
	return &Error{Kind: KindNotPermitted, Message: message}
}

func NewMalformedInput(message string) *Error {
	return &Error{Kind: KindMalformedInput, Message: message}
}

func NewConflict(message string, err error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: err}
}

func KindOf(err error) ErrorKind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindUnclassified
}
