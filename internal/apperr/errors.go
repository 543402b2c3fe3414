// Package apperr defines the error taxonomy shared by game operations.
// Every rejected operation returns one of these and leaves state untouched.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a rejected operation.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindInsufficientFunds Kind = "insufficient_funds"
	KindPrecondition      Kind = "precondition"
	KindNotFound          Kind = "not_found"
)

// Sentinel errors. Wrap them in an *Error to attach a message.
var (
	ErrInsufficientFunds  = errors.New("not enough gold")
	ErrAlreadyMarried     = errors.New("already married")
	ErrNotMarried         = errors.New("not married")
	ErrSpouseTooOld       = errors.New("spouse too old")
	ErrRelationshipTooLow = errors.New("relationship too low")
	ErrChildTooYoung      = errors.New("child too young")
	ErrTooManyChildren    = errors.New("too many children")
	ErrNotUsable          = errors.New("item cannot be used")
	ErrNotEquippable      = errors.New("item cannot be equipped")
	ErrSlotEmpty          = errors.New("slot is empty")
	ErrNotFound           = errors.New("not found")
	ErrNoGame             = errors.New("no game in progress")
	ErrNoChronicle        = errors.New("no chronicle open")
)

// Error is a classified game error.
type Error struct {
	Kind    Kind
	Field   string // set for validation errors
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

// Validation reports a missing or invalid creation field.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// InsufficientFunds reports a cost the player cannot pay.
func InsufficientFunds(cost, wealth int) *Error {
	return &Error{
		Kind:    KindInsufficientFunds,
		Message: fmt.Sprintf("costs %d gold, you have %d", cost, wealth),
		Err:     ErrInsufficientFunds,
	}
}

// Precondition wraps a sentinel for an unmet requirement.
func Precondition(sentinel error, format string, args ...any) *Error {
	return &Error{Kind: KindPrecondition, Message: fmt.Sprintf(format, args...), Err: sentinel}
}

// NotFound reports a bad index or unknown name.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...), Err: ErrNotFound}
}

// KindOf returns the kind of err, or "" if it is not classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsInsufficientFunds reports whether err is an insufficient-funds error.
func IsInsufficientFunds(err error) bool { return KindOf(err) == KindInsufficientFunds }

// IsPrecondition reports whether err is an unmet precondition.
func IsPrecondition(err error) bool { return KindOf(err) == KindPrecondition }
