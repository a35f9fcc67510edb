package common

import (
	"errors"
	"fmt"
)

// Kind classifies an application error. The set is closed; anything that is not an *Error is internal.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindAuthorization
	KindDuplicateRequest
	KindDuplicateRating
	KindProfileIncomplete
	KindInvalidToken
	KindExpiredToken
	KindConflict
	KindInvalidCredentials
	KindValidation
	KindEmailDelivery
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAuthorization:
		return "authorization"
	case KindDuplicateRequest:
		return "duplicate_request"
	case KindDuplicateRating:
		return "duplicate_rating"
	case KindProfileIncomplete:
		return "profile_incomplete"
	case KindInvalidToken:
		return "invalid_token"
	case KindExpiredToken:
		return "expired_token"
	case KindConflict:
		return "conflict"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindValidation:
		return "validation"
	case KindEmailDelivery:
		return "email_delivery"
	default:
		return "internal"
	}
}

// Error is the tagged application error returned by the services.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on kind, so errors.Is(err, ErrNotFound) holds for any not-found error.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// Kind sentinels for errors.Is.
var (
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrAuthorization      = &Error{Kind: KindAuthorization}
	ErrDuplicateRequest   = &Error{Kind: KindDuplicateRequest}
	ErrDuplicateRating    = &Error{Kind: KindDuplicateRating}
	ErrProfileIncomplete  = &Error{Kind: KindProfileIncomplete}
	ErrInvalidToken       = &Error{Kind: KindInvalidToken}
	ErrExpiredToken       = &Error{Kind: KindExpiredToken}
	ErrConflict           = &Error{Kind: KindConflict}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials}
	ErrValidation         = &Error{Kind: KindValidation}
	ErrEmailDelivery      = &Error{Kind: KindEmailDelivery}
)

func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func WrapError(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(format string, args ...any) *Error {
	return NewError(KindNotFound, format, args...)
}

func Unauthorized(format string, args ...any) *Error {
	return NewError(KindAuthorization, format, args...)
}

// KindOf returns the kind of err, KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
