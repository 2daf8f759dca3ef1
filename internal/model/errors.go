package model

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the service can surface to a user.
// Provider-specific status codes are always mapped into one of these.
type Kind int

const (
	KindUpstream Kind = iota
	KindAuth
	KindNotFound
	KindRateLimited
	KindValidation
)

// String returns the API error code for the kind.
func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "INVALID_CREDENTIALS"
	case KindNotFound:
		return "NOT_FOUND"
	case KindRateLimited:
		return "RATE_LIMITED"
	case KindValidation:
		return "VALIDATION_ERROR"
	default:
		return "UPSTREAM_ERROR"
	}
}

// Error is the uniform fault type for provider and input failures.
type Error struct {
	Kind     Kind
	Provider string
	Message  string
	Status   int // upstream HTTP status, 0 when not applicable
}

func (e *Error) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	}
	return e.Message
}

// KindOf extracts the Kind from err, defaulting to KindUpstream.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUpstream
}

func AuthErr(provider, message string) *Error {
	return &Error{Kind: KindAuth, Provider: provider, Message: message}
}

func NotFoundErr(provider, message string) *Error {
	return &Error{Kind: KindNotFound, Provider: provider, Message: message}
}

func RateLimitedErr(provider, message string) *Error {
	return &Error{Kind: KindRateLimited, Provider: provider, Message: message}
}

func UpstreamErr(provider, message string, status int) *Error {
	return &Error{Kind: KindUpstream, Provider: provider, Message: message, Status: status}
}

func ValidationErr(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}
