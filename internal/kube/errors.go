package kube

import (
	"errors"
	"fmt"
)

// Kind identifies the class of failure returned by the client
type Kind int

const (
	KindURL Kind = iota + 1
	KindConfig
	KindTransport
	KindUnauthorized
	KindOtherFailure
	KindDeserialize
)

// Sentinels for use with errors.Is
var (
	ErrURL          = errors.New("invalid url")
	ErrConfig       = errors.New("invalid tls configuration")
	ErrTransport    = errors.New("transport failure")
	ErrUnauthorized = errors.New("unauthorized")
	ErrOtherFailure = errors.New("unexpected response status")
	ErrDeserialize  = errors.New("failed to decode response body")
)

var sentinels = map[Kind]error{
	KindURL:          ErrURL,
	KindConfig:       ErrConfig,
	KindTransport:    ErrTransport,
	KindUnauthorized: ErrUnauthorized,
	KindOtherFailure: ErrOtherFailure,
	KindDeserialize:  ErrDeserialize,
}

// Error is the typed error returned by every fallible client operation.
// StatusCode is only set for KindOtherFailure and KindUnauthorized.
type Error struct {
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	msg := sentinels[e.Kind].Error()
	if e.Kind == KindOtherFailure {
		msg = fmt.Sprintf("%s %d", msg, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel matching this error's kind.
func (e *Error) Is(target error) bool {
	return sentinels[e.Kind] == target
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}
