// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package errors provides message chains used across the service. Errors
// are matched by message, so a sentinel survives being re-created on the
// far side of an HTTP boundary.
package errors

import "encoding/json"

const separator = " : "

// Error is one link of a message chain.
type Error interface {
	// Error implements the error interface.
	Error() string

	// Msg returns the message of this link only.
	Msg() string

	// Err returns the next link, or nil.
	Err() Error

	// MarshalJSON renders the link and the message of the next one.
	MarshalJSON() ([]byte, error)
}

var _ Error = (*link)(nil)

type link struct {
	msg  string
	next Error
}

// New returns a single-link Error.
func New(text string) Error {
	return &link{msg: text}
}

func (l *link) Error() string {
	if l == nil {
		return ""
	}
	if l.next == nil {
		return l.msg
	}
	return l.msg + separator + l.next.Error()
}

func (l *link) Msg() string {
	if l == nil {
		return ""
	}
	return l.msg
}

func (l *link) Err() Error {
	if l == nil {
		return nil
	}
	return l.next
}

// Unwrap exposes the chain to the standard library errors package.
func (l *link) Unwrap() error {
	if l == nil || l.next == nil {
		return nil
	}
	return l.next
}

// Is reports a message match against this link only; errors.Is walks the
// rest of the chain through Unwrap.
func (l *link) Is(target error) bool {
	if l == nil {
		return false
	}
	if t, ok := target.(Error); ok {
		return l.msg == t.Msg()
	}
	return target != nil && l.msg == target.Error()
}

func (l *link) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("null"), nil
	}
	out := struct {
		Err string `json:"error"`
		Msg string `json:"message"`
	}{Msg: l.msg}
	if l.next != nil {
		out.Err = l.next.Msg()
	}
	return json.Marshal(out)
}

// Contains reports whether any link of e1 carries the message of e2. Two
// nil errors contain each other.
func Contains(e1, e2 error) bool {
	if e1 == nil || e2 == nil {
		return e1 == e2
	}
	for {
		ce, ok := e1.(Error)
		if !ok {
			return e1.Error() == e2.Error()
		}
		if ce.Msg() == e2.Error() {
			return true
		}
		next := ce.Err()
		if next == nil {
			return false
		}
		e1 = next
	}
}

// Wrap puts wrapper in front of err. A nil err returns wrapper unchanged.
func Wrap(wrapper, err error) error {
	if wrapper == nil || err == nil {
		return wrapper
	}
	msg := wrapper.Error()
	if w, ok := wrapper.(Error); ok {
		msg = w.Msg()
	}
	return &link{msg: msg, next: toError(err)}
}

// Unwrap splits err into its outermost message and the rest of the chain.
// A single link yields a nil wrapper.
func Unwrap(err error) (error, error) {
	ce, ok := err.(Error)
	if !ok {
		return nil, err
	}
	if ce.Err() == nil {
		return nil, New(ce.Msg())
	}
	return New(ce.Msg()), ce.Err()
}

func toError(err error) Error {
	if e, ok := err.(Error); ok {
		return e
	}
	return &link{msg: err.Error()}
}
