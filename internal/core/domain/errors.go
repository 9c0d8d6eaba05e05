package domain

import (
	"errors"
	"fmt"
)

// ErrTaskNotFound covers both a missing task id and a task owned by a
// different user. The two cases are deliberately indistinguishable so that
// the API never leaks whether a task exists under another owner.
var ErrTaskNotFound = errors.New("task not found")

var ErrUserNotFound = errors.New("user not found")

// ErrEmailTaken is raised by the user store when the unique email
// constraint rejects an insert.
var ErrEmailTaken = errors.New("user already exists")

type AuthenticationErrorKind int

const (
	AuthenticationInvalid AuthenticationErrorKind = iota
	AuthenticationExpired
)

type AuthenticationError struct {
	Kind   AuthenticationErrorKind
	Reason string
}

func (e *AuthenticationError) Error() string {
	if e.Kind == AuthenticationExpired {
		return "token has expired"
	}

	return fmt.Sprintf("invalid token: %s", e.Reason)
}

func (e *AuthenticationError) Code() string {
	if e.Kind == AuthenticationExpired {
		return "TOKEN_EXPIRED"
	}

	return "INVALID_TOKEN"
}

type AuthorizationErrorKind int

const (
	AccessDenied AuthorizationErrorKind = iota
	MalformedPathID
)

type AuthorizationError struct {
	Kind        AuthorizationErrorKind
	RequestedID string
}

func (e *AuthorizationError) Error() string {
	if e.Kind == MalformedPathID {
		return fmt.Sprintf("invalid user id format in path: %s", e.RequestedID)
	}

	return "access denied"
}

func (e *AuthorizationError) Code() string {
	if e.Kind == MalformedPathID {
		return "INVALID_PATH_ID"
	}

	return "ACCESS_DENIED"
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DatabaseError wraps a storage failure. The wrapped cause is for server-side
// logs only and must never reach a response body.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error during %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}
