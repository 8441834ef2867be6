// Package apierrors defines the client-facing error variants returned by
// services. Each error carries a Kind; the HTTP layer maps kinds to status
// codes in exactly one place.
package apierrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kind classifies an APIError.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindNotFound
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	default:
		return "unknown"
	}
}

// AuthReason tells apart the ways authentication can fail.
type AuthReason int

const (
	AuthReasonNone AuthReason = iota
	AuthReasonMissingToken
	AuthReasonInvalidOrExpired
	AuthReasonUserGone
	AuthReasonBadCredentials
)

// APIError is an expected, client-visible failure.
type APIError struct {
	Kind    Kind
	Reason  AuthReason
	Message string
	Cause   error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// As extracts an APIError from an error chain.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind Kind) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Kind == kind
}

func NewErrValidation(messages ...string) *APIError {
	return &APIError{Kind: KindValidation, Message: strings.Join(messages, ", ")}
}

// NewErrMalformedBody wraps a JSON decoding failure.
func NewErrMalformedBody(cause error) *APIError {
	return &APIError{Kind: KindValidation, Message: "Invalid request body.", Cause: cause}
}

func NewErrEmailIsTaken() *APIError {
	return &APIError{Kind: KindConflict, Message: "An account with this email already exists."}
}

func NewErrEmailInUse() *APIError {
	return &APIError{Kind: KindConflict, Message: "This email is already in use by another account."}
}

func NewErrUserNotFound(id string) *APIError {
	return &APIError{Kind: KindNotFound, Message: fmt.Sprintf("No user found with ID: %s", id)}
}

func NewErrUserNotFoundToUpdate(id string) *APIError {
	return &APIError{Kind: KindNotFound, Message: fmt.Sprintf("No user found with ID: %s to update.", id)}
}

func NewErrUserNotFoundToDelete(id string) *APIError {
	return &APIError{Kind: KindNotFound, Message: fmt.Sprintf("No user found with ID: %s to delete.", id)}
}

func NewErrMissingAuthorizationToken() *APIError {
	return &APIError{Kind: KindAuth, Reason: AuthReasonMissingToken, Message: "Access denied. No token provided."}
}

func NewErrInvalidAuthorizationToken(cause error) *APIError {
	return &APIError{Kind: KindAuth, Reason: AuthReasonInvalidOrExpired, Message: "Invalid or expired token.", Cause: cause}
}

func NewErrTokenUserGone(userID uuid.UUID) *APIError {
	return &APIError{
		Kind:    KindAuth,
		Reason:  AuthReasonUserGone,
		Message: "The user belonging to this token no longer exists.",
		Cause:   fmt.Errorf("user %s not found", userID),
	}
}

func NewErrIncorrectCredentials() *APIError {
	return &APIError{Kind: KindAuth, Reason: AuthReasonBadCredentials, Message: "Incorrect email or password."}
}
