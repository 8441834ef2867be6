package model

import "errors"

var (
	// ErrNotFound is returned by stores when no record matches.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned by stores when a write hits the unique email index.
	ErrDuplicateEmail = errors.New("duplicate email")
)
