package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a uniqueness constraint,
	// e.g. duplicate email, duplicate google id, or a second vote on a poll.
	ErrConflict = errors.New("conflict")
)
