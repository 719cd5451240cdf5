package repository

import "errors"

var (
	// ErrNotFound is returned when a stage or application id is unknown.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID is returned when creating a record whose id already
	// exists.
	ErrDuplicateID = errors.New("duplicate id")
)
