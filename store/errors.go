package store

import "errors"

var (
	// ErrNotFound is returned when an item doesn't exist.
	ErrNotFound = errors.New("store: item not found")

	// ErrAlreadyExists is returned when attempting to create an item with an existing ID.
	ErrAlreadyExists = errors.New("store: item already exists")
)
