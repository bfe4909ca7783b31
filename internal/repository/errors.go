package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist in the store.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a record collides with an existing unique key.
var ErrConflict = errors.New("conflict")
