package storage

import "errors"

// Storage errors shared by all backends.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when inserting a curve that already
	// exists. The equity archive is append-only; curves are keyed by
	// (pair_id, seed) and never updated.
	ErrDuplicateKey = errors.New("duplicate key: archive does not allow updates")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)
