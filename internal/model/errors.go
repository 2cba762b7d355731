package model

import "errors"

// Failure taxonomy shared by every component. None of these is fatal: each
// failure path ends in a log line and an error cue, leaving prior state
// untouched.
var (
	// ErrInvalidIdentifier is returned for IDs that are unparseable or
	// outside [1, MaxID].
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrFetchFailure is returned when the species API cannot be reached or
	// answers with a non-2xx status.
	ErrFetchFailure = errors.New("species fetch failed")

	// ErrPersistence is returned when the durable capture record cannot be
	// read or written.
	ErrPersistence = errors.New("capture persistence unavailable")

	// ErrUnrecognizedPayload is returned when a tag read yields no usable ID.
	ErrUnrecognizedPayload = errors.New("unrecognized tag payload")

	// ErrPermissionDenied is returned when scan hardware is unavailable or
	// access to it is refused.
	ErrPermissionDenied = errors.New("scan permission denied")
)
