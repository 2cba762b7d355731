package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidTimeout is returned when the API timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid API timeout: must be positive")

	// ErrInvalidLogLimit is returned when the log limit is not positive.
	ErrInvalidLogLimit = errors.New("invalid log limit: must be positive")

	// ErrInvalidHighlight is returned when the highlight duration is not positive.
	ErrInvalidHighlight = errors.New("invalid highlight duration: must be positive")

	// ErrInvalidBaseURL is returned when the API base URL is not absolute.
	ErrInvalidBaseURL = errors.New("invalid API base URL: must be an absolute URL")

	// ErrInvalidSerialMapping is returned when a serial maps to an id
	// outside 1..898 or the serial is empty.
	ErrInvalidSerialMapping = errors.New("invalid serial mapping: ids must be between 1 and 898")

	// ErrInvalidConcurrency is returned when the prefetch concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid prefetch concurrency: must be positive")
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")
