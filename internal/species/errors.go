package species

import "errors"

// ErrInvalidBaseURL is returned by NewClient for a base URL without a
// scheme or host.
var ErrInvalidBaseURL = errors.New("invalid species API base URL")
