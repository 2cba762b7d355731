package scan

import "errors"

// ErrMalformedReading is reported on the error channel for a line that is
// not a valid reading.
var ErrMalformedReading = errors.New("malformed tag reading")
