package server

import "errors"

// ErrResetNotConfirmed is returned when a reset request lacks confirmation.
var ErrResetNotConfirmed = errors.New("reset requires confirm: true")
