package magnet

import "errors"

// ErrInvalidLevel is returned when level geometry cannot host a run.
var ErrInvalidLevel = errors.New("invalid level geometry")
