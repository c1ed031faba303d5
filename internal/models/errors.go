package models

import "errors"

var (
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidPrice     = errors.New("invalid price")
	ErrInvalidBar       = errors.New("invalid bar (high < low)")
	ErrInvalidVolume    = errors.New("invalid volume")

	// ErrInvalidConfig marks a rejected indicator parameter set. It is always
	// returned before any output is produced.
	ErrInvalidConfig = errors.New("invalid indicator configuration")

	ErrUnknownIndicator = errors.New("unknown indicator")
	ErrTooManyBars      = errors.New("too many bars")
)
