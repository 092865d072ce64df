package tuning

import "errors"

var (
	ErrInvalidRate = errors.New("rate must be a finite, non-negative number")
	ErrUnknownRate = errors.New("unknown rate")
)
