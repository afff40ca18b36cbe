package mlmodel

import "errors"

var (
	// ErrModelUnavailable indicates the model service could not be reached
	// or answered with an error status
	ErrModelUnavailable = errors.New("model service unavailable")
	// ErrBadResponse indicates the model service answered with a payload
	// we could not use
	ErrBadResponse = errors.New("invalid model response")
)
