package registry

import "errors"

// Sentinel Errors returned by the registry package.
var (
	ErrInvalidJob  = errors.New("invalid job submission")
	ErrJobNotFound = errors.New("training job not found")
	ErrState       = errors.New("invalid status transition")
)
