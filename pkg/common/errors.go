package common

import "errors"

// Sentinel errors returned by services. Handlers map them to HTTP statuses;
// everything else is treated as a persistence failure.
var (
	ErrNotFound   = errors.New("record not found")
	ErrValidation = errors.New("validation failed")
)
