package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUpstreamUnavailable marks transport failures talking to a third-party service.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
