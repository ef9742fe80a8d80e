package domain

import "errors"

var (
	// ErrInvalidArgument marks a query whose page or size is negative.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnavailable marks a failure of the backing data source.
	ErrUnavailable = errors.New("data source unavailable")
)
