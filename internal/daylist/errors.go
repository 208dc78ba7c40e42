package daylist

import "errors"

var (
	ErrCapacityExceeded = errors.New("day list is full")
	ErrMinimumEntries   = errors.New("day list must keep at least one entry")
	ErrIndexOutOfRange  = errors.New("day index out of range")

	ErrReadOnlyField = errors.New("field is computed by the service")
	ErrUnknownField  = errors.New("unknown field")
)
