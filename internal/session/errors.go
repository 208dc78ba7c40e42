package session

import "errors"

var (
	ErrBusy              = errors.New("a request is already in flight")
	ErrEditInProgress    = errors.New("another timecard is being edited")
	ErrNotEditing        = errors.New("no timecard is being edited")
	ErrNoFile            = errors.New("no image selected")
	ErrNoSuchCard        = errors.New("no such timecard")
	ErrInvalidTransition = errors.New("invalid transition")
)
