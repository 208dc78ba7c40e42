package rotation

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAngle = errors.New("rotation must be 0, 90, 180 or 270 degrees")
	ErrNoEncoder    = errors.New("no encoder for format")
	ErrEmptyOutput  = errors.New("encoder produced no output")
)

// DecodeError reports input that is not a decodable image.
type DecodeError struct {
	Filename string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %v", e.Filename, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a failed re-encode. No partial output accompanies it.
type EncodeError struct {
	MIMEType string
	Err      error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.MIMEType, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
