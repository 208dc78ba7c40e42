package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable       = errors.New("service unavailable")
	ErrMalformedResponse = errors.New("malformed service response")
)

// ServiceError is a failure reported by the service itself: a non-2xx status
// or a body carrying an "error" field.
type ServiceError struct {
	// Status is the HTTP status code.
	Status int
	// Message is the display string, "HTTP error! status: N" for non-2xx
	// responses or the service's error text otherwise.
	Message string
	// Detail is the "error" field of a non-2xx body, if any.
	Detail string
	// RawResponse is the unparsed model output some failures carry.
	RawResponse string
}

func (e *ServiceError) Error() string { return e.Message }

func newStatusError(status int, detail, raw string) *ServiceError {
	return &ServiceError{
		Status:      status,
		Message:     fmt.Sprintf("HTTP error! status: %d", status),
		Detail:      detail,
		RawResponse: raw,
	}
}

// Display returns the message and raw response to show for err.
func Display(err error) (string, string) {
	var se *ServiceError
	if errors.As(err, &se) {
		msg := se.Message
		if se.Detail != "" {
			msg += " (" + se.Detail + ")"
		}
		return msg, se.RawResponse
	}
	return err.Error(), ""
}
