package submit

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by Dispatcher.Submit after Close.
var ErrClosed = errors.New("dispatcher is closed")

// DeliveryError indicates the receiver answered with a non-2xx status.
type DeliveryError struct {
	StatusCode int
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("webhook returned HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("webhook returned HTTP %d", e.StatusCode)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Temporary reports whether retrying could succeed.
func (e *DeliveryError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// UnavailableError indicates the receiver could not be reached.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("webhook unavailable: %v", e.Err)
	}
	return "webhook unavailable"
}

func (e *UnavailableError) Unwrap() error { return e.Err }
