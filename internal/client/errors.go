package client

import (
	"errors"
	"fmt"
)

// RequestError is returned for any failed backend call: a transport failure
// (StatusCode 0) or a non-2xx response. Failures are not classified further.
type RequestError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("%s %s: HTTP error! status: %d", e.Method, e.Endpoint, e.StatusCode)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsRequestError reports whether err originates from a failed backend call.
func IsRequestError(err error) bool {
	var requestErr *RequestError
	return errors.As(err, &requestErr)
}
