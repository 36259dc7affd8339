package domain

import "fmt"

// Error types for consistent error handling across the service.

// ErrMalformedRequest indicates a request body that is missing or is not a
// valid JSON document of the expected shape.
type ErrMalformedRequest struct {
	Reason string
	Err    error
}

func (e *ErrMalformedRequest) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed request body: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed request body: %s", e.Reason)
}

func (e *ErrMalformedRequest) Unwrap() error {
	return e.Err
}

// ErrPayloadTooLarge indicates the request body exceeded the configured limit.
type ErrPayloadTooLarge struct {
	Limit int64
}

func (e *ErrPayloadTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}
