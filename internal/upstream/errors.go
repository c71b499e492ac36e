package upstream

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the upstream rejects the bearer
	// token (HTTP 401).
	ErrUnauthorized = errors.New("upstream rejected credentials")

	// ErrNotFound is returned when the requested upstream resource does
	// not exist (HTTP 404).
	ErrNotFound = errors.New("upstream resource not found")
)

// StatusError is returned for any other non-2xx upstream response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream returned status %d", e.Code)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.Code, e.Message)
}
