package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned after a 401; by the time the caller sees
	// it the session has already been cleared.
	ErrUnauthorized = errors.New("session expired, please log in again")

	// ErrNetwork is returned when no response was received at all.
	ErrNetwork = errors.New("server unreachable")
)

// HTTPError is a non-2xx, non-401 response, carrying the server-supplied
// message when the body had one.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("http %d", e.Status)
}

// AppError is a 2xx response the application still considers failed:
// isSucceded=false on a mutating call, or a read without a usable value.
type AppError struct {
	Message string
}

func (e *AppError) Error() string { return e.Message }
