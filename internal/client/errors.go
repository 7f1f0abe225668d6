package client

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// APIError is returned for non-2xx responses.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

func (e *APIError) ServerMessage() string {
	return e.Message
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == 404
}

// RejectedError is returned when the server answers with success=false.
// It is a recoverable business rejection, not a transport failure.
type RejectedError struct {
	Method  string
	Path    string
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s rejected: %s", e.Method, e.Path, e.Message)
	}
	return fmt.Sprintf("%s %s rejected", e.Method, e.Path)
}

func (e *RejectedError) ServerMessage() string {
	return e.Message
}
