package model

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrWorkspaceNotFound     = errors.New("workspace not found")
	ErrWorkspaceInvalid      = errors.New("workspace invalid")
	ErrWorkspaceConflict     = errors.New("workspace already exists")
	ErrMashupInvalid         = errors.New("mashup reference invalid")
	ErrNoActiveWorkspace     = errors.New("no active workspace")
	ErrNoWorkspacesRemaining = errors.New("no workspaces remaining")
)

// RequestErrorKind classifies how a platform request failed.
type RequestErrorKind string

const (
	// KindTransport means the request never produced an HTTP response.
	KindTransport RequestErrorKind = "transport"
	// KindStatus means the server answered with a non-success status.
	KindStatus RequestErrorKind = "status"
	// KindUnexpectedStatus means a success status the operation does not accept.
	KindUnexpectedStatus RequestErrorKind = "unexpected_status"
	// KindDecode means the response body could not be decoded.
	KindDecode RequestErrorKind = "decode"
)

// RequestError is returned by workspace operations that reach the platform API.
type RequestError struct {
	Op     string
	Kind   RequestErrorKind
	Status int
	// Reason is the short server- or transport-provided reason.
	Reason string
	// Message is the user-facing text built from the operation's template.
	Message string
	// Details holds the structured validation details of a 422 response.
	Details map[string]any
	Err     error
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Reason, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Is maps HTTP statuses onto the domain sentinels.
func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrWorkspaceConflict:
		return e.Status == http.StatusConflict
	case ErrWorkspaceNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}
