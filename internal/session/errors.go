package session

import (
	"errors"
	"fmt"
)

var (
	// ErrNotEditing is returned by draft operations while viewing
	ErrNotEditing = errors.New("session is not editing")
	// ErrAlreadyEditing is returned by Begin while a draft exists
	ErrAlreadyEditing = errors.New("session is already editing")
	// ErrTemplateLocked is returned by SelectTemplate while editing
	ErrTemplateLocked = errors.New("template cannot change while editing")
	// ErrBusy is returned by Save while another save is outstanding
	ErrBusy = errors.New("a save is already in progress")
	// ErrNotFound means the resume does not exist for this owner
	ErrNotFound = errors.New("resume not found")
	// ErrClosed is returned by operations on a closed session
	ErrClosed = errors.New("session is closed")
	// ErrInvalidValue is returned for presentation values that cannot apply
	ErrInvalidValue = errors.New("invalid value")
)

// SaveError wraps a persistence failure. The session stays in editing with
// its draft intact, so the caller may retry.
type SaveError struct {
	Message string
	Cause   error
}

func (e *SaveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("save failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("save failed: %s", e.Message)
}

func (e *SaveError) Unwrap() error {
	return e.Cause
}
