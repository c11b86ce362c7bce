package editor

import (
	"errors"
	"fmt"
)

var (
	// ErrStaleTransition is returned when a newer transition started while
	// this one was rendering. Its result is dropped.
	ErrStaleTransition = errors.New("transition superseded by a newer one")

	// ErrFormatUnavailable is returned for formatting commands outside the
	// visual mode
	ErrFormatUnavailable = errors.New("formatting is only available in visual mode")

	// ErrUnsupportedFile is returned for uploads that are not HTML, text or
	// Markdown
	ErrUnsupportedFile = errors.New("unsupported file type")
)

// ClipboardError is returned when the clipboard cannot be read
type ClipboardError struct {
	Err error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("clipboard access denied: %v", e.Err)
}

func (e *ClipboardError) Unwrap() error { return e.Err }

// FileReadError is returned when an uploaded file cannot be read
type FileReadError struct {
	Name string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Name, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// RendererError is returned when Markdown rendering fails
type RendererError struct {
	Transition string
	Err        error
}

func (e *RendererError) Error() string {
	if e.Transition == "" {
		return fmt.Sprintf("markdown renderer failed: %v", e.Err)
	}
	return fmt.Sprintf("markdown renderer failed during %s: %v", e.Transition, e.Err)
}

func (e *RendererError) Unwrap() error { return e.Err }

// PersistenceError is returned when the store rejects a load or save
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s %s failed: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsClipboardDenied checks if an error is a ClipboardError
func IsClipboardDenied(err error) bool {
	var clipErr *ClipboardError
	return errors.As(err, &clipErr)
}

// IsFileRead checks if an error is a FileReadError
func IsFileRead(err error) bool {
	var readErr *FileReadError
	return errors.As(err, &readErr)
}

// IsRenderer checks if an error is a RendererError
func IsRenderer(err error) bool {
	var renderErr *RendererError
	return errors.As(err, &renderErr)
}

// IsPersistence checks if an error is a PersistenceError
func IsPersistence(err error) bool {
	var storeErr *PersistenceError
	return errors.As(err, &storeErr)
}

// IsStale checks if a transition was superseded
func IsStale(err error) bool {
	return errors.Is(err, ErrStaleTransition)
}
