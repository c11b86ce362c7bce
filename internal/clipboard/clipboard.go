// Package clipboard reads the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available
var ErrUnsupported = errors.New("clipboard not available on this system")

// Reader is a source of clipboard text
type Reader interface {
	ReadAll() (string, error)
}

// System reads and writes the desktop clipboard
type System struct{}

func (System) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnsupported
	}
	return clipboard.ReadAll()
}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// Text is a fixed clipboard, used when the text is already known
type Text string

func (t Text) ReadAll() (string, error) {
	return string(t), nil
}
