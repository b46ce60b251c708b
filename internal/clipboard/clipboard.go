// Package clipboard moves converted lyrics to and from the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

var (
	// ErrEmpty is returned when there is nothing to copy or paste.
	ErrEmpty = errors.New("clipboard text is empty")
	// ErrUnsupported is returned when no clipboard utility is available
	// (for example xclip, xsel or wl-clipboard on Linux).
	ErrUnsupported = errors.New("clipboard is not available on this system")
)

// Backend stubs for tests.
var (
	readAll     = clipboard.ReadAll
	writeAll    = clipboard.WriteAll
	unsupported = func() bool { return clipboard.Unsupported }
)

// ReadAll returns the clipboard text.
func ReadAll() (string, error) {
	if unsupported() {
		return "", ErrUnsupported
	}
	text, err := readAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}

// WriteAll replaces the clipboard text.
func WriteAll(text string) error {
	if text == "" {
		return ErrEmpty
	}
	if unsupported() {
		return ErrUnsupported
	}
	if err := writeAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
