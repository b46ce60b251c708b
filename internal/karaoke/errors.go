package karaoke

import (
	"errors"
	"fmt"
)

var (
	// ErrDanglingContinuation reports a "#|<" continuation with no kanji segment open.
	ErrDanglingContinuation = errors.New("continuation without open kanji segment")
	// ErrInvalidDuration reports a duration tag whose value does not fit an int.
	ErrInvalidDuration = errors.New("invalid karaoke duration")
)

// Diagnostic records a recoverable problem found while tokenizing. The token
// that caused it is dropped; the rest of the line is still converted.
type Diagnostic struct {
	Err  error
	Text string
}

func (d Diagnostic) Error() string {
	if d.Text == "" {
		return d.Err.Error()
	}
	return fmt.Sprintf("%v: %q", d.Err, d.Text)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}
