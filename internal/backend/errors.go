package backend

import (
	"errors"
	"unicode/utf8"
)

// maxMessageLen caps backend failure messages shown to the user
const maxMessageLen = 200

// Common backend client errors
var (
	ErrNoWarehouseSelected = errors.New("no warehouse selected")
	ErrTimeout             = errors.New("backend request timed out")
)

// RemoteError is a failure reported by the backend. Its message is shown to
// the user as-is, truncated to a displayable length.
type RemoteError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	if e.Message == "" {
		return "backend operation failed"
	}
	return e.Message
}

// TruncateMessage shortens a backend message to the display cap, counting
// runes so multi-byte text is never cut mid-character
func TruncateMessage(message string) string {
	if utf8.RuneCountInString(message) <= maxMessageLen {
		return message
	}
	return string([]rune(message)[:maxMessageLen])
}
