package thread

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an unknown conversation/customer id.
var ErrNotFound = errors.New("conversation not found")

// ErrEmptyText is returned by Send for blank text. It is caught before any
// network call is made.
var ErrEmptyText = errors.New("message text is empty")

// LoadError wraps a failure of the initial conversation load. None of the
// three parallel fetches is applied when any of them fails.
type LoadError struct {
	ConversationID string
	Err            error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load conversation %s: %v", e.ConversationID, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SendError wraps a failed outbound send. Prior messages and the composer
// buffer are untouched.
type SendError struct {
	Err error
}

func (e *SendError) Error() string { return fmt.Sprintf("send message: %v", e.Err) }

func (e *SendError) Unwrap() error { return e.Err }
