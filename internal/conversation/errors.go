package conversation

import (
	"errors"
	"fmt"
)

// ErrMessageNotFound indicates the requested message id is not stored.
var ErrMessageNotFound = errors.New("conversation: message not found")

// SerializationError wraps JSON marshaling/unmarshaling errors with context.
type SerializationError struct {
	Key string
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("conversation: serialization error for message %q: %v", e.Key, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}
