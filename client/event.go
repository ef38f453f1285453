package client

import (
	"time"

	ai "github.com/spetersoncode/reviewchat"
	"github.com/spetersoncode/reviewchat/internal/retry"
)

// EventType identifies the kind of event occurring during client operations.
type EventType string

const (
	// EventRequestStart fires before a provider request begins.
	EventRequestStart EventType = "request_start"

	// EventRequestComplete fires after a provider request succeeds.
	EventRequestComplete EventType = "request_complete"

	// EventRequestError fires when a request fails after all retries.
	EventRequestError EventType = "request_error"

	// EventRetry fires for each retry event (forwarded from the retry loop).
	EventRetry EventType = "retry"

	// EventFatal fires when no provider is active. It signals a broken
	// client rather than a failed request.
	EventFatal EventType = "fatal"
)

// Event represents an observable occurrence during client operations.
type Event struct {
	Type     EventType
	Provider ai.Provider
	Model    string

	// Duration is the elapsed time, including retries, for finished requests.
	Duration time.Duration

	// Usage is set on EventRequestComplete when the provider reported it.
	Usage *ai.Usage

	Error error

	// RetryEvent contains the underlying retry event for EventRetry.
	RetryEvent *RetryEvent

	Timestamp time.Time
}

// RetryEvent is an attempt-level event from the retry loop.
type RetryEvent = retry.Event

// RetryEventType identifies the kind of retry event.
type RetryEventType = retry.EventType

// Retry event type constants.
const (
	RetryEventAttemptStart  = retry.EventAttemptStart
	RetryEventAttemptFailed = retry.EventAttemptFailed
	RetryEventRetrying      = retry.EventRetrying
	RetryEventSuccess       = retry.EventSuccess
	RetryEventExhausted     = retry.EventExhausted
)

// emit sends an event with timestamp to the channel without blocking.
func emit(ch chan<- Event, event Event) {
	if ch == nil {
		return
	}
	event.Timestamp = time.Now()
	select {
	case ch <- event:
	default:
	}
}
