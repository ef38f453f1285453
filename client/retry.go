package client

import (
	"context"
	"time"

	"github.com/spetersoncode/reviewchat/internal/retry"
)

// WithRetryBackoff overrides the wait between attempts. The number of
// attempts still comes from Options.Retries.
func WithRetryBackoff(initial, maxDelay time.Duration, multiplier, jitter float64) ClientOption {
	return func(c *Client) {
		c.retryConfig.InitialDelay = initial
		c.retryConfig.MaxDelay = maxDelay
		c.retryConfig.Multiplier = multiplier
		c.retryConfig.Jitter = jitter
	}
}

// WithRetryIf sets which failed attempts are retried. By default every
// error is retried.
func WithRetryIf(retryIf func(error) bool) ClientOption {
	return func(c *Client) {
		if retryIf != nil {
			c.retryConfig.RetryIf = retryIf
		}
	}
}

// WithTransientRetriesOnly retries only rate limits, server errors,
// timeouts and network failures. Auth and request errors fail on the
// first attempt.
func WithTransientRetriesOnly() ClientOption {
	return WithRetryIf(retry.IsTransient)
}

// withRetry runs fn under the client's retry policy, forwarding attempt
// events when an event channel is configured.
func withRetry[T any](ctx context.Context, c *Client, fn func() (T, error)) (T, error) {
	var retryEvents chan retry.Event
	if c.events != nil {
		retryEvents = make(chan retry.Event, 10)
		done := make(chan struct{})
		go c.forwardRetryEvents(retryEvents, done)
		// Runs on panic too, so the forwarder always exits.
		defer func() {
			close(retryEvents)
			<-done
		}()
	}

	return retry.DoWithEvents(ctx, c.retryConfig, retryEvents, fn)
}

func (c *Client) forwardRetryEvents(events <-chan retry.Event, done chan<- struct{}) {
	defer close(done)
	for e := range events {
		e := e
		emit(c.events, Event{
			Type:       EventRetry,
			Provider:   c.provider,
			Model:      c.model,
			RetryEvent: &e,
		})
	}
}
