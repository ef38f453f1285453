package retry

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	ai "github.com/spetersoncode/reviewchat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTransientError simulates a transient network error.
type mockTransientError struct {
	msg string
}

func (e *mockTransientError) Error() string   { return e.msg }
func (e *mockTransientError) Timeout() bool   { return true }
func (e *mockTransientError) Temporary() bool { return true }

var _ net.Error = (*mockTransientError)(nil)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
		Jitter:       0,
	}
}

func TestDoSuccess(t *testing.T) {
	callCount := 0

	result, err := DoWithEvents(context.Background(), DefaultConfig(), nil, func() (string, error) {
		callCount++
		return "success", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 1, callCount)
}

func TestDoRetryOnTransientError(t *testing.T) {
	callCount := 0
	transientErr := &mockTransientError{msg: "timeout"}

	result, err := DoWithEvents(context.Background(), fastConfig(3), nil, func() (string, error) {
		callCount++
		if callCount < 3 {
			return "", transientErr
		}
		return "success", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 3, callCount)
}

func TestDoNoRetryOnPermanentError(t *testing.T) {
	callCount := 0
	permanentErr := errors.New("permanent error")

	_, err := DoWithEvents(context.Background(), DefaultConfig(), nil, func() (string, error) {
		callCount++
		return "", permanentErr
	})

	assert.Equal(t, permanentErr, err)
	assert.Equal(t, 1, callCount)
}

func TestDoExhaustsRetries(t *testing.T) {
	callCount := 0
	transientErr := &mockTransientError{msg: "timeout"}

	_, err := DoWithEvents(context.Background(), fastConfig(3), nil, func() (string, error) {
		callCount++
		return "", transientErr
	})

	assert.Equal(t, transientErr, err)
	assert.Equal(t, 3, callCount)
}

func TestDoRetryIfAlways(t *testing.T) {
	cfg := fastConfig(4)
	cfg.RetryIf = Always

	callCount := 0
	plainErr := errors.New("invalid api key")

	_, err := DoWithEvents(context.Background(), cfg, nil, func() (string, error) {
		callCount++
		return "", plainErr
	})

	assert.Equal(t, plainErr, err)
	assert.Equal(t, 4, callCount)
}

func TestDoRetryBudget(t *testing.T) {
	tests := []struct {
		name     string
		retries  int
		failures int
		wantOK   bool
	}{
		{"no retries, succeeds first", 0, 0, true},
		{"no retries, one failure", 0, 1, false},
		{"fails exactly retries times", 3, 3, true},
		{"fails retries plus one times", 3, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := FromRetries(tt.retries)
			cfg.InitialDelay = time.Millisecond
			cfg.MaxDelay = time.Millisecond
			cfg.Jitter = 0

			calls := 0
			result, err := DoWithEvents(context.Background(), cfg, nil, func() (string, error) {
				calls++
				if calls <= tt.failures {
					return "", errors.New("boom")
				}
				return "ok", nil
			})

			if tt.wantOK {
				require.NoError(t, err)
				assert.Equal(t, "ok", result)
				assert.Equal(t, tt.failures+1, calls)
			} else {
				assert.Error(t, err)
				assert.Equal(t, tt.retries+1, calls)
			}
		})
	}
}

func TestDoZeroAttemptsStillRunsOnce(t *testing.T) {
	callCount := 0
	_, err := DoWithEvents(context.Background(), Config{}, nil, func() (int, error) {
		callCount++
		return 1, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, callCount)
}

func TestDoRespectsContextCancellation(t *testing.T) {
	cfg := Config{
		MaxAttempts:  10,
		InitialDelay: time.Second,
		MaxDelay:     time.Second,
		Multiplier:   1.0,
	}

	ctx, cancel := context.WithCancel(context.Background())
	callCount := 0

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := DoWithEvents(ctx, cfg, nil, func() (string, error) {
		callCount++
		return "", &mockTransientError{msg: "timeout"}
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, callCount)
}

func TestDoWithSingleAttempt(t *testing.T) {
	callCount := 0

	_, err := DoWithEvents(context.Background(), Config{MaxAttempts: 1}, nil, func() (string, error) {
		callCount++
		return "", &mockTransientError{msg: "timeout"}
	})

	assert.Error(t, err)
	assert.Equal(t, 1, callCount)
}

func TestDoHonorsRetryAfterFromError(t *testing.T) {
	cfg := Config{
		MaxAttempts:  2,
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     100 * time.Millisecond,
		Multiplier:   2.0,
	}

	retryErr := ai.NewTransientErrorWithRetry("rate limited", 429, 50*time.Millisecond, nil)
	callTimes := make([]time.Time, 0, 2)

	_, err := DoWithEvents(context.Background(), cfg, nil, func() (string, error) {
		callTimes = append(callTimes, time.Now())
		if len(callTimes) < 2 {
			return "", retryErr
		}
		return "success", nil
	})

	require.NoError(t, err)
	require.Len(t, callTimes, 2)
	assert.GreaterOrEqual(t, callTimes[1].Sub(callTimes[0]), 45*time.Millisecond)
}

func TestDoWithEvents(t *testing.T) {
	t.Run("emits attempt, retry and success events", func(t *testing.T) {
		events := make(chan Event, 10)
		callCount := 0

		_, err := DoWithEvents(context.Background(), fastConfig(3), events, func() (string, error) {
			callCount++
			if callCount < 2 {
				return "", &mockTransientError{msg: "timeout"}
			}
			return "ok", nil
		})
		require.NoError(t, err)
		close(events)

		var types []EventType
		for e := range events {
			types = append(types, e.Type)
			assert.False(t, e.Timestamp.IsZero())
		}
		assert.Equal(t, []EventType{
			EventAttemptStart,
			EventAttemptFailed,
			EventRetrying,
			EventAttemptStart,
			EventSuccess,
		}, types)
	})

	t.Run("emits exhausted after last failure", func(t *testing.T) {
		events := make(chan Event, 10)

		_, err := DoWithEvents(context.Background(), fastConfig(2), events, func() (string, error) {
			return "", &mockTransientError{msg: "timeout"}
		})
		require.Error(t, err)
		close(events)

		var last Event
		for e := range events {
			last = e
		}
		assert.Equal(t, EventExhausted, last.Type)
		assert.Equal(t, 2, last.Attempt)
		assert.Error(t, last.Error)
	})

	t.Run("drops events when channel is full", func(t *testing.T) {
		events := make(chan Event)

		result, err := DoWithEvents(context.Background(), fastConfig(1), events, func() (string, error) {
			return "ok", nil
		})
		assert.NoError(t, err)
		assert.Equal(t, "ok", result)
	})
}
