package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	ai "github.com/spetersoncode/reviewchat"
	"github.com/spetersoncode/reviewchat/config"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 19, 12, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

var errUnavailable = errors.New("provider unavailable")

// fakeBackend fails its first `failures` calls, then replies.
type fakeBackend struct {
	mu       sync.Mutex
	calls    int
	failures int
	failWith error
	reply    string
	requests [][]ai.Message
	options  []*ai.Options
}

func (f *fakeBackend) Chat(_ context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.requests = append(f.requests, messages)
	f.options = append(f.options, ai.ApplyOptions(opts...))
	if f.calls <= f.failures {
		if f.failWith != nil {
			return nil, f.failWith
		}
		return nil, errUnavailable
	}
	return &ai.Response{ID: fmt.Sprintf("chatcmpl-%d", f.calls), Content: f.reply, Usage: ai.Usage{InputTokens: 5, OutputTokens: 2}}, nil
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// factoryRecorder hands out one shared backend and records every Transport.
type factoryRecorder struct {
	mu         sync.Mutex
	backend    *fakeBackend
	transports []Transport
}

func (r *factoryRecorder) factory(t Transport) ai.ChatProvider {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transports = append(r.transports, t)
	return r.backend
}

func (r *factoryRecorder) built() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.transports)
}

// fakeSender stands in for the OpenAI conversation.
type fakeSender struct {
	mu       sync.Mutex
	calls    int
	failures int
	reply    *ChatMessage
	sent     []SendOptions
	panicMsg string
}

func (s *fakeSender) SendMessage(_ context.Context, _ string, opts SendOptions) (*ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.sent = append(s.sent, opts)
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	if s.calls <= s.failures {
		return nil, errUnavailable
	}
	return s.reply, nil
}

func testOptions(retries int) config.Options {
	opts := config.DefaultOptions()
	opts.SystemMessage = "You are a reviewer."
	opts.Language = "fr-FR"
	opts.Retries = retries
	return opts
}

func testModel() config.ModelOptions {
	m := config.DefaultModelOptions()
	m.Model = "test-model"
	m.TokenLimits.KnowledgeCutoff = "2024-06"
	return m
}

func fastRetry() ClientOption {
	return WithRetryBackoff(time.Millisecond, time.Millisecond, 1, 0)
}

func newStatelessClient(t *testing.T, creds config.Credentials, retries int, backend *fakeBackend, extra ...ClientOption) (*Client, *factoryRecorder) {
	t.Helper()
	rec := &factoryRecorder{backend: backend}
	opts := append([]ClientOption{WithTransportFactory(rec.factory), WithClock(fixedClock), fastRetry()}, extra...)
	c, err := New(testOptions(retries), testModel(), creds, opts...)
	require.NoError(t, err)
	return c, rec
}
