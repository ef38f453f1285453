package conversation

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	ai "github.com/spetersoncode/reviewchat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileAdapter(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file starts empty", func(t *testing.T) {
		a, err := NewFileAdapter(filepath.Join(t.TempDir(), "nested", "store.json"))
		require.NoError(t, err)

		n, err := a.Len(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("values persist across adapters", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "store.json")
		a, err := NewFileAdapter(path)
		require.NoError(t, err)

		require.NoError(t, a.Set(ctx, "m1", json.RawMessage(`{"id":"m1"}`)))
		require.NoError(t, a.Set(ctx, "m2", json.RawMessage(`{"id":"m2"}`)))
		require.NoError(t, a.Delete(ctx, "m2"))
		require.NoError(t, a.Delete(ctx, "missing"))

		reopened, err := NewFileAdapter(path)
		require.NoError(t, err)
		v, ok, err := reopened.Get(ctx, "m1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.JSONEq(t, `{"id":"m1"}`, string(v))
		n, _ := reopened.Len(ctx)
		assert.Equal(t, 1, n)

		require.NoError(t, reopened.Clear(ctx))
		again, err := NewFileAdapter(path)
		require.NoError(t, err)
		n, _ = again.Len(ctx)
		assert.Zero(t, n)
	})

	t.Run("corrupt file is a serialization error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := NewFileAdapter(path)
		var serr *SerializationError
		assert.ErrorAs(t, err, &serr)
	})
}

func TestFileAdapterThreadsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	first, err := NewFileAdapter(path)
	require.NoError(t, err)
	provider := &recordingProvider{replies: []string{"one", "two"}}
	reply, err := New(provider, WithAdapter(first)).SendMessage(ctx, "review a", SendOptions{})
	require.NoError(t, err)

	second, err := NewFileAdapter(path)
	require.NoError(t, err)
	next, err := New(provider, WithAdapter(second)).SendMessage(ctx, "review b", SendOptions{
		ParentMessageID: reply.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, reply.ConversationID, next.ConversationID)
	require.Len(t, provider.requests, 2)
	history := provider.requests[1]
	require.Len(t, history, 3)
	assert.Equal(t, "review a", history[0].Content)
	assert.Equal(t, ai.RoleAssistant, history[1].Role)
	assert.Equal(t, "one", history[1].Content)
	assert.Equal(t, "review b", history[2].Content)
}
