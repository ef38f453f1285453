package conversation

import (
	"context"

	"github.com/goccy/go-json"
	ai "github.com/spetersoncode/reviewchat"
)

// ChatMessage is one stored side of an exchange.
type ChatMessage struct {
	ID              string   `json:"id"`
	Role            ai.Role  `json:"role"`
	Text            string   `json:"text"`
	ParentMessageID string   `json:"parentMessageId,omitempty"`
	ConversationID  string   `json:"conversationId,omitempty"`
	Usage           ai.Usage `json:"usage"`
}

// messageStore reads and writes ChatMessages through an Adapter.
type messageStore struct {
	adapter Adapter
}

func (s messageStore) get(ctx context.Context, id string) (*ChatMessage, error) {
	raw, ok, err := s.adapter.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrMessageNotFound
	}
	var msg ChatMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, &SerializationError{Key: id, Err: err}
	}
	return &msg, nil
}

func (s messageStore) put(ctx context.Context, msgs ...*ChatMessage) error {
	for _, msg := range msgs {
		raw, err := json.Marshal(msg)
		if err != nil {
			return &SerializationError{Key: msg.ID, Err: err}
		}
		if err := s.adapter.Set(ctx, msg.ID, raw); err != nil {
			return err
		}
	}
	return nil
}
