package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	ai "github.com/spetersoncode/reviewchat"
)

// DefaultMaxHistory bounds how many prior messages are replayed per send.
const DefaultMaxHistory = 50

// SendOptions configures a single SendMessage call.
type SendOptions struct {
	// ParentMessageID threads the message onto a prior reply.
	ParentMessageID string
	// ConversationID is used when the parent does not carry one.
	ConversationID string
	// Timeout bounds the provider request. Zero means no extra bound.
	Timeout time.Duration
}

// Conversation threads messages over a stateless ChatProvider.
// It is safe for concurrent use when the provider and adapter are.
type Conversation struct {
	provider      ai.ChatProvider
	store         messageStore
	systemMessage string
	maxHistory    int
	chatOpts      []ai.Option
	newID         func() string
}

// Option configures a Conversation.
type Option func(*Conversation)

// WithSystemMessage sets the system prompt sent ahead of every history.
func WithSystemMessage(msg string) Option {
	return func(c *Conversation) {
		c.systemMessage = msg
	}
}

// WithAdapter sets the persistence backend. Nil keeps the in-memory default.
func WithAdapter(a Adapter) Option {
	return func(c *Conversation) {
		if a != nil {
			c.store = messageStore{adapter: a}
		}
	}
}

// WithMaxHistory bounds the number of prior messages replayed.
func WithMaxHistory(n int) Option {
	return func(c *Conversation) {
		c.maxHistory = n
	}
}

// WithChatOptions sets options applied to every provider request.
func WithChatOptions(opts ...ai.Option) Option {
	return func(c *Conversation) {
		c.chatOpts = append(c.chatOpts, opts...)
	}
}

// WithIDGenerator replaces the message id source.
func WithIDGenerator(fn func() string) Option {
	return func(c *Conversation) {
		c.newID = fn
	}
}

// New creates a Conversation backed by provider.
func New(provider ai.ChatProvider, opts ...Option) *Conversation {
	c := &Conversation{
		provider:   provider,
		store:      messageStore{adapter: NewMemoryAdapter()},
		maxHistory: DefaultMaxHistory,
		newID:      ai.GenerateMessageID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SystemMessage returns the bound system prompt.
func (c *Conversation) SystemMessage() string {
	return c.systemMessage
}

// SendMessage sends text, threaded onto opts.ParentMessageID when set, and
// returns the stored assistant reply. A request that runs past opts.Timeout
// fails with a transient error.
func (c *Conversation) SendMessage(ctx context.Context, text string, opts SendOptions) (*ChatMessage, error) {
	history, parent, err := c.history(ctx, opts.ParentMessageID)
	if err != nil {
		return nil, err
	}

	conversationID := opts.ConversationID
	if parent != nil && parent.ConversationID != "" {
		conversationID = parent.ConversationID
	}
	if conversationID == "" {
		conversationID = c.newID()
	}

	user := &ChatMessage{
		ID:              c.newID(),
		Role:            ai.RoleUser,
		Text:            text,
		ParentMessageID: opts.ParentMessageID,
		ConversationID:  conversationID,
	}

	messages := make([]ai.Message, 0, len(history)+2)
	if c.systemMessage != "" {
		messages = append(messages, ai.Message{Role: ai.RoleSystem, Content: c.systemMessage})
	}
	for _, m := range history {
		messages = append(messages, ai.Message{Role: m.Role, Content: m.Text})
	}
	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: text})

	reqCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	resp, err := c.provider.Chat(reqCtx, messages, c.chatOpts...)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, ai.NewTransientError(fmt.Sprintf("request timed out after %s", opts.Timeout), 0, err)
		}
		return nil, err
	}

	replyID := resp.ID
	if replyID == "" {
		replyID = c.newID()
	}
	reply := &ChatMessage{
		ID:              replyID,
		Role:            ai.RoleAssistant,
		Text:            resp.Content,
		ParentMessageID: user.ID,
		ConversationID:  conversationID,
		Usage:           resp.Usage,
	}

	if err := c.store.put(ctx, user, reply); err != nil {
		return nil, fmt.Errorf("store messages: %w", err)
	}
	return reply, nil
}

// Message returns a stored message by id.
func (c *Conversation) Message(ctx context.Context, id string) (*ChatMessage, error) {
	return c.store.get(ctx, id)
}

// history walks parent links from parentID, oldest first. An unknown
// parent yields an empty history rather than an error, matching a fresh
// conversation.
func (c *Conversation) history(ctx context.Context, parentID string) ([]*ChatMessage, *ChatMessage, error) {
	if parentID == "" {
		return nil, nil, nil
	}

	var chain []*ChatMessage
	var parent *ChatMessage
	id := parentID
	for id != "" && len(chain) < c.maxHistory {
		msg, err := c.store.get(ctx, id)
		if errors.Is(err, ErrMessageNotFound) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if parent == nil {
			parent = msg
		}
		chain = append(chain, msg)
		id = msg.ParentMessageID
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, parent, nil
}
