package client

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"strings"

	ai "github.com/spetersoncode/reviewchat"
	"github.com/spetersoncode/reviewchat/internal/logging"
)

// responsePrefix is stripped from the start of every reply.
const responsePrefix = "with "

// Chat sends message and returns the reply text with the ids to pass to
// the next call. It never fails: an empty message, exhausted retries, or
// a panic in a provider all yield ("", ai.Ids{}) and a log line.
//
// For Mistral and Fireworks the returned ids are synthesized and ids passed
// in are ignored.
func (c *Client) Chat(ctx context.Context, message string, ids ai.Ids) (text string, next ai.Ids) {
	defer func() {
		if r := recover(); r != nil {
			c.log().Warn("failed to chat",
				"provider", c.provider,
				"error", fmt.Sprint(r),
				"stack", string(debug.Stack()))
			text, next = "", ai.Ids{}
		}
	}()

	return c.chat(ctx, message, ids)
}

func (c *Client) chat(ctx context.Context, message string, ids ai.Ids) (string, ai.Ids) {
	start := c.clock()
	if message == "" {
		return "", ai.Ids{}
	}

	var text string
	var next ai.Ids

	switch {
	case c.provider.Stateless():
		var ok bool
		text, next, ok = c.chatStateless(ctx, message)
		if !ok {
			return "", ai.Ids{}
		}
	case c.provider == ai.ProviderOpenAI && c.sender != nil:
		text, next = c.chatStateful(ctx, message, ids)
	default:
		c.log().Error("no API is initialized", "fatal", true, logging.Err(ai.ErrNoActiveProvider))
		emit(c.events, Event{
			Type:     EventFatal,
			Provider: c.provider,
			Duration: c.clock().Sub(start),
			Error:    ai.ErrNoActiveProvider,
		})
	}

	text = strings.TrimPrefix(text, responsePrefix)
	if c.options.Debug {
		c.log().Info("API responses", "text", text)
	}
	return text, next
}

// chatStateless sends one independent request to Mistral or Fireworks.
// ok is false when every attempt failed.
func (c *Client) chatStateless(ctx context.Context, message string) (string, ai.Ids, bool) {
	start := c.clock()
	name := displayName(c.provider)

	system := statelessSystemPrompt(c.options.SystemMessage, start, c.options.Language)
	backend := c.newTransport(c.transport())
	messages := []ai.Message{
		{Role: ai.RoleSystem, Content: system},
		{Role: ai.RoleUser, Content: message},
	}
	opts := []ai.Option{
		ai.WithModel(c.model),
		ai.WithTemperature(c.options.Temperature),
		ai.WithTimeout(c.options.Timeout()),
	}

	emit(c.events, Event{Type: EventRequestStart, Provider: c.provider, Model: c.model})

	resp, err := withRetry(ctx, c, func() (*ai.Response, error) {
		return backend.Chat(ctx, messages, opts...)
	})
	if err != nil {
		c.log().Warn(fmt.Sprintf("failed to chat with %s", name), logging.Err(err))
		emit(c.events, Event{
			Type:     EventRequestError,
			Provider: c.provider,
			Model:    c.model,
			Duration: c.clock().Sub(start),
			Error:    err,
		})
		return "", ai.Ids{}, false
	}

	var text string
	var usage *ai.Usage
	if resp != nil {
		text = resp.Content
		usage = &resp.Usage
	}

	end := c.clock()
	id := fmt.Sprintf("%s_%d", c.provider.IDPrefix(), end.UnixMilli())
	next := ai.Ids{ParentMessageID: id, ConversationID: id}

	elapsed := end.Sub(start)
	c.log().Info(fmt.Sprintf("%s API response time", name), "ms", elapsed.Milliseconds())
	emit(c.events, Event{
		Type:     EventRequestComplete,
		Provider: c.provider,
		Model:    c.model,
		Duration: elapsed,
		Usage:    usage,
	})
	return text, next, true
}

// chatStateful sends message on the OpenAI conversation. A failed send is
// logged and falls through to the empty result.
func (c *Client) chatStateful(ctx context.Context, message string, ids ai.Ids) (string, ai.Ids) {
	start := c.clock()

	opts := SendOptions{Timeout: c.options.Timeout()}
	if ids.ParentMessageID != "" {
		opts.ParentMessageID = ids.ParentMessageID
	}
	if ids.ConversationID != "" {
		opts.ConversationID = ids.ConversationID
	}

	emit(c.events, Event{Type: EventRequestStart, Provider: c.provider, Model: c.model})

	resp, err := withRetry(ctx, c, func() (*ChatMessage, error) {
		return c.sender.SendMessage(ctx, message, opts)
	})
	if err != nil {
		c.log().Info("failed to send message to openai", "response", resp, logging.Err(err))
		resp = nil
	}

	elapsed := c.clock().Sub(start)
	raw, _ := json.Marshal(resp)
	c.log().Info("response", "raw", string(raw))
	c.log().Info("openai sendMessage (including retries) response time", "ms", elapsed.Milliseconds())

	if resp == nil {
		c.log().Warn("openai response is null")
		if err != nil {
			emit(c.events, Event{
				Type:     EventRequestError,
				Provider: c.provider,
				Model:    c.model,
				Duration: elapsed,
				Error:    err,
			})
		}
		return "", ai.Ids{}
	}

	usage := resp.Usage
	emit(c.events, Event{
		Type:     EventRequestComplete,
		Provider: c.provider,
		Model:    c.model,
		Duration: elapsed,
		Usage:    &usage,
	})
	return resp.Text, ai.Ids{
		ParentMessageID: resp.ID,
		ConversationID:  resp.ConversationID,
	}
}

func displayName(p ai.Provider) string {
	switch p {
	case ai.ProviderMistral:
		return "Mistral"
	case ai.ProviderFireworks:
		return "Fireworks"
	default:
		return p.String()
	}
}
