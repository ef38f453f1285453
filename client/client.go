package client

import (
	"context"
	"log/slog"
	"time"

	ai "github.com/spetersoncode/reviewchat"
	"github.com/spetersoncode/reviewchat/config"
	"github.com/spetersoncode/reviewchat/internal/conversation"
	"github.com/spetersoncode/reviewchat/internal/provider/openai"
	"github.com/spetersoncode/reviewchat/internal/retry"
)

// Transport describes the endpoint a provider call is bound to.
type Transport struct {
	Provider     ai.Provider
	APIKey       string
	Organization string
	BaseURL      string
	Model        string
}

// TransportFactory builds the chat backend for a Transport.
type TransportFactory func(Transport) ai.ChatProvider

// DefaultTransport returns an OpenAI-compatible client for t.
func DefaultTransport(t Transport) ai.ChatProvider {
	return openai.New(t.APIKey,
		openai.WithBaseURL(t.BaseURL),
		openai.WithModel(t.Model),
		openai.WithOrganization(t.Organization),
	)
}

// Conversation types used by the OpenAI provider.
type (
	SendOptions         = conversation.SendOptions
	ChatMessage         = conversation.ChatMessage
	ConversationAdapter = conversation.Adapter
)

// MessageSender is the stateful conversational backend used for OpenAI.
type MessageSender interface {
	SendMessage(ctx context.Context, text string, opts SendOptions) (*ChatMessage, error)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTransportFactory replaces how provider backends are built.
func WithTransportFactory(f TransportFactory) ClientOption {
	return func(c *Client) {
		c.newTransport = f
	}
}

// WithMessageSender replaces the stateful backend for the OpenAI provider.
func WithMessageSender(s MessageSender) ClientOption {
	return func(c *Client) {
		c.sender = s
	}
}

// WithConversationAdapter sets where the OpenAI conversation history is kept.
func WithConversationAdapter(a ConversationAdapter) ClientOption {
	return func(c *Client) {
		c.convAdapter = a
	}
}

// WithEvents sets a channel that receives request and retry events.
// Events are sent non-blocking; if the channel is full, events are dropped.
func WithEvents(ch chan<- Event) ClientOption {
	return func(c *Client) {
		c.events = ch
	}
}

// WithLogger sets the logger. Defaults to slog.Default at call time.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithClock sets the time source used for prompt dates, synthesized ids
// and latency measurement.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

// Client sends chat messages to the one provider selected at construction.
// It holds no per-call mutable state and may be shared across goroutines.
type Client struct {
	provider    ai.Provider
	apiKey      string
	org         string
	model       string
	options     config.Options
	tokenLimits config.TokenLimits

	// systemMessage is the OpenAI prompt, fixed at construction.
	systemMessage string
	sender        MessageSender
	convAdapter   ConversationAdapter

	retryConfig  retry.Config
	newTransport TransportFactory
	events       chan<- Event
	logger       *slog.Logger
	now          func() time.Time
}

// New selects a provider from creds and returns a client bound to it.
//
// Precedence is Mistral, then Fireworks, then OpenAI. When Mistral or
// Fireworks is selected and opts.APIBaseURL is still the OpenAI default, the
// provider's own endpoint is used instead; any other base URL is kept.
// With no key set New returns a *ai.ConfigurationError.
func New(opts config.Options, model config.ModelOptions, creds config.Credentials, clientOpts ...ClientOption) (*Client, error) {
	c := &Client{
		model:        model.Model,
		options:      opts,
		tokenLimits:  model.TokenLimits,
		retryConfig:  retry.FromRetries(opts.Retries),
		newTransport: DefaultTransport,
		now:          time.Now,
	}
	for _, opt := range clientOpts {
		opt(c)
	}

	switch {
	case creds.MistralAPIKey != "":
		c.provider = ai.ProviderMistral
		c.apiKey = creds.MistralAPIKey
	case creds.FireworksAPIKey != "":
		c.provider = ai.ProviderFireworks
		c.apiKey = creds.FireworksAPIKey
	case creds.OpenAIAPIKey != "":
		c.provider = ai.ProviderOpenAI
		c.apiKey = creds.OpenAIAPIKey
		c.org = creds.OpenAIOrg
	default:
		return nil, ai.NewConfigurationError()
	}

	if c.provider.Stateless() {
		if c.options.APIBaseURL == ai.DefaultOpenAIBaseURL {
			c.options.APIBaseURL = c.provider.DefaultBaseURL()
		}
		return c, nil
	}

	c.systemMessage = statefulSystemPrompt(c.options.SystemMessage, c.tokenLimits.KnowledgeCutoff, c.clock(), c.options.Language)
	if c.sender == nil {
		chatOpts := []ai.Option{
			ai.WithModel(c.model),
			ai.WithTemperature(c.options.Temperature),
		}
		if c.tokenLimits.ResponseTokens > 0 {
			chatOpts = append(chatOpts, ai.WithMaxTokens(c.tokenLimits.ResponseTokens))
		}
		c.sender = conversation.New(c.newTransport(c.transport()),
			conversation.WithSystemMessage(c.systemMessage),
			conversation.WithAdapter(c.convAdapter),
			conversation.WithChatOptions(chatOpts...),
		)
	}
	return c, nil
}

// Provider returns the selected provider.
func (c *Client) Provider() ai.Provider {
	return c.provider
}

// BaseURL returns the resolved API root.
func (c *Client) BaseURL() string {
	return c.options.APIBaseURL
}

// Model returns the model requests are sent to.
func (c *Client) Model() string {
	return c.model
}

// SystemMessage returns the OpenAI system prompt bound at construction.
// It is empty for the stateless providers, which build theirs per call.
func (c *Client) SystemMessage() string {
	return c.systemMessage
}

func (c *Client) transport() Transport {
	return Transport{
		Provider:     c.provider,
		APIKey:       c.apiKey,
		Organization: c.org,
		BaseURL:      c.options.APIBaseURL,
		Model:        c.model,
	}
}

func (c *Client) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

func (c *Client) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}
