// Package openai implements ai.ChatProvider over any OpenAI-compatible
// chat completions endpoint. Mistral, Fireworks and OpenAI itself all
// speak this protocol; only the base URL, key and model differ.
package openai

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	ai "github.com/spetersoncode/reviewchat"
)

// Client wraps the OpenAI SDK to implement ai.ChatProvider.
type Client struct {
	client  *openai.Client
	model   string
	baseURL string
}

// New creates a client bound to apiKey.
// SDK-level retries are disabled; callers own the retry policy.
func New(apiKey string, opts ...ClientOption) *Client {
	cfg := &clientConfig{baseURL: ai.DefaultOpenAIBaseURL}
	for _, opt := range opts {
		opt(cfg)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(cfg.baseURL),
		option.WithMaxRetries(0),
	}
	if cfg.organization != "" {
		reqOpts = append(reqOpts, option.WithOrganization(cfg.organization))
	}
	if cfg.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(cfg.httpClient))
	}

	client := openai.NewClient(reqOpts...)
	return &Client{
		client:  &client,
		model:   cfg.model,
		baseURL: cfg.baseURL,
	}
}

// BaseURL returns the API root the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Model returns the default model for requests.
func (c *Client) Model() string {
	return c.model
}

// Chat sends a conversation and returns a complete response.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	options := ai.ApplyOptions(opts...)
	model := c.model
	if options.Model != "" {
		model = options.Model
	}

	params := openai.ChatCompletionNewParams{
		Model:    model,
		Messages: convertMessages(messages),
	}
	if options.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(options.MaxTokens))
	}
	if options.Temperature != nil {
		params.Temperature = openai.Float(*options.Temperature)
	}

	var reqOpts []option.RequestOption
	if options.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(options.Timeout))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params, reqOpts...)
	if err != nil {
		return nil, wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, ai.NewTransientError("chat completion returned no choices", 0, nil)
	}

	return &ai.Response{
		ID:      resp.ID,
		Content: resp.Choices[0].Message.Content,
		Usage: ai.Usage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
		},
	}, nil
}

var _ ai.ChatProvider = (*Client)(nil)
