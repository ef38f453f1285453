package openai

import "net/http"

type clientConfig struct {
	baseURL      string
	model        string
	organization string
	httpClient   *http.Client
}

// ClientOption configures the client.
type ClientOption func(*clientConfig)

// WithBaseURL points the client at an OpenAI-compatible API root.
// Empty values are ignored.
func WithBaseURL(url string) ClientOption {
	return func(c *clientConfig) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithModel sets the default model for requests.
func WithModel(model string) ClientOption {
	return func(c *clientConfig) {
		c.model = model
	}
}

// WithOrganization sets the OpenAI organization header.
func WithOrganization(org string) ClientOption {
	return func(c *clientConfig) {
		c.organization = org
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}
