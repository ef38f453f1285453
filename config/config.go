// Package config holds the chat client configuration and loads it from
// defaults, an optional YAML file, and the environment.
package config

import (
	"time"

	ai "github.com/spetersoncode/reviewchat"
)

// Options configures request behavior. It is read-only once a client is built.
type Options struct {
	APIBaseURL    string  `yaml:"api_base_url" validate:"required,url"`
	SystemMessage string  `yaml:"system_message"`
	Language      string  `yaml:"language" validate:"required"`
	Temperature   float64 `yaml:"temperature" validate:"gte=0,lte=2"`
	Retries       int     `yaml:"retries" validate:"gte=0"`
	TimeoutMS     int     `yaml:"timeout_ms" validate:"gt=0"`
	Debug         bool    `yaml:"debug"`
}

// Timeout returns TimeoutMS as a duration.
func (o Options) Timeout() time.Duration {
	return time.Duration(o.TimeoutMS) * time.Millisecond
}

// TokenLimits describes the model's budget. The values are taken as given.
type TokenLimits struct {
	MaxTokens       int    `yaml:"max_tokens" validate:"gte=0"`
	ResponseTokens  int    `yaml:"response_tokens" validate:"gte=0"`
	KnowledgeCutoff string `yaml:"knowledge_cutoff"`
}

// ModelOptions selects the model used by whichever provider is active.
type ModelOptions struct {
	Model       string      `yaml:"name" validate:"required"`
	TokenLimits TokenLimits `yaml:"token_limits"`
}

// Config is the full client configuration.
type Config struct {
	Options Options      `yaml:"options"`
	Model   ModelOptions `yaml:"model"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Options: DefaultOptions(),
		Model:   DefaultModelOptions(),
	}
}

// DefaultOptions returns the built-in request options.
func DefaultOptions() Options {
	return Options{
		APIBaseURL:    ai.DefaultOpenAIBaseURL,
		SystemMessage: "You are a helpful code reviewer.",
		Language:      "en-US",
		Temperature:   0.05,
		Retries:       5,
		TimeoutMS:     360000,
	}
}

// DefaultModelOptions returns the built-in model options.
func DefaultModelOptions() ModelOptions {
	return ModelOptions{
		Model: "gpt-3.5-turbo",
		TokenLimits: TokenLimits{
			MaxTokens:       4000,
			ResponseTokens:  1000,
			KnowledgeCutoff: "2021-09-01",
		},
	}
}
