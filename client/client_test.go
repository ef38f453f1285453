package client

import (
	"errors"
	"testing"

	ai "github.com/spetersoncode/reviewchat"
	"github.com/spetersoncode/reviewchat/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectsProvider(t *testing.T) {
	tests := []struct {
		name     string
		creds    config.Credentials
		expected ai.Provider
		apiKey   string
	}{
		{"mistral only", config.Credentials{MistralAPIKey: "m"}, ai.ProviderMistral, "m"},
		{"fireworks only", config.Credentials{FireworksAPIKey: "f"}, ai.ProviderFireworks, "f"},
		{"openai only", config.Credentials{OpenAIAPIKey: "o"}, ai.ProviderOpenAI, "o"},
		{"mistral beats fireworks", config.Credentials{MistralAPIKey: "m", FireworksAPIKey: "f"}, ai.ProviderMistral, "m"},
		{"mistral beats openai", config.Credentials{MistralAPIKey: "m", OpenAIAPIKey: "o"}, ai.ProviderMistral, "m"},
		{"fireworks beats openai", config.Credentials{FireworksAPIKey: "f", OpenAIAPIKey: "o"}, ai.ProviderFireworks, "f"},
		{"all three", config.Credentials{MistralAPIKey: "m", FireworksAPIKey: "f", OpenAIAPIKey: "o"}, ai.ProviderMistral, "m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &factoryRecorder{backend: &fakeBackend{}}
			c, err := New(testOptions(0), testModel(), tt.creds, WithTransportFactory(rec.factory))
			require.NoError(t, err)

			assert.Equal(t, tt.expected, c.Provider())
			assert.Equal(t, tt.apiKey, c.transport().APIKey)
			assert.Equal(t, "test-model", c.Model())
		})
	}
}

func TestNewWithoutCredentials(t *testing.T) {
	c, err := New(testOptions(0), testModel(), config.Credentials{OpenAIOrg: "org-only"})

	assert.Nil(t, c)
	var cfgErr *ai.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), ai.EnvMistralAPIKey)
	assert.Contains(t, err.Error(), ai.EnvFireworksAPIKey)
	assert.Contains(t, err.Error(), ai.EnvOpenAIAPIKey)
}

func TestNewBaseURL(t *testing.T) {
	const custom = "https://llm.example.com/v1"

	tests := []struct {
		name     string
		creds    config.Credentials
		baseURL  string
		expected string
	}{
		{"mistral default", config.Credentials{MistralAPIKey: "m"}, ai.DefaultOpenAIBaseURL, ai.DefaultMistralBaseURL},
		{"fireworks default", config.Credentials{FireworksAPIKey: "f"}, ai.DefaultOpenAIBaseURL, ai.DefaultFireworksBaseURL},
		{"openai default", config.Credentials{OpenAIAPIKey: "o"}, ai.DefaultOpenAIBaseURL, ai.DefaultOpenAIBaseURL},
		{"mistral custom", config.Credentials{MistralAPIKey: "m"}, custom, custom},
		{"fireworks custom", config.Credentials{FireworksAPIKey: "f"}, custom, custom},
		{"openai custom", config.Credentials{OpenAIAPIKey: "o"}, custom, custom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions(0)
			opts.APIBaseURL = tt.baseURL

			rec := &factoryRecorder{backend: &fakeBackend{}}
			c, err := New(opts, testModel(), tt.creds, WithTransportFactory(rec.factory))
			require.NoError(t, err)

			assert.Equal(t, tt.expected, c.BaseURL())
			assert.Equal(t, tt.baseURL, opts.APIBaseURL, "caller options must not change")
		})
	}
}

func TestNewOpenAIBuildsConversation(t *testing.T) {
	rec := &factoryRecorder{backend: &fakeBackend{}}
	c, err := New(testOptions(0), testModel(),
		config.Credentials{OpenAIAPIKey: "o", OpenAIOrg: "org-1"},
		WithTransportFactory(rec.factory),
		WithClock(fixedClock),
	)
	require.NoError(t, err)

	require.Equal(t, 1, rec.built(), "the OpenAI transport is built once and reused")
	assert.Equal(t, Transport{
		Provider:     ai.ProviderOpenAI,
		APIKey:       "o",
		Organization: "org-1",
		BaseURL:      ai.DefaultOpenAIBaseURL,
		Model:        "test-model",
	}, rec.transports[0])

	assert.Equal(t, "You are a reviewer. \n"+
		"Knowledge cutoff: 2024-06\n"+
		"Current date: 2026-10-19\n"+
		"\n"+
		"IMPORTANT: Entire response must be in the language with ISO code: fr-FR\n",
		c.SystemMessage())
}

func TestNewStatelessHasNoBoundPrompt(t *testing.T) {
	c, rec := newStatelessClient(t, config.Credentials{MistralAPIKey: "m"}, 0, &fakeBackend{})

	assert.Empty(t, c.SystemMessage())
	assert.Zero(t, rec.built(), "stateless transports are built per call")
}

func TestDefaultTransport(t *testing.T) {
	backend := DefaultTransport(Transport{
		Provider: ai.ProviderFireworks,
		APIKey:   "f",
		BaseURL:  ai.DefaultFireworksBaseURL,
		Model:    "accounts/fireworks/models/llama-v3p1-70b-instruct",
	})
	assert.NotNil(t, backend)
}
