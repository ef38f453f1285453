package config

import (
	"os"

	ai "github.com/spetersoncode/reviewchat"
)

// Credentials holds provider API keys. The first non-empty key in
// Mistral, Fireworks, OpenAI order selects the provider.
type Credentials struct {
	MistralAPIKey   string
	FireworksAPIKey string
	OpenAIAPIKey    string
	OpenAIOrg       string
}

// CredentialsFromEnv reads credentials from the process environment.
func CredentialsFromEnv() Credentials {
	return CredentialsFromLookup(os.Getenv)
}

// CredentialsFromLookup reads credentials through getenv.
func CredentialsFromLookup(getenv func(string) string) Credentials {
	return Credentials{
		MistralAPIKey:   getenv(ai.EnvMistralAPIKey),
		FireworksAPIKey: getenv(ai.EnvFireworksAPIKey),
		OpenAIAPIKey:    getenv(ai.EnvOpenAIAPIKey),
		OpenAIOrg:       getenv(ai.EnvOpenAIOrg),
	}
}

// Empty reports whether no provider key is set.
func (c Credentials) Empty() bool {
	return c.MistralAPIKey == "" && c.FireworksAPIKey == "" && c.OpenAIAPIKey == ""
}
