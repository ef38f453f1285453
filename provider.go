package reviewchat

// Provider identifies a chat completion backend.
type Provider string

// String returns the provider identifier.
func (p Provider) String() string { return string(p) }

// Supported providers, listed in selection priority order.
const (
	ProviderMistral   Provider = "mistral"
	ProviderFireworks Provider = "fireworks"
	ProviderOpenAI    Provider = "openai"
)

// Default API endpoints. Mistral and Fireworks both serve
// OpenAI-compatible chat completion APIs under these roots.
const (
	DefaultOpenAIBaseURL    = "https://api.openai.com/v1"
	DefaultMistralBaseURL   = "https://api.mistral.ai/v1"
	DefaultFireworksBaseURL = "https://api.fireworks.ai/inference/v1"
)

// Credential environment variable names.
const (
	EnvMistralAPIKey   = "MISTRAL_API_KEY"
	EnvFireworksAPIKey = "FIREWORKS_API_KEY"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvOpenAIOrg       = "OPENAI_API_ORG"
)

// Stateless reports whether the provider keeps no conversation state
// between calls.
func (p Provider) Stateless() bool {
	return p == ProviderMistral || p == ProviderFireworks
}

// DefaultBaseURL returns the provider's well-known API root.
func (p Provider) DefaultBaseURL() string {
	switch p {
	case ProviderMistral:
		return DefaultMistralBaseURL
	case ProviderFireworks:
		return DefaultFireworksBaseURL
	default:
		return DefaultOpenAIBaseURL
	}
}

// IDPrefix returns the prefix used for synthesized continuation ids.
// Only stateless providers synthesize ids.
func (p Provider) IDPrefix() string {
	switch p {
	case ProviderMistral:
		return "mistral"
	case ProviderFireworks:
		return "fw"
	default:
		return ""
	}
}
