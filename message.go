package reviewchat

import "github.com/google/uuid"

// Role is the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is one entry of the history sent to a backend.
type Message struct {
	Role    Role
	Content string
}

// Response is a backend's reply to one request. ID is the completion id
// when the backend assigns one; the OpenAI conversation reuses it as the
// reply's message id.
type Response struct {
	ID      string
	Content string
	Usage   Usage
}

// Usage reports token counts for one request.
type Usage struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
}

// GenerateMessageID returns a fresh random message or conversation id.
func GenerateMessageID() string {
	return uuid.New().String()
}
