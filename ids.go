package reviewchat

// Ids carries conversation continuation state between Chat calls.
//
// For the OpenAI provider these are real message and conversation
// identifiers: passing ParentMessageID back threads the next message onto
// the prior exchange. Mistral and Fireworks are stateless, so the ids they
// return are synthesized tokens that carry no history.
type Ids struct {
	ParentMessageID string `json:"parentMessageId,omitempty" yaml:"parentMessageId,omitempty"`
	ConversationID  string `json:"conversationId,omitempty" yaml:"conversationId,omitempty"`
}

// IsZero reports whether no identifier is set.
func (i Ids) IsZero() bool {
	return i.ParentMessageID == "" && i.ConversationID == ""
}
