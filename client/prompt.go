package client

import (
	"fmt"
	"time"
)

const isoDate = "2006-01-02"

// The space after the system message is part of the prompt text.
const (
	statefulPromptFormat = "%s \n" +
		"Knowledge cutoff: %s\n" +
		"Current date: %s\n" +
		"\n" +
		"IMPORTANT: Entire response must be in the language with ISO code: %s\n"

	statelessPromptFormat = "%s \n" +
		"Current date: %s\n" +
		"\n" +
		"IMPORTANT: Entire response must be in the language with ISO code: %s\n"
)

// statefulSystemPrompt is bound once for the OpenAI conversation.
func statefulSystemPrompt(systemMessage, knowledgeCutoff string, now time.Time, language string) string {
	return fmt.Sprintf(statefulPromptFormat, systemMessage, knowledgeCutoff, now.UTC().Format(isoDate), language)
}

// statelessSystemPrompt is rebuilt on every Mistral or Fireworks call. It
// carries no knowledge-cutoff line.
func statelessSystemPrompt(systemMessage string, now time.Time, language string) string {
	return fmt.Sprintf(statelessPromptFormat, systemMessage, now.UTC().Format(isoDate), language)
}
