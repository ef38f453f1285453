// Command reviewchat sends messages to whichever chat provider is
// configured in the environment.
//
// Usage:
//
//	reviewchat chat "Review this function"
//	git diff | reviewchat chat --store ~/.reviewchat.json --conversation-id c1 --parent-message-id m1
//	reviewchat mcp
//
// Provider keys are read from MISTRAL_API_KEY, FIREWORKS_API_KEY, and
// OPENAI_API_KEY (a .env file in the working directory is honored).
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
