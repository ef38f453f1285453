package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	ai "github.com/spetersoncode/reviewchat"
	"github.com/spetersoncode/reviewchat/mcp"
	"github.com/spf13/cobra"
)

var (
	parentMessageID string
	conversationID  string
	textOnly        bool
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Send one message and print the reply with continuation ids",
	Long: "Send one message and print the reply as JSON. The message is read " +
		"from the arguments, or from stdin when none are given. Pass the " +
		"returned ids back with --parent-message-id and --conversation-id to " +
		"continue an OpenAI conversation; across separate runs this needs " +
		"the same --store file, since history is otherwise kept in memory.",
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&parentMessageID, "parent-message-id", "", "parent message id from a previous reply")
	chatCmd.Flags().StringVar(&conversationID, "conversation-id", "", "conversation id from a previous reply")
	chatCmd.Flags().BoolVar(&textOnly, "text", false, "print only the reply text")
}

func runChat(cmd *cobra.Command, args []string) error {
	message, err := readMessage(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	c, err := newClient(cmd)
	if err != nil {
		return err
	}

	text, ids := c.Chat(cmd.Context(), message, ai.Ids{
		ParentMessageID: parentMessageID,
		ConversationID:  conversationID,
	})

	out := cmd.OutOrStdout()
	if textOnly {
		_, err := fmt.Fprintln(out, text)
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(mcp.ChatResult{Text: text, Ids: ids})
}

func readMessage(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
