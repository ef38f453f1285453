// Package mcp exposes a reviewchat client over the Model Context Protocol.
//
// The server side registers a single "chat" tool whose arguments are the
// message and the continuation ids returned by the previous call:
//
//	c, err := client.New(opts, model, config.CredentialsFromEnv())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := mcp.ServeStdio(c); err != nil {
//	    log.Fatal(err)
//	}
//
// The client side, [RemoteChat], calls that tool on a running server so a
// process can share another's provider configuration and conversation state.
package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	ai "github.com/spetersoncode/reviewchat"
)

// ChatToolName is the name the chat tool is registered under.
const ChatToolName = "chat"

// Tool argument names.
const (
	ArgMessage         = "message"
	ArgParentMessageID = "parent_message_id"
	ArgConversationID  = "conversation_id"
)

// ChatResult is the JSON body of a chat tool result.
type ChatResult struct {
	Text string `json:"text"`
	Ids  ai.Ids `json:"ids"`
}

// ChatTool returns the MCP definition of the chat tool.
func ChatTool() mcp.Tool {
	return mcp.NewTool(ChatToolName,
		mcp.WithDescription("Send a message to the configured chat provider and return the reply with continuation ids"),
		mcp.WithString(ArgMessage, mcp.Required(), mcp.Description("The message to send")),
		mcp.WithString(ArgParentMessageID, mcp.Description("Parent message id from a previous reply")),
		mcp.WithString(ArgConversationID, mcp.Description("Conversation id from a previous reply")),
	)
}

// ToCallToolRequest builds a chat tool request.
func ToCallToolRequest(message string, ids ai.Ids) mcp.CallToolRequest {
	args := map[string]any{ArgMessage: message}
	if ids.ParentMessageID != "" {
		args[ArgParentMessageID] = ids.ParentMessageID
	}
	if ids.ConversationID != "" {
		args[ArgConversationID] = ids.ConversationID
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      ChatToolName,
			Arguments: args,
		},
	}
}

// ToCallToolResult encodes a reply as a text result holding ChatResult JSON.
func ToCallToolResult(text string, ids ai.Ids) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(ChatResult{Text: text, Ids: ids})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// FromCallToolResult decodes a chat tool result.
func FromCallToolResult(result *mcp.CallToolResult) (ChatResult, error) {
	if result == nil {
		return ChatResult{}, errors.New("empty tool result")
	}

	var textParts []string
	for _, c := range result.Content {
		switch content := c.(type) {
		case mcp.TextContent:
			textParts = append(textParts, content.Text)
		case *mcp.TextContent:
			textParts = append(textParts, content.Text)
		}
	}
	body := strings.Join(textParts, "\n")

	if result.IsError {
		return ChatResult{}, fmt.Errorf("chat tool failed: %s", body)
	}

	var out ChatResult
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return ChatResult{}, fmt.Errorf("failed to decode chat result: %w", err)
	}
	return out, nil
}
