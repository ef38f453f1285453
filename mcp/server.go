package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	ai "github.com/spetersoncode/reviewchat"
)

// Chatter is the chat surface served over MCP. *client.Client implements it.
type Chatter interface {
	Chat(ctx context.Context, message string, ids ai.Ids) (string, ai.Ids)
}

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// NewServer creates an MCP server with the chat tool bound to chatter.
func NewServer(chatter Chatter, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "reviewchat",
		version: "1.0.0",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
	)
	s.AddTool(ChatTool(), chatHandler(chatter))
	return s
}

func chatHandler(chatter Chatter) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		message, err := req.RequireString(ArgMessage)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		ids := ai.Ids{
			ParentMessageID: req.GetString(ArgParentMessageID, ""),
			ConversationID:  req.GetString(ArgConversationID, ""),
		}

		text, next := chatter.Chat(ctx, message, ids)

		result, err := ToCallToolResult(text, next)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return result, nil
	}
}

// ServeStdio serves chatter over stdin/stdout until the input closes.
func ServeStdio(chatter Chatter, opts ...ServerOption) error {
	return server.ServeStdio(NewServer(chatter, opts...))
}
