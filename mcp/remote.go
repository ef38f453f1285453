package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	ai "github.com/spetersoncode/reviewchat"
)

// RemoteChat calls the chat tool of a reviewchat MCP server.
// It is safe for concurrent use.
type RemoteChat struct {
	client *client.Client
}

// NewRemoteChat starts command as a stdio MCP server and connects to it.
func NewRemoteChat(ctx context.Context, command string, env []string, args ...string) (*RemoteChat, error) {
	c, err := client.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP client: %w", err)
	}
	return newRemoteChat(ctx, c)
}

// NewRemoteChatFromClient wraps an existing MCP client. The client is
// started and initialized here.
func NewRemoteChatFromClient(ctx context.Context, c *client.Client) (*RemoteChat, error) {
	return newRemoteChat(ctx, c)
}

func newRemoteChat(ctx context.Context, c *client.Client) (*RemoteChat, error) {
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start MCP client: %w", err)
	}

	_, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "reviewchat-client",
				Version: "1.0.0",
			},
		},
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize MCP session: %w", err)
	}

	tools, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	found := false
	for _, t := range tools.Tools {
		if t.Name == ChatToolName {
			found = true
			break
		}
	}
	if !found {
		c.Close()
		return nil, fmt.Errorf("server has no %q tool", ChatToolName)
	}

	return &RemoteChat{client: c}, nil
}

// Chat sends message with ids to the remote server. Unlike the local
// client, transport failures are returned.
func (r *RemoteChat) Chat(ctx context.Context, message string, ids ai.Ids) (string, ai.Ids, error) {
	result, err := r.client.CallTool(ctx, ToCallToolRequest(message, ids))
	if err != nil {
		return "", ai.Ids{}, fmt.Errorf("call %s: %w", ChatToolName, err)
	}

	out, err := FromCallToolResult(result)
	if err != nil {
		return "", ai.Ids{}, err
	}
	return out.Text, out.Ids, nil
}

// Close closes the connection to the MCP server.
func (r *RemoteChat) Close() error {
	return r.client.Close()
}
