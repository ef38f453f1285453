package main

import (
	"github.com/spetersoncode/reviewchat/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the chat tool over MCP on stdin/stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		return mcp.ServeStdio(c, mcp.WithName("reviewchat"), mcp.WithVersion(version))
	},
}

var version = "dev"
