package main

import (
	"github.com/spf13/cobra"

	"sentilytics/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run MCP (Model Context Protocol) server",
	Long: `Run an MCP server that exposes sentiment analysis to AI assistants.

The server communicates over stdio using the Model Context Protocol.

Available tools:
    sentiment_analyze   - Summarize sentiment for a keyword or hashtag
    sentiment_trend     - Per-day sentiment trend for a keyword or hashtag
    sentiment_runs      - List recent analysis runs

Environment variables:
  UPSTREAM_BASE_URL   - Sentiment API endpoint
  STORE_FILE_PATH     - State file holding run history

Example MCP configuration:
  {
    "mcpServers": {
      "sentilytics": {
        "command": "sentictl",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := getLogger()
		store, err := getStore()
		if err != nil {
			return err
		}
		srv := mcp.NewServer(getClient(log), store, log)
		return srv.ServeContext(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
