package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/propdesk/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search
and read the stored property listings. Access is read-only.

By default the server communicates over stdio using JSON-RPC.
Use --http to serve over HTTP instead.

Examples:
  # Stdio mode (for desktop assistants)
  propdesk mcp

  # HTTP mode (for MCP Inspector, remote access)
  propdesk mcp --http :8080

Desktop assistant configuration:
  {
    "mcpServers": {
      "propdesk": {
        "command": "/path/to/propdesk",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().String("http", "", "serve over HTTP on this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	if propertyService == nil {
		return errors.New("property service not configured")
	}

	addr, err := cmd.Flags().GetString("http")
	if err != nil {
		return fmt.Errorf("getting http flag: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{Property: propertyService})
	if err != nil {
		return err
	}

	if addr != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://%s%s\n", addr, mcp.EndpointPath)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
