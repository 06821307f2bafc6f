package main

import (
	"github.com/spf13/cobra"

	"github.com/spetersoncode/mailroute/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as an MCP server over stdio",
	Long: `Exposes the workflow as the route_request tool to MCP clients.
Logs go to stderr so they never corrupt the JSON-RPC stream on stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cmd)
		if err != nil {
			return err
		}

		a.log.Info("starting MCP server (stdio)")
		return mcp.ServeStdio(a.engine, mcp.WithVersion(version))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
