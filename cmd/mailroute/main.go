// Command mailroute routes requests through the LLM decision workflow from
// the command line, over HTTP or as an MCP tool server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "mailroute",
	Short:         "Route requests through an LLM decision workflow",
	Long:          `mailroute classifies a request, then either summarizes the described email and forwards the summary to a webhook, or answers with a general response.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (environment variables take precedence)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
