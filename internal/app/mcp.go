package app

import (
	"os"

	"github.com/blackwell-systems/mindpatch/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP stdio server for AI assistants",
	Long: `Start a Model Context Protocol stdio server so an assistant can read
your wellness data. The server exposes three tools:

  get_suggestion       Today's suggestion, or a preview for a given mood and screen time
  get_insight          Mood and screen-time correlation over recent history
  get_wellness_status  Streak, XP, level and badges

Example client configuration:
  {"mcpServers":{"mindpatch":{"command":"mindpatch","args":["mcp"]}}}`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	srv := mcp.NewServer(e.tr, appVersion)
	return srv.Run(commandContext(cmd), os.Stdin, os.Stdout)
}
