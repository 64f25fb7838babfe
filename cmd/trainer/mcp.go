// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio MCP server exposing students and plans to AI assistants.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/trainer/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout. Logs go to stderr.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "trainer": {
        "command": "trainer",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_student       Enroll a student
  list_students     List students by name
  get_student       Get every field of a student
  update_student    Update one or more student fields
  delete_student    Delete a student and their plans
  add_plan          Create a training plan
  list_plans        List a student's plans
  delete_plan       Delete a plan
  export_plan       Export a plan to a file
  get_stats         Student count and recent plans

AVAILABLE RESOURCES:

  trainer://summary     Dashboard summary
  trainer://students    Student list`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(svc, version, logger)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			select {
			case <-sigChan:
				cancel()
			case <-ctx.Done():
			}
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
