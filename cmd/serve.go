package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tasktools/taskwarrior-mcp/completion"
	"github.com/tasktools/taskwarrior-mcp/mcp"
	"github.com/tasktools/taskwarrior-mcp/taskwarrior"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdin/stdout",
	Long: `Start a Model Context Protocol (MCP) server so AI assistants can interact
with Taskwarrior tasks.

The server runs over stdin/stdout and provides tools for:
- Creating new tasks
- Listing and filtering tasks
- Updating and deleting tasks
- Starting, stopping, and completing tasks
- Adding notes to tasks

It also serves task data as resources and offers workflow prompts with
fuzzy argument completion.

The server will run until the client disconnects.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer(ctx context.Context) error {
	cfg := GetConfig()

	exec := taskwarrior.NewExecutor(taskwarrior.Config{
		Bin:     cfg.Taskwarrior.Bin,
		DataDir: cfg.Taskwarrior.DataDir,
		Taskrc:  cfg.Taskwarrior.Taskrc,
		Env:     cfg.Taskwarrior.Env,
	})
	tasks := taskwarrior.NewService(exec)
	comp := completion.NewService(tasks)

	mcp.ConfigureHooks(mcp.Hooks{
		LogInfo: func(msg string) {
			if viper.GetBool("verbose") {
				log.Printf("[MCP INFO] %s", msg)
			}
		},
		LogError: func(err error) {
			if viper.GetBool("verbose") {
				log.Printf("[MCP ERROR] %v", err)
			}
		},
		LogToolCall: func(name string, params interface{}) {
			if viper.GetBool("verbose") {
				log.Printf("[MCP TOOL] %s called with params: %+v", name, params)
			}
		},
		GetVersion: func() string { return version },
	})

	server := mcp.NewServer(tasks, comp)

	if err := server.Run(ctx); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
