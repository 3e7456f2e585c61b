package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the environment is ready to serve",
	Long: `Verify that the configured task binary is on PATH and that the data
directory, if configured, exists. Useful before wiring the server into an
MCP client.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		failed := false

		if path, err := exec.LookPath(cfg.Taskwarrior.Bin); err != nil {
			fmt.Printf("✗ task binary %q not found on PATH\n", cfg.Taskwarrior.Bin)
			failed = true
		} else {
			fmt.Printf("✓ task binary: %s\n", path)
		}

		if cfg.Taskwarrior.DataDir != "" {
			if info, err := os.Stat(cfg.Taskwarrior.DataDir); err != nil || !info.IsDir() {
				fmt.Printf("✗ data directory %q is not accessible\n", cfg.Taskwarrior.DataDir)
				failed = true
			} else {
				fmt.Printf("✓ data directory: %s\n", cfg.Taskwarrior.DataDir)
			}
		} else {
			fmt.Println("- data directory not configured, task will use its default")
		}

		if failed {
			return fmt.Errorf("environment check failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
