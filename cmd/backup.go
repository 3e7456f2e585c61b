package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/tasktools/taskwarrior-mcp/backup"
)

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create a compressed snapshot of the Taskwarrior data directory",
	Long: `Create a gzipped tar archive of the Taskwarrior data directory in the
configured backup directory. Snapshots older than the retention window are
pruned after each run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg.Taskwarrior.DataDir == "" {
			return fmt.Errorf("no data directory configured; set taskwarrior.dataDir or TASKDATA")
		}

		svc := backup.NewService(afero.NewOsFs(), backup.Config{
			DataDir:       cfg.Taskwarrior.DataDir,
			BackupDir:     cfg.Backup.Dir,
			RetentionDays: cfg.Backup.RetentionDays,
		})

		result, err := svc.Create()
		if err != nil {
			return fmt.Errorf("backup failed: %w", err)
		}

		fmt.Printf("Backup created: %s (%s)\n", result.Path, result.Timestamp)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
}
