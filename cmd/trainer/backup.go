// ABOUTME: CLI commands for full-database backups.
// ABOUTME: Exports to JSON or YAML and restores into an empty database.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	backupFormat string
	backupOutput string
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or import every record",
	Long: `Export or import a backup of every student and plan.

EXAMPLES:

  trainer backup export -o trainer-backup.json
  trainer backup export --format yaml
  trainer --db new.db backup import trainer-backup.json

Import keeps record ids and only runs against an empty database.`,
}

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a backup to stdout or a file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		switch backupFormat {
		case "json":
			data, err = db.ExportJSON(cmd.Context())
		case "yaml":
			data, err = db.ExportYAML(cmd.Context())
		default:
			return fmt.Errorf("unknown backup format: %s (use json or yaml)", backupFormat)
		}
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}

		if backupOutput == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(backupOutput, data, 0600); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		color.Green("✓ Exported to %s", backupOutput)
		return nil
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore a JSON or YAML backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		if err := db.ImportJSON(cmd.Context(), data); err != nil {
			return fmt.Errorf("failed to import: %w", err)
		}

		total, err := db.CountStudents(cmd.Context())
		if err != nil {
			return err
		}
		color.Green("✓ Imported %d student(s)", total)
		return nil
	},
}

func init() {
	backupExportCmd.Flags().StringVarP(&backupFormat, "format", "f", "json", "json or yaml")
	backupExportCmd.Flags().StringVarP(&backupOutput, "output", "o", "", "write to file instead of stdout")

	backupCmd.AddCommand(backupExportCmd, backupImportCmd)
	rootCmd.AddCommand(backupCmd)
}
