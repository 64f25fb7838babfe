// ABOUTME: CLI commands for inspecting the database.
// ABOUTME: Reports the file location and schema version.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/trainer/internal/storage"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Inspect the database",
}

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database location and schema version",
	Long: `Show where the database lives and which schema version it is at.

Migrations run automatically whenever the database is opened, so the
version should always equal the latest one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		current, err := db.SchemaVersion(ctx)
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		students, err := db.CountStudents(ctx)
		if err != nil {
			return fmt.Errorf("failed to count students: %w", err)
		}

		faint := color.New(color.Faint)
		fmt.Printf("%s %s\n", padRight("path", 10), db.Path())
		fmt.Printf("%s %d %s\n", padRight("schema", 10), current,
			faint.Sprintf("(latest %d)", storage.LatestSchemaVersion()))
		fmt.Printf("%s %d\n", padRight("students", 10), students)
		if current < storage.LatestSchemaVersion() {
			color.Yellow("! schema is behind, reopen to migrate")
		}
		return nil
	},
}

func init() {
	dbCmd.AddCommand(dbStatusCmd)
	rootCmd.AddCommand(dbCmd)
}
