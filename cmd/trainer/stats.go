// ABOUTME: CLI command for the dashboard summary.
// ABOUTME: Prints the student count and the most recently edited plans.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/trainer/internal/storage"
	"github.com/spf13/cobra"
)

var statsLimit int

var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"dashboard"},
	Short:   "Show the dashboard summary",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := svc.Stats(cmd.Context(), statsLimit)
		if err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)
		fmt.Printf("%s %d\n", bold.Sprint("Students:"), stats.Students)
		if len(stats.RecentPlans) == 0 {
			fmt.Println("No plans yet.")
			return nil
		}
		fmt.Println(bold.Sprint("Recent plans:"))
		for _, p := range stats.RecentPlans {
			fmt.Printf("  %s %s %s\n",
				faint.Sprint(padRight(fmt.Sprint(p.ID), 4)),
				padRight(truncate(p.Name, 30), 30),
				faint.Sprint(p.StudentName))
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVarP(&statsLimit, "limit", "n", storage.DefaultRecentPlans, "number of recent plans")
	rootCmd.AddCommand(statsCmd)
}
