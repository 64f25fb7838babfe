// ABOUTME: CLI commands for training plans.
// ABOUTME: Covers add, list, show, edit, rm, and export (one plan or a student's plans in parallel).
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/trainer/internal/app"
	"github.com/harperreed/trainer/internal/models"
	"github.com/harperreed/trainer/internal/tasks"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	planDescription string
	planName        string
	planExercises   []string
	planFile        string

	exportFormat  string
	exportDir     string
	exportAll     bool
	exportWorkers int
)

var planCmd = &cobra.Command{
	Use:     "plan",
	Aliases: []string{"plans", "p"},
	Short:   "Manage training plans",
	Long: `Manage the training plans of a student.

EXERCISES:

  Each --exercise is "name:sets:reps[:load[:rest[:note]]]", e.g.

    -e "Supino reto:4:10:40kg:90s"
    -e "Prancha:3:1::30s:segurar 45s"

  Alternatively --file reads a JSON or YAML list of exercises with the
  keys nome, series, reps, peso, descanso, obs.`,
}

var planAddCmd = &cobra.Command{
	Use:     "add <student-id> <name>",
	Aliases: []string{"a"},
	Short:   "Create a plan for a student",
	Long: `Create a training plan for a student.

EXAMPLES:

  trainer plan add 1 "Treino A" -e "Agachamento:4:8:60kg" -e "Leg press:3:12"
  trainer plan add 1 "Treino B" --description "Upper body" --file treino-b.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID, err := parseID(args[0])
		if err != nil {
			return err
		}
		exercises, err := exercisesFromFlags()
		if err != nil {
			return err
		}

		id, err := svc.AddPlan(cmd.Context(), studentID, args[1], planDescription, exercises)
		if err != nil {
			return fmt.Errorf("failed to add plan: %w", err)
		}
		color.Green("✓ Added plan %s", strings.TrimSpace(args[1]))
		fmt.Printf("  %s\n", color.New(color.Faint).Sprintf("id %d, %d exercise(s)", id, len(exercises)))
		return nil
	},
}

var planListCmd = &cobra.Command{
	Use:     "list <student-id>",
	Aliases: []string{"ls", "l"},
	Short:   "List a student's plans",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID, err := parseID(args[0])
		if err != nil {
			return err
		}
		plans, err := svc.Plans(cmd.Context(), studentID)
		if err != nil {
			return fmt.Errorf("failed to list plans: %w", err)
		}
		if len(plans) == 0 {
			fmt.Println("No plans found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, p := range plans {
			fmt.Printf("%s %s %s\n",
				faint.Sprint(padRight(fmt.Sprint(p.ID), 4)),
				padRight(truncate(p.Name, 30), 30),
				faint.Sprintf("%d exercise(s)", len(p.Exercises)))
		}
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:     "show <plan-id>",
	Aliases: []string{"get"},
	Short:   "Show a plan and its exercises",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		plan, err := svc.Plan(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get plan: %w", err)
		}
		if plan == nil {
			return fmt.Errorf("plan %d not found", id)
		}
		printPlan(plan)
		return nil
	},
}

var planEditCmd = &cobra.Command{
	Use:   "edit <plan-id>",
	Short: "Change a plan's name, description, or exercises",
	Long: `Edit a plan. Only the given flags change; passing any --exercise or
--file replaces the whole exercise list.

EXAMPLES:

  trainer plan edit 3 --name "Treino A2"
  trainer plan edit 3 -e "Supino:5:5:50kg"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		plan, err := svc.Repository().GetPlan(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get plan: %w", err)
		}
		if plan == nil {
			return fmt.Errorf("plan %d not found", id)
		}

		if len(planExercises) > 0 || planFile != "" {
			if plan.Exercises, err = exercisesFromFlags(); err != nil {
				return err
			}
		} else if err := plan.Decode(); err != nil {
			return fmt.Errorf("stored exercises unreadable, pass --exercise or --file to replace them: %w", err)
		}
		if cmd.Flags().Changed("name") {
			plan.Name = planName
		}
		if cmd.Flags().Changed("description") {
			plan.Description = planDescription
		}

		if err := svc.UpdatePlan(cmd.Context(), id, plan.Name, plan.Description, plan.Exercises); err != nil {
			return fmt.Errorf("failed to update plan: %w", err)
		}
		color.Green("✓ Updated plan %s", plan.Name)
		return nil
	},
}

var planRmCmd = &cobra.Command{
	Use:     "rm <plan-id>",
	Aliases: []string{"delete", "del"},
	Short:   "Delete a plan",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		plan, err := svc.Repository().GetPlan(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get plan: %w", err)
		}
		if plan == nil {
			return fmt.Errorf("plan %d not found", id)
		}
		if err := svc.RemovePlan(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete plan: %w", err)
		}
		color.Yellow("✗ Deleted plan %s", plan.Name)
		return nil
	},
}

var planExportCmd = &cobra.Command{
	Use:   "export <plan-id> | export --all <student-id>",
	Short: "Export plans to files",
	Long: `Export a plan with one of the registered exporters. Files are named
after the plan.

FORMATS:

  pdf, csv, xlsx, and any enabled plugin format (see 'trainer config show'
  and the DISABLED_PLUGINS variable). 'trainer plan export --formats' lists
  them.

EXAMPLES:

  trainer plan export 3 --format pdf
  trainer plan export 3 -f xlsx -o ~/Documents
  trainer plan export --all 1 -f csv -o out/    # every plan of student 1`,
	Args: func(cmd *cobra.Command, args []string) error {
		if listFormats, _ := cmd.Flags().GetBool("formats"); listFormats {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if listFormats, _ := cmd.Flags().GetBool("formats"); listFormats {
			for _, f := range svc.Formats() {
				fmt.Println(f)
			}
			return nil
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := os.MkdirAll(exportDir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		if !exportAll {
			path, err := svc.ExportPlan(cmd.Context(), exportFormat, id, exportDir)
			if err != nil {
				return fmt.Errorf("failed to export plan: %w", err)
			}
			color.Green("✓ Exported %s", path)
			return nil
		}
		return exportStudentPlans(cmd.Context(), id)
	},
}

// exportStudentPlans exports every plan of a student on a worker pool and
// reports each result in plan order. Plans whose names sanitize alike get
// distinct file names so no two workers write the same file.
func exportStudentPlans(ctx context.Context, studentID int64) error {
	plans, err := svc.Plans(ctx, studentID)
	if err != nil {
		return fmt.Errorf("failed to list plans: %w", err)
	}
	if len(plans) == 0 {
		fmt.Println("No plans found.")
		return nil
	}

	pool := tasks.NewPool(exportWorkers, logger)
	defer func() { _ = pool.Close() }()

	bases := app.UniqueFileBases(plans)
	pending := make([]*tasks.Task[string], 0, len(plans))
	for _, p := range plans {
		planID, base := p.ID, bases[p.ID]
		task, err := tasks.Submit(ctx, pool, func(ctx context.Context) (string, error) {
			return svc.ExportPlanAs(ctx, exportFormat, planID, exportDir, base)
		})
		if err != nil {
			return err
		}
		pending = append(pending, task)
	}

	failed := 0
	for i, task := range pending {
		path, err := task.Wait(ctx)
		if err != nil {
			failed++
			color.Red("✗ %s: %v", plans[i].Name, err)
			continue
		}
		color.Green("✓ Exported %s", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d exports failed", failed, len(plans))
	}
	return nil
}

func exercisesFromFlags() ([]models.Exercise, error) {
	if planFile == "" {
		return parseExercises(planExercises)
	}
	if len(planExercises) > 0 {
		return nil, fmt.Errorf("use either --exercise or --file, not both")
	}

	data, err := os.ReadFile(planFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read exercises: %w", err)
	}
	var exercises []models.Exercise
	if err := yaml.Unmarshal(data, &exercises); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", planFile, err)
	}
	return exercises, nil
}

func printPlan(plan *models.TrainingPlan) {
	faint := color.New(color.Faint)
	fmt.Printf("%s %s\n", color.New(color.Bold).Sprint(plan.Name), faint.Sprintf("#%d student %d", plan.ID, plan.StudentID))
	if plan.Description != "" {
		fmt.Printf("  %s\n", plan.Description)
	}
	if plan.UpdatedAt != "" {
		fmt.Printf("  %s\n", faint.Sprintf("updated %s", plan.UpdatedAt))
	}
	if len(plan.Exercises) == 0 {
		fmt.Println("  No exercises.")
		return
	}

	fmt.Println()
	for i, ex := range plan.Exercises {
		line := fmt.Sprintf("%dx%d", ex.Sets, ex.Reps)
		if ex.Load != "" {
			line += " " + ex.Load
		}
		if ex.Rest != "" {
			line += " rest " + ex.Rest
		}
		fmt.Printf("  %2d. %s %s", i+1, padRight(truncate(ex.Name, 28), 28), line)
		if ex.Note != "" {
			fmt.Print(faint.Sprintf(" (%s)", truncate(ex.Note, 40)))
		}
		fmt.Println()
	}
}

func init() {
	for _, c := range []*cobra.Command{planAddCmd, planEditCmd} {
		c.Flags().StringVarP(&planDescription, "description", "d", "", "plan description")
		c.Flags().StringArrayVarP(&planExercises, "exercise", "e", nil, "exercise as name:sets:reps[:load[:rest[:note]]] (repeatable)")
		c.Flags().StringVar(&planFile, "file", "", "JSON or YAML file with the exercise list")
	}
	planEditCmd.Flags().StringVarP(&planName, "name", "n", "", "new plan name")

	planExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "pdf", "export format")
	planExportCmd.Flags().StringVarP(&exportDir, "output", "o", ".", "output directory")
	planExportCmd.Flags().BoolVar(&exportAll, "all", false, "export every plan of the given student")
	planExportCmd.Flags().IntVarP(&exportWorkers, "jobs", "j", 4, "parallel exports with --all")
	planExportCmd.Flags().Bool("formats", false, "list the available formats and exit")

	planCmd.AddCommand(planAddCmd, planListCmd, planShowCmd, planEditCmd, planRmCmd, planExportCmd)
	rootCmd.AddCommand(planCmd)
}
