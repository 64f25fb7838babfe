// ABOUTME: CLI commands for managing students.
// ABOUTME: Covers add, list, show, set, and rm over the app service.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/trainer/internal/models"
	"github.com/spf13/cobra"
)

var studentEmail string

var studentCmd = &cobra.Command{
	Use:     "student",
	Aliases: []string{"students", "s"},
	Short:   "Manage students",
}

var studentAddCmd = &cobra.Command{
	Use:     "add <name>",
	Aliases: []string{"a"},
	Short:   "Enroll a student",
	Long: `Enroll a new student. The enrollment date is set to today.

EXAMPLES:

  trainer student add "Ana Souza"
  trainer student add "Bruno Lima" --email bruno@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := svc.AddStudent(cmd.Context(), args[0], studentEmail)
		if err != nil {
			return fmt.Errorf("failed to add student: %w", err)
		}
		color.Green("✓ Added %s", strings.TrimSpace(args[0]))
		fmt.Printf("  %s\n", color.New(color.Faint).Sprintf("id %d", id))
		return nil
	},
}

var studentListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List students",
	Long: `List every student ordered by name.

Each line shows: ID  NAME  EMAIL  ENROLLED`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		students, err := svc.Students(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list students: %w", err)
		}
		if len(students) == 0 {
			fmt.Println("No students found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, s := range students {
			fmt.Printf("%s %s %s %s\n",
				faint.Sprint(padRight(fmt.Sprint(s.ID), 4)),
				padRight(truncate(s.Name, 30), 30),
				padRight(truncate(s.Email, 30), 30),
				faint.Sprint(s.EnrollmentDate))
		}
		return nil
	},
}

var studentShowCmd = &cobra.Command{
	Use:     "show <id>",
	Aliases: []string{"get"},
	Short:   "Show every field of a student",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		s, err := svc.Student(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get student: %w", err)
		}
		if s == nil {
			return fmt.Errorf("student %d not found", id)
		}

		faint := color.New(color.Faint)
		fmt.Printf("%s %s\n", color.New(color.Bold).Sprint(s.Name), faint.Sprintf("#%d", s.ID))
		for _, f := range models.AllStudentFields() {
			if f == models.FieldName {
				continue
			}
			value := s.Value(f)
			if value == "" {
				value = faint.Sprint("-")
			}
			fmt.Printf("  %s %s\n", padRight(f.String(), 16), value)
		}
		return nil
	},
}

var studentSetCmd = &cobra.Command{
	Use:   "set <id> <field> <value> | set <id> <field=value>...",
	Short: "Update student fields",
	Long: `Update one or more fields of a student.

FIELDS:

  name, email, enrollment_date, plan, payment, progress, diet, training

  The Portuguese document keys (nome, data_inicio, plano, pagamento,
  progresso, dieta, treino) are accepted too.

EXAMPLES:

  trainer student set 1 payment "paid until June"
  trainer student set 1 progress="-3kg" diet="low carb"

With several fields nothing is written unless every field name is valid.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if len(args) == 3 && !strings.Contains(args[1], "=") {
			if err := svc.UpdateStudent(cmd.Context(), id, args[1], args[2]); err != nil {
				return fmt.Errorf("failed to update student: %w", err)
			}
			color.Green("✓ Updated %s", args[1])
			return nil
		}

		values, err := parseAssignments(args[1:])
		if err != nil {
			return err
		}
		if err := svc.UpdateStudentFields(cmd.Context(), id, values); err != nil {
			return fmt.Errorf("failed to update student: %w", err)
		}
		color.Green("✓ Updated %d field(s)", len(values))
		return nil
	},
}

var studentRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete", "del"},
	Short:   "Delete a student and their plans",
	Long: `Delete a student. Their training plans are deleted with them.

CAUTION:

  This permanently deletes the student. There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		s, err := svc.Student(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get student: %w", err)
		}
		if s == nil {
			return fmt.Errorf("student %d not found", id)
		}
		if err := svc.RemoveStudent(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete student: %w", err)
		}
		color.Yellow("✗ Deleted %s", s.Name)
		return nil
	},
}

func init() {
	studentAddCmd.Flags().StringVarP(&studentEmail, "email", "e", "", "contact email")

	studentCmd.AddCommand(studentAddCmd, studentListCmd, studentShowCmd, studentSetCmd, studentRmCmd)
	rootCmd.AddCommand(studentCmd)
}
