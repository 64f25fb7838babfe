// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Covers argument parsing, command wiring, and a full student/plan workflow.
package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/harperreed/trainer/internal/models"
	"github.com/harperreed/trainer/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{" 42 ", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseID(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseID(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseID(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseID(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments([]string{"payment=paid", "progress=-3kg", "diet=a=b", "diet=keto"})
	if err != nil {
		t.Fatalf("parseAssignments failed: %v", err)
	}
	want := map[string]string{"payment": "paid", "progress": "-3kg", "diet": "keto"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("got[%q] = %q, want %q", k, got[k], v)
		}
	}

	for _, bad := range []string{"payment", "=paid"} {
		if _, err := parseAssignments([]string{bad}); err == nil {
			t.Errorf("parseAssignments(%q) expected error", bad)
		}
	}
}

func TestParseExercise(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    models.Exercise
		wantErr bool
	}{
		{
			name:  "name only",
			input: "Prancha",
			want:  models.Exercise{Name: "Prancha"},
		},
		{
			name:  "sets and reps",
			input: "Remada:3:12",
			want:  models.Exercise{Name: "Remada", Sets: 3, Reps: 12},
		},
		{
			name:  "every field",
			input: "Supino reto:4:10:40kg:90s:pegada fechada",
			want:  models.Exercise{Name: "Supino reto", Sets: 4, Reps: 10, Load: "40kg", Rest: "90s", Note: "pegada fechada"},
		},
		{
			name:  "note keeps colons",
			input: "Prancha:3:1::30s:segurar 0:45",
			want:  models.Exercise{Name: "Prancha", Sets: 3, Reps: 1, Rest: "30s", Note: "segurar 0:45"},
		},
		{
			name:    "non numeric sets",
			input:   "Supino:four:10",
			wantErr: true,
		},
		{
			name:    "missing name",
			input:   ":3:10",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseExercise(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseExercise(%q) expected error, got %+v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseExercise(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parseExercise(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseScalar(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"8000", 8000},
		{"true", true},
		{"false", false},
		{"darkly", "darkly"},
		{"1.5", 1.5},
		{`"8000"`, "8000"},
		{"[a, b]", "[a, b]"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseScalar(tt.input); got != tt.want {
				t.Errorf("parseScalar(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world this is long", 10, "hello w..."},
		{"", 10, ""},
		{"hello", 3, "..."},
	}

	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input  string
		length int
		want   string
	}{
		{"hi", 5, "hi   "},
		{"hello", 5, "hello"},
		{"hello world", 5, "hello world"},
		{"", 3, "   "},
	}

	for _, tt := range tests {
		if got := padRight(tt.input, tt.length); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
		}
	}
}

func TestRootCmdFlags(t *testing.T) {
	if rootCmd.Use != "trainer" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "trainer")
	}
	for _, name := range []string{"db", "config", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent --%s flag", name)
		}
	}
}

func TestSubcommands(t *testing.T) {
	tests := []struct {
		parent *cobra.Command
		want   []string
	}{
		{studentCmd, []string{"add", "list", "show", "set", "rm"}},
		{planCmd, []string{"add", "list", "show", "edit", "rm", "export"}},
		{configCmd, []string{"show", "set", "theme", "wipe", "path"}},
		{backupCmd, []string{"export", "import"}},
		{dbCmd, []string{"status"}},
		{rootCmd, []string{"student", "plan", "config", "stats", "backup", "db", "serve", "mcp"}},
	}

	for _, tt := range tests {
		t.Run(tt.parent.Name(), func(t *testing.T) {
			names := make(map[string]bool)
			for _, c := range tt.parent.Commands() {
				names[c.Name()] = true
			}
			for _, want := range tt.want {
				if !names[want] {
					t.Errorf("expected %s subcommand %q", tt.parent.Name(), want)
				}
			}
		})
	}
}

func TestPlanExportFlags(t *testing.T) {
	format := planExportCmd.Flags().Lookup("format")
	if format == nil {
		t.Fatal("expected --format flag on plan export")
	}
	if format.DefValue != "pdf" {
		t.Errorf("default format = %q, want pdf", format.DefValue)
	}
	for _, name := range []string{"output", "all", "jobs", "formats"} {
		if planExportCmd.Flags().Lookup(name) == nil {
			t.Errorf("expected --%s flag on plan export", name)
		}
	}
}

// runCLI executes the root command against an isolated database and config.
func runCLI(t *testing.T, dir string, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)

	full := append([]string{
		"--db", filepath.Join(dir, "trainer.db"),
		"--config", filepath.Join(dir, "config.json"),
	}, args...)
	rootCmd.SetArgs(full)
	return Execute()
}

// resetFlags clears state that cobra keeps between executions in one process.
func resetFlags(cmd *cobra.Command) {
	studentEmail = ""
	planDescription, planName, planFile = "", "", ""
	planExercises = nil
	exportFormat, exportDir, exportAll, exportWorkers = "pdf", ".", false, 4
	backupFormat, backupOutput = "json", ""

	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(cmd)
}

func openStore(t *testing.T, path string) *storage.DB {
	t.Helper()
	store, err := storage.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestWorkflow(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("METRICS_PORT", "")
	t.Setenv("TRAINER_DB", "")
	t.Setenv("DISABLED_PLUGINS", "")
	ctx := context.Background()

	if err := runCLI(t, dir, "student", "add", "Ana Souza", "--email", "ana@example.com"); err != nil {
		t.Fatalf("student add: %v", err)
	}
	if err := runCLI(t, dir, "plan", "add", "1", "Treino A", "-e", "Supino:4:10:40kg", "-e", "Remada:3:12"); err != nil {
		t.Fatalf("plan add: %v", err)
	}
	if err := runCLI(t, dir, "plan", "add", "1", "Treino B", "-e", "Agachamento:5:5"); err != nil {
		t.Fatalf("plan add: %v", err)
	}
	if err := runCLI(t, dir, "student", "set", "1", "pagamento=paid", "progress=-3kg"); err != nil {
		t.Fatalf("student set: %v", err)
	}
	if err := runCLI(t, dir, "student", "set", "1", "shoe_size=42"); err == nil {
		t.Error("expected unknown field to fail")
	}

	outDir := filepath.Join(dir, "out")
	if err := runCLI(t, dir, "plan", "export", "--all", "1", "-f", "csv", "-o", outDir); err != nil {
		t.Fatalf("plan export --all: %v", err)
	}
	for _, name := range []string{"treino_a.csv", "treino_b.csv"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected export %s: %v", name, err)
		}
	}

	if err := runCLI(t, dir, "config", "set", "theme=darkly", "metrics_port=9100"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if doc["theme"] != "darkly" || doc["metrics_port"] != float64(9100) {
		t.Errorf("config = %v", doc)
	}

	backupPath := filepath.Join(dir, "backup.json")
	if err := runCLI(t, dir, "backup", "export", "-o", backupPath); err != nil {
		t.Fatalf("backup export: %v", err)
	}

	store := openStore(t, filepath.Join(dir, "trainer.db"))
	s, err := store.GetStudent(ctx, 1)
	if err != nil || s == nil {
		t.Fatalf("GetStudent: %v, %v", s, err)
	}
	if s.Email != "ana@example.com" || s.Payment != "paid" || s.Progress != "-3kg" {
		t.Errorf("student = %+v", s)
	}
	plans, err := store.ListPlans(ctx, 1)
	if err != nil {
		t.Fatalf("ListPlans: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(plans))
	}
	if err := plans[0].Decode(); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(plans[0].Exercises) != 2 || plans[0].Exercises[0].Load != "40kg" {
		t.Errorf("exercises = %+v", plans[0].Exercises)
	}
	_ = store.Close()

	restored := t.TempDir()
	if err := runCLI(t, restored, "backup", "import", backupPath); err != nil {
		t.Fatalf("backup import: %v", err)
	}
	if err := runCLI(t, restored, "backup", "import", backupPath); err == nil {
		t.Error("expected import into a non-empty database to fail")
	}
	rdb := openStore(t, filepath.Join(restored, "trainer.db"))
	rplans, err := rdb.ListPlans(ctx, 1)
	if err != nil || len(rplans) != 2 {
		t.Errorf("restored plans = %d, %v", len(rplans), err)
	}
	_ = rdb.Close()

	if err := runCLI(t, dir, "student", "rm", "1"); err != nil {
		t.Fatalf("student rm: %v", err)
	}
	store = openStore(t, filepath.Join(dir, "trainer.db"))
	count, err := store.CountStudents(ctx)
	if err != nil || count != 0 {
		t.Errorf("CountStudents = %d, %v", count, err)
	}
	if plans, _ := store.ListPlans(ctx, 1); len(plans) != 0 {
		t.Errorf("expected plans to be removed with the student, got %d", len(plans))
	}
}

func TestPlanCommandsRejectMissingIDs(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	if err := runCLI(t, dir, "plan", "show", "99"); err == nil {
		t.Error("expected plan show of a missing plan to fail")
	}
	if err := runCLI(t, dir, "plan", "add", "99", "Treino"); err == nil {
		t.Error("expected plan add for a missing student to fail")
	}
	if err := runCLI(t, dir, "student", "show", "abc"); err == nil {
		t.Error("expected invalid id to fail")
	}
}

func TestExportAllKeepsSameNamedPlansApart(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	steps := [][]string{
		{"student", "add", "Ana"},
		{"plan", "add", "1", "Treino", "-e", "Agachamento livre com barra:4:8:80kg:120s:descer devagar"},
		{"plan", "add", "1", "treino", "-e", "Remada:3:12"},
	}
	for _, args := range steps {
		if err := runCLI(t, dir, args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	outDir := filepath.Join(dir, "out")
	if err := runCLI(t, dir, "plan", "export", "--all", "1", "-f", "csv", "-o", outDir); err != nil {
		t.Fatalf("plan export --all: %v", err)
	}

	first, err := os.ReadFile(filepath.Join(outDir, "treino.csv"))
	if err != nil {
		t.Fatalf("read first export: %v", err)
	}
	second, err := os.ReadFile(filepath.Join(outDir, "treino_2.csv"))
	if err != nil {
		t.Fatalf("read second export: %v", err)
	}
	if !strings.Contains(string(first), "Agachamento") || strings.Contains(string(first), "Remada") {
		t.Errorf("first export = %q", first)
	}
	if !strings.Contains(string(second), "Remada") || strings.Contains(string(second), "Agachamento") {
		t.Errorf("second export = %q", second)
	}
}

func TestPlanRmRemovesUnreadablePlan(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	if err := runCLI(t, dir, "student", "add", "Ana"); err != nil {
		t.Fatalf("student add: %v", err)
	}
	store := openStore(t, filepath.Join(dir, "trainer.db"))
	planID, err := store.CreatePlan(context.Background(), 1, "Treino", "", "not json")
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	_ = store.Close()

	id := strconv.FormatInt(planID, 10)
	if err := runCLI(t, dir, "plan", "edit", id, "--name", "Novo"); err == nil {
		t.Error("expected edit without replacement exercises to fail")
	}
	if err := runCLI(t, dir, "plan", "rm", id); err != nil {
		t.Fatalf("plan rm: %v", err)
	}

	store = openStore(t, filepath.Join(dir, "trainer.db"))
	if p, err := store.GetPlan(context.Background(), planID); err != nil || p != nil {
		t.Errorf("GetPlan after rm = %v, %v", p, err)
	}
}
