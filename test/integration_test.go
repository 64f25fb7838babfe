// ABOUTME: Integration tests for the trainer CLI.
// ABOUTME: Builds the binary and drives a full student and plan workflow through it.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	projectRoot, _ := filepath.Abs("..")
	binDir := t.TempDir()
	trainerBinary := filepath.Join(binDir, "trainer")

	buildCmd := exec.Command("go", "build", "-o", trainerBinary, "./cmd/trainer")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	configPath := filepath.Join(tmpDir, "config.json")

	run := func(args ...string) (string, error) {
		fullArgs := append([]string{"--db", dbPath, "--config", configPath}, args...)
		cmd := exec.Command(trainerBinary, fullArgs...)
		cmd.Env = append(os.Environ(), "DISABLED_PLUGINS=yaml", "METRICS_PORT=")
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	output, err := run("student", "add", "João da Silva", "--email", "joao@example.com")
	if err != nil {
		t.Fatalf("Failed to add student: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Added João da Silva") {
		t.Errorf("Expected 'Added João da Silva' in output, got: %s", output)
	}

	output, err = run("student", "list")
	if err != nil {
		t.Fatalf("Failed to list students: %v\n%s", err, output)
	}
	if !strings.Contains(output, "joao@example.com") {
		t.Errorf("Expected email in student list, got: %s", output)
	}

	output, err = run("plan", "add", "1", "Força 1/2", "-e", "Supino:4:10:40kg:90s", "-e", "Remada:3:12")
	if err != nil {
		t.Fatalf("Failed to add plan: %v\n%s", err, output)
	}

	output, err = run("plan", "show", "1")
	if err != nil {
		t.Fatalf("Failed to show plan: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Supino") || !strings.Contains(output, "4x10 40kg") {
		t.Errorf("Expected exercises in plan show, got: %s", output)
	}

	output, err = run("plan", "export", "--formats")
	if err != nil {
		t.Fatalf("Failed to list formats: %v\n%s", err, output)
	}
	if !strings.Contains(output, "markdown") || strings.Contains(output, "yaml") {
		t.Errorf("Expected markdown but not the disabled yaml plugin, got: %s", output)
	}

	outDir := filepath.Join(tmpDir, "out")
	output, err = run("plan", "export", "1", "-f", "xlsx", "-o", outDir)
	if err != nil {
		t.Fatalf("Failed to export plan: %v\n%s", err, output)
	}
	if _, err := os.Stat(filepath.Join(outDir, "forca_1_2.xlsx")); err != nil {
		t.Errorf("Expected sanitized export file: %v\n%s", err, output)
	}

	output, err = run("stats")
	if err != nil {
		t.Fatalf("Failed to get stats: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Students: 1") || !strings.Contains(output, "João da Silva") {
		t.Errorf("Unexpected stats output: %s", output)
	}

	output, err = run("db", "status")
	if err != nil {
		t.Fatalf("Failed to get db status: %v\n%s", err, output)
	}
	if !strings.Contains(output, dbPath) {
		t.Errorf("Expected db path in status, got: %s", output)
	}

	output, err = run("config", "theme", "darkly")
	if err != nil {
		t.Fatalf("Failed to set theme: %v\n%s", err, output)
	}
	output, err = run("config", "theme")
	if err != nil {
		t.Fatalf("Failed to read theme: %v\n%s", err, output)
	}
	if strings.TrimSpace(output) != "darkly" {
		t.Errorf("Expected theme darkly, got: %q", output)
	}

	output, err = run("student", "set", "1", "nonexistent", "x")
	if err == nil {
		t.Errorf("Expected invalid field to fail, got: %s", output)
	}
}
