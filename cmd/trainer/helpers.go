// ABOUTME: Small parsing and formatting helpers shared by the CLI commands.
// ABOUTME: IDs, key=value assignments, exercise specs, and column padding.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/trainer/internal/models"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %s", s)
	}
	return id, nil
}

// parseAssignments turns key=value arguments into a map. Later keys win.
func parseAssignments(args []string) (map[string]string, error) {
	values := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("expected field=value, got %q", arg)
		}
		values[key] = value
	}
	return values, nil
}

// exerciseKeys is the positional order of an exercise spec.
var exerciseKeys = []string{
	models.KeyName, models.KeySets, models.KeyReps,
	models.KeyLoad, models.KeyRest, models.KeyNote,
}

// parseExercise reads "name:sets:reps[:load[:rest[:note]]]". The note keeps
// any further colons.
func parseExercise(spec string) (models.Exercise, error) {
	parts := strings.SplitN(spec, ":", len(exerciseKeys))
	values := make(map[string]string, len(parts))
	for i, part := range parts {
		values[exerciseKeys[i]] = strings.TrimSpace(part)
	}
	ex, err := models.ExerciseFromFields(values)
	if err != nil {
		return models.Exercise{}, err
	}
	if err := ex.Validate(); err != nil {
		return models.Exercise{}, err
	}
	return ex, nil
}

func parseExercises(specs []string) ([]models.Exercise, error) {
	exercises := make([]models.Exercise, 0, len(specs))
	for _, spec := range specs {
		ex, err := parseExercise(spec)
		if err != nil {
			return nil, fmt.Errorf("exercise %q: %w", spec, err)
		}
		exercises = append(exercises, ex)
	}
	return exercises, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
