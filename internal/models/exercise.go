// ABOUTME: Exercise model and the versioned exercise-list document.
// ABOUTME: Plans store exercises as this JSON document in a single text column.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/trainer/internal/apperr"
	"gopkg.in/yaml.v3"
)

// ExerciseDocumentVersion is the version written by EncodeExercises.
const ExerciseDocumentVersion = 1

// Exercise field keys, in display order.
const (
	KeyName = "nome"
	KeySets = "series"
	KeyReps = "reps"
	KeyLoad = "peso"
	KeyRest = "descanso"
	KeyNote = "obs"
)

// Count is a non-negative integer that also decodes from a numeric string.
// Older documents stored set and rep counts as strings.
type Count int

// UnmarshalYAML accepts the same inputs as UnmarshalJSON.
func (c *Count) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("count must be a scalar, line %d", node.Line)
	}
	if node.Tag == "!!null" {
		*c = 0
		return nil
	}
	return c.parse(node.Value)
}

func (c *Count) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*c = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("count %q is not a number", s)
	}
	*c = Count(n)
	return nil
}

// UnmarshalJSON accepts 3, "3", and "" (zero).
func (c *Count) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		return c.parse(s)
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = Count(n)
	return nil
}

// Exercise is one row of a training plan.
type Exercise struct {
	Name string `json:"nome" yaml:"nome"`
	Sets Count  `json:"series" yaml:"series"`
	Reps Count  `json:"reps" yaml:"reps"`
	Load string `json:"peso,omitempty" yaml:"peso,omitempty"`
	Rest string `json:"descanso,omitempty" yaml:"descanso,omitempty"`
	Note string `json:"obs,omitempty" yaml:"obs,omitempty"`
}

// Field is a key/value pair of an exercise.
type Field struct {
	Key   string
	Value string
}

// Fields returns the exercise as ordered key/value pairs. Optional keys are
// present only when set, so tabular exporters derive their columns from it.
func (e Exercise) Fields() []Field {
	fields := []Field{
		{KeyName, e.Name},
		{KeySets, strconv.Itoa(int(e.Sets))},
		{KeyReps, strconv.Itoa(int(e.Reps))},
	}
	if e.Load != "" {
		fields = append(fields, Field{KeyLoad, e.Load})
	}
	if e.Rest != "" {
		fields = append(fields, Field{KeyRest, e.Rest})
	}
	if e.Note != "" {
		fields = append(fields, Field{KeyNote, e.Note})
	}
	return fields
}

// Get returns the value for key, or "" when the key is unset or unknown.
func (e Exercise) Get(key string) string {
	for _, f := range e.Fields() {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

// Validate checks the exercise is usable in a plan.
func (e Exercise) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return apperr.Validation("exercise name is required")
	}
	if e.Sets < 0 || e.Reps < 0 {
		return apperr.Validation("exercise %q: sets and reps must not be negative", e.Name)
	}
	return nil
}

// ExerciseFromFields builds an exercise from key/value pairs, the inverse of
// Fields. Unknown keys are ignored.
func ExerciseFromFields(values map[string]string) (Exercise, error) {
	e := Exercise{
		Name: values[KeyName],
		Load: values[KeyLoad],
		Rest: values[KeyRest],
		Note: values[KeyNote],
	}
	for key, dst := range map[string]*Count{KeySets: &e.Sets, KeyReps: &e.Reps} {
		raw := strings.TrimSpace(values[key])
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Exercise{}, apperr.Validation("%s %q is not a number", key, raw)
		}
		*dst = Count(n)
	}
	return e, nil
}

type exerciseDocument struct {
	Version   int        `json:"version"`
	Exercises []Exercise `json:"exercises"`
}

// EncodeExercises serializes exercises as a versioned document.
func EncodeExercises(exercises []Exercise) (string, error) {
	if exercises == nil {
		exercises = []Exercise{}
	}
	data, err := json.Marshal(exerciseDocument{Version: ExerciseDocumentVersion, Exercises: exercises})
	if err != nil {
		return "", fmt.Errorf("encode exercises: %w", err)
	}
	return string(data), nil
}

// DecodeExercises parses a stored exercise list. It accepts the versioned
// document and the bare JSON array written by earlier releases. A document
// that cannot be read is reported as ErrStorage.
func DecodeExercises(blob string) ([]Exercise, error) {
	blob = strings.TrimSpace(blob)
	if blob == "" {
		return []Exercise{}, nil
	}

	if strings.HasPrefix(blob, "[") {
		var exercises []Exercise
		if err := json.Unmarshal([]byte(blob), &exercises); err != nil {
			return nil, apperr.Storage("decode exercise list", err)
		}
		return exercises, nil
	}

	var doc exerciseDocument
	if err := json.Unmarshal([]byte(blob), &doc); err != nil {
		return nil, apperr.Storage("decode exercise document", err)
	}
	if doc.Version > ExerciseDocumentVersion {
		return nil, apperr.Storage("decode exercise document",
			fmt.Errorf("version %d is newer than supported version %d", doc.Version, ExerciseDocumentVersion))
	}
	if doc.Exercises == nil {
		doc.Exercises = []Exercise{}
	}
	return doc.Exercises, nil
}
