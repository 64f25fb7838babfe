// ABOUTME: TrainingPlan model and dashboard summary rows.
// ABOUTME: Plans belong to one student and carry an encoded exercise list.
package models

import "strings"

// TrainingPlan is a named, ordered list of exercises belonging to a student.
type TrainingPlan struct {
	ID          int64  `json:"id" yaml:"id"`
	StudentID   int64  `json:"aluno_id" yaml:"aluno_id"`
	Name        string `json:"nome" yaml:"nome"`
	Description string `json:"descricao" yaml:"descricao"`
	UpdatedAt   string `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`

	// ExercisesJSON is the stored document, see EncodeExercises.
	ExercisesJSON string `json:"-" yaml:"exercicios_json"`

	// Exercises is populated by Decode.
	Exercises []Exercise `json:"exercicios" yaml:"-"`
}

// Decode fills Exercises from ExercisesJSON.
func (p *TrainingPlan) Decode() error {
	exercises, err := DecodeExercises(p.ExercisesJSON)
	if err != nil {
		return err
	}
	p.Exercises = exercises
	return nil
}

// Title is the heading used when exporting the plan.
func (p TrainingPlan) Title() string {
	if d := strings.TrimSpace(p.Description); d != "" {
		return p.Name + " - " + d
	}
	return p.Name
}

// RecentPlan is a dashboard row: a plan and the name of its student.
type RecentPlan struct {
	ID          int64  `json:"id"`
	Name        string `json:"nome"`
	StudentName string `json:"aluno"`
}

// Stats is the dashboard summary.
type Stats struct {
	Students    int          `json:"students"`
	RecentPlans []RecentPlan `json:"recent_plans"`
}
