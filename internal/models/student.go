// ABOUTME: Student model and the closed set of updatable student fields.
// ABOUTME: JSON keys keep the document names used by existing front-ends.
package models

import (
	"strings"

	"github.com/harperreed/trainer/internal/apperr"
)

// EnrollmentDateLayout is the format of Student.EnrollmentDate.
const EnrollmentDateLayout = "2006-01-02"

// Student is a person enrolled for training.
type Student struct {
	ID             int64  `json:"id" yaml:"id"`
	Name           string `json:"nome" yaml:"nome"`
	Email          string `json:"email" yaml:"email"`
	EnrollmentDate string `json:"data_inicio" yaml:"data_inicio"`
	Plan           string `json:"plano" yaml:"plano"`
	Payment        string `json:"pagamento" yaml:"pagamento"`
	Progress       string `json:"progresso" yaml:"progresso"`
	Diet           string `json:"dieta" yaml:"dieta"`
	Training       string `json:"treino" yaml:"treino"`
}

// StudentSummary is the row shape returned by student listings.
type StudentSummary struct {
	ID             int64  `json:"id"`
	Name           string `json:"nome"`
	Email          string `json:"email"`
	EnrollmentDate string `json:"data_inicio"`
}

// Summary returns the listing view of s.
func (s Student) Summary() StudentSummary {
	return StudentSummary{ID: s.ID, Name: s.Name, Email: s.Email, EnrollmentDate: s.EnrollmentDate}
}

// StudentField enumerates the student columns that may be updated one at a time.
type StudentField int

const (
	FieldName StudentField = iota + 1
	FieldEmail
	FieldEnrollmentDate
	FieldPlan
	FieldPayment
	FieldProgress
	FieldDiet
	FieldTraining
)

var studentFieldNames = map[StudentField]string{
	FieldName:           "name",
	FieldEmail:          "email",
	FieldEnrollmentDate: "enrollment_date",
	FieldPlan:           "plan",
	FieldPayment:        "payment",
	FieldProgress:       "progress",
	FieldDiet:           "diet",
	FieldTraining:       "training",
}

// studentFieldAliases accepts the document key of each field as well.
var studentFieldAliases = map[string]StudentField{
	"nome":           FieldName,
	"data_inicio":    FieldEnrollmentDate,
	"plano":          FieldPlan,
	"pagamento":      FieldPayment,
	"progresso":      FieldProgress,
	"dieta":          FieldDiet,
	"treino":         FieldTraining,
	"training_notes": FieldTraining,
}

// AllStudentFields returns the updatable fields in declaration order.
func AllStudentFields() []StudentField {
	return []StudentField{
		FieldName, FieldEmail, FieldEnrollmentDate, FieldPlan,
		FieldPayment, FieldProgress, FieldDiet, FieldTraining,
	}
}

// String returns the canonical field name.
func (f StudentField) String() string {
	if name, ok := studentFieldNames[f]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether f is one of the declared fields.
func (f StudentField) Valid() bool {
	_, ok := studentFieldNames[f]
	return ok
}

// ParseStudentField maps a field name to its StudentField.
// Matching ignores case and treats spaces and dashes as underscores.
func ParseStudentField(name string) (StudentField, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)

	for f, n := range studentFieldNames {
		if n == key {
			return f, nil
		}
	}
	if f, ok := studentFieldAliases[key]; ok {
		return f, nil
	}
	return 0, apperr.Validation("invalid student field %q", name)
}

// Value returns the value of field f on s.
func (s Student) Value(f StudentField) string {
	switch f {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldEnrollmentDate:
		return s.EnrollmentDate
	case FieldPlan:
		return s.Plan
	case FieldPayment:
		return s.Payment
	case FieldProgress:
		return s.Progress
	case FieldDiet:
		return s.Diet
	case FieldTraining:
		return s.Training
	}
	return ""
}
