// ABOUTME: Use-case facade shared by the CLI, REST, and MCP front-ends.
// ABOUTME: Validates input, calls the stores, and returns typed records.
package app

import (
	"context"
	"strings"

	"github.com/harperreed/trainer/internal/apperr"
	"github.com/harperreed/trainer/internal/config"
	"github.com/harperreed/trainer/internal/export"
	"github.com/harperreed/trainer/internal/logging"
	"github.com/harperreed/trainer/internal/models"
	"github.com/harperreed/trainer/internal/storage"
	"go.uber.org/zap"
)

// Service is the facade over the record store, config store, and exporters.
type Service struct {
	repo      storage.Repository
	cfg       *config.Store
	exporters *export.Registry
	log       *zap.Logger
}

// New returns a Service. A nil registry gets the built-in exporters.
func New(repo storage.Repository, cfg *config.Store, exporters *export.Registry, logger *zap.Logger) *Service {
	logger = logging.OrNop(logger)
	if exporters == nil {
		exporters = export.NewDefaultRegistry(nil, logger)
	}
	return &Service{repo: repo, cfg: cfg, exporters: exporters, log: logger}
}

// Repository returns the underlying record store.
func (s *Service) Repository() storage.Repository {
	return s.repo
}

// AddStudent enrolls a student and returns the new id.
func (s *Service) AddStudent(ctx context.Context, name, email string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, apperr.Validation("student name is required")
	}
	return s.repo.CreateStudent(ctx, name, strings.TrimSpace(email))
}

// Student returns a student, or nil when absent.
func (s *Service) Student(ctx context.Context, id int64) (*models.Student, error) {
	return s.repo.GetStudent(ctx, id)
}

// Students lists every student ordered by name.
func (s *Service) Students(ctx context.Context) ([]models.StudentSummary, error) {
	return s.repo.ListStudents(ctx)
}

// UpdateStudent sets one field named by its allow-listed name.
func (s *Service) UpdateStudent(ctx context.Context, id int64, field, value string) error {
	f, err := models.ParseStudentField(field)
	if err != nil {
		return err
	}
	if err := checkStudentField(f, value); err != nil {
		return err
	}
	return s.repo.UpdateStudentField(ctx, id, f, value)
}

// UpdateStudentFields applies several field updates. Every name is checked
// before anything is written.
func (s *Service) UpdateStudentFields(ctx context.Context, id int64, values map[string]string) error {
	parsed := make(map[models.StudentField]string, len(values))
	for name, value := range values {
		f, err := models.ParseStudentField(name)
		if err != nil {
			return err
		}
		if err := checkStudentField(f, value); err != nil {
			return err
		}
		parsed[f] = value
	}

	// Apply in enum order so repeated calls write in the same sequence.
	for _, f := range models.AllStudentFields() {
		value, ok := parsed[f]
		if !ok {
			continue
		}
		if err := s.repo.UpdateStudentField(ctx, id, f, value); err != nil {
			return err
		}
	}
	return nil
}

// checkStudentField rejects values a field may not hold.
func checkStudentField(f models.StudentField, value string) error {
	if f == models.FieldName && strings.TrimSpace(value) == "" {
		return apperr.Validation("student name is required")
	}
	return nil
}

// RemoveStudent deletes a student and their plans.
func (s *Service) RemoveStudent(ctx context.Context, id int64) error {
	return s.repo.DeleteStudent(ctx, id)
}

// AddPlan creates a plan for an existing student.
func (s *Service) AddPlan(ctx context.Context, studentID int64, name, description string, exercises []models.Exercise) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, apperr.Validation("plan name is required")
	}
	doc, err := encodeExercises(exercises)
	if err != nil {
		return 0, err
	}

	student, err := s.repo.GetStudent(ctx, studentID)
	if err != nil {
		return 0, err
	}
	if student == nil {
		return 0, apperr.NotFound("student %d", studentID)
	}

	return s.repo.CreatePlan(ctx, studentID, name, strings.TrimSpace(description), doc)
}

// Plan returns a plan with its exercises decoded, or nil when absent.
func (s *Service) Plan(ctx context.Context, id int64) (*models.TrainingPlan, error) {
	p, err := s.repo.GetPlan(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	if err := p.Decode(); err != nil {
		return nil, err
	}
	return p, nil
}

// PlanExists reports whether a plan is stored, without decoding its
// exercises.
func (s *Service) PlanExists(ctx context.Context, id int64) (bool, error) {
	p, err := s.repo.GetPlan(ctx, id)
	if err != nil {
		return false, err
	}
	return p != nil, nil
}

// Plans lists a student's plans. A plan whose stored exercises cannot be
// decoded is returned with no exercises and a warning is logged.
func (s *Service) Plans(ctx context.Context, studentID int64) ([]models.TrainingPlan, error) {
	plans, err := s.repo.ListPlans(ctx, studentID)
	if err != nil {
		return nil, err
	}
	for i := range plans {
		if err := plans[i].Decode(); err != nil {
			s.log.Warn("undecodable exercises", zap.Int64("plan_id", plans[i].ID), zap.Error(err))
			plans[i].Exercises = []models.Exercise{}
		}
	}
	return plans, nil
}

// UpdatePlan replaces a plan's name, description, and exercises.
func (s *Service) UpdatePlan(ctx context.Context, id int64, name, description string, exercises []models.Exercise) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.Validation("plan name is required")
	}
	doc, err := encodeExercises(exercises)
	if err != nil {
		return err
	}
	return s.repo.UpdatePlan(ctx, id, name, strings.TrimSpace(description), doc)
}

// RemovePlan deletes a plan.
func (s *Service) RemovePlan(ctx context.Context, id int64) error {
	return s.repo.DeletePlan(ctx, id)
}

// Stats returns the dashboard summary. A non-positive limit uses the
// store's default.
func (s *Service) Stats(ctx context.Context, limit int) (*models.Stats, error) {
	total, err := s.repo.CountStudents(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.ListRecentPlans(ctx, limit)
	if err != nil {
		return nil, err
	}
	return &models.Stats{Students: total, RecentPlans: recent}, nil
}

func encodeExercises(exercises []models.Exercise) (string, error) {
	for _, ex := range exercises {
		if err := ex.Validate(); err != nil {
			return "", err
		}
	}
	return models.EncodeExercises(exercises)
}
