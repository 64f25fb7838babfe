// ABOUTME: Repository interface for trainer data storage.
// ABOUTME: Defines the contract for student and training plan CRUD operations.
package storage

import (
	"context"

	"github.com/harperreed/trainer/internal/models"
)

// Repository defines the storage interface for students and plans.
// Getters return (nil, nil) when the id does not exist. Updates and deletes
// of missing ids succeed without effect.
type Repository interface {
	// Student operations
	CreateStudent(ctx context.Context, name, email string) (int64, error)
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
	ListStudents(ctx context.Context) ([]models.StudentSummary, error)
	UpdateStudentField(ctx context.Context, id int64, field models.StudentField, value string) error
	DeleteStudent(ctx context.Context, id int64) error
	CountStudents(ctx context.Context) (int, error)

	// Plan operations
	CreatePlan(ctx context.Context, studentID int64, name, description, exercises string) (int64, error)
	GetPlan(ctx context.Context, id int64) (*models.TrainingPlan, error)
	ListPlans(ctx context.Context, studentID int64) ([]models.TrainingPlan, error)
	UpdatePlan(ctx context.Context, id int64, name, description, exercises string) error
	DeletePlan(ctx context.Context, id int64) error
	ListRecentPlans(ctx context.Context, limit int) ([]models.RecentPlan, error)

	// Backup/Restore
	Snapshot(ctx context.Context) (*Backup, error)
	Restore(ctx context.Context, b *Backup) error

	// Lifecycle
	SchemaVersion(ctx context.Context) (int, error)
	Close() error
}

var _ Repository = (*DB)(nil)
