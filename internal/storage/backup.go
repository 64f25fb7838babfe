// ABOUTME: Backup and restore of all students and plans.
// ABOUTME: Supports JSON and YAML encodings of the same document.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/trainer/internal/apperr"
	"github.com/harperreed/trainer/internal/models"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// BackupVersion identifies the backup document layout.
const BackupVersion = "1.0"

// Backup is the full export format for trainer data.
type Backup struct {
	Version       string           `json:"version" yaml:"version"`
	ExportedAt    time.Time        `json:"exported_at" yaml:"exported_at"`
	Tool          string           `json:"tool" yaml:"tool"`
	SchemaVersion int              `json:"schema_version" yaml:"schema_version"`
	Students      []models.Student `json:"students" yaml:"students"`
	Plans         []BackupPlan     `json:"plans" yaml:"plans"`
}

// BackupPlan keeps the stored exercise document verbatim so a restore
// does not rewrite legacy documents.
type BackupPlan struct {
	ID          int64  `json:"id" yaml:"id"`
	StudentID   int64  `json:"student_id" yaml:"student_id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Exercises   string `json:"exercises" yaml:"exercises"`
	UpdatedAt   string `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Snapshot reads every student and plan inside one read-only transaction.
func (d *DB) Snapshot(ctx context.Context) (*Backup, error) {
	b := &Backup{
		Version:    BackupVersion,
		ExportedAt: d.now().UTC(),
		Tool:       "trainer",
		Students:   []models.Student{},
		Plans:      []BackupPlan{},
	}

	err := d.withReadTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, "PRAGMA user_version").Scan(&b.SchemaVersion); err != nil {
			return fmt.Errorf("read schema version: %w", err)
		}

		students, err := snapshotStudents(ctx, tx)
		if err != nil {
			return err
		}
		b.Students = students

		plans, err := snapshotPlans(ctx, tx)
		if err != nil {
			return err
		}
		b.Plans = plans
		return nil
	})
	if err != nil {
		return nil, d.fail("snapshot", err)
	}
	return b, nil
}

func snapshotStudents(ctx context.Context, tx *sql.Tx) ([]models.Student, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, name, COALESCE(email, ''), COALESCE(enrollment_date, ''),
		       COALESCE(plan, ''), COALESCE(payment, ''), COALESCE(progress, ''),
		       COALESCE(diet, ''), COALESCE(training, '')
		FROM students
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("read students: %w", err)
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Email, &s.EnrollmentDate,
			&s.Plan, &s.Payment, &s.Progress, &s.Diet, &s.Training,
		); err != nil {
			return nil, fmt.Errorf("read students: %w", err)
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// snapshotPlans returns plans grouped by student in student name order.
func snapshotPlans(ctx context.Context, tx *sql.Tx) ([]BackupPlan, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT p.id, p.student_id, p.name, COALESCE(p.description, ''),
		       COALESCE(p.exercises, ''), COALESCE(p.updated_at, '')
		FROM plans p
		JOIN students s ON s.id = p.student_id
		ORDER BY s.name, s.id, p.id
	`)
	if err != nil {
		return nil, fmt.Errorf("read plans: %w", err)
	}
	defer rows.Close()

	plans := []BackupPlan{}
	for rows.Next() {
		var p BackupPlan
		if err := rows.Scan(&p.ID, &p.StudentID, &p.Name, &p.Description, &p.Exercises, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("read plans: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// Restore replays a backup into an empty store, preserving ids. The whole
// restore is one transaction.
func (d *DB) Restore(ctx context.Context, b *Backup) error {
	if b == nil {
		return apperr.Validation("backup is empty")
	}

	count, err := d.CountStudents(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Validation("restore requires an empty store, found %d students", count)
	}

	err = d.withTx(ctx, func(tx *sql.Tx) error {
		for _, s := range b.Students {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO students (id, name, email, enrollment_date, plan, payment, progress, diet, training)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				s.ID, s.Name, s.Email, s.EnrollmentDate, s.Plan, s.Payment, s.Progress, s.Diet, s.Training,
			); err != nil {
				return fmt.Errorf("restore student %d: %w", s.ID, err)
			}
		}
		for _, p := range b.Plans {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO plans (id, student_id, name, description, exercises, updated_at)
				VALUES (?, ?, ?, ?, ?, ?)`,
				p.ID, p.StudentID, p.Name, p.Description, p.Exercises, p.UpdatedAt,
			); err != nil {
				return fmt.Errorf("restore plan %d: %w", p.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return d.fail("restore backup", err,
			zap.Int("students", len(b.Students)),
			zap.Int("plans", len(b.Plans)))
	}

	d.log.Info("backup restored", zap.Int("students", len(b.Students)), zap.Int("plans", len(b.Plans)))
	return nil
}

// ExportJSON exports all data as indented JSON.
func (d *DB) ExportJSON(ctx context.Context) ([]byte, error) {
	b, err := d.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(b, "", "  ")
}

// ExportYAML exports all data as YAML.
func (d *DB) ExportYAML(ctx context.Context) ([]byte, error) {
	b, err := d.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(b)
}

// ParseBackup decodes a backup in JSON or YAML.
func ParseBackup(data []byte) (*Backup, error) {
	var b Backup
	if jsonErr := json.Unmarshal(data, &b); jsonErr == nil {
		return &b, nil
	}
	b = Backup{}
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, apperr.Validation("parse backup: %v", err)
	}
	return &b, nil
}

// ImportJSON imports data from JSON or YAML bytes.
func (d *DB) ImportJSON(ctx context.Context, data []byte) error {
	b, err := ParseBackup(data)
	if err != nil {
		return err
	}
	return d.Restore(ctx, b)
}
