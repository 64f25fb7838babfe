// ABOUTME: Training plan CRUD operations for SQLite storage.
// ABOUTME: Exercises are stored as an opaque document; see models.EncodeExercises.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/harperreed/trainer/internal/models"
	"go.uber.org/zap"
)

// DefaultRecentPlans is the dashboard limit used when none is given.
const DefaultRecentPlans = 5

const planColumns = `id, student_id, name, COALESCE(description, ''), COALESCE(exercises, ''), COALESCE(updated_at, '')`

// CreatePlan stores a plan for an existing student and returns its id.
// A missing student surfaces as a foreign key storage error.
func (d *DB) CreatePlan(ctx context.Context, studentID int64, name, description, exercises string) (int64, error) {
	var id int64
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO plans (student_id, name, description, exercises, updated_at) VALUES (?, ?, ?, ?, ?)`,
			studentID, name, description, exercises, d.stamp())
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, d.fail("create plan", err, zap.Int64("student_id", studentID))
	}
	return id, nil
}

// GetPlan retrieves a plan by id. It returns (nil, nil) when absent.
func (d *DB) GetPlan(ctx context.Context, id int64) (*models.TrainingPlan, error) {
	row := d.db.QueryRowContext(ctx, "SELECT "+planColumns+" FROM plans WHERE id = ?", id)

	var p models.TrainingPlan
	err := row.Scan(&p.ID, &p.StudentID, &p.Name, &p.Description, &p.ExercisesJSON, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, d.fail("get plan", err, zap.Int64("plan_id", id))
	}
	return &p, nil
}

// ListPlans returns a student's plans in insertion order.
func (d *DB) ListPlans(ctx context.Context, studentID int64) ([]models.TrainingPlan, error) {
	rows, err := d.db.QueryContext(ctx,
		"SELECT "+planColumns+" FROM plans WHERE student_id = ? ORDER BY id", studentID)
	if err != nil {
		return nil, d.fail("list plans", err, zap.Int64("student_id", studentID))
	}
	defer rows.Close()

	plans, err := scanPlans(rows)
	if err != nil {
		return nil, d.fail("list plans", err, zap.Int64("student_id", studentID))
	}
	return plans, nil
}

// UpdatePlan replaces the name, description, and exercises of a plan.
func (d *DB) UpdatePlan(ctx context.Context, id int64, name, description, exercises string) error {
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`UPDATE plans SET name = ?, description = ?, exercises = ?, updated_at = ? WHERE id = ?`,
			name, description, exercises, d.stamp(), id)
		return err
	})
	if err != nil {
		return d.fail("update plan", err, zap.Int64("plan_id", id))
	}
	return nil
}

// DeletePlan removes a plan.
func (d *DB) DeletePlan(ctx context.Context, id int64) error {
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "DELETE FROM plans WHERE id = ?", id)
		return err
	})
	if err != nil {
		return d.fail("delete plan", err, zap.Int64("plan_id", id))
	}
	return nil
}

// ListRecentPlans returns the newest plans with their student's name.
func (d *DB) ListRecentPlans(ctx context.Context, limit int) ([]models.RecentPlan, error) {
	if limit <= 0 {
		limit = DefaultRecentPlans
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT plans.id, plans.name, students.name
		FROM plans
		JOIN students ON plans.student_id = students.id
		ORDER BY plans.id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, d.fail("list recent plans", err)
	}
	defer rows.Close()

	recent := []models.RecentPlan{}
	for rows.Next() {
		var r models.RecentPlan
		if err := rows.Scan(&r.ID, &r.Name, &r.StudentName); err != nil {
			return nil, d.fail("scan recent plan", err)
		}
		recent = append(recent, r)
	}
	if err := rows.Err(); err != nil {
		return nil, d.fail("list recent plans", err)
	}
	return recent, nil
}

func (d *DB) stamp() string {
	return d.now().UTC().Format(time.RFC3339)
}

// scanPlans scans multiple rows selected with planColumns.
func scanPlans(rows *sql.Rows) ([]models.TrainingPlan, error) {
	plans := []models.TrainingPlan{}
	for rows.Next() {
		var p models.TrainingPlan
		if err := rows.Scan(&p.ID, &p.StudentID, &p.Name, &p.Description, &p.ExercisesJSON, &p.UpdatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}
