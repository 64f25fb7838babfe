// ABOUTME: Student CRUD operations for SQLite storage.
// ABOUTME: Single-column updates are restricted to the StudentField enum.
package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/harperreed/trainer/internal/apperr"
	"github.com/harperreed/trainer/internal/models"
	"go.uber.org/zap"
)

// studentColumn maps an updatable field to its column. Column names cannot be
// bound as parameters, so only these literals ever reach an UPDATE statement.
func studentColumn(f models.StudentField) (string, bool) {
	switch f {
	case models.FieldName:
		return "name", true
	case models.FieldEmail:
		return "email", true
	case models.FieldEnrollmentDate:
		return "enrollment_date", true
	case models.FieldPlan:
		return "plan", true
	case models.FieldPayment:
		return "payment", true
	case models.FieldProgress:
		return "progress", true
	case models.FieldDiet:
		return "diet", true
	case models.FieldTraining:
		return "training", true
	}
	return "", false
}

// CreateStudent inserts a student enrolled today and returns its id.
func (d *DB) CreateStudent(ctx context.Context, name, email string) (int64, error) {
	enrolled := d.now().Format(models.EnrollmentDateLayout)

	var id int64
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO students (name, email, enrollment_date) VALUES (?, ?, ?)`,
			name, email, enrolled)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, d.fail("create student", err, zap.String("name", name))
	}
	return id, nil
}

// GetStudent retrieves a student by id. It returns (nil, nil) when absent.
func (d *DB) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT id, name, COALESCE(email, ''), COALESCE(enrollment_date, ''),
		       COALESCE(plan, ''), COALESCE(payment, ''), COALESCE(progress, ''),
		       COALESCE(diet, ''), COALESCE(training, '')
		FROM students
		WHERE id = ?
	`
	var s models.Student
	err := d.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Email, &s.EnrollmentDate,
		&s.Plan, &s.Payment, &s.Progress, &s.Diet, &s.Training,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, d.fail("get student", err, zap.Int64("student_id", id))
	}
	return &s, nil
}

// ListStudents returns every student ordered by name.
func (d *DB) ListStudents(ctx context.Context) ([]models.StudentSummary, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(email, ''), COALESCE(enrollment_date, '')
		FROM students
		ORDER BY name
	`)
	if err != nil {
		return nil, d.fail("list students", err)
	}
	defer rows.Close()

	students := []models.StudentSummary{}
	for rows.Next() {
		var s models.StudentSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.EnrollmentDate); err != nil {
			return nil, d.fail("scan student", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, d.fail("list students", err)
	}
	return students, nil
}

// UpdateStudentField sets one column of a student. Updating a missing id
// changes nothing and is not an error.
func (d *DB) UpdateStudentField(ctx context.Context, id int64, field models.StudentField, value string) error {
	column, ok := studentColumn(field)
	if !ok {
		return apperr.Validation("invalid student field %d", int(field))
	}

	err := d.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "UPDATE students SET "+column+" = ? WHERE id = ?", value, id)
		return err
	})
	if err != nil {
		return d.fail("update student", err, zap.Int64("student_id", id), zap.String("field", field.String()))
	}
	return nil
}

// DeleteStudent removes a student and, by cascade, all of its plans.
func (d *DB) DeleteStudent(ctx context.Context, id int64) error {
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "DELETE FROM students WHERE id = ?", id)
		return err
	})
	if err != nil {
		return d.fail("delete student", err, zap.Int64("student_id", id))
	}
	return nil
}

// CountStudents returns the number of stored students.
func (d *DB) CountStudents(ctx context.Context) (int, error) {
	var total int
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM students").Scan(&total); err != nil {
		return 0, d.fail("count students", err)
	}
	return total, nil
}
