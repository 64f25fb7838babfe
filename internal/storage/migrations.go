// ABOUTME: Versioned schema migrations tracked by SQLite's user_version.
// ABOUTME: Applies every migration newer than the stored counter, in order.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Migration is one schema change. Version numbers start at 1 and are dense.
type Migration struct {
	Version     int
	Description string
	Statements  []string
}

// migrations lists every schema change in application order.
var migrations = []Migration{
	{
		Version:     1,
		Description: "create students",
		Statements: []string{`
		CREATE TABLE IF NOT EXISTS students (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT,
			enrollment_date TEXT,
			plan TEXT,
			payment TEXT,
			progress TEXT,
			diet TEXT,
			training TEXT
		)`},
	},
	{
		Version:     2,
		Description: "create plans",
		Statements: []string{`
		CREATE TABLE IF NOT EXISTS plans (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			student_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			exercises TEXT,
			FOREIGN KEY (student_id) REFERENCES students(id) ON DELETE CASCADE
		)`},
	},
	{
		Version:     3,
		Description: "index plans by student and students by name",
		Statements: []string{
			`CREATE INDEX IF NOT EXISTS idx_plans_student ON plans(student_id)`,
			`CREATE INDEX IF NOT EXISTS idx_students_name ON students(name)`,
		},
	},
	{
		Version:     4,
		Description: "add plans.updated_at",
		Statements:  []string{`ALTER TABLE plans ADD COLUMN updated_at TEXT`},
	},
}

// MigrationResult summarizes a Migrate call.
type MigrationResult struct {
	FromVersion int
	ToVersion   int
	Applied     int
	// Tolerated counts statements skipped because their column already existed.
	Tolerated int
}

// LatestSchemaVersion returns the version of the newest known migration.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].Version
}

// SchemaVersion returns the migration counter stored in the database.
func (d *DB) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := d.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, d.fail("read schema version", err)
	}
	return version, nil
}

// Migrate applies all pending migrations. Running it against an up-to-date
// database is a no-op.
func (d *DB) Migrate(ctx context.Context) (*MigrationResult, error) {
	return d.migrateTo(ctx, LatestSchemaVersion())
}

func (d *DB) migrateTo(ctx context.Context, target int) (*MigrationResult, error) {
	current, err := d.SchemaVersion(ctx)
	if err != nil {
		return nil, err
	}

	result := &MigrationResult{FromVersion: current, ToVersion: current}
	for _, m := range migrations {
		if m.Version <= current || m.Version > target {
			continue
		}

		d.log.Debug("applying migration", zap.Int("version", m.Version), zap.String("description", m.Description))
		tolerated, err := d.applyMigration(ctx, m)
		if err != nil {
			return nil, d.fail("migrate schema", err, zap.Int("version", m.Version))
		}
		result.Applied++
		result.Tolerated += tolerated
		result.ToVersion = m.Version
	}

	if result.Applied > 0 {
		d.log.Info("schema migrated",
			zap.Int("from", result.FromVersion),
			zap.Int("to", result.ToVersion),
			zap.Int("tolerated", result.Tolerated))
	}
	return result, nil
}

// applyMigration runs one migration and bumps the counter in the same
// transaction. Adding a column that already exists is tolerated.
func (d *DB) applyMigration(ctx context.Context, m Migration) (int, error) {
	tolerated := 0
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range m.Statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				if !isDuplicateColumn(err) {
					return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
				}
				d.log.Warn("column already exists, skipping",
					zap.Int("version", m.Version),
					zap.String("statement", strings.TrimSpace(stmt)),
					zap.Error(err))
				tolerated++
			}
		}
		// PRAGMA does not accept bound parameters; Version is an int constant.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
			return fmt.Errorf("set user_version %d: %w", m.Version, err)
		}
		return nil
	})
	return tolerated, err
}

func isDuplicateColumn(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "duplicate column name")
}
