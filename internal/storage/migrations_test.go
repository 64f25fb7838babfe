// ABOUTME: Tests for versioned schema migrations.
// ABOUTME: Covers fresh databases, idempotence, and pre-existing columns.
package storage

import (
	"path/filepath"
	"testing"
)

func TestOpenMigratesToLatest(t *testing.T) {
	db := setupTestDB(t)

	version, err := db.SchemaVersion(t.Context())
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != LatestSchemaVersion() {
		t.Errorf("version = %d, want %d", version, LatestSchemaVersion())
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := t.Context()
	id := mustCreateStudent(t, db, "Ana", "")

	result, err := db.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if result.Applied != 0 {
		t.Errorf("expected no migrations applied, got %d", result.Applied)
	}

	if s, _ := db.GetStudent(ctx, id); s == nil {
		t.Error("data lost after re-running migrations")
	}
}

func TestReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "trainer.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	id, err := db.CreateStudent(t.Context(), "Ana", "")
	if err != nil {
		t.Fatalf("CreateStudent failed: %v", err)
	}
	db.Close()

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	s, err := reopened.GetStudent(t.Context(), id)
	if err != nil || s == nil {
		t.Fatalf("expected student after reopen, got %v, %v", s, err)
	}
}

func TestMigrateToleratesExistingColumn(t *testing.T) {
	db := setupTestDB(t)
	ctx := t.Context()

	// Roll the counter back so migration 4 runs against a table that
	// already has updated_at.
	if _, err := db.db.ExecContext(ctx, "PRAGMA user_version = 3"); err != nil {
		t.Fatalf("reset user_version: %v", err)
	}

	result, err := db.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if result.Applied != 1 || result.Tolerated != 1 {
		t.Errorf("expected 1 applied and 1 tolerated, got %+v", result)
	}
	if result.FromVersion != 3 || result.ToVersion != LatestSchemaVersion() {
		t.Errorf("unexpected versions: %+v", result)
	}
}

func TestMigrateToPartialVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "trainer.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	ctx := t.Context()
	if _, err := db.db.ExecContext(ctx, "DROP TABLE plans"); err != nil {
		t.Fatalf("drop plans: %v", err)
	}
	if _, err := db.db.ExecContext(ctx, "PRAGMA user_version = 1"); err != nil {
		t.Fatalf("reset user_version: %v", err)
	}

	result, err := db.migrateTo(ctx, 2)
	if err != nil {
		t.Fatalf("migrateTo failed: %v", err)
	}
	if result.ToVersion != 2 || result.Applied != 1 {
		t.Errorf("unexpected result: %+v", result)
	}

	result, err = db.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if result.ToVersion != LatestSchemaVersion() || result.Tolerated != 0 {
		t.Errorf("unexpected result: %+v", result)
	}
}
