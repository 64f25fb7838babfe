// ABOUTME: Shared helpers for storage tests.
// ABOUTME: Opens throwaway databases under t.TempDir with a fixed clock.
package storage

import (
	"path/filepath"
	"testing"
	"time"
)

var testNow = time.Date(2024, 3, 9, 10, 30, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "trainer.db")
	db, err := Open(dbPath, WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func mustCreateStudent(t *testing.T, db *DB, name, email string) int64 {
	t.Helper()

	id, err := db.CreateStudent(t.Context(), name, email)
	if err != nil {
		t.Fatalf("CreateStudent(%q) failed: %v", name, err)
	}
	return id
}
