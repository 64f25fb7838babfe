// ABOUTME: Tests for backup snapshots and restores.
// ABOUTME: Verifies JSON and YAML round trips preserve ids and documents.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/harperreed/trainer/internal/apperr"
	"github.com/harperreed/trainer/internal/models"
)

func seedBackupData(t *testing.T, db *DB) (int64, int64) {
	t.Helper()
	ctx := t.Context()

	ana := mustCreateStudent(t, db, "Ana", "ana@x.com")
	if err := db.UpdateStudentField(ctx, ana, models.FieldDiet, "low carb"); err != nil {
		t.Fatalf("UpdateStudentField failed: %v", err)
	}
	plan, err := db.CreatePlan(ctx, ana, "Treino A", "Pernas", `[{"nome":"Supino","series":"3","reps":10}]`)
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}
	return ana, plan
}

func TestExportJSON(t *testing.T) {
	db := setupTestDB(t)
	seedBackupData(t, db)

	data, err := db.ExportJSON(t.Context())
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if b.Version != BackupVersion || b.Tool != "trainer" {
		t.Errorf("unexpected header: %+v", b)
	}
	if b.SchemaVersion != LatestSchemaVersion() {
		t.Errorf("SchemaVersion = %d", b.SchemaVersion)
	}
	if len(b.Students) != 1 || len(b.Plans) != 1 {
		t.Fatalf("expected 1 student and 1 plan, got %d and %d", len(b.Students), len(b.Plans))
	}
	if b.Students[0].Diet != "low carb" {
		t.Errorf("Diet = %q", b.Students[0].Diet)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			src := setupTestDB(t)
			ana, plan := seedBackupData(t, src)

			var data []byte
			var err error
			if format == "json" {
				data, err = src.ExportJSON(t.Context())
			} else {
				data, err = src.ExportYAML(t.Context())
			}
			if err != nil {
				t.Fatalf("export failed: %v", err)
			}

			dst := setupTestDB(t)
			if err := dst.ImportJSON(t.Context(), data); err != nil {
				t.Fatalf("import failed: %v", err)
			}

			s, err := dst.GetStudent(t.Context(), ana)
			if err != nil || s == nil {
				t.Fatalf("student %d not restored: %v", ana, err)
			}
			if s.Email != "ana@x.com" || s.Diet != "low carb" {
				t.Errorf("unexpected student: %+v", s)
			}

			p, err := dst.GetPlan(t.Context(), plan)
			if err != nil || p == nil {
				t.Fatalf("plan %d not restored: %v", plan, err)
			}
			if p.ExercisesJSON != `[{"nome":"Supino","series":"3","reps":10}]` {
				t.Errorf("exercise document rewritten: %q", p.ExercisesJSON)
			}
		})
	}
}

func TestRestoreRequiresEmptyStore(t *testing.T) {
	db := setupTestDB(t)
	seedBackupData(t, db)

	b, err := db.Snapshot(t.Context())
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	err = db.Restore(t.Context(), b)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestParseBackupInvalid(t *testing.T) {
	_, err := ParseBackup([]byte("version: [unclosed"))
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestSnapshotOrdersByStudent(t *testing.T) {
	db := setupTestDB(t)
	ctx := t.Context()

	zoe := mustCreateStudent(t, db, "Zoe", "")
	ana := mustCreateStudent(t, db, "Ana", "")
	zoePlan, err := db.CreatePlan(ctx, zoe, "Treino Z", "", "[]")
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}
	anaPlan, err := db.CreatePlan(ctx, ana, "Treino A", "", "[]")
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	b, err := db.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(b.Students) != 2 || b.Students[0].ID != ana || b.Students[1].ID != zoe {
		t.Fatalf("unexpected students: %+v", b.Students)
	}
	if len(b.Plans) != 2 || b.Plans[0].ID != anaPlan || b.Plans[1].ID != zoePlan {
		t.Fatalf("unexpected plans: %+v", b.Plans)
	}
	if b.Plans[1].StudentID != zoe || b.Plans[1].Exercises != "[]" {
		t.Errorf("unexpected plan: %+v", b.Plans[1])
	}
}

func TestSnapshotCancelledContext(t *testing.T) {
	db := setupTestDB(t)
	seedBackupData(t, db)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	if _, err := db.Snapshot(ctx); !errors.Is(err, apperr.ErrStorage) {
		t.Errorf("expected ErrStorage, got %v", err)
	}
}
