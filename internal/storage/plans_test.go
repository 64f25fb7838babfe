// ABOUTME: Tests for training plan CRUD operations.
// ABOUTME: Covers foreign keys, ordering, timestamps, and the recent plans view.
package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/harperreed/trainer/internal/apperr"
	"github.com/harperreed/trainer/internal/models"
)

func TestCreateAndGetPlan(t *testing.T) {
	db := setupTestDB(t)
	ctx := t.Context()
	studentID := mustCreateStudent(t, db, "Ana", "")

	doc, err := models.EncodeExercises([]models.Exercise{{Name: "Agachamento", Sets: 3, Reps: 12}})
	if err != nil {
		t.Fatalf("EncodeExercises failed: %v", err)
	}

	id, err := db.CreatePlan(ctx, studentID, "Treino A", "Pernas", doc)
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	got, err := db.GetPlan(ctx, id)
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected plan, got nil")
	}
	if got.StudentID != studentID || got.Name != "Treino A" || got.Description != "Pernas" {
		t.Errorf("unexpected plan: %+v", got)
	}
	if got.ExercisesJSON != doc {
		t.Errorf("exercises = %q, want %q", got.ExercisesJSON, doc)
	}
	if got.UpdatedAt != "2024-03-09T10:30:00Z" {
		t.Errorf("UpdatedAt = %q", got.UpdatedAt)
	}

	if err := got.Decode(); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(got.Exercises) != 1 || got.Exercises[0].Name != "Agachamento" {
		t.Errorf("unexpected exercises: %+v", got.Exercises)
	}
}

func TestCreatePlanMissingStudent(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.CreatePlan(t.Context(), 999, "A", "", "[]")
	if !errors.Is(err, apperr.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestGetPlanMissing(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.GetPlan(t.Context(), 7)
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestListPlansInsertionOrder(t *testing.T) {
	db := setupTestDB(t)
	ctx := t.Context()
	ana := mustCreateStudent(t, db, "Ana", "")
	bruno := mustCreateStudent(t, db, "Bruno", "")

	for _, name := range []string{"C", "A", "B"} {
		if _, err := db.CreatePlan(ctx, ana, name, "", "[]"); err != nil {
			t.Fatalf("CreatePlan failed: %v", err)
		}
	}
	if _, err := db.CreatePlan(ctx, bruno, "other", "", "[]"); err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	plans, err := db.ListPlans(ctx, ana)
	if err != nil {
		t.Fatalf("ListPlans failed: %v", err)
	}
	want := []string{"C", "A", "B"}
	if len(plans) != len(want) {
		t.Fatalf("expected %d plans, got %d", len(want), len(plans))
	}
	for i, p := range plans {
		if p.Name != want[i] {
			t.Errorf("plans[%d] = %q, want %q", i, p.Name, want[i])
		}
	}

	none, err := db.ListPlans(ctx, 999)
	if err != nil {
		t.Fatalf("ListPlans failed: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", none)
	}
}

func TestUpdatePlan(t *testing.T) {
	db := setupTestDB(t)
	ctx := t.Context()
	studentID := mustCreateStudent(t, db, "Ana", "")

	id, err := db.CreatePlan(ctx, studentID, "A", "old", "[]")
	if err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	if err := db.UpdatePlan(ctx, id, "B", "new", `{"version":1,"exercises":[]}`); err != nil {
		t.Fatalf("UpdatePlan failed: %v", err)
	}

	got, _ := db.GetPlan(ctx, id)
	if got.Name != "B" || got.Description != "new" || got.ExercisesJSON != `{"version":1,"exercises":[]}` {
		t.Errorf("unexpected plan after update: %+v", got)
	}

	if err := db.UpdatePlan(ctx, 999, "x", "", ""); err != nil {
		t.Errorf("expected nil error for missing plan, got %v", err)
	}
}

func TestDeletePlan(t *testing.T) {
	db := setupTestDB(t)
	ctx := t.Context()
	studentID := mustCreateStudent(t, db, "Ana", "")

	id, _ := db.CreatePlan(ctx, studentID, "A", "", "[]")
	if err := db.DeletePlan(ctx, id); err != nil {
		t.Fatalf("DeletePlan failed: %v", err)
	}
	if p, _ := db.GetPlan(ctx, id); p != nil {
		t.Errorf("plan still present: %+v", p)
	}
	if err := db.DeletePlan(ctx, id); err != nil {
		t.Errorf("second delete should be a no-op, got %v", err)
	}
}

func TestListRecentPlans(t *testing.T) {
	db := setupTestDB(t)
	ctx := t.Context()
	ana := mustCreateStudent(t, db, "Ana", "")
	bruno := mustCreateStudent(t, db, "Bruno", "")

	var ids []int64
	for i := 0; i < 7; i++ {
		owner := ana
		if i%2 == 1 {
			owner = bruno
		}
		id, err := db.CreatePlan(ctx, owner, fmt.Sprintf("P%d", i), "", "[]")
		if err != nil {
			t.Fatalf("CreatePlan failed: %v", err)
		}
		ids = append(ids, id)
	}

	recent, err := db.ListRecentPlans(ctx, 0)
	if err != nil {
		t.Fatalf("ListRecentPlans failed: %v", err)
	}
	if len(recent) != DefaultRecentPlans {
		t.Fatalf("expected %d plans, got %d", DefaultRecentPlans, len(recent))
	}
	if recent[0].ID != ids[6] || recent[0].Name != "P6" || recent[0].StudentName != "Ana" {
		t.Errorf("unexpected newest plan: %+v", recent[0])
	}
	if recent[1].StudentName != "Bruno" {
		t.Errorf("expected Bruno for second row, got %+v", recent[1])
	}

	two, err := db.ListRecentPlans(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecentPlans failed: %v", err)
	}
	if len(two) != 2 {
		t.Errorf("expected 2 plans, got %d", len(two))
	}
}
