// ABOUTME: Facade operations for exporting plans through the registry.
// ABOUTME: Also provides the filename sanitizer used for export paths.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/harperreed/trainer/internal/apperr"
	"github.com/harperreed/trainer/internal/export"
	"github.com/harperreed/trainer/internal/models"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// Formats returns the registered export formats.
func (s *Service) Formats() []string {
	return s.exporters.Formats()
}

// ExportExercises writes exercises with the exporter for format.
func (s *Service) ExportExercises(format, title string, exercises []models.Exercise, path string) error {
	format = strings.TrimSpace(format)
	if format == "" {
		return apperr.Validation("export format is required")
	}
	exporter, err := s.exporters.Get(format)
	if err != nil {
		return err
	}
	return exporter.Export(title, exercises, path)
}

// ExportPlan writes a stored plan into dir and returns the file path. The
// file is named after the sanitized plan name.
func (s *Service) ExportPlan(ctx context.Context, format string, planID int64, dir string) (string, error) {
	return s.ExportPlanAs(ctx, format, planID, dir, "")
}

// ExportPlanAs is ExportPlan with an explicit file base name, sanitized like
// plan names. An empty base uses PlanFileBase.
func (s *Service) ExportPlanAs(ctx context.Context, format string, planID int64, dir, base string) (string, error) {
	format = strings.TrimSpace(format)
	if format == "" {
		return "", apperr.Validation("export format is required")
	}
	exporter, err := s.exporters.Get(format)
	if err != nil {
		return "", err
	}

	plan, err := s.Plan(ctx, planID)
	if err != nil {
		return "", err
	}
	if plan == nil {
		return "", apperr.NotFound("plan %d", planID)
	}

	base = SanitizeFilename(base)
	if strings.Trim(base, "_") == "" {
		base = PlanFileBase(*plan)
	}
	path := filepath.Join(dir, base+"."+export.Extension(format, exporter))

	if err := exporter.Export(plan.Title(), plan.Exercises, path); err != nil {
		s.log.Error("export failed",
			zap.String("format", format),
			zap.Int64("plan_id", planID),
			zap.String("path", path),
			zap.Error(err))
		return "", err
	}
	s.log.Debug("plan exported", zap.String("format", format), zap.String("path", path))
	return path, nil
}

// PlanFileBase is the export file name of a plan without extension.
func PlanFileBase(plan models.TrainingPlan) string {
	base := SanitizeFilename(plan.Name)
	if strings.Trim(base, "_") == "" {
		base = fmt.Sprintf("plan_%d", plan.ID)
	}
	return base
}

// UniqueFileBases assigns each plan a distinct file base name. The first
// plan keeps PlanFileBase; later plans that collide get their id appended.
func UniqueFileBases(plans []models.TrainingPlan) map[int64]string {
	bases := make(map[int64]string, len(plans))
	taken := make(map[string]bool, len(plans))
	for _, p := range plans {
		base := PlanFileBase(p)
		for taken[base] {
			base = fmt.Sprintf("%s_%d", base, p.ID)
		}
		taken[base] = true
		bases[p.ID] = base
	}
	return bases
}

// SanitizeFilename strips accents, replaces every character that is not an
// ASCII letter or digit with an underscore, and lowercases the result.
// "João da Silva 1/2" becomes "joao_da_silva_1_2".
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		switch {
		case r > unicode.MaxASCII:
			// dropped, including the combining marks split off by NFKD
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
