// ABOUTME: Training plan handlers for the REST surface.
// ABOUTME: Includes the export endpoint that streams the generated file.
package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/harperreed/trainer/internal/apperr"
	"github.com/harperreed/trainer/internal/models"
)

type planRequest struct {
	Name        string            `json:"nome"`
	Description string            `json:"descricao"`
	Exercises   []models.Exercise `json:"exercicios"`
}

// listPlans handles GET /students/:id/plans
func (s *Server) listPlans(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	student, err := s.svc.Student(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if student == nil {
		notFound(c, "student")
		return
	}

	plans, err := s.svc.Plans(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// createPlan handles POST /students/:id/plans
func (s *Server) createPlan(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	planID, err := s.svc.AddPlan(c.Request.Context(), id, req.Name, req.Description, req.Exercises)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": planID})
}

// getPlan handles GET /plans/:id
func (s *Server) getPlan(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	plan, err := s.svc.Plan(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if plan == nil {
		notFound(c, "plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// updatePlan handles PUT /plans/:id
func (s *Server) updatePlan(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	exists, err := s.svc.PlanExists(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if !exists {
		notFound(c, "plan")
		return
	}

	if err := s.svc.UpdatePlan(ctx, id, req.Name, req.Description, req.Exercises); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// deletePlan handles DELETE /plans/:id
func (s *Server) deletePlan(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	exists, err := s.svc.PlanExists(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if !exists {
		notFound(c, "plan")
		return
	}

	if err := s.svc.RemovePlan(ctx, id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// exportPlan handles GET /plans/:id/export?format=csv
func (s *Server) exportPlan(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	dir, err := os.MkdirTemp("", "trainer-export-*")
	if err != nil {
		s.fail(c, apperr.Storage("create export directory", err))
		return
	}
	defer os.RemoveAll(dir)

	path, err := s.svc.ExportPlan(c.Request.Context(), c.Query("format"), id, dir)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
