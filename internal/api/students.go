// ABOUTME: Student handlers for the REST surface.
// ABOUTME: Field updates accept English or Portuguese field names.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type studentRequest struct {
	Name  string `json:"nome"`
	Email string `json:"email"`
}

// listStudents handles GET /students
func (s *Server) listStudents(c *gin.Context) {
	students, err := s.svc.Students(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

// createStudent handles POST /students
func (s *Server) createStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	id, err := s.svc.AddStudent(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// getStudent handles GET /students/:id
func (s *Server) getStudent(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	student, err := s.svc.Student(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	if student == nil {
		notFound(c, "student")
		return
	}
	c.JSON(http.StatusOK, student)
}

// updateStudent handles PUT /students/:id with a field to value map.
func (s *Server) updateStudent(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
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

	if err := s.svc.UpdateStudentFields(ctx, id, fields); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// deleteStudent handles DELETE /students/:id
func (s *Server) deleteStudent(c *gin.Context) {
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

	if err := s.svc.RemoveStudent(ctx, id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
