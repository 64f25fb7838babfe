// ABOUTME: MCP tool implementations for students and training plans.
// ABOUTME: Each tool is a thin call into the use-case facade.
package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/harperreed/trainer/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_student",
		Description: "Enroll a new student",
	}, s.handleAddStudent)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_students",
		Description: "List all students ordered by name",
	}, s.handleListStudents)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_student",
		Description: "Get the full record of a student",
	}, s.handleGetStudent)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_student",
		Description: "Update one or more student fields (name, email, enrollment_date, plan, payment, progress, diet, training)",
	}, s.handleUpdateStudent)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_student",
		Description: "Delete a student and all of their plans",
	}, s.handleDeleteStudent)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_plan",
		Description: "Create a training plan for a student",
	}, s.handleAddPlan)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_plans",
		Description: "List the training plans of a student",
	}, s.handleListPlans)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_plan",
		Description: "Delete a training plan",
	}, s.handleDeletePlan)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "export_plan",
		Description: "Export a training plan to a file (pdf, csv, xlsx, or a plugin format)",
	}, s.handleExportPlan)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_stats",
		Description: "Get the student count and the most recent plans",
	}, s.handleGetStats)
}

// Tool input/output types

type addStudentInput struct {
	Name  string `json:"name" jsonschema:"Student name"`
	Email string `json:"email,omitempty" jsonschema:"Contact email"`
}

type idOutput struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type listStudentsOutput struct {
	Students []models.StudentSummary `json:"students"`
}

type studentIDInput struct {
	ID int64 `json:"id" jsonschema:"Student ID"`
}

type updateStudentInput struct {
	ID     int64             `json:"id" jsonschema:"Student ID"`
	Fields map[string]string `json:"fields" jsonschema:"Field name to new value"`
}

type exerciseInput struct {
	Name string `json:"name" jsonschema:"Exercise name"`
	Sets int    `json:"sets,omitempty" jsonschema:"Number of sets"`
	Reps int    `json:"reps,omitempty" jsonschema:"Repetitions per set"`
	Load string `json:"load,omitempty" jsonschema:"Load, e.g. 20kg"`
	Rest string `json:"rest,omitempty" jsonschema:"Rest between sets, e.g. 60s"`
	Note string `json:"note,omitempty" jsonschema:"Free text note"`
}

type addPlanInput struct {
	StudentID   int64           `json:"student_id" jsonschema:"Owner student ID"`
	Name        string          `json:"name" jsonschema:"Plan name"`
	Description string          `json:"description,omitempty" jsonschema:"Plan description"`
	Exercises   []exerciseInput `json:"exercises,omitempty" jsonschema:"Ordered exercise list"`
}

type listPlansOutput struct {
	Plans []models.TrainingPlan `json:"plans"`
}

type planIDInput struct {
	ID int64 `json:"id" jsonschema:"Plan ID"`
}

type exportPlanInput struct {
	ID        int64  `json:"id" jsonschema:"Plan ID"`
	Format    string `json:"format" jsonschema:"Export format name"`
	Directory string `json:"directory,omitempty" jsonschema:"Destination directory, defaults to the working directory"`
}

type exportPlanOutput struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

type statsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Number of recent plans (default 5)"`
}

// Tool handlers

func (s *Server) handleAddStudent(ctx context.Context, req *mcp.CallToolRequest, input addStudentInput) (*mcp.CallToolResult, idOutput, error) {
	id, err := s.svc.AddStudent(ctx, input.Name, input.Email)
	if err != nil {
		return nil, idOutput{}, fmt.Errorf("failed to add student: %w", err)
	}
	return nil, idOutput{ID: id, Message: fmt.Sprintf("Added student %s (ID: %d)", input.Name, id)}, nil
}

func (s *Server) handleListStudents(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, listStudentsOutput, error) {
	students, err := s.svc.Students(ctx)
	if err != nil {
		return nil, listStudentsOutput{}, fmt.Errorf("failed to list students: %w", err)
	}
	return nil, listStudentsOutput{Students: students}, nil
}

func (s *Server) handleGetStudent(ctx context.Context, req *mcp.CallToolRequest, input studentIDInput) (*mcp.CallToolResult, *models.Student, error) {
	student, err := s.svc.Student(ctx, input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get student: %w", err)
	}
	if student == nil {
		return nil, nil, fmt.Errorf("student not found: %d", input.ID)
	}
	return nil, student, nil
}

func (s *Server) handleUpdateStudent(ctx context.Context, req *mcp.CallToolRequest, input updateStudentInput) (*mcp.CallToolResult, simpleOutput, error) {
	student, err := s.svc.Student(ctx, input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to get student: %w", err)
	}
	if student == nil {
		return nil, simpleOutput{}, fmt.Errorf("student not found: %d", input.ID)
	}

	if err := s.svc.UpdateStudentFields(ctx, input.ID, input.Fields); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to update student: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Updated %d field(s) of student %d", len(input.Fields), input.ID)}, nil
}

func (s *Server) handleDeleteStudent(ctx context.Context, req *mcp.CallToolRequest, input studentIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.svc.RemoveStudent(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete student: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted student: %d", input.ID)}, nil
}

func (s *Server) handleAddPlan(ctx context.Context, req *mcp.CallToolRequest, input addPlanInput) (*mcp.CallToolResult, idOutput, error) {
	exercises := make([]models.Exercise, 0, len(input.Exercises))
	for _, e := range input.Exercises {
		exercises = append(exercises, models.Exercise{
			Name: e.Name,
			Sets: models.Count(e.Sets),
			Reps: models.Count(e.Reps),
			Load: e.Load,
			Rest: e.Rest,
			Note: e.Note,
		})
	}

	id, err := s.svc.AddPlan(ctx, input.StudentID, input.Name, input.Description, exercises)
	if err != nil {
		return nil, idOutput{}, fmt.Errorf("failed to add plan: %w", err)
	}
	return nil, idOutput{ID: id, Message: fmt.Sprintf("Added plan %s (ID: %d)", input.Name, id)}, nil
}

func (s *Server) handleListPlans(ctx context.Context, req *mcp.CallToolRequest, input studentIDInput) (*mcp.CallToolResult, listPlansOutput, error) {
	plans, err := s.svc.Plans(ctx, input.ID)
	if err != nil {
		return nil, listPlansOutput{}, fmt.Errorf("failed to list plans: %w", err)
	}
	return nil, listPlansOutput{Plans: plans}, nil
}

func (s *Server) handleDeletePlan(ctx context.Context, req *mcp.CallToolRequest, input planIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.svc.RemovePlan(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete plan: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted plan: %d", input.ID)}, nil
}

func (s *Server) handleExportPlan(ctx context.Context, req *mcp.CallToolRequest, input exportPlanInput) (*mcp.CallToolResult, exportPlanOutput, error) {
	dir := input.Directory
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, exportPlanOutput{}, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		dir = wd
	}

	path, err := s.svc.ExportPlan(ctx, input.Format, input.ID, dir)
	if err != nil {
		return nil, exportPlanOutput{}, fmt.Errorf("failed to export plan: %w", err)
	}
	return nil, exportPlanOutput{Path: path, Message: fmt.Sprintf("Exported plan %d to %s", input.ID, path)}, nil
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input statsInput) (*mcp.CallToolResult, *models.Stats, error) {
	stats, err := s.svc.Stats(ctx, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return nil, stats, nil
}
