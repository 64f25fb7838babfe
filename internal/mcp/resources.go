// ABOUTME: MCP resource implementations for the trainer.
// ABOUTME: Provides trainer://summary and trainer://students resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	summaryURI  = "trainer://summary"
	studentsURI = "trainer://students"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Trainer Dashboard",
		Description: "Student count, recent plans, theme, and export formats",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         studentsURI,
		Name:        "Students",
		Description: "All students ordered by name",
		MIMEType:    "application/json",
	}, s.handleStudentsResource)
}

// Resource handlers

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	stats, err := s.svc.Stats(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	theme, err := s.svc.Theme()
	if err != nil {
		return nil, fmt.Errorf("failed to load theme: %w", err)
	}

	result := map[string]interface{}{
		"students":     stats.Students,
		"recent_plans": stats.RecentPlans,
		"theme":        theme,
		"formats":      s.svc.Formats(),
	}
	return jsonResource(summaryURI, result)
}

func (s *Server) handleStudentsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	students, err := s.svc.Students(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return jsonResource(studentsURI, students)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
