package services

import (
	"context"
	"strings"
)

// AssistantService backs the project-planning helper shown to owners and students.
type AssistantService struct {
	generator TextGenerator
}

func NewAssistantService(generator TextGenerator) *AssistantService {
	return &AssistantService{generator: generator}
}

func (s *AssistantService) DescribeIdea(ctx context.Context, idea string) (*ProjectDescription, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return nil, invalid("idea", "Project idea is required")
	}
	return s.generator.DescribeIdea(ctx, idea)
}

func (s *AssistantService) BreakdownTasks(ctx context.Context, description, duration string) (*TaskBreakdown, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, invalid("description", "Project description is required")
	}
	return s.generator.BreakdownTasks(ctx, description, strings.TrimSpace(duration))
}

// MatchSkills is computed locally; both lists must be supplied, though either may be empty.
func (s *AssistantService) MatchSkills(projectSkills, studentSkills []string) (*MatchResult, error) {
	if projectSkills == nil || studentSkills == nil {
		return nil, invalid("", "Both projectSkills and studentSkills are required")
	}
	result := MatchSkills(projectSkills, studentSkills)
	return &result, nil
}
