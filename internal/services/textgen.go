package services

import (
	"context"
	"fmt"
	"strings"
)

// ProjectDescription is a structured write-up of a project idea.
type ProjectDescription struct {
	Overview string   `json:"overview"`
	Features []string `json:"features"`
	Goals    []string `json:"goals"`
	Outcomes string   `json:"outcomes"`
}

type Phase struct {
	Name     string   `json:"name"`
	Duration string   `json:"duration"`
	Tasks    []string `json:"tasks"`
}

type Milestone struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TaskBreakdown is a phased roadmap for a project.
type TaskBreakdown struct {
	Phases          []Phase     `json:"phases"`
	Milestones      []Milestone `json:"milestones"`
	Recommendations []string    `json:"recommendations"`
}

// TextGenerator produces planning text for project owners.
type TextGenerator interface {
	DescribeIdea(ctx context.Context, idea string) (*ProjectDescription, error)
	BreakdownTasks(ctx context.Context, description, duration string) (*TaskBreakdown, error)
}

// TemplateGenerator answers from fixed templates and needs no external service.
type TemplateGenerator struct{}

func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

func (g *TemplateGenerator) DescribeIdea(ctx context.Context, idea string) (*ProjectDescription, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return nil, invalid("idea", "Project idea is required")
	}

	return &ProjectDescription{
		Overview: fmt.Sprintf("This project aims to %s. It will provide a comprehensive solution that addresses key challenges in the domain. "+
			"The platform will be built using modern technologies and best practices to ensure scalability and maintainability.", idea),
		Features: []string{
			"User-friendly interface with intuitive navigation",
			"Real-time data processing and updates",
			"Secure authentication and authorization system",
			"Responsive design for mobile and desktop",
			"Integration with third-party APIs and services",
			"Analytics dashboard for tracking metrics",
		},
		Goals: []string{
			"Deliver a high-quality, production-ready solution",
			"Implement best practices in code architecture and design",
			"Ensure excellent user experience and accessibility",
			"Build a scalable system that can grow with user needs",
		},
		Outcomes: "A fully functional platform that solves real-world problems, demonstrates technical proficiency, and provides value to end users. " +
			"The project will serve as a strong portfolio piece and learning experience for all team members.",
	}, nil
}

func (g *TemplateGenerator) BreakdownTasks(ctx context.Context, description, duration string) (*TaskBreakdown, error) {
	if strings.TrimSpace(description) == "" {
		return nil, invalid("description", "Project description is required")
	}

	return &TaskBreakdown{
		Phases: []Phase{
			{
				Name:     "Planning & Setup",
				Duration: "Week 1-2",
				Tasks: []string{
					"Define project requirements and scope",
					"Set up development environment",
					"Create project architecture diagram",
					"Set up version control and CI/CD",
					"Design database schema",
				},
			},
			{
				Name:     "Core Development",
				Duration: "Week 3-8",
				Tasks: []string{
					"Implement authentication system",
					"Build core features and functionality",
					"Develop API endpoints",
					"Create user interface components",
					"Integrate third-party services",
				},
			},
			{
				Name:     "Testing & Refinement",
				Duration: "Week 9-11",
				Tasks: []string{
					"Write unit and integration tests",
					"Perform security audit",
					"Optimize performance",
					"Fix bugs and refine features",
					"Conduct user testing",
				},
			},
			{
				Name:     "Deployment & Documentation",
				Duration: "Week 12-13",
				Tasks: []string{
					"Prepare production environment",
					"Deploy application",
					"Write user documentation",
					"Create technical documentation",
					"Plan for future enhancements",
				},
			},
		},
		Milestones: []Milestone{
			{Name: "Project Kickoff", Description: "Team assembled and project scope defined"},
			{Name: "MVP Complete", Description: "Core functionality working end-to-end"},
			{Name: "Beta Release", Description: "Feature-complete version ready for testing"},
			{Name: "Production Launch", Description: "Project deployed and publicly available"},
		},
		Recommendations: []string{
			"Use agile methodology with weekly sprints",
			"Hold daily standup meetings to track progress",
			"Maintain clear documentation throughout",
			"Conduct code reviews for all pull requests",
			"Set up automated testing early in development",
		},
	}, nil
}
