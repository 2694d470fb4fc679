package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTemplateGenerator_DescribeIdea(t *testing.T) {
	gen := NewTemplateGenerator()

	got, err := gen.DescribeIdea(context.Background(), "  connect students with mentors ")
	if err != nil {
		t.Fatalf("DescribeIdea failed: %v", err)
	}
	if !strings.HasPrefix(got.Overview, "This project aims to connect students with mentors.") {
		t.Errorf("Overview = %q", got.Overview)
	}
	if len(got.Features) != 6 {
		t.Errorf("len(Features) = %d, expected 6", len(got.Features))
	}
	if len(got.Goals) != 4 {
		t.Errorf("len(Goals) = %d, expected 4", len(got.Goals))
	}
	if got.Outcomes == "" {
		t.Error("Outcomes should not be empty")
	}
}

func TestTemplateGenerator_BreakdownTasks(t *testing.T) {
	got, err := NewTemplateGenerator().BreakdownTasks(context.Background(), "campus map", "")
	if err != nil {
		t.Fatalf("BreakdownTasks failed: %v", err)
	}

	expected := []string{"Planning & Setup", "Core Development", "Testing & Refinement", "Deployment & Documentation"}
	if len(got.Phases) != len(expected) {
		t.Fatalf("len(Phases) = %d, expected %d", len(got.Phases), len(expected))
	}
	for i, name := range expected {
		if got.Phases[i].Name != name {
			t.Errorf("Phases[%d].Name = %q, expected %q", i, got.Phases[i].Name, name)
		}
		if len(got.Phases[i].Tasks) != 5 {
			t.Errorf("Phases[%d] has %d tasks, expected 5", i, len(got.Phases[i].Tasks))
		}
	}
	if len(got.Milestones) != 4 || len(got.Recommendations) != 5 {
		t.Errorf("milestones=%d recommendations=%d, expected 4 and 5", len(got.Milestones), len(got.Recommendations))
	}
}

func TestAssistantService_Validation(t *testing.T) {
	svc := NewAssistantService(NewTemplateGenerator())
	ctx := context.Background()

	tests := []struct {
		name  string
		call  func() error
		field string
	}{
		{"blank idea", func() error { _, err := svc.DescribeIdea(ctx, " \t "); return err }, "idea"},
		{"blank description", func() error { _, err := svc.BreakdownTasks(ctx, "", "2 weeks"); return err }, "description"},
		{"missing skills", func() error { _, err := svc.MatchSkills(nil, []string{"Go"}); return err }, ""},
	}

	for _, tt := range tests {
		err := tt.call()
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%s: expected a ValidationError, got %v", tt.name, err)
			continue
		}
		if ve.Field != tt.field {
			t.Errorf("%s: Field = %q, expected %q", tt.name, ve.Field, tt.field)
		}
		if !errors.Is(err, ErrValidation) {
			t.Errorf("%s: error should wrap ErrValidation", tt.name)
		}
	}
}

func TestAssistantService_MatchSkills(t *testing.T) {
	svc := NewAssistantService(NewTemplateGenerator())

	got, err := svc.MatchSkills([]string{"React", "Node"}, []string{})
	if err != nil {
		t.Fatalf("MatchSkills failed: %v", err)
	}
	if got.MatchPercentage != 0 || len(got.MissingSkills) != 2 {
		t.Errorf("got %+v, expected 0%% with two missing skills", got)
	}
}
