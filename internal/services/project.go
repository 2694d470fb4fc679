package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/huangang/collabhub/internal/models"
	"github.com/huangang/collabhub/internal/store"
	"github.com/huangang/collabhub/pkg/logger"
)

type ProjectService struct {
	store store.Store
}

func NewProjectService(s store.Store) *ProjectService {
	return &ProjectService{store: s}
}

type CreateProjectInput struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required"`
	Domain      string   `json:"domain" validate:"required,domain"`
	Duration    string   `json:"duration" validate:"required,max=100"`
	SlotsTotal  int      `json:"slots_total" validate:"min=1,max=20"`
	Skills      []string `json:"skills" validate:"min=1,dive,max=100"`
}

func (in *CreateProjectInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Domain = strings.TrimSpace(in.Domain)
	in.Duration = strings.TrimSpace(in.Duration)
	in.Skills = cleanNames(in.Skills)
}

// UpdateProjectInput holds owner edits. Nil fields are left unchanged; Status
// accepts a canonical value or its label.
type UpdateProjectInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Duration    *string `json:"duration"`
	Status      *string `json:"status"`
	Progress    *int    `json:"progress"`
	SlotsTotal  *int    `json:"slots_total"`
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, storeErr(err, "load project")
	}
	return project, nil
}

// Create publishes a project. The project, its skill links and the owner
// membership are written in one transaction.
func (s *ProjectService) Create(ctx context.Context, ownerID string, in CreateProjectInput) (*models.Project, error) {
	owner, err := s.store.GetProfile(ctx, ownerID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, storeErr(err, "load profile")
	}
	if owner == nil || !owner.Role.CanPublish() {
		return nil, fmt.Errorf("only project owners can create projects: %w", ErrForbidden)
	}

	in.normalize()
	if err := validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	project := &models.Project{
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Domain:      in.Domain,
		Status:      models.ProjectStatusOpen,
		Duration:    in.Duration,
		Progress:    0,
		SlotsTotal:  in.SlotsTotal,
		SlotsFilled: 0,
	}

	err = s.store.WithTx(ctx, func(tx store.Store) error {
		if err := tx.CreateProject(ctx, project); err != nil {
			return err
		}
		for _, name := range in.Skills {
			skill, err := tx.FindOrCreateSkill(ctx, name)
			if err != nil {
				return err
			}
			if err := tx.LinkProjectSkill(ctx, project.ID, skill.ID); err != nil {
				return err
			}
		}
		return tx.CreateMembership(ctx, &models.ProjectMember{
			ProjectID: project.ID,
			UserID:    ownerID,
			Role:      models.MemberRoleOwner,
			Status:    models.MemberStatusAccepted,
		})
	})
	if err != nil {
		return nil, storeErr(err, "create project")
	}

	logger.Info().Str("project_id", project.ID).Str("owner_id", ownerID).Msg("[Project] Project created")
	return s.Get(ctx, project.ID)
}

// Update applies owner edits. Lowering slots_total below the filled slots is rejected.
func (s *ProjectService) Update(ctx context.Context, callerID, id string, in UpdateProjectInput) (*models.Project, error) {
	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, storeErr(err, "load project")
	}
	if project.OwnerID != callerID {
		return nil, fmt.Errorf("only the project owner can edit it: %w", ErrForbidden)
	}

	patch, err := buildPatch(in)
	if err != nil {
		return nil, err
	}
	if patch.Empty() && in.SlotsTotal == nil {
		return project, nil
	}

	err = s.store.WithTx(ctx, func(tx store.Store) error {
		if in.SlotsTotal != nil {
			ok, err := tx.SetSlotsTotal(ctx, id, *in.SlotsTotal)
			if err != nil {
				return err
			}
			if !ok {
				return invalid("slots_total", "cannot be lower than the number of filled slots")
			}
		}
		if patch.Empty() {
			return nil
		}
		return tx.UpdateProject(ctx, id, patch)
	})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return nil, err
		}
		return nil, storeErr(err, "update project")
	}

	return s.Get(ctx, id)
}

func buildPatch(in UpdateProjectInput) (store.ProjectPatch, error) {
	var patch store.ProjectPatch

	text := func(field string, v *string, max int) (*string, error) {
		if v == nil {
			return nil, nil
		}
		trimmed := strings.TrimSpace(*v)
		if trimmed == "" {
			return nil, invalid(field, "is required")
		}
		if max > 0 && len(trimmed) > max {
			return nil, invalid(field, fmt.Sprintf("must be at most %d characters", max))
		}
		return &trimmed, nil
	}

	var err error
	if patch.Title, err = text("title", in.Title, 200); err != nil {
		return patch, err
	}
	if patch.Description, err = text("description", in.Description, 0); err != nil {
		return patch, err
	}
	if patch.Duration, err = text("duration", in.Duration, 100); err != nil {
		return patch, err
	}

	if in.Status != nil {
		status, ok := models.ParseProjectStatus(*in.Status)
		if !ok {
			return patch, invalid("status", "unknown project status "+*in.Status)
		}
		patch.Status = &status
	}
	if in.Progress != nil {
		if err := validate.Var(*in.Progress, "min=0,max=100"); err != nil {
			return patch, invalid("progress", "must be between 0 and 100")
		}
		patch.Progress = in.Progress
	}
	if in.SlotsTotal != nil {
		if err := validate.Var(*in.SlotsTotal, "min=1,max=20"); err != nil {
			return patch, invalid("slots_total", "must be between 1 and 20")
		}
	}
	return patch, nil
}
