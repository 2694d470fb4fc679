// Package store is the persistence collaborator behind the project catalog and
// membership lifecycle. It owns uniqueness enforcement and the guarded writes
// the capacity guard relies on.
package store

import (
	"context"
	"errors"

	"github.com/huangang/collabhub/internal/models"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicate   = errors.New("duplicate record")
	ErrConflict    = errors.New("concurrent write conflict")
	ErrUnavailable = errors.New("store unavailable")
)

// ProjectPatch carries the owner-editable project fields. Nil fields are left untouched.
type ProjectPatch struct {
	Title       *string
	Description *string
	Duration    *string
	Status      *models.ProjectStatus
	Progress    *int
}

// Empty reports whether the patch changes nothing.
func (p ProjectPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Duration == nil && p.Status == nil && p.Progress == nil
}

// Store is the project store consumed by the services layer.
type Store interface {
	// ListProjects returns every project with owner and skills resolved, newest first.
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
	CreateProject(ctx context.Context, project *models.Project) error
	UpdateProject(ctx context.Context, id string, patch ProjectPatch) error
	// SetSlotsTotal changes slots_total only if it stays >= slots_filled.
	SetSlotsTotal(ctx context.Context, id string, total int) (bool, error)
	// IncrementSlotsFilled adds one filled slot only if slots_filled < slots_total.
	IncrementSlotsFilled(ctx context.Context, id string) (bool, error)

	GetMembers(ctx context.Context, projectID string) ([]models.ProjectMember, error)
	GetMember(ctx context.Context, id string) (*models.ProjectMember, error)
	GetMembership(ctx context.Context, projectID, userID string) (*models.ProjectMember, error)
	CreateMembership(ctx context.Context, member *models.ProjectMember) error
	// TransitionMembership moves a membership from one status to another and
	// reports false when the row was no longer in the from status.
	TransitionMembership(ctx context.Context, id string, from, to models.MemberStatus) (bool, error)

	// FindOrCreateSkill resolves a skill by case-insensitive name, creating it on first use.
	FindOrCreateSkill(ctx context.Context, name string) (*models.Skill, error)
	LinkProjectSkill(ctx context.Context, projectID string, skillID uint) error

	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	// SaveProfile inserts a profile or updates its editable fields. Role is set on insert only.
	SaveProfile(ctx context.Context, profile *models.Profile) error
	SetProfileSkills(ctx context.Context, profileID string, skillIDs []uint) error

	// WithTx runs fn against a store bound to a single transaction.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}
