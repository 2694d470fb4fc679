package services

import (
	"context"
	"strings"

	"github.com/huangang/collabhub/internal/models"
	"github.com/huangang/collabhub/internal/store"
)

type ProfileService struct {
	store store.Store
}

func NewProfileService(s store.Store) *ProfileService {
	return &ProfileService{store: s}
}

type UpdateProfileInput struct {
	Name       string   `json:"name" validate:"required,max=100"`
	Bio        string   `json:"bio" validate:"max=1000"`
	Experience string   `json:"experience" validate:"omitempty,experience"`
	AvatarURL  string   `json:"avatar_url" validate:"omitempty,url,max=500"`
	Skills     []string `json:"skills" validate:"dive,max=100"`
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "load profile")
	}
	return profile, nil
}

// Save creates or updates the caller's profile and replaces its skill set.
// The role is taken from the identity token only when the profile is first created.
func (s *ProfileService) Save(ctx context.Context, userID string, tokenRole string, in UpdateProfileInput) (*models.Profile, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Bio = strings.TrimSpace(in.Bio)
	in.Experience = strings.TrimSpace(in.Experience)
	in.AvatarURL = strings.TrimSpace(in.AvatarURL)
	in.Skills = cleanNames(in.Skills)
	if err := validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	role := models.UserRole(tokenRole)
	if !role.Valid() {
		role = models.UserRoleStudent
	}
	experience := models.Experience(in.Experience)
	if experience == "" {
		experience = models.ExperienceBeginner
	}

	profile := &models.Profile{
		ID:         userID,
		Name:       in.Name,
		Bio:        in.Bio,
		Role:       role,
		Experience: experience,
		AvatarURL:  in.AvatarURL,
	}

	err := s.store.WithTx(ctx, func(tx store.Store) error {
		if err := tx.SaveProfile(ctx, profile); err != nil {
			return err
		}
		ids := make([]uint, 0, len(in.Skills))
		for _, name := range in.Skills {
			skill, err := tx.FindOrCreateSkill(ctx, name)
			if err != nil {
				return err
			}
			ids = append(ids, skill.ID)
		}
		return tx.SetProfileSkills(ctx, userID, ids)
	})
	if err != nil {
		return nil, storeErr(err, "save profile")
	}

	return s.Get(ctx, userID)
}
