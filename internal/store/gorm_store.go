package store

import (
	"context"
	"strings"
	"time"

	"github.com/huangang/collabhub/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store on top of gorm.
type GormStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ Store = (*GormStore)(nil)

func orderSkills(db *gorm.DB) *gorm.DB {
	return db.Order("skills.name ASC")
}

func (s *GormStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).
		Preload("Owner").
		Preload("Skills", orderSkills).
		Order("created_at DESC").
		Order("id ASC").
		Find(&projects).Error
	if err != nil {
		return nil, classify(err)
	}
	return projects, nil
}

func (s *GormStore) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).
		Preload("Owner").
		Preload("Skills", orderSkills).
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, classify(err)
	}
	return &project, nil
}

func (s *GormStore) CreateProject(ctx context.Context, project *models.Project) error {
	// Skills are linked through LinkProjectSkill so find-or-create stays in one place.
	return classify(s.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error)
}

func (s *GormStore) UpdateProject(ctx context.Context, id string, patch ProjectPatch) error {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Duration != nil {
		updates["duration"] = *patch.Duration
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.Progress != nil {
		updates["progress"] = *patch.Progress
	}

	result := s.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) SetSlotsTotal(ctx context.Context, id string, total int) (bool, error) {
	result := s.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ? AND slots_filled <= ?", id, total).
		Updates(map[string]interface{}{
			"slots_total": total,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return false, classify(result.Error)
	}
	return result.RowsAffected == 1, nil
}

// IncrementSlotsFilled is a single compare-and-increment statement: the bound
// check and the write happen under the same row lock.
func (s *GormStore) IncrementSlotsFilled(ctx context.Context, id string) (bool, error) {
	result := s.db.WithContext(ctx).Model(&models.Project{}).
		Where("id = ? AND slots_filled < slots_total", id).
		Updates(map[string]interface{}{
			"slots_filled": gorm.Expr("slots_filled + ?", 1),
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return false, classify(result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (s *GormStore) GetMembers(ctx context.Context, projectID string) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, classify(err)
	}
	return members, nil
}

func (s *GormStore) GetMember(ctx context.Context, id string) (*models.ProjectMember, error) {
	var member models.ProjectMember
	if err := s.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&member).Error; err != nil {
		return nil, classify(err)
	}
	return &member, nil
}

func (s *GormStore) GetMembership(ctx context.Context, projectID, userID string) (*models.ProjectMember, error) {
	var member models.ProjectMember
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error
	if err != nil {
		return nil, classify(err)
	}
	return &member, nil
}

// CreateMembership relies on idx_project_user; a second row for the same pair
// fails with ErrDuplicate.
func (s *GormStore) CreateMembership(ctx context.Context, member *models.ProjectMember) error {
	return classify(s.db.WithContext(ctx).Omit(clause.Associations).Create(member).Error)
}

func (s *GormStore) TransitionMembership(ctx context.Context, id string, from, to models.MemberStatus) (bool, error) {
	result := s.db.WithContext(ctx).Model(&models.ProjectMember{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, classify(result.Error)
	}
	return result.RowsAffected == 1, nil
}

// FindOrCreateSkill inserts with ON CONFLICT DO NOTHING on name_key and then
// reads back the winning row, so two concurrent creators of "React" and
// "react" end up with the same skill.
func (s *GormStore) FindOrCreateSkill(ctx context.Context, name string) (*models.Skill, error) {
	key := models.SkillKey(name)
	if key == "" {
		return nil, ErrNotFound
	}

	db := s.db.WithContext(ctx)
	candidate := models.Skill{Name: strings.TrimSpace(name), NameKey: key}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name_key"}},
		DoNothing: true,
	}).Create(&candidate).Error
	if err != nil {
		return nil, classify(err)
	}

	var skill models.Skill
	if err := db.Where("name_key = ?", key).First(&skill).Error; err != nil {
		return nil, classify(err)
	}
	return &skill, nil
}

func (s *GormStore) LinkProjectSkill(ctx context.Context, projectID string, skillID uint) error {
	err := s.db.WithContext(ctx).Table("project_skills").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(map[string]interface{}{
			"project_id": projectID,
			"skill_id":   skillID,
		}).Error
	return classify(err)
}

func (s *GormStore) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Preload("Skills", orderSkills).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, classify(err)
	}
	return &profile, nil
}

func (s *GormStore) SaveProfile(ctx context.Context, profile *models.Profile) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "bio", "experience", "avatar_url", "updated_at"}),
		}).
		Create(profile).Error
	return classify(err)
}

func (s *GormStore) SetProfileSkills(ctx context.Context, profileID string, skillIDs []uint) error {
	return s.WithTx(ctx, func(tx Store) error {
		db := tx.(*GormStore).db.WithContext(ctx)
		if err := db.Exec("DELETE FROM user_skills WHERE user_id = ?", profileID).Error; err != nil {
			return classify(err)
		}
		for _, id := range skillIDs {
			err := db.Table("user_skills").
				Clauses(clause.OnConflict{DoNothing: true}).
				Create(map[string]interface{}{"user_id": profileID, "skill_id": id}).Error
			if err != nil {
				return classify(err)
			}
		}
		return nil
	})
}

func (s *GormStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	var fnErr error
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(&GormStore{db: tx})
		return fnErr
	})
	if err != nil && fnErr == nil {
		// Begin or commit failed; the callback itself succeeded.
		return classify(err)
	}
	return err
}
