// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/huangang/collabhub/internal/config"
	"github.com/huangang/collabhub/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with every migration applied.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := models.Open(&config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"}, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// SeedProfile inserts a profile with the given role and skills.
func SeedProfile(t *testing.T, db *gorm.DB, id, name string, role models.UserRole, skills ...string) *models.Profile {
	t.Helper()

	profile := &models.Profile{ID: id, Name: name, Role: role, Experience: models.ExperienceIntermediate}
	require.NoError(t, db.Create(profile).Error)
	for _, s := range skills {
		skill := seedSkill(t, db, s)
		require.NoError(t, db.Model(profile).Association("Skills").Append(skill))
	}
	return profile
}

// ProjectSeed describes a project row for SeedProject.
type ProjectSeed struct {
	OwnerID     string
	Title       string
	Description string
	Domain      string
	Status      models.ProjectStatus
	Progress    int
	SlotsTotal  int
	SlotsFilled int
	Skills      []string
	CreatedAt   time.Time
}

// SeedProject inserts a project, its skills and the owner membership row.
func SeedProject(t *testing.T, db *gorm.DB, seed ProjectSeed) *models.Project {
	t.Helper()

	if seed.Status == "" {
		seed.Status = models.ProjectStatusOpen
	}
	if seed.Domain == "" {
		seed.Domain = "Web Development"
	}
	if seed.SlotsTotal == 0 {
		seed.SlotsTotal = 4
	}
	if seed.CreatedAt.IsZero() {
		seed.CreatedAt = time.Now()
	}

	project := &models.Project{
		OwnerID:     seed.OwnerID,
		Title:       seed.Title,
		Description: seed.Description,
		Domain:      seed.Domain,
		Status:      seed.Status,
		Duration:    "3 months",
		Progress:    seed.Progress,
		SlotsTotal:  seed.SlotsTotal,
		SlotsFilled: seed.SlotsFilled,
		CreatedAt:   seed.CreatedAt,
	}
	require.NoError(t, db.Omit("Skills", "Owner").Create(project).Error)
	for _, s := range seed.Skills {
		skill := seedSkill(t, db, s)
		require.NoError(t, db.Table("project_skills").Create(map[string]interface{}{
			"project_id": project.ID,
			"skill_id":   skill.ID,
		}).Error)
	}

	owner := &models.ProjectMember{
		ProjectID: project.ID,
		UserID:    seed.OwnerID,
		Role:      models.MemberRoleOwner,
		Status:    models.MemberStatusAccepted,
	}
	require.NoError(t, db.Omit("Project", "User").Create(owner).Error)
	return project
}

// SeedMember inserts a membership row for userID on projectID.
func SeedMember(t *testing.T, db *gorm.DB, projectID, userID string, status models.MemberStatus) *models.ProjectMember {
	t.Helper()

	member := &models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      models.MemberRoleMember,
		Status:    status,
	}
	require.NoError(t, db.Omit("Project", "User").Create(member).Error)
	return member
}

// ReloadProject reads the project row straight from the database.
func ReloadProject(t *testing.T, db *gorm.DB, id string) *models.Project {
	t.Helper()

	var project models.Project
	require.NoError(t, db.WithContext(context.Background()).Where("id = ?", id).First(&project).Error)
	return &project
}

func seedSkill(t *testing.T, db *gorm.DB, name string) *models.Skill {
	var skill models.Skill
	err := db.Where(models.Skill{NameKey: models.SkillKey(name)}).
		Attrs(models.Skill{Name: name}).
		FirstOrCreate(&skill).Error
	require.NoError(t, err)
	return &skill
}
