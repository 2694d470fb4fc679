package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectMember represents a user's application to, or membership in, a project.
type ProjectMember struct {
	ID        string       `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID string       `gorm:"type:varchar(36);uniqueIndex:idx_project_user;not null" json:"project_id"`
	Project   *Project     `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	UserID    string       `gorm:"type:varchar(36);uniqueIndex:idx_project_user;not null" json:"user_id"`
	User      *Profile     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      MemberRole   `gorm:"size:20;not null;default:member" json:"role"`
	Status    MemberStatus `gorm:"size:20;index;not null;default:pending" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (ProjectMember) TableName() string { return "project_members" }

func (m *ProjectMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
