package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is a collaborative side-project with a bounded team size.
type Project struct {
	ID          string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID     string        `gorm:"type:varchar(36);index;not null" json:"owner_id"`
	Owner       *Profile      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Title       string        `gorm:"size:200;not null" json:"title"`
	Description string        `gorm:"type:text;not null" json:"description"`
	Domain      string        `gorm:"size:100;index;not null" json:"domain"`
	Status      ProjectStatus `gorm:"size:30;index;not null;default:open" json:"status"`
	Duration    string        `gorm:"size:100;not null" json:"duration"`
	Progress    int           `gorm:"not null;default:0" json:"progress"` // 0-100
	SlotsTotal  int           `gorm:"not null" json:"slots_total"`
	SlotsFilled int           `gorm:"not null;default:0" json:"slots_filled"`
	Skills      []Skill       `gorm:"many2many:project_skills;" json:"skills"`
	CreatedAt   time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// OwnerName returns the resolved owner name, or "" when the owner was not preloaded.
func (p *Project) OwnerName() string {
	if p.Owner == nil {
		return ""
	}
	return p.Owner.Name
}

// SkillNames returns the display names of the project's required skills.
func (p *Project) SkillNames() []string {
	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		names = append(names, s.Name)
	}
	return names
}

// HasFreeSlot reports whether another member can still be accepted.
func (p *Project) HasFreeSlot() bool {
	return p.SlotsFilled < p.SlotsTotal
}
