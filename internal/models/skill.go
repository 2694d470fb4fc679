package models

import (
	"strings"
	"time"
)

// Skill is a named technology or competence shared by projects and profiles.
// Name keeps the first spelling seen; NameKey is the case-folded identity.
type Skill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	NameKey   string    `gorm:"size:100;uniqueIndex;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (Skill) TableName() string { return "skills" }

// SkillKey normalizes a skill name for case-insensitive identity.
func SkillKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
