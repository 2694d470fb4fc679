package models

import "time"

// Profile is the platform identity of a user. The ID is the subject of the
// identity provider's token, so profiles are never created with a generated id.
type Profile struct {
	ID         string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name       string     `gorm:"size:100;not null" json:"name"`
	Bio        string     `gorm:"type:text" json:"bio"`
	Role       UserRole   `gorm:"size:30;not null;default:student" json:"role"`
	Experience Experience `gorm:"size:30;not null;default:beginner" json:"experience"`
	AvatarURL  string     `gorm:"size:500" json:"avatar_url"`
	Skills     []Skill    `gorm:"many2many:user_skills;joinForeignKey:UserID;joinReferences:SkillID" json:"skills"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

// SkillNames returns the display names of the profile's skills.
func (p *Profile) SkillNames() []string {
	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		names = append(names, s.Name)
	}
	return names
}
