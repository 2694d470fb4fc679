package models

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// Migrations returns the ordered schema history. Append new entries; never edit applied ones.
func Migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "20241001_create_profiles_and_skills",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&Skill{}, &Profile{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("user_skills", "profiles", "skills")
			},
		},
		{
			ID: "20241001_create_projects",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&Project{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("project_skills", "projects")
			},
		},
		{
			ID: "20241001_create_project_members",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&ProjectMember{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("project_members")
			},
		},
		{
			ID: "20241015_create_notifications",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&Notification{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("notifications")
			},
		},
		{
			ID: "20241020_create_scheduler_locks",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&SchedulerLock{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("scheduler_locks")
			},
		},
	}
}

// Migrate applies every pending migration to db.
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, Migrations())
	return m.Migrate()
}

// AutoMigrate migrates the package-level DB.
func AutoMigrate() error {
	return Migrate(DB)
}
