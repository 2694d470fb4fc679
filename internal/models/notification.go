package models

import (
	"time"

	"gorm.io/datatypes"
)

// NotificationKind identifies which membership event a notification reports.
type NotificationKind string

const (
	NotificationApplicationSubmitted NotificationKind = "application_submitted"
	NotificationApplicationAccepted  NotificationKind = "application_accepted"
	NotificationApplicationRejected  NotificationKind = "application_rejected"
)

// Notification is an inbox entry for a single user.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    string           `gorm:"type:varchar(36);index;not null" json:"user_id"`
	ProjectID string           `gorm:"type:varchar(36);index" json:"project_id"`
	Kind      NotificationKind `gorm:"size:50;not null" json:"kind"`
	Message   string           `gorm:"size:500" json:"message"`
	Payload   datatypes.JSON   `json:"payload"`
	ReadAt    *time.Time       `gorm:"index" json:"read_at"`
	CreatedAt time.Time        `gorm:"index" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
