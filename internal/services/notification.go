package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/huangang/collabhub/internal/models"
	"github.com/huangang/collabhub/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	notificationListLimit = 100
	cleanupLockName       = "notification_cleanup"
)

// NotificationService stores inbox entries and purges old ones on a schedule.
type NotificationService struct {
	db            *gorm.DB
	retentionDays int
	cronScheduler *cron.Cron
}

func NewNotificationService(db *gorm.DB, retentionDays int) *NotificationService {
	return &NotificationService{db: db, retentionDays: retentionDays}
}

// Process writes one notification row. It is the TaskProcessor for both queue modes.
func (s *NotificationService) Process(ctx context.Context, task *NotificationTask) error {
	payload, err := json.Marshal(map[string]string{
		"member_id": task.MemberID,
		"actor_id":  task.ActorID,
	})
	if err != nil {
		return err
	}

	n := models.Notification{
		UserID:    task.UserID,
		ProjectID: task.ProjectID,
		Kind:      task.Kind,
		Message:   task.Message,
		Payload:   datatypes.JSON(payload),
	}
	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		return fmt.Errorf("save notification: %w", err)
	}
	return nil
}

// List returns the user's most recent notifications, optionally unread only.
func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}

	var items []models.Notification
	if err := query.Order("created_at DESC").Order("id DESC").Limit(notificationListLimit).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list notifications: %w: %w", ErrStoreUnavailable, err)
	}
	return items, nil
}

// MarkRead marks a notification read. Only its recipient may do so.
func (s *NotificationService) MarkRead(ctx context.Context, userID string, id uint) error {
	var n models.Notification
	if err := s.db.WithContext(ctx).First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("notification %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("load notification: %w: %w", ErrStoreUnavailable, err)
	}
	if n.UserID != userID {
		return fmt.Errorf("notification %d: %w", id, ErrForbidden)
	}
	if n.ReadAt != nil {
		return nil
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).Model(&n).Update("read_at", &now).Error; err != nil {
		return fmt.Errorf("mark notification read: %w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// Cleanup deletes read notifications older than the retention window.
func (s *NotificationService) Cleanup(ctx context.Context) (int64, error) {
	if s.retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)

	result := s.db.WithContext(ctx).
		Where("read_at IS NOT NULL AND created_at < ?", cutoff).
		Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}

func (s *NotificationService) StartScheduler(spec string) error {
	s.cronScheduler = cron.New()

	_, err := s.cronScheduler.AddFunc(spec, func() {
		ctx := context.Background()
		// Instances firing the same schedule share the minute as the run key.
		runKey := time.Now().UTC().Format("2006-01-02T15:04")
		acquired, err := tryAcquireLock(ctx, s.db, cleanupLockName, runKey, time.Hour)
		if err != nil {
			logger.Errorf("[Notification] Cleanup lock failed: %v", err)
			return
		}
		if !acquired {
			logger.Debugf("[Notification] Cleanup %s already claimed by another instance", runKey)
			return
		}

		removed, err := s.Cleanup(ctx)
		if err != nil {
			logger.Errorf("[Notification] Cleanup failed: %v", err)
			return
		}
		if removed > 0 {
			logger.Infof("[Notification] Removed %d read notifications older than %d days", removed, s.retentionDays)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule notification cleanup: %w", err)
	}

	s.cronScheduler.Start()
	logger.Infof("[Notification] Cleanup scheduled (cron: %s)", spec)
	return nil
}

func (s *NotificationService) StopScheduler() {
	if s.cronScheduler != nil {
		<-s.cronScheduler.Stop().Done()
	}
}
