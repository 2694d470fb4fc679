package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/huangang/collabhub/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// instanceID identifies this process in scheduler_locks.
var instanceID = func() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "collabhub"
	}
	return host + "-" + uuid.NewString()[:8]
}()

// tryAcquireLock claims (name, key) for ttl. It returns false when another
// instance already holds an unexpired claim for the same run.
func tryAcquireLock(ctx context.Context, db *gorm.DB, name, key string, ttl time.Duration) (bool, error) {
	now := time.Now()

	if err := db.WithContext(ctx).
		Where("lock_name = ? AND expires_at < ?", name, now).
		Delete(&models.SchedulerLock{}).Error; err != nil {
		return false, fmt.Errorf("purge expired locks: %w", err)
	}

	lock := models.SchedulerLock{
		LockName:  name,
		LockKey:   key,
		LockedBy:  instanceID,
		LockedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&lock)
	if result.Error != nil {
		return false, fmt.Errorf("acquire lock %s/%s: %w", name, key, result.Error)
	}
	return result.RowsAffected == 1, nil
}
