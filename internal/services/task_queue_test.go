package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/huangang/collabhub/internal/config"
	"github.com/huangang/collabhub/internal/models"
)

func TestTaskTypeNotification_Constant(t *testing.T) {
	if TaskTypeNotification != "notification:deliver" {
		t.Errorf("TaskTypeNotification = %q, expected %q", TaskTypeNotification, "notification:deliver")
	}
}

func TestNotificationTask_PayloadRoundTrip(t *testing.T) {
	task := NotificationTask{
		UserID:    "u-1",
		ProjectID: "p-1",
		Kind:      models.NotificationApplicationSubmitted,
		Message:   "Lin applied",
		MemberID:  "m-1",
	}

	payload, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	got, err := decodeNotificationTask(payload)
	if err != nil {
		t.Fatalf("decodeNotificationTask failed: %v", err)
	}
	if *got != task {
		t.Errorf("decoded task = %+v, expected %+v", *got, task)
	}

	if _, err := decodeNotificationTask([]byte("{broken")); err == nil {
		t.Error("expected an error for a malformed payload")
	}
	if _, err := decodeNotificationTask([]byte(`{"project_id":"p-1"}`)); err == nil {
		t.Error("expected an error for a task without recipient")
	}
}

func TestSyncQueue_ProcessesTasks(t *testing.T) {
	q := NewSyncQueue()

	var mu sync.Mutex
	var seen []string
	q.SetProcessor(func(ctx context.Context, task *NotificationTask) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, task.UserID)
		return nil
	})

	for _, id := range []string{"a", "b", "c"} {
		if err := q.Enqueue(&NotificationTask{UserID: id}); err != nil {
			t.Fatalf("Enqueue failed: %v", err)
		}
	}
	if err := q.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if len(seen) != 3 {
		t.Errorf("processed %d tasks, expected 3", len(seen))
	}
	if q.IsAsync() {
		t.Error("SyncQueue should not be async")
	}
}

func TestSyncQueue_NoProcessor(t *testing.T) {
	q := NewSyncQueue()
	if err := q.Enqueue(&NotificationTask{UserID: "a"}); err != nil {
		t.Errorf("Enqueue without processor should drop silently, got %v", err)
	}
}

func TestNewWorker_RedisDisabled(t *testing.T) {
	if w := NewWorker(&config.RedisConfig{Enabled: false}); w != nil {
		t.Error("NewWorker should return nil when Redis is disabled")
	}
}
