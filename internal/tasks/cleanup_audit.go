package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// DefaultAuditRetention applies when a job carries no retention.
const DefaultAuditRetention = 30 * 24 * time.Hour

// AuditEventCleaner deletes audit events older than a retention period.
type AuditEventCleaner interface {
	DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

// AuditRetentionTask purges audit events older than Retention.
type AuditRetentionTask struct {
	Retention time.Duration `json:"retention"`
}

// Config returns the queue settings for audit retention jobs. A failed job is
// retried and its payload kept for a day.
func (AuditRetentionTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "audit_retention",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration: 24 * time.Hour,
			Data:     &backlite.RetainData{OnlyFailed: true},
		},
	}
}

func (t AuditRetentionTask) retention() time.Duration {
	if t.Retention <= 0 {
		return DefaultAuditRetention
	}
	return t.Retention
}

// AuditRetentionProcessor runs audit retention jobs against cleaner.
func AuditRetentionProcessor(cleaner AuditEventCleaner) backlite.QueueProcessor[AuditRetentionTask] {
	return func(ctx context.Context, task AuditRetentionTask) error {
		if cleaner == nil {
			return errors.New("audit retention: no cleaner configured")
		}

		retention := task.retention()
		deleted, err := cleaner.DeleteOldEvents(ctx, retention)
		if err != nil {
			return fmt.Errorf("audit retention: %w", err)
		}

		log.Printf("Task queue: purged %d audit events older than %v", deleted, retention)
		return nil
	}
}

// NewAuditRetentionQueue creates the backlite queue for audit retention jobs.
func NewAuditRetentionQueue(cleaner AuditEventCleaner) backlite.Queue {
	return backlite.NewQueue(AuditRetentionProcessor(cleaner))
}

// EnqueueAuditCleanup queues a purge of audit events older than retention.
func (c *Client) EnqueueAuditCleanup(retention time.Duration) error {
	_, err := c.Add(AuditRetentionTask{Retention: retention}).Save()
	return err
}
