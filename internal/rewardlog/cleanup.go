package rewardlog

import (
	"context"

	"github.com/lunefall/rewardengine/internal/logger"
)

// CleanupJob removes audit rows past retention. It implements worker.Job so
// the scheduler can run it periodically.
type CleanupJob struct {
	svc           Service
	retentionDays int
}

// NewCleanupJob creates a cleanup job for the given retention period in days.
func NewCleanupJob(svc Service, retentionDays int) *CleanupJob {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return &CleanupJob{svc: svc, retentionDays: retentionDays}
}

// Process deletes expired rows and logs how many went away.
func (j *CleanupJob) Process(ctx context.Context) error {
	removed, err := j.svc.CleanupOldEntries(ctx, j.retentionDays)
	if err != nil {
		return err
	}
	if removed > 0 {
		logger.FromContext(ctx).Info(LogMsgCleanupCompleted,
			"removed", removed, "retention_days", j.retentionDays)
	}
	return nil
}
