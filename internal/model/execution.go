package model

import "time"

type ExecutionStatus string

const (
	ExecutionSuccess ExecutionStatus = "success"
	ExecutionFailed  ExecutionStatus = "failed"
	ExecutionSkipped ExecutionStatus = "skipped"
)

// ExecutionRecord is one append-only audit row per evaluated definition per
// batch run. ExecutedAt is the firing instant truncated to the minute.
type ExecutionRecord struct {
	ID              int64           `json:"id"`
	ScheduledTaskID int64           `json:"scheduled_task_id"`
	ExecutedAt      time.Time       `json:"executed_at"`
	Status          ExecutionStatus `json:"status"`
	Note            string          `json:"note"`
	CreatedTaskID   *int64          `json:"created_task_id"`
	CreatedAt       time.Time       `json:"created_at"`
}
