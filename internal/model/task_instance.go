package model

import "time"

// TaskInstance is one materialized chore for one assignee. Every instance
// produced by the same firing shares a GroupTaskID, which is what stale-cycle
// retirement and fan-out cohorts key on.
type TaskInstance struct {
	ID               int64      `json:"id"`
	ScheduledTaskID  int64      `json:"scheduled_task_id"`
	GroupTaskID      string     `json:"group_task_id"`
	AssigneeID       int64      `json:"assignee_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Reward           int        `json:"reward"`
	DueDate          *time.Time `json:"due_date"`
	IsCompleted      bool       `json:"is_completed"`
	CompletedAt      *time.Time `json:"completed_at"`
	RequiresImage    bool       `json:"requires_image"`
	RequiresApproval bool       `json:"requires_approval"`
	ApprovedBy       *int64     `json:"approved_by"`
	ApprovedAt       *time.Time `json:"approved_at"`
	Tags             []string   `json:"tags"`
	DeletedAt        *time.Time `json:"deleted_at"`
	CreatedAt        time.Time  `json:"created_at"`
}
