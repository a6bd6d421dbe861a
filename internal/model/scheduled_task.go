package model

import "time"

// ScheduledTask is the recurring chore template. It is created and edited by
// the admin surface; the scheduler only reads it. Definitions are deactivated
// rather than deleted so execution history stays intact.
type ScheduledTask struct {
	ID                       int64      `json:"id"`
	GroupID                  int64      `json:"group_id"`
	Title                    string     `json:"title"`
	Description              string     `json:"description"`
	Reward                   int        `json:"reward"`
	RequiresImage            bool       `json:"requires_image"`
	RequiresApproval         bool       `json:"requires_approval"`
	Tags                     []string   `json:"tags"`
	RecurrenceRules          string     `json:"recurrence_rules"`
	StartDate                time.Time  `json:"start_date"`
	EndDate                  *time.Time `json:"end_date"`
	SkipHolidays             bool       `json:"skip_holidays"`
	DeleteIncompletePrevious bool       `json:"delete_incomplete_previous"`
	DueDurationDays          int        `json:"due_duration_days"`
	DueDurationHours         int        `json:"due_duration_hours"`
	AssignedMemberID         *int64     `json:"assigned_member_id"`
	AutoAssign               bool       `json:"auto_assign"`
	IsActive                 bool       `json:"is_active"`
	CreatedBy                *int64     `json:"created_by"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}
