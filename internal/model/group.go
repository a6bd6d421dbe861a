package model

import "time"

// Group is a household or classroom. Timezone is an IANA zone name and
// governs all local-time recurrence arithmetic for the group's definitions.
type Group struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GroupMember is one person in a group. Members with CanManageTasks set are
// the group's editors/admins and are excluded from chore assignment.
type GroupMember struct {
	ID             int64     `json:"id"`
	GroupID        int64     `json:"group_id"`
	Name           string    `json:"name"`
	CanManageTasks bool      `json:"can_manage_tasks"`
	SortOrder      int       `json:"sort_order"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Assignable reports whether the member may be given chores.
func (m GroupMember) Assignable() bool {
	return !m.CanManageTasks
}
