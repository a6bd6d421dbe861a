package store

import (
	"database/sql"
	"fmt"

	"github.com/ktr1133/chorewheel/internal/model"
)

type GroupStore struct {
	db querier
}

func NewGroupStore(db *sql.DB) *GroupStore {
	return &GroupStore{db: db}
}

func (s *GroupStore) Create(name, timezone string) (*model.Group, error) {
	if timezone == "" {
		timezone = "UTC"
	}
	result, err := s.db.Exec(
		`INSERT INTO groups (name, timezone) VALUES (?, ?)`,
		name, timezone,
	)
	if err != nil {
		return nil, fmt.Errorf("insert group: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *GroupStore) GetByID(id int64) (*model.Group, error) {
	var g model.Group
	err := s.db.QueryRow(
		`SELECT id, name, timezone, created_at, updated_at FROM groups WHERE id = ?`,
		id,
	).Scan(&g.ID, &g.Name, &g.Timezone, &g.CreatedAt, &g.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}
	return &g, nil
}

func (s *GroupStore) AddMember(groupID int64, name string, canManageTasks bool) (*model.GroupMember, error) {
	var maxOrder int
	err := s.db.QueryRow(
		`SELECT COALESCE(MAX(sort_order), -1) FROM group_members WHERE group_id = ?`,
		groupID,
	).Scan(&maxOrder)
	if err != nil {
		return nil, fmt.Errorf("query max sort_order: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO group_members (group_id, name, can_manage_tasks, sort_order) VALUES (?, ?, ?, ?)`,
		groupID, name, canManageTasks, maxOrder+1,
	)
	if err != nil {
		return nil, fmt.Errorf("insert group member: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetMemberByID(id)
}

func (s *GroupStore) GetMemberByID(id int64) (*model.GroupMember, error) {
	var m model.GroupMember
	err := s.db.QueryRow(
		`SELECT id, group_id, name, can_manage_tasks, sort_order, created_at, updated_at
		FROM group_members WHERE id = ?`,
		id,
	).Scan(&m.ID, &m.GroupID, &m.Name, &m.CanManageTasks, &m.SortOrder, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get group member: %w", err)
	}
	return &m, nil
}

// ListMembers returns the group's current roster in sort order. The scheduler
// filters assignability itself via GroupMember.Assignable.
func (s *GroupStore) ListMembers(groupID int64) ([]model.GroupMember, error) {
	rows, err := s.db.Query(
		`SELECT id, group_id, name, can_manage_tasks, sort_order, created_at, updated_at
		FROM group_members WHERE group_id = ? ORDER BY sort_order ASC, id ASC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}
	defer rows.Close()

	var members []model.GroupMember
	for rows.Next() {
		var m model.GroupMember
		if err := rows.Scan(&m.ID, &m.GroupID, &m.Name, &m.CanManageTasks, &m.SortOrder, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan group member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *GroupStore) RemoveMember(id int64) error {
	_, err := s.db.Exec(`DELETE FROM group_members WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("remove group member: %w", err)
	}
	return nil
}
