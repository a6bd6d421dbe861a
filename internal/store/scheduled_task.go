package store

import (
	"database/sql"
	"fmt"

	"github.com/ktr1133/chorewheel/internal/model"
)

type ScheduledTaskStore struct {
	db querier
}

func NewScheduledTaskStore(db *sql.DB) *ScheduledTaskStore {
	return &ScheduledTaskStore{db: db}
}

const scheduledTaskCols = `id, group_id, title, description, reward, requires_image, requires_approval,
	tags, recurrence_rules, start_date, end_date, skip_holidays, delete_incomplete_previous,
	due_duration_days, due_duration_hours, assigned_member_id, auto_assign, is_active, created_by,
	created_at, updated_at`

func scanScheduledTask(scanner interface{ Scan(...any) error }) (*model.ScheduledTask, error) {
	var t model.ScheduledTask
	var tags, startDate string
	var endDate sql.NullString
	var assignedMemberID, createdBy sql.NullInt64

	err := scanner.Scan(
		&t.ID, &t.GroupID, &t.Title, &t.Description, &t.Reward, &t.RequiresImage, &t.RequiresApproval,
		&tags, &t.RecurrenceRules, &startDate, &endDate, &t.SkipHolidays, &t.DeleteIncompletePrevious,
		&t.DueDurationDays, &t.DueDurationHours, &assignedMemberID, &t.AutoAssign, &t.IsActive, &createdBy,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if t.Tags, err = decodeTags(tags); err != nil {
		return nil, err
	}
	if t.StartDate, err = decodeDate(startDate); err != nil {
		return nil, err
	}
	if endDate.Valid {
		d, err := decodeDate(endDate.String)
		if err != nil {
			return nil, err
		}
		t.EndDate = &d
	}
	t.AssignedMemberID = int64Ptr(assignedMemberID)
	t.CreatedBy = int64Ptr(createdBy)
	return &t, nil
}

func (s *ScheduledTaskStore) Create(t *model.ScheduledTask) (*model.ScheduledTask, error) {
	tags, err := encodeTags(t.Tags)
	if err != nil {
		return nil, err
	}

	var endDate sql.NullString
	if t.EndDate != nil {
		endDate = sql.NullString{String: encodeDate(*t.EndDate), Valid: true}
	}

	result, err := s.db.Exec(
		`INSERT INTO scheduled_tasks (group_id, title, description, reward, requires_image, requires_approval,
			tags, recurrence_rules, start_date, end_date, skip_holidays, delete_incomplete_previous,
			due_duration_days, due_duration_hours, assigned_member_id, auto_assign, is_active, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.GroupID, t.Title, t.Description, t.Reward, t.RequiresImage, t.RequiresApproval,
		tags, t.RecurrenceRules, encodeDate(t.StartDate), endDate, t.SkipHolidays, t.DeleteIncompletePrevious,
		t.DueDurationDays, t.DueDurationHours, nullInt64(t.AssignedMemberID), t.AutoAssign, t.IsActive,
		nullInt64(t.CreatedBy),
	)
	if err != nil {
		return nil, fmt.Errorf("insert scheduled task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ScheduledTaskStore) GetByID(id int64) (*model.ScheduledTask, error) {
	row := s.db.QueryRow(`SELECT `+scheduledTaskCols+` FROM scheduled_tasks WHERE id = ?`, id)
	t, err := scanScheduledTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get scheduled task: %w", err)
	}
	return t, nil
}

// ListActive returns every active definition across all groups, the batch's
// working set.
func (s *ScheduledTaskStore) ListActive() ([]model.ScheduledTask, error) {
	rows, err := s.db.Query(`SELECT ` + scheduledTaskCols + ` FROM scheduled_tasks WHERE is_active = 1 ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list active scheduled tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.ScheduledTask
	for rows.Next() {
		t, err := scanScheduledTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scheduled task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *ScheduledTaskStore) ListByGroup(groupID int64) ([]model.ScheduledTask, error) {
	rows, err := s.db.Query(
		`SELECT `+scheduledTaskCols+` FROM scheduled_tasks WHERE group_id = ? ORDER BY id ASC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("list scheduled tasks by group: %w", err)
	}
	defer rows.Close()

	var tasks []model.ScheduledTask
	for rows.Next() {
		t, err := scanScheduledTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scheduled task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *ScheduledTaskStore) Update(t *model.ScheduledTask) (*model.ScheduledTask, error) {
	tags, err := encodeTags(t.Tags)
	if err != nil {
		return nil, err
	}

	var endDate sql.NullString
	if t.EndDate != nil {
		endDate = sql.NullString{String: encodeDate(*t.EndDate), Valid: true}
	}

	_, err = s.db.Exec(
		`UPDATE scheduled_tasks SET title = ?, description = ?, reward = ?, requires_image = ?,
			requires_approval = ?, tags = ?, recurrence_rules = ?, start_date = ?, end_date = ?,
			skip_holidays = ?, delete_incomplete_previous = ?, due_duration_days = ?, due_duration_hours = ?,
			assigned_member_id = ?, auto_assign = ?, updated_at = datetime('now')
		WHERE id = ?`,
		t.Title, t.Description, t.Reward, t.RequiresImage,
		t.RequiresApproval, tags, t.RecurrenceRules, encodeDate(t.StartDate), endDate,
		t.SkipHolidays, t.DeleteIncompletePrevious, t.DueDurationDays, t.DueDurationHours,
		nullInt64(t.AssignedMemberID), t.AutoAssign,
		t.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update scheduled task: %w", err)
	}
	return s.GetByID(t.ID)
}

// Deactivate retires a definition from scheduling while preserving its
// execution history. There is no hard delete.
func (s *ScheduledTaskStore) Deactivate(id int64) error {
	_, err := s.db.Exec(
		`UPDATE scheduled_tasks SET is_active = 0, updated_at = datetime('now') WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deactivate scheduled task: %w", err)
	}
	return nil
}
