package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ktr1133/chorewheel/internal/model"
)

type TaskInstanceStore struct {
	db querier
}

func NewTaskInstanceStore(db *sql.DB) *TaskInstanceStore {
	return &TaskInstanceStore{db: db}
}

// WithTx returns a store bound to tx, so instance writes can share the
// per-definition transaction with the execution record.
func (s *TaskInstanceStore) WithTx(tx *sql.Tx) *TaskInstanceStore {
	return &TaskInstanceStore{db: tx}
}

const instanceCols = `id, scheduled_task_id, group_task_id, assignee_id, title, description, reward,
	due_date, is_completed, completed_at, requires_image, requires_approval, approved_by, approved_at,
	tags, deleted_at, created_at`

func scanInstance(scanner interface{ Scan(...any) error }) (*model.TaskInstance, error) {
	var i model.TaskInstance
	var tags string
	var dueDate, completedAt, approvedAt, deletedAt sql.NullTime
	var approvedBy sql.NullInt64

	err := scanner.Scan(
		&i.ID, &i.ScheduledTaskID, &i.GroupTaskID, &i.AssigneeID, &i.Title, &i.Description, &i.Reward,
		&dueDate, &i.IsCompleted, &completedAt, &i.RequiresImage, &i.RequiresApproval, &approvedBy, &approvedAt,
		&tags, &deletedAt, &i.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if i.Tags, err = decodeTags(tags); err != nil {
		return nil, err
	}
	i.DueDate = timePtr(dueDate)
	i.CompletedAt = timePtr(completedAt)
	i.ApprovedBy = int64Ptr(approvedBy)
	i.ApprovedAt = timePtr(approvedAt)
	i.DeletedAt = timePtr(deletedAt)
	return &i, nil
}

func (s *TaskInstanceStore) Create(i *model.TaskInstance) (*model.TaskInstance, error) {
	tags, err := encodeTags(i.Tags)
	if err != nil {
		return nil, err
	}

	result, err := s.db.Exec(
		`INSERT INTO task_instances (scheduled_task_id, group_task_id, assignee_id, title, description,
			reward, due_date, requires_image, requires_approval, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		i.ScheduledTaskID, i.GroupTaskID, i.AssigneeID, i.Title, i.Description,
		i.Reward, nullTime(i.DueDate), i.RequiresImage, i.RequiresApproval, tags,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task instance: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *TaskInstanceStore) GetByID(id int64) (*model.TaskInstance, error) {
	row := s.db.QueryRow(`SELECT `+instanceCols+` FROM task_instances WHERE id = ?`, id)
	i, err := scanInstance(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task instance: %w", err)
	}
	return i, nil
}

// ListByCycle returns every instance of one firing cycle, soft-deleted rows
// included.
func (s *TaskInstanceStore) ListByCycle(groupTaskID string) ([]model.TaskInstance, error) {
	rows, err := s.db.Query(
		`SELECT `+instanceCols+` FROM task_instances WHERE group_task_id = ? ORDER BY id ASC`,
		groupTaskID,
	)
	if err != nil {
		return nil, fmt.Errorf("list instances by cycle: %w", err)
	}
	defer rows.Close()

	var instances []model.TaskInstance
	for rows.Next() {
		i, err := scanInstance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task instance: %w", err)
		}
		instances = append(instances, *i)
	}
	return instances, rows.Err()
}

// ListOutstandingByAssignee returns incomplete, non-deleted instances for one
// member, soonest due first.
func (s *TaskInstanceStore) ListOutstandingByAssignee(memberID int64) ([]model.TaskInstance, error) {
	rows, err := s.db.Query(
		`SELECT `+instanceCols+` FROM task_instances
		WHERE assignee_id = ? AND is_completed = 0 AND deleted_at IS NULL
		ORDER BY due_date IS NULL, due_date ASC, id ASC`,
		memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("list outstanding instances: %w", err)
	}
	defer rows.Close()

	var instances []model.TaskInstance
	for rows.Next() {
		i, err := scanInstance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task instance: %w", err)
		}
		instances = append(instances, *i)
	}
	return instances, rows.Err()
}

// MarkCompleted records completion. Called by the user-facing flows, and by
// tests exercising retirement's completed-instances-are-untouched guarantee.
func (s *TaskInstanceStore) MarkCompleted(id int64, completedAt time.Time) error {
	_, err := s.db.Exec(
		`UPDATE task_instances SET is_completed = 1, completed_at = ? WHERE id = ? AND deleted_at IS NULL`,
		completedAt.UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("mark instance completed: %w", err)
	}
	return nil
}

// Approve records a manager's sign-off on a completed instance.
func (s *TaskInstanceStore) Approve(id, approvedBy int64, approvedAt time.Time) error {
	_, err := s.db.Exec(
		`UPDATE task_instances SET approved_by = ?, approved_at = ? WHERE id = ? AND is_completed = 1`,
		approvedBy, approvedAt.UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("approve instance: %w", err)
	}
	return nil
}

// RetireCycle soft-deletes every instance of the cycle that is still
// incomplete and not already deleted. Completed instances are never touched.
// Returns the number of rows retired.
func (s *TaskInstanceStore) RetireCycle(groupTaskID string, deletedAt time.Time) (int64, error) {
	result, err := s.db.Exec(
		`UPDATE task_instances SET deleted_at = ?
		WHERE group_task_id = ? AND is_completed = 0 AND deleted_at IS NULL`,
		deletedAt.UTC(), groupTaskID,
	)
	if err != nil {
		return 0, fmt.Errorf("retire cycle: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
