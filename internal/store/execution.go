package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ktr1133/chorewheel/internal/model"
)

// ErrAlreadyFired means an execution record already exists for this
// definition and minute — another batch run got there first.
var ErrAlreadyFired = errors.New("definition already fired this minute")

type ExecutionStore struct {
	db querier
}

func NewExecutionStore(db *sql.DB) *ExecutionStore {
	return &ExecutionStore{db: db}
}

// WithTx returns a store bound to tx, so the record insert commits or rolls
// back together with the cycle's instances.
func (s *ExecutionStore) WithTx(tx *sql.Tx) *ExecutionStore {
	return &ExecutionStore{db: tx}
}

const executionCols = `id, scheduled_task_id, executed_at, status, note, created_task_id, created_at`

func scanExecution(scanner interface{ Scan(...any) error }) (*model.ExecutionRecord, error) {
	var r model.ExecutionRecord
	var createdTaskID sql.NullInt64

	err := scanner.Scan(&r.ID, &r.ScheduledTaskID, &r.ExecutedAt, &r.Status, &r.Note, &createdTaskID, &r.CreatedAt)
	if err != nil {
		return nil, err
	}

	r.CreatedTaskID = int64Ptr(createdTaskID)
	return &r, nil
}

// Create appends one audit record. ExecutedAt is truncated to the minute;
// the unique (scheduled_task_id, executed_at) index turns a duplicate minute
// into ErrAlreadyFired. Records are never updated or deleted.
func (s *ExecutionStore) Create(scheduledTaskID int64, executedAt time.Time, status model.ExecutionStatus, note string, createdTaskID *int64) (*model.ExecutionRecord, error) {
	executedAt = executedAt.UTC().Truncate(time.Minute)

	result, err := s.db.Exec(
		`INSERT INTO executions (scheduled_task_id, executed_at, status, note, created_task_id)
		VALUES (?, ?, ?, ?, ?)`,
		scheduledTaskID, executedAt, status, note, nullInt64(createdTaskID),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrAlreadyFired
		}
		return nil, fmt.Errorf("insert execution: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	row := s.db.QueryRow(`SELECT `+executionCols+` FROM executions WHERE id = ?`, id)
	return scanExecution(row)
}

// ListSuccesses returns up to limit success records for a definition, newest
// first. Retirement walks these to find prior cycles.
func (s *ExecutionStore) ListSuccesses(scheduledTaskID int64, limit int) ([]model.ExecutionRecord, error) {
	rows, err := s.db.Query(
		`SELECT `+executionCols+` FROM executions
		WHERE scheduled_task_id = ? AND status = ? AND created_task_id IS NOT NULL
		ORDER BY executed_at DESC LIMIT ?`,
		scheduledTaskID, model.ExecutionSuccess, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list successes: %w", err)
	}
	defer rows.Close()

	var records []model.ExecutionRecord
	for rows.Next() {
		r, err := scanExecution(rows)
		if err != nil {
			return nil, fmt.Errorf("scan execution: %w", err)
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

// ListByScheduledTask returns the full audit trail for a definition, newest
// first.
func (s *ExecutionStore) ListByScheduledTask(scheduledTaskID int64) ([]model.ExecutionRecord, error) {
	rows, err := s.db.Query(
		`SELECT `+executionCols+` FROM executions WHERE scheduled_task_id = ? ORDER BY executed_at DESC, id DESC`,
		scheduledTaskID,
	)
	if err != nil {
		return nil, fmt.Errorf("list executions: %w", err)
	}
	defer rows.Close()

	var records []model.ExecutionRecord
	for rows.Next() {
		r, err := scanExecution(rows)
		if err != nil {
			return nil, fmt.Errorf("scan execution: %w", err)
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}
