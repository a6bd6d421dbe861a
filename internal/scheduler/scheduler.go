package scheduler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/ktr1133/chorewheel/internal/model"
	"github.com/ktr1133/chorewheel/internal/recurrence"
	"github.com/ktr1133/chorewheel/internal/store"
)

// Notifier receives each instance created by a committed cycle. It is invoked
// after the batch's database work and must not block it; implementations do
// their own error handling.
type Notifier interface {
	TaskAssigned(ctx context.Context, instance model.TaskInstance)
}

// Scheduler runs the recurring-chore batch: for every active definition it
// evaluates the recurrence rules, resolves assignees, materializes task
// instances, retires stale cycles, and appends one audit record — each
// definition in its own transaction so one failure never aborts the batch.
type Scheduler struct {
	db         *sql.DB
	tasks      *store.ScheduledTaskStore
	instances  *store.TaskInstanceStore
	executions *store.ExecutionStore
	groups     *store.GroupStore
	holidays   *store.HolidayStore
	notifier   Notifier
	logger     *slog.Logger
	rng        intn
}

type Option func(*Scheduler)

func WithNotifier(n Notifier) Option {
	return func(s *Scheduler) { s.notifier = n }
}

// WithRand injects the random source used for auto-assignment, so tests can
// pin the pick.
func WithRand(r intn) Option {
	return func(s *Scheduler) { s.rng = r }
}

func New(db *sql.DB, logger *slog.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		db:         db,
		tasks:      store.NewScheduledTaskStore(db),
		instances:  store.NewTaskInstanceStore(db),
		executions: store.NewExecutionStore(db),
		groups:     store.NewGroupStore(db),
		holidays:   store.NewHolidayStore(db),
		logger:     logger,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary aggregates one batch invocation's outcomes. Inactive definitions
// are not counted at all.
type Summary struct {
	Success int
	Failed  int
	Skipped int
}

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeSkipped
	outcomeFailed
)

// ExecuteScheduledTasks is the trigger entry point, expected once per minute.
// now is truncated to the minute; the evaluator has no tolerance window.
func (s *Scheduler) ExecuteScheduledTasks(ctx context.Context, now time.Time) (Summary, error) {
	now = now.UTC().Truncate(time.Minute)

	defs, err := s.tasks.ListActive()
	if err != nil {
		return Summary{}, fmt.Errorf("list active definitions: %w", err)
	}

	var sum Summary
	var created []model.TaskInstance
	for _, def := range defs {
		instances, out, err := s.runDefinition(def, now)
		switch out {
		case outcomeSuccess:
			sum.Success++
			created = append(created, instances...)
		case outcomeSkipped:
			sum.Skipped++
		case outcomeFailed:
			sum.Failed++
			s.logger.Error("scheduled task failed", "scheduled_task_id", def.ID, "error", err)
		}
	}

	if s.notifier != nil {
		for _, inst := range created {
			s.notifier.TaskAssigned(ctx, inst)
		}
	}

	s.logger.Info("scheduled task batch complete",
		"evaluated", len(defs),
		"success", sum.Success,
		"failed", sum.Failed,
		"skipped", sum.Skipped,
	)
	return sum, nil
}

// runDefinition handles one definition end to end. Errors never escape to the
// batch loop as failures of the batch itself; they come back as outcomeFailed
// with the cause for logging.
func (s *Scheduler) runDefinition(def model.ScheduledTask, now time.Time) ([]model.TaskInstance, outcome, error) {
	fail := func(cause error) ([]model.TaskInstance, outcome, error) {
		out, err := s.recordFailure(def, now, cause)
		return nil, out, err
	}

	rules, err := recurrence.ParseList(def.RecurrenceRules)
	if err != nil {
		return fail(fmt.Errorf("parse recurrence rules: %w", err))
	}

	group, err := s.groups.GetByID(def.GroupID)
	if err != nil {
		return fail(err)
	}
	if group == nil {
		return fail(fmt.Errorf("group %d not found", def.GroupID))
	}
	loc, err := time.LoadLocation(group.Timezone)
	if err != nil {
		return fail(fmt.Errorf("load timezone %q: %w", group.Timezone, err))
	}

	window := recurrence.Window{Start: def.StartDate, End: def.EndDate}
	if d := recurrence.Evaluate(rules, window, now, loc); d != recurrence.Due {
		// A plain mismatch writes no audit record; only holiday skips do.
		return nil, outcomeSkipped, nil
	}

	if def.SkipHolidays {
		holiday, err := s.holidays.IsHoliday(now.In(loc))
		if err != nil {
			return fail(fmt.Errorf("check holiday: %w", err))
		}
		if holiday {
			if _, err := s.executions.Create(def.ID, now, model.ExecutionSkipped, "holiday skip", nil); err != nil && !errors.Is(err, store.ErrAlreadyFired) {
				return fail(fmt.Errorf("record holiday skip: %w", err))
			}
			return nil, outcomeSkipped, nil
		}
	}

	instances, err := s.fireCycle(def, now)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyFired) {
			s.logger.Warn("definition already fired this minute",
				"scheduled_task_id", def.ID, "fired_at", now)
			return nil, outcomeSkipped, nil
		}
		return fail(err)
	}
	return instances, outcomeSuccess, nil
}

// fireCycle runs the due path inside one transaction: materialized instances,
// stale retirement, and the success record commit or roll back together.
func (s *Scheduler) fireCycle(def model.ScheduledTask, now time.Time) ([]model.TaskInstance, error) {
	roster, err := s.groups.ListMembers(def.GroupID)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	plan, err := resolveAssignment(def, roster, s.rng)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	txInstances := s.instances.WithTx(tx)
	txExecutions := s.executions.WithTx(tx)

	var created []model.TaskInstance
	for _, inst := range materialize(def, plan, now) {
		saved, err := txInstances.Create(&inst)
		if err != nil {
			return nil, fmt.Errorf("create instance: %w", err)
		}
		created = append(created, *saved)
	}

	if def.DeleteIncompletePrevious {
		if err := retirePrevious(txInstances, txExecutions, def, created[0].GroupTaskID, now); err != nil {
			// Retirement must not fail the new cycle; it already succeeded.
			s.logger.Warn("stale cycle retirement failed",
				"scheduled_task_id", def.ID, "error", err)
		}
	}

	if _, err := txExecutions.Create(def.ID, now, model.ExecutionSuccess, "", &created[0].ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit cycle: %w", err)
	}
	return created, nil
}

// recordFailure appends the failed audit record and maps the definition to
// outcomeFailed. A duplicate-minute conflict here means a sibling run already
// owns this minute, so the definition is counted skipped instead.
func (s *Scheduler) recordFailure(def model.ScheduledTask, now time.Time, cause error) (outcome, error) {
	_, err := s.executions.Create(def.ID, now, model.ExecutionFailed, cause.Error(), nil)
	if errors.Is(err, store.ErrAlreadyFired) {
		return outcomeSkipped, nil
	}
	if err != nil {
		s.logger.Error("record failure", "scheduled_task_id", def.ID, "error", err)
	}
	return outcomeFailed, cause
}
