package scheduler

import (
	"fmt"
	"time"

	"github.com/ktr1133/chorewheel/internal/model"
	"github.com/ktr1133/chorewheel/internal/store"
)

// How many prior success records to walk per firing. Under normal operation
// each firing retires everything older, so one or two records carry stale
// instances; the margin covers gaps after crashes.
const retirementLookback = 25

// retirePrevious soft-deletes incomplete instances left over from this
// definition's earlier cycles. The current cycle has no execution record yet
// when this runs, so every success record seen here belongs to a prior cycle;
// the currentCycleID check is a guard against reordered callers. Completed
// and already-deleted instances are never touched.
func retirePrevious(instances *store.TaskInstanceStore, executions *store.ExecutionStore, def model.ScheduledTask, currentCycleID string, now time.Time) error {
	records, err := executions.ListSuccesses(def.ID, retirementLookback)
	if err != nil {
		return fmt.Errorf("list prior cycles: %w", err)
	}

	for _, rec := range records {
		if rec.CreatedTaskID == nil {
			continue
		}
		anchor, err := instances.GetByID(*rec.CreatedTaskID)
		if err != nil {
			return fmt.Errorf("load cycle anchor: %w", err)
		}
		if anchor == nil || anchor.GroupTaskID == currentCycleID {
			continue
		}
		if _, err := instances.RetireCycle(anchor.GroupTaskID, now); err != nil {
			return err
		}
	}
	return nil
}
