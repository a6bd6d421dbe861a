package scheduler

import (
	"time"

	"github.com/google/uuid"

	"github.com/ktr1133/chorewheel/internal/model"
)

// materialize builds one instance per target, all sharing one fresh cycle id.
// The due date is firedAt plus the definition's day/hour offsets, or nil when
// both offsets are zero.
func materialize(def model.ScheduledTask, plan AssignmentPlan, firedAt time.Time) []model.TaskInstance {
	cycleID := uuid.NewString()

	var due *time.Time
	if def.DueDurationDays != 0 || def.DueDurationHours != 0 {
		d := firedAt.Add(
			time.Duration(def.DueDurationDays)*24*time.Hour +
				time.Duration(def.DueDurationHours)*time.Hour,
		)
		due = &d
	}

	instances := make([]model.TaskInstance, 0, len(plan.Targets))
	for _, target := range plan.Targets {
		instances = append(instances, model.TaskInstance{
			ScheduledTaskID:  def.ID,
			GroupTaskID:      cycleID,
			AssigneeID:       target,
			Title:            def.Title,
			Description:      def.Description,
			Reward:           def.Reward,
			DueDate:          due,
			RequiresImage:    def.RequiresImage,
			RequiresApproval: def.RequiresApproval,
			Tags:             def.Tags,
		})
	}
	return instances
}
