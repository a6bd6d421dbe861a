package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ktr1133/chorewheel/internal/model"
	"github.com/ktr1133/chorewheel/internal/store"
)

// Fanout delivers one assignment notification per materialized instance to
// every registered device of the assignee. It satisfies the scheduler's
// Notifier interface; delivery is best-effort and never surfaces errors to
// the batch.
type Fanout struct {
	service *Service
	subs    *store.PushSubscriptionStore
	logger  *slog.Logger
}

func NewFanout(service *Service, subs *store.PushSubscriptionStore, logger *slog.Logger) *Fanout {
	return &Fanout{service: service, subs: subs, logger: logger}
}

// TaskAssigned pushes "new chore" to the instance's assignee. Subscriptions
// the push service reports gone are pruned on the spot.
func (f *Fanout) TaskAssigned(ctx context.Context, inst model.TaskInstance) {
	subs, err := f.subs.ListByMember(inst.AssigneeID)
	if err != nil {
		f.logger.Error("list subscriptions for assignment push",
			"member_id", inst.AssigneeID, "error", err)
		return
	}

	body := inst.Title
	if inst.Reward > 0 {
		body = fmt.Sprintf("%s (+%d pts)", inst.Title, inst.Reward)
	}
	payload := Payload{
		Title:  "New chore assigned",
		Body:   body,
		URL:    "/tasks",
		Tag:    "task-" + inst.GroupTaskID,
		Reward: inst.Reward,
	}

	for _, sub := range subs {
		if err := f.service.Send(ctx, &sub, payload); err != nil {
			if errors.Is(err, ErrExpired) {
				if err := f.subs.DeleteByEndpoint(sub.Endpoint); err != nil {
					f.logger.Error("prune expired subscription", "error", err)
				}
				continue
			}
			f.logger.Error("send assignment push",
				"member_id", inst.AssigneeID, "error", err)
		}
	}
}
