package scheduler

import (
	"errors"
	"fmt"

	"github.com/ktr1133/chorewheel/internal/model"
)

type AssignmentMode int

const (
	// AssignFixed targets the definition's pinned member.
	AssignFixed AssignmentMode = iota
	// AssignRandom targets one randomly chosen assignable member.
	AssignRandom
	// AssignFanOut targets every assignable member.
	AssignFanOut
)

var (
	ErrNoEligibleAssignee = errors.New("no eligible assignee in group")
	ErrAssigneeMissing    = errors.New("fixed assignee is not in the group")
)

// AssignmentPlan is the resolved target set for one firing.
type AssignmentPlan struct {
	Mode    AssignmentMode
	Targets []int64
}

// intn matches rand.Rand; injected so random assignment is reproducible.
type intn interface {
	Intn(n int) int
}

// resolveAssignment selects the plan from the definition's two assignment
// fields: a pinned member means Fixed, otherwise AutoAssign picks between
// Random (one member) and FanOut (everyone). Only Random and FanOut filter
// out managers; a pinned manager is honored as-is.
func resolveAssignment(def model.ScheduledTask, roster []model.GroupMember, rng intn) (AssignmentPlan, error) {
	if def.AssignedMemberID != nil {
		for _, m := range roster {
			if m.ID == *def.AssignedMemberID {
				return AssignmentPlan{Mode: AssignFixed, Targets: []int64{m.ID}}, nil
			}
		}
		return AssignmentPlan{}, fmt.Errorf("member %d: %w", *def.AssignedMemberID, ErrAssigneeMissing)
	}

	var eligible []int64
	for _, m := range roster {
		if m.Assignable() {
			eligible = append(eligible, m.ID)
		}
	}
	if len(eligible) == 0 {
		return AssignmentPlan{}, ErrNoEligibleAssignee
	}

	if def.AutoAssign {
		pick := eligible[rng.Intn(len(eligible))]
		return AssignmentPlan{Mode: AssignRandom, Targets: []int64{pick}}, nil
	}
	return AssignmentPlan{Mode: AssignFanOut, Targets: eligible}, nil
}
