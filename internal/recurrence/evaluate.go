package recurrence

import "time"

// Decision is the outcome of evaluating a definition at one instant.
type Decision int

const (
	Due Decision = iota
	NotYetStarted
	Ended
	TimeNotMatched
)

func (d Decision) String() string {
	switch d {
	case Due:
		return "due"
	case NotYetStarted:
		return "not_yet_started"
	case Ended:
		return "ended"
	case TimeNotMatched:
		return "time_not_matched"
	}
	return "unknown"
}

// Window bounds a definition's active date range. Start and End are
// date-only; End nil means open-ended.
type Window struct {
	Start time.Time
	End   *time.Time
}

// Evaluate decides whether any rule fires at instant, expressed in loc.
// The instant is converted to local wall-clock time and truncated to the
// minute; there is no tolerance window, so callers must evaluate at minute
// boundaries. The date-range check compares local calendar dates only.
func Evaluate(rules []Rule, window Window, instant time.Time, loc *time.Location) Decision {
	local := instant.In(loc)
	localDate := dateOnly(local)

	if localDate.Before(dateOnly(window.Start)) {
		return NotYetStarted
	}
	if window.End != nil && localDate.After(dateOnly(*window.End)) {
		return Ended
	}

	for _, r := range rules {
		if r.Matches(local) {
			return Due
		}
	}
	return TimeNotMatched
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
